// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package archive

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpkideck/rpki-tree-explorer/src/internal/helper/gc"
	"github.com/rpkideck/rpki-tree-explorer/src/internal/rpki/record"
	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

// ParseError reports a malformed archive line. The whole load aborts on the
// first ParseError; there is no partial-line recovery.
type ParseError struct {
	Path string
	Line int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error { return e.Err }

// Load reads an RPKI archive snapshot into an ordered record sequence.
//
// The archive is newline-delimited JSON, one record per line, transparently
// gzip-decompressed when the path ends in ".gz". The whole stream is drained
// through a pooled buffer before line splitting. Lines whose record type is
// not recognized decode to nil and are dropped here, so callers only see
// ca_cert and roa records.
//
// Parameters:
//   - path: Archive file path (plain or .gz)
//   - log: Destination for progress and descriptor warnings
//
// Returns:
//   - []*record.Record: Records in file order
//   - error: I/O failure, or *ParseError on the first malformed line
func Load(path string, log logger.Logger) ([]*record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening gzip archive %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	log.Printf("Loading data from %s", path)

	// Drain the whole stream into a pooled buffer; snapshots are large and
	// the buffer is reused across loads.
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}

	var records []*record.Record
	lineNo := 0
	for _, line := range bytes.Split(buf.Bytes(), []byte{'\n'}) {
		lineNo++
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		rec, err := record.Decode(line, log)
		if err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Err: err}
		}
		if rec == nil {
			continue
		}
		records = append(records, rec)
	}

	log.Printf("Loaded %d entries", len(records))
	return records, nil
}
