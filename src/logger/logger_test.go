// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rpkideck/rpki-tree-explorer/src/logger"
)

func TestCLILogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewCLILogger()
	log.SetOutput(&buf)

	log.Printf("loaded %d entries", 42)
	log.Println("done")
	log.Warnf("node %s already exists", "AA:BB")

	out := buf.String()
	if !strings.Contains(out, "loaded 42 entries") {
		t.Errorf("Printf output missing, got %q", out)
	}
	if !strings.Contains(out, "done") {
		t.Errorf("Println output missing, got %q", out)
	}
	if !strings.Contains(out, "warning: node AA:BB already exists") {
		t.Errorf("Warnf output missing prefix, got %q", out)
	}
}

func TestMCPLoggerStructured(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, false)

	log.Printf("indexed %d nodes", 7)
	log.Warnf("large ASN range")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("first line is not JSON: %v", err)
	}
	if entry["level"] != "info" || entry["message"] != "indexed 7 nodes" {
		t.Errorf("unexpected info entry: %v", entry)
	}

	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("second line is not JSON: %v", err)
	}
	if entry["level"] != "warning" {
		t.Errorf("expected warning level, got %v", entry["level"])
	}
}

func TestMCPLoggerSilent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, true)

	log.Printf("should not appear")
	log.Println("should not appear")
	log.Warnf("should not appear")

	if buf.Len() != 0 {
		t.Errorf("silent logger wrote output: %q", buf.String())
	}
}

func TestMCPLoggerNilWriter(t *testing.T) {
	log := logger.NewMCPLogger(nil, false)
	log.Printf("must not panic")
	log.SetOutput(nil)
	log.Println("still must not panic")
}

func TestMCPLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewMCPLogger(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				log.Printf("entry %d", j)
			}
		}()
	}
	wg.Wait()

	// Every line must still be one intact JSON object.
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("interleaved log line %q: %v", line, err)
		}
	}
}
