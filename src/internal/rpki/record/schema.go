// Copyright (c) 2026 RPKIDeck All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package record

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema is the JSON schema every archive line must satisfy before it
// is unmarshalled. The schema is permissive about which fields are present
// (unknown record types are ignored later, not rejected here) but strict
// about the shape of the fields it knows.
const recordSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"type": {"type": "string"},
		"ski": {"type": "string"},
		"aki": {"type": "string"},
		"tal": {"type": "string"},
		"file": {"type": "string"},
		"carepository": {"type": "string"},
		"subordinate_resources": {
			"type": "array",
			"items": {"type": "object"}
		},
		"vrps": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"prefix": {"type": "string"},
					"asid": {"type": "integer", "minimum": 0, "maximum": 4294967295}
				},
				"required": ["prefix", "asid"]
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// validate checks a raw archive line against the record schema.
func validate(line []byte) error {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(recordSchema))
	})
	if schemaErr != nil {
		return fmt.Errorf("record schema: %w", schemaErr)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewBytesLoader(line))
	if err != nil {
		return err
	}
	if !result.Valid() {
		return fmt.Errorf("schema violation: %s", result.Errors()[0])
	}
	return nil
}
