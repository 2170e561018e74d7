// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://chamber-stats.local/initiatives.schema.json"

//go:embed initiatives.schema.json
var schemaSource []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("failed to load initiative schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// ValidateJSON checks raw JSON against the initiative list schema.
// Unknown fields are allowed; wrong types are not.
func ValidateJSON(raw []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode initiatives: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid initiatives: %w", err)
	}
	return nil
}
