package budget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaFile = "budget-header.schema.json"

// JSONSchema describes the JSON keyed form. It checks names, types and ranges.
// Agreement between flags and fields is left to UnmarshalJSON.
const JSONSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "compute budget header",
  "type": "object",
  "required": ["flags"],
  "additionalProperties": false,
  "properties": {
    "flags": {"type": "integer", "minimum": 0, "maximum": 15},
    "compute_unit_limit": {"type": "integer", "minimum": 0, "maximum": 4294967295},
    "compute_unit_price": {"type": "integer", "minimum": 0, "maximum": 18446744073709551615},
    "loaded_accounts_data_limit": {"type": "integer", "minimum": 0, "maximum": 4294967295},
    "requested_heap_bytes_limit": {"type": "integer", "minimum": 0, "maximum": 4294967295}
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaFile, JSONSchema)
})

// ValidateSchema checks data against JSONSchema.
func ValidateSchema(data []byte) error {
	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile budget header json schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal budget header: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("validate budget header: %w", err)
	}
	return nil
}
