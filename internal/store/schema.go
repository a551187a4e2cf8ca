package store

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// taskListSchema mirrors the on-disk format: every field is required,
// unknown keys are tolerated.
const taskListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["item", "note", "completed"],
    "properties": {
      "item": {"type": "string"},
      "note": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var taskList = jsonschema.MustCompileString("tasks.schema.json", taskListSchema)

// parseTaskList decodes b generically and checks it against the schema.
// The returned document is a []any of map[string]any with typed fields.
func parseTaskList(b []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if err := taskList.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return nil, fmt.Errorf("schema: %s", leafMessage(ve))
		}
		return nil, err
	}
	return doc, nil
}

// leafMessage returns the most specific cause of a validation failure.
func leafMessage(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
