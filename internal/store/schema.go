package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const todosSchemaURL = "mem://todomvc/todos.schema.json"

// todosSchemaJSON describes the stored slot value. Extra properties are tolerated so
// that older binaries can read lists written by newer ones.
const todosSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var todosSchema = jsonschema.MustCompileString(todosSchemaURL, todosSchemaJSON)

// validateTodosJSON returns human-readable problems; nil means raw is a valid list.
func validateTodosJSON(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return []string{fmt.Sprintf("invalid json: %v", err)}
	}
	if dec.More() {
		return []string{"invalid json: trailing data after value"}
	}

	err := todosSchema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	collectSchemaProblems(&out, ve)
	if len(out) == 0 {
		out = append(out, ve.Error())
	}
	return out
}

func collectSchemaProblems(out *[]string, ve *jsonschema.ValidationError) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		*out = append(*out, fmt.Sprintf("%s: %s", pointerToPath(ve.InstanceLocation), ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaProblems(out, c)
	}
}

// pointerToPath turns "/0/title" into "[0].title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
