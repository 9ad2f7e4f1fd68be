package provider

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects T into a JSON schema map suitable for structured
// output requests. Structured outputs accept only a subset of JSON schema,
// so references are inlined and identifiers are stripped.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	stripIDs(out)
	return out
}

// stripIDs removes $schema and $id keys from every node of the schema.
func stripIDs(node map[string]any) {
	delete(node, "$schema")
	delete(node, "$id")
	for _, val := range node {
		switch v := val.(type) {
		case map[string]any:
			stripIDs(v)
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					stripIDs(m)
				}
			}
		}
	}
}
