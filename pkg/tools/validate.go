package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ArgumentValidator checks call arguments against a tool's input schema.
type ArgumentValidator struct {
	schema *jsonschema.Schema
}

// NewArgumentValidator compiles the input schema advertised by tool.
func NewArgumentValidator(tool mcp.Tool) (*ArgumentValidator, error) {
	raw, err := inputSchema(tool)
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode input schema of %s: %w", tool.Name, err)
	}

	url := "urn:vocab-mcp:tool:" + tool.Name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("failed to load input schema of %s: %w", tool.Name, err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile input schema of %s: %w", tool.Name, err)
	}

	return &ArgumentValidator{schema: schema}, nil
}

// Validate checks args, as received from the client, against the schema.
// Missing arguments are checked as an empty object.
func (v *ArgumentValidator) Validate(args any) error {
	if args == nil {
		args = map[string]any{}
	}

	// Round trip through JSON so numbers reach the validator as json.Number.
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}

	if err := v.schema.Validate(instance); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(leafMessages(verr), "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// inputSchema returns the JSON input schema exactly as it is listed to clients.
func inputSchema(tool mcp.Tool) (json.RawMessage, error) {
	data, err := json.Marshal(tool)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool %s: %w", tool.Name, err)
	}

	var listed struct {
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	if err := json.Unmarshal(data, &listed); err != nil {
		return nil, fmt.Errorf("failed to decode tool %s: %w", tool.Name, err)
	}
	return listed.InputSchema, nil
}

// leafMessages flattens a validation error into its innermost causes,
// which name the offending location and keyword.
func leafMessages(err *jsonschema.ValidationError) []string {
	if len(err.Causes) == 0 {
		return []string{err.Error()}
	}
	var out []string
	for _, cause := range err.Causes {
		out = append(out, leafMessages(cause)...)
	}
	return out
}
