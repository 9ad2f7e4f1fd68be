// Package tools provides the building blocks shared by the MCP tools: the
// Tool interface, argument validation and result envelopes.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Standard errors for consistent error handling
var (
	ErrInvalidParams = errors.New("invalid parameters")
	ErrInternalError = errors.New("internal server error")
)

// Tool defines the interface for all tools in the system
type Tool interface {
	// Handle returns the underlying MCP tool
	Handle() mcp.Tool

	// Handler processes tool requests and returns responses
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

	// Name returns the name of the tool
	Name() string
}

// BaseTool provides common functionality for all tools
type BaseTool struct {
	handle    mcp.Tool
	validator *ArgumentValidator
}

// NewBaseTool creates a BaseTool for handle and compiles its input schema.
func NewBaseTool(handle mcp.Tool) (*BaseTool, error) {
	validator, err := NewArgumentValidator(handle)
	if err != nil {
		return nil, err
	}

	return &BaseTool{
		handle:    handle,
		validator: validator,
	}, nil
}

// Handle returns the MCP Tool definition
func (b *BaseTool) Handle() mcp.Tool {
	return b.handle
}

// Name returns the name of the tool
func (b *BaseTool) Name() string {
	return b.handle.Name
}

// Bind validates the request arguments against the input schema and then
// decodes them into target.
func (b *BaseTool) Bind(request mcp.CallToolRequest, target any) error {
	if err := b.validator.Validate(request.GetRawArguments()); err != nil {
		return err
	}
	if err := request.BindArguments(target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// NewErrorResult creates an error result whose text is the JSON encoding of
// envelope. The envelope is also attached as structured content.
func NewErrorResult(envelope any) *mcp.CallToolResult {
	result := NewJSONResult(envelope)
	result.IsError = true
	return result
}

// NewJSONResult creates a result carrying v both as structured content and
// as indented JSON text.
func NewJSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v: %v", ErrInternalError, err))
	}
	return mcp.NewToolResultStructured(v, string(data))
}
