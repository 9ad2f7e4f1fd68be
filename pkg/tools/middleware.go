package tools

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CallLogging returns a tool handler middleware that tags every call with a
// fresh id, stores the tagged logger in the context and logs the outcome.
func CallLogging(logger *log.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			callLogger := logger.With("tool", request.Params.Name, "call", uuid.NewString())
			ctx = log.WithContext(ctx, callLogger)

			start := time.Now()
			callLogger.Info("tool call started")

			result, err := next(ctx, request)

			elapsed := time.Since(start)
			switch {
			case err != nil:
				callLogger.Error("tool call failed", "elapsed", elapsed, "err", err)
			case result != nil && result.IsError:
				callLogger.Warn("tool call returned an error result", "elapsed", elapsed)
			default:
				callLogger.Info("tool call finished", "elapsed", elapsed)
			}

			return result, err
		}
	}
}

// Logger returns the call logger stored by CallLogging, or the default
// logger when the context carries none.
func Logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
