package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Notifier sends progress notifications for one call.
type Notifier interface {
	SendNotificationToClient(ctx context.Context, method string, params map[string]any) error
}

// ProgressFunc reports that current of total steps are done.
type ProgressFunc func(current, total int, message string)

// Progress returns a ProgressFunc that forwards updates to the client, or
// nil when the request carries no progress token or no server is reachable.
func Progress(ctx context.Context, request mcp.CallToolRequest) ProgressFunc {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return nil
	}
	return progressTo(ctx, srv, request)
}

func progressTo(ctx context.Context, notifier Notifier, request mcp.CallToolRequest) ProgressFunc {
	if request.Params.Meta == nil || request.Params.Meta.ProgressToken == nil {
		return nil
	}
	token := request.Params.Meta.ProgressToken

	return func(current, total int, message string) {
		err := notifier.SendNotificationToClient(ctx, "notifications/progress", map[string]any{
			"progressToken": token,
			"progress":      current,
			"total":         total,
			"message":       message,
		})
		if err != nil {
			Logger(ctx).Debug("failed to send progress notification", "err", err)
		}
	}
}
