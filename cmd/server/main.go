// Command server is the main entry point for the vocab MCP server
package main

import (
	"context"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/susan8213/vocab-mcp/pkg/config"
	"github.com/susan8213/vocab-mcp/pkg/logging"
	"github.com/susan8213/vocab-mcp/pkg/provider"
	"github.com/susan8213/vocab-mcp/pkg/tools"
	vocabtools "github.com/susan8213/vocab-mcp/pkg/tools/vocab"
	"github.com/susan8213/vocab-mcp/pkg/vocab"
)

const (
	serverName    = "vocab-mcp"
	serverVersion = "1.0.0"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	ctx := context.Background()
	client, err := provider.New(ctx, cfg.Provider, cfg.APIKey())
	if err != nil {
		logger.Fatal("failed to create model client", "provider", cfg.Provider, "err", err)
	}
	client = provider.WithLogging(client, logger.WithPrefix(serverName+"/model"))

	expander := vocab.NewExpander(client, vocab.ExpanderConfig{
		Model:     cfg.Expand.Model,
		MaxTokens: cfg.Expand.MaxTokens,
		Delay:     cfg.Expand.Delay,
		Logger:    logger,
	})
	extractor := vocab.NewExtractor(client, vocab.ExtractorConfig{
		Model:     cfg.Extract.Model,
		MaxTokens: cfg.Extract.MaxTokens,
		Logger:    logger,
	})

	mcpServer := NewServer(logger)
	registry := NewToolRegistry(mcpServer)

	vocabTools, err := vocabtools.RegisterVocabTools(expander, extractor)
	if err != nil {
		logger.Fatal("failed to build tools", "err", err)
	}
	for _, tool := range vocabTools {
		registry.RegisterTool(tool)
	}

	logger.Info("server started, waiting for requests",
		"provider", cfg.Provider,
		"expand_model", cfg.Expand.Model,
		"extract_model", cfg.Extract.Model,
		"tools", registry.Names(),
	)

	if err := server.ServeStdio(mcpServer, server.WithErrorLogger(logger.StandardLog(log.StandardLogOptions{
		ForceLevel: log.ErrorLevel,
	}))); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

// NewServer creates the MCP server with tool support and per-call logging.
func NewServer(logger *log.Logger) *server.MCPServer {
	return server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithToolHandlerMiddleware(tools.CallLogging(logger)),
		server.WithRecovery(),
		server.WithLogging(),
	)
}

// ToolRegistry manages tool registration and lifecycle
type ToolRegistry struct {
	server *server.MCPServer
	tools  map[string]tools.Tool
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(mcpServer *server.MCPServer) *ToolRegistry {
	return &ToolRegistry{
		server: mcpServer,
		tools:  make(map[string]tools.Tool),
	}
}

// RegisterTool registers a tool with the server
func (r *ToolRegistry) RegisterTool(tool tools.Tool) {
	r.tools[tool.Name()] = tool
	r.server.AddTool(tool.Handle(), tool.Handler)
}

// Names returns the names of the registered tools.
func (r *ToolRegistry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
