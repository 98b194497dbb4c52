package service

import (
	"bytes"
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/herewego/pkg/digest"
)

// EntityDigestTool is the MCP tool name under which the pipeline is served.
const EntityDigestTool = "entity_digest"

/*
DigestTool serves the query pipeline as an MCP tool.
*/
type DigestTool struct {
	digester Digester
}

func NewDigestTool(digester Digester) *DigestTool {
	return &DigestTool{digester: digester}
}

func (tool *DigestTool) Definition() mcp.Tool {
	return mcp.NewTool(
		EntityDigestTool,
		mcp.WithDescription("Summarizes the latest news about a football figure and returns a dated timeline of events."),
		mcp.WithString("entity",
			mcp.Description("Name of the player, manager or club to look up"),
			mcp.Required(),
		),
	)
}

func (tool *DigestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entity, err := req.RequireString("entity")

	if err != nil || strings.TrimSpace(entity) == "" {
		return mcp.NewToolResultError(NoEntityProvided), nil
	}

	result, err := tool.digester.Run(ctx, strings.TrimSpace(entity))

	if err != nil {
		log.Error("digest tool failed", "entity", entity, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer

	if err := digest.Encode(&buf, result); err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(strings.TrimSpace(buf.String())), nil
}

func NewMCPServer(tool *DigestTool, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		"herewego",
		version,
		server.WithLogging(),
		server.WithToolCapabilities(true),
	)

	srv.AddTool(tool.Definition(), tool.Handle)

	return srv
}

// ServeStdio blocks serving the MCP protocol over stdin and stdout.
func ServeStdio(tool *DigestTool, version string) error {
	return server.ServeStdio(NewMCPServer(tool, version))
}
