// Package mcp provides the stdio MCP server exposing taco's project commands
// to coding agents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/taco/internal/buildinfo"
	"github.com/go-ports/taco/internal/service"
)

const commandsDescription = `List the commands visible from a directory: the project's own aliases merged with those inherited from ancestor directories and linked project groups. Call this before taco_add or taco_remove to see what is already defined.`

const addDescription = `Bind an alias name to a shell command line in the project at a directory. The command string is taken verbatim. If the name is already bound the call fails unless overwrite is true; the existing value is reported so the caller can decide.`

const removeDescription = `Remove an alias from the project registered exactly at a directory. Inherited aliases cannot be removed from a subdirectory; use the directory that defines them.`

// NewServer creates and registers all taco tools on a new MCP server.
// Separate from Serve so tests can obtain a configured server without
// committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("taco", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server, blocking until stdin closes.
// storePath is the root --config override and may be empty.
func Serve(_ context.Context, storePath string) error {
	svc, err := service.New(storePath)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	return mcpserver.ServeStdio(NewServer(svc))
}

func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("taco_commands",
		mcp.WithDescription(commandsDescription),
		mcp.WithString("dir",
			mcp.Description("Directory to resolve. Defaults to the current working directory."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleCommands(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("taco_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("name",
			mcp.Description("Alias name, unique within the project."),
			mcp.Required(),
		),
		mcp.WithString("command",
			mcp.Description("Shell command line to bind, verbatim."),
			mcp.Required(),
		),
		mcp.WithString("dir",
			mcp.Description("Project directory. Defaults to the current working directory."),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Replace an existing binding instead of failing."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("taco_remove",
		mcp.WithDescription(removeDescription),
		mcp.WithString("name",
			mcp.Description("Alias name to remove."),
			mcp.Required(),
		),
		mcp.WithString("dir",
			mcp.Description("Project directory. Defaults to the current working directory."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleRemove(ctx, svc, req)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleCommands(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := requestDir(req)

	commands, err := svc.Resolve(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"dir":      dir,
		"commands": commands,
	})
}

func handleAdd(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := requestDir(req)
	name := req.GetString("name", "")
	command := req.GetString("command", "")
	overwrite := req.GetBool("overwrite", false)

	res, err := svc.Add(dir, name, command, overwrite)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Conflict {
		return mcp.NewToolResultError(fmt.Sprintf(
			"alias %q already exists with value %q; pass overwrite=true to replace it", name, res.Existing)), nil
	}
	return jsonResult(map[string]any{
		"dir":     res.Dir,
		"name":    name,
		"command": command,
	})
}

func handleRemove(_ context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := requestDir(req)
	name := req.GetString("name", "")

	res, err := svc.Remove(dir, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch res.Outcome {
	case service.Removed:
		return jsonResult(map[string]any{"dir": res.Dir, "removed": name})
	case service.AliasMissing:
		return jsonResult(map[string]any{
			"dir":       res.Dir,
			"removed":   nil,
			"message":   fmt.Sprintf("alias %q does not exist here", name),
			"available": res.Remaining,
		})
	default:
		return jsonResult(map[string]any{
			"dir":     res.Dir,
			"removed": nil,
			"message": "no project is registered at this directory",
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func requestDir(req mcp.CallToolRequest) string {
	dir := req.GetString("dir", "")
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		}
	}
	return dir
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
