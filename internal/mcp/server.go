// Package mcp implements the Model Context Protocol server, exposing
// tgrep's search engine to LLMs over stdio (spec.md section 6's
// external-interfaces list, SPEC_FULL.md section 10).
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio, registering tgrep_search and
// tgrep_find, and blocks until the client disconnects. Unlike the
// teacher's document-store server, tgrep has no store to open: the
// history database (if enabled) is opened separately by cmd.Execute.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{}

	s := server.NewMCPServer(
		"tgrep",
		Version,
		server.WithToolCapabilities(true),
	)

	registerTools(s, h)

	slog.Info("tgrep MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers for tgrep's search engine.
type handlers struct{}

// registerTools exposes tgrep's search and glob-listing operations as
// MCP tools for LLM invocation, per SPEC_FULL.md section 10.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("tgrep_search",
			mcp.WithDescription("Recursively search file contents for a pattern and return matches as a directory tree plus totals"),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regular expression to search for")),
			mcp.WithArray("paths", mcp.Description("Additional patterns; combined with pattern for a multi-pattern search")),
			mcp.WithString("path", mcp.Description("Root directory or file to search (default: current directory)")),
			mcp.WithArray("glob", mcp.Description("gitignore-style glob overrides, a leading '!' negates")),
			mcp.WithBoolean("hidden", mcp.Description("Include hidden files and directories")),
			mcp.WithBoolean("links", mcp.Description("Follow and display symbolic links")),
			mcp.WithNumber("max_depth", mcp.Description("Maximum directory depth (0 = unlimited)")),
			mcp.WithBoolean("files_only", mcp.Description("List matching files only, no line content")),
			mcp.WithBoolean("count", mcp.Description("Show match counts instead of lines")),
		),
		h.tgrepSearch,
	)

	s.AddTool(
		mcp.NewTool("tgrep_find",
			mcp.WithDescription("List filesystem paths matching a glob pattern, sorted by modification time (newest first)"),
			mcp.WithString("glob", mcp.Required(), mcp.Description("Glob pattern (supports *, **, brace expansion)")),
			mcp.WithString("path", mcp.Description("Root directory to search (default: current directory)")),
			mcp.WithString("type", mcp.Description("Restrict results to \"file\" or \"directory\"")),
		),
		h.tgrepFind,
	)
}
