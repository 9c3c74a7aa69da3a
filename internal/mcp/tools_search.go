// tools_search.go implements MCP tools for tgrep's search engine.
//
// Separated from server.go to isolate tool-handler bodies from
// registration, the way the teacher splits tools_documents.go from
// server.go.
//
// Design: tgrep_search delegates to internal/run so the MCP surface
// and the CLI share the exact same search-then-render pipeline
// (SPEC_FULL.md section 8's cross-surface testable property).
// tgrep_find is glob-only, grounded on the retrieved mjkoo-boris
// example's find tool: a manual directory walk skipping .git, sorted
// by modification time, newest first.

package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/run"
	"github.com/mark3labs/mcp-go/mcp"
)

// tgrepSearch handles tgrep_search tool calls: it runs the same
// §4.1-4.3 pipeline the CLI runs and returns the rendered tree plus a
// totals summary.
func (h *handlers) tgrepSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	patterns := append([]string{pattern}, getStringSlice(req, "paths")...)
	globs := parseGlobStrings(getStringSlice(req, "glob"))

	root := getString(req, "path", ".")

	opts := options.Options{
		Root:      root,
		Patterns:  patterns,
		Globs:     globs,
		Hidden:    getBool(req, "hidden", false),
		Links:     getBool(req, "links", false),
		MaxDepth:  getInt(req, "max_depth", 0),
		FilesOnly: getBool(req, "files_only", false),
		Count:     getBool(req, "count", false),
		CharStyle: options.CharStyleAscii,
		NoColor:   true,
		Searcher:  options.SearcherTgrep,
	}

	result, err := run.Search(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := run.WriteResult(&buf, result, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	run.RecordHistory(opts, result, "mcp")

	summary := fmt.Sprintf("directories=%d files=%d lines=%d matches=%d",
		result.Totals.Directories, result.Totals.Files, result.Totals.Lines, result.Totals.Matches)

	return mcp.NewToolResultText(buf.String() + "\n" + summary), nil
}

// tgrepFind handles tgrep_find tool calls: a glob-only path listing,
// no regex, no line content.
func (h *handlers) tgrepFind(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("glob")
	if err != nil {
		return mcp.NewToolResultError("glob is required"), nil //nolint:nilerr
	}
	if !doublestar.ValidatePattern(pattern) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid glob pattern: %s", pattern)), nil
	}

	filterType := getString(req, "type", "")
	switch filterType {
	case "", "file", "directory":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid type %q; valid values: file, directory", filterType)), nil
	}

	root := getString(req, "path", ".")
	paths, err := findPaths(root, pattern, filterType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(paths)
}

type findEntry struct {
	Path    string `json:"path"`
	ModTime int64  `json:"mod_time"`
}

// findPaths walks root, matching entries against pattern with
// doublestar and the optional type filter, skipping .git directories.
// Results are sorted by modification time, newest first.
func findPaths(root, pattern, filterType string) ([]string, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var found []findEntry
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr
		}
		if d.Name() == ".git" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		if filterType == "file" && d.IsDir() {
			return nil
		}
		if filterType == "directory" && !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr
		}
		if m, _ := doublestar.Match(pattern, rel); !m {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr
		}
		found = append(found, findEntry{Path: rel, ModTime: fi.ModTime().Unix()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].ModTime > found[j].ModTime })

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.Path
	}
	return paths, nil
}

// parseGlobStrings turns raw "--glob"-style strings into GlobOverride
// values, mirroring cmd's flag parser for the MCP surface.
func parseGlobStrings(raw []string) []options.GlobOverride {
	globs := make([]options.GlobOverride, 0, len(raw))
	for _, g := range raw {
		negate := len(g) > 0 && g[0] == '!'
		pattern := g
		if negate {
			pattern = g[1:]
		}
		globs = append(globs, options.GlobOverride{Pattern: pattern, Negate: negate})
	}
	return globs
}
