/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines the CLI flags for the default search command and
// accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command
// logic, the way the teacher splits flags.go from root.go.
//
// Design: Flags are defined as package-level variables and bound to the
// root command. The JSON() helper simplifies output format detection
// and PrintJSONError mirrors the teacher's single error-envelope
// convention for --output=json.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output string

	flagRegexps   []string
	flagPath      string
	flagCount     bool
	flagHidden    bool
	flagLineNum   bool
	flagSelect    bool
	flagMenu      bool
	flagFiles     bool
	flagLinks     bool
	flagNoIgnore  bool
	flagTrim      bool
	flagPCRE2     bool
	flagOverview  bool
	flagNoColor   bool
	flagNoBold    bool
	flagGlobs     []string
	flagMaxDepth  int
	flagThreads   int
	flagMaxLength int
	flagPrefixLen int
	flagLBEach    int
	flagLongBranch bool
	flagSearcher  string
	flagCharStyle string
	flagEditor    string
	flagOpenLike  string
	flagSelFile   string
	flagRepeatFile string
	flagRepeat    string
	flagCompletions string
	flagMCP       bool
	flagHistory   bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing Cobra's own error
// line), or the original error otherwise.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Output format: json")
	flags.StringSliceVarP(&flagRegexps, "regexp", "e", nil, "Pattern to search for (repeatable)")
	flags.StringVarP(&flagPath, "path", "p", "", "Root directory or file to search")
	flags.BoolVarP(&flagCount, "count", "c", false, "Accepted but not applied; output is the same as without it")
	flags.BoolVarP(&flagHidden, "hidden", ".", false, "Include hidden files and directories")
	flags.BoolVarP(&flagLineNum, "line-number", "n", false, "Show 1-based line numbers")
	flags.BoolVarP(&flagSelect, "select", "s", false, "Open the interactive selector")
	flags.BoolVar(&flagMenu, "menu", false, "Alias for --select")
	flags.BoolVarP(&flagFiles, "files", "f", false, "List matching files only, no line content")
	flags.BoolVar(&flagLinks, "links", false, "Follow and display symbolic links")
	flags.BoolVar(&flagNoIgnore, "no-ignore", false, "Do not respect .gitignore files")
	flags.BoolVar(&flagTrim, "trim", false, "Trim leading whitespace from displayed lines")
	flags.BoolVar(&flagPCRE2, "pcre2", false, "Use PCRE2 (passed to rg; the built-in searcher always uses RE2)")
	flags.BoolVar(&flagOverview, "overview", false, "Show a totals line after the tree")
	flags.BoolVar(&flagNoColor, "no-color", false, "Disable ANSI color output")
	flags.BoolVar(&flagNoBold, "no-bold", false, "Disable bold styling")
	flags.StringSliceVar(&flagGlobs, "glob", nil, "gitignore-style glob override (repeatable, ! negates)")
	flags.IntVar(&flagMaxDepth, "max-depth", 0, "Maximum directory depth (0 = unlimited)")
	flags.IntVar(&flagThreads, "threads", 0, "Worker goroutines (0 = auto)")
	flags.IntVar(&flagMaxLength, "max-length", 0, "Maximum displayed line length (0 = unlimited)")
	flags.IntVar(&flagPrefixLen, "prefix-len", 0, "Path-segment trim length (default 3)")
	flags.IntVar(&flagLBEach, "long-branch-each", 0, "Long-branch chunk size (default 5)")
	flags.BoolVar(&flagLongBranch, "long-branch", false, "Pack sibling files onto one line (requires --files)")
	flags.StringVar(&flagSearcher, "searcher", "tgrep", "Search engine: tgrep or rg")
	flags.StringVar(&flagCharStyle, "char-style", "", "Tree glyph set: ascii/single/double/heavy/rounded/none")
	flags.StringVar(&flagEditor, "editor", "", "Editor command used to open a selection")
	flags.StringVar(&flagOpenLike, "open-like", "", "Editor open strategy: vi/hx/code/jed/default")
	flags.StringVar(&flagSelFile, "selection-file", "", "Write the selected path/line here instead of opening an editor")
	flags.StringVar(&flagRepeatFile, "repeat-file", "", "Persist this invocation's arguments for --repeat")
	flags.StringVar(&flagRepeat, "repeat", "", "Replay a past invocation (optionally N, most-recent-first)")
	flags.Lookup("repeat").NoOptDefVal = "1"
	flags.StringVar(&flagCompletions, "completions", "", "Emit shell completions for bash/zsh/fish/powershell")
	flags.BoolVar(&flagMCP, "mcp", false, "Run as an MCP server over stdio instead of searching")
	flags.BoolVar(&flagHistory, "history", false, "Record this run in the audit history log")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("searcher", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"tgrep", "rg"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("char-style", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ascii", "single", "double", "heavy", "rounded", "none"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("open-like", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"vi", "hx", "code", "jed", "default"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("completions", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"bash", "zsh", "fish", "powershell"}, cobra.ShellCompDirectiveNoFileComp
	})
}
