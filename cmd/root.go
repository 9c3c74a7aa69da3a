/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from flags.go to isolate cobra setup from flag
// definitions, the way the teacher splits root.go from flags.go.
//
// Design: tgrep has a single functional surface (search), so unlike
// the teacher's PersistentPreRunE dispatching on a subcommand map,
// validation here runs once in RunE against the parsed flags and
// produces options.Options directly.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jpl-au/tgrep/internal/config"
	"github.com/jpl-au/tgrep/internal/history"
	"github.com/jpl-au/tgrep/internal/mcp"
	"github.com/jpl-au/tgrep/internal/options"
	"github.com/jpl-au/tgrep/internal/repeatfile"
	"github.com/jpl-au/tgrep/internal/run"
	"github.com/jpl-au/tgrep/internal/term"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tgrep [regexp] [path]",
	Short: "Recursive textual search rendered as a directory tree",
	Long:  `tgrep searches files for one or more patterns and renders the hits as a directory tree, with an optional interactive selector for opening a match in an editor.`,
	Args:  cobra.MaximumNArgs(2),
	RunE:  runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	if output != "" && output != "json" {
		err := fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		return PrintJSONError(err)
	}
	if flagMenu {
		flagSelect = true
	}
	if flagSelect && flagMCP {
		err := fmt.Errorf("--select and --mcp are mutually exclusive")
		return PrintJSONError(err)
	}

	if flagCompletions != "" {
		return emitCompletions(cmd, flagCompletions)
	}

	if flagMCP {
		return mcp.Serve()
	}

	opts, err := buildOptions(args)
	if err != nil {
		return PrintJSONError(err)
	}

	ctx := context.Background()
	result, err := run.Search(ctx, opts)
	if err != nil {
		return PrintJSONError(fmt.Errorf("search: %w", err))
	}

	searcherTag := string(opts.Searcher)

	if opts.Select {
		t := term.New()
		if _, err := run.Select(t, result, opts); err != nil {
			return PrintJSONError(fmt.Errorf("select: %w", err))
		}
		run.RecordHistory(opts, result, searcherTag)
		return nil
	}

	if JSON() {
		if err := run.WriteResultJSON(Out(), result, opts); err != nil {
			return fmt.Errorf("write json result: %w", err)
		}
	} else {
		if err := run.WriteResult(Out(), result, opts); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	run.RecordHistory(opts, result, searcherTag)
	return nil
}

// buildOptions merges config-file defaults with the parsed flags and
// positional args into the immutable options.Options passed down to
// every subsystem, per spec.md section 2.
func buildOptions(args []string) (options.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return options.Options{}, fmt.Errorf("load config: %w", err)
	}

	patterns := append([]string(nil), flagRegexps...)
	root := flagPath
	if len(args) > 0 && len(patterns) == 0 {
		patterns = append(patterns, args[0])
		if len(args) > 1 {
			root = args[1]
		}
	} else if len(args) > 0 && root == "" {
		root = args[len(args)-1]
	}
	if root == "" {
		root = "."
	}
	if len(patterns) == 0 {
		return options.Options{}, fmt.Errorf("no pattern given")
	}

	globs, err := parseGlobs(flagGlobs)
	if err != nil {
		return options.Options{}, err
	}

	charStyle := options.CharStyle(flagCharStyle)
	if charStyle == "" {
		charStyle = options.CharStyle(cfg.CharStyle())
	}

	prefixLen := flagPrefixLen
	if prefixLen == 0 {
		prefixLen = cfg.PrefixLen()
	}
	lbEach := flagLBEach
	if lbEach == 0 {
		lbEach = cfg.LongBranchEach()
	}
	maxLength := flagMaxLength
	if maxLength == 0 && cfg.Display.MaxLength != nil {
		maxLength = *cfg.Display.MaxLength
	}

	searcher := options.SearcherKind(flagSearcher)
	if searcher != options.SearcherTgrep && searcher != options.SearcherRg {
		return options.Options{}, fmt.Errorf("unknown searcher: %s", flagSearcher)
	}

	var strategy *options.OpenStrategy
	if flagOpenLike != "" {
		s := options.OpenStrategy(flagOpenLike)
		strategy = &s
	}

	editor := flagEditor
	if editor == "" {
		editor = cfg.EditorCommand()
	}
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	repeatN, err := parseRepeatN(flagRepeat)
	if err != nil {
		return options.Options{}, err
	}

	opts := options.Options{
		Root:           root,
		Patterns:       patterns,
		Globs:          globs,
		MaxDepth:       flagMaxDepth,
		Threads:        flagThreads,
		Hidden:         flagHidden || (cfg.Search.Hidden != nil && *cfg.Search.Hidden),
		Links:          flagLinks || (cfg.Search.Links != nil && *cfg.Search.Links),
		NoIgnore:       flagNoIgnore,
		FilesOnly:      flagFiles,
		Count:          flagCount,
		LineNumber:     flagLineNum || (cfg.Display.LineNumber != nil && *cfg.Display.LineNumber),
		Trim:           flagTrim || (cfg.Display.Trim != nil && *cfg.Display.Trim),
		Select:         flagSelect,
		LongBranch:     flagLongBranch,
		LongBranchEach: lbEach,
		Overview:       flagOverview,
		PCRE2:          flagPCRE2,
		CharStyle:      charStyle,
		PrefixLen:      prefixLen,
		MaxLength:      maxLength,
		NoColor:        flagNoColor || cfg.NoColor(),
		NoBold:         flagNoBold || cfg.NoBold(),
		Searcher:       searcher,
		Editor:         editor,
		OpenStrategy:   strategy,
		SelectionFile:  flagSelFile,
		RepeatFile:     flagRepeatFile,
		Repeat:         flagRepeat != "",
		RepeatN:        repeatN,
		HistoryEnabled: flagHistory,
	}

	if opts.RepeatFile != "" {
		if opts.Repeat {
			repeated, readErr := repeatfile.Read(opts.RepeatFile)
			if readErr != nil {
				return options.Options{}, fmt.Errorf("read repeat-file: %w", readErr)
			}
			if len(repeated) > 0 {
				return buildOptionsFromArgs(repeated)
			}
		}
		if writeErr := repeatfile.Write(opts.RepeatFile, os.Args[1:]); writeErr != nil {
			return options.Options{}, fmt.Errorf("write repeat-file: %w", writeErr)
		}
	} else if opts.Repeat {
		r, found, histErr := history.Nth(opts.RepeatN)
		if histErr != nil {
			return options.Options{}, fmt.Errorf("repeat requested without repeat-file: %w", histErr)
		}
		if !found {
			return options.Options{}, fmt.Errorf("repeat requested without repeat-file")
		}
		opts.Root = r.Root
		opts.Patterns = r.Patterns
	}

	return opts, nil
}

// buildOptionsFromArgs re-parses a persisted argument vector (from a
// repeat-file) through the same flag set, for --repeat-file replay.
func buildOptionsFromArgs(argv []string) (options.Options, error) {
	replay := &cobra.Command{Use: rootCmd.Use, Args: cobra.MaximumNArgs(2)}
	replay.Flags().AddFlagSet(rootCmd.Flags())
	if err := replay.ParseFlags(argv); err != nil {
		return options.Options{}, fmt.Errorf("parse repeat-file arguments: %w", err)
	}
	return buildOptions(replay.Flags().Args())
}

// parseGlobs turns the repeatable --glob flag's gitignore-style strings
// into GlobOverride values, a leading "!" negating the pattern.
func parseGlobs(raw []string) ([]options.GlobOverride, error) {
	globs := make([]options.GlobOverride, 0, len(raw))
	for _, g := range raw {
		if g == "" {
			return nil, fmt.Errorf("empty --glob pattern")
		}
		negate := strings.HasPrefix(g, "!")
		pattern := strings.TrimPrefix(g, "!")
		globs = append(globs, options.GlobOverride{Pattern: pattern, Negate: negate})
	}
	return globs, nil
}

// parseRepeatN parses the optional N of --repeat (e.g. "--repeat=2"),
// defaulting to 1 (the most recent run) for a bare --repeat.
func parseRepeatN(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --repeat value: %s", raw)
	}
	return n, nil
}

// emitCompletions writes a shell completion script to stdout for the
// named shell, delegating to cobra's built-in generators (spec.md
// section 6 frames completions as an external collaborator).
func emitCompletions(cmd *cobra.Command, shell string) error {
	switch shell {
	case "bash":
		return cmd.Root().GenBashCompletion(Out())
	case "zsh":
		return cmd.Root().GenZshCompletion(Out())
	case "fish":
		return cmd.Root().GenFishCompletion(Out(), true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(Out())
	default:
		return fmt.Errorf("cannot generate completions: unknown shell %q", shell)
	}
}

// Execute runs the root command and handles process lifecycle. Opens
// the history database (warn-only, never fatal, mirroring the
// teacher's log.Open/log.Close discipline) and ensures it is closed on
// exit. Exit code 1 indicates error.
func Execute() {
	splitEnvDefaults()

	if err := history.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
	}
	defer history.Close()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// splitEnvDefaults splice-prepends TREEGREP_DEFAULT_OPTS (whitespace
// split) onto os.Args, per spec.md section 6's Environment clause.
func splitEnvDefaults() {
	raw := os.Getenv("TREEGREP_DEFAULT_OPTS")
	if raw == "" {
		return
	}
	defaults := strings.Fields(raw)
	if len(defaults) == 0 {
		return
	}
	args := make([]string, 0, len(os.Args)+len(defaults))
	args = append(args, os.Args[0])
	args = append(args, defaults...)
	args = append(args, os.Args[1:]...)
	os.Args = args
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
