// Command dj runs a Dictionary Juggler script against an input dictionary
// (spec.md §6 "CLI (contract)"). Grounded on the teacher's
// (github.com/funvibe/funxy) pkg/cli entry point and on
// kris-hansen/comanda's cobra root-command shape: a single root command
// with persistent flags, no subcommands, since DJ's entire CLI surface is
// "run a script" (spec.md's argument-parsing internals are explicitly out
// of scope; only the flag list of §6 is specified).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/dj"
)

var (
	flagScript   string
	flagInline   string
	flagDict     string
	flagDedup    bool
	flagVerbose  bool
	flagTiming   bool
	flagProgress bool
	flagPace     int
)

var rootCmd = &cobra.Command{
	Use:   "dj [script]",
	Short: "Dictionary Juggler: analyse, transform, filter, and generate dictionary entries",
	Long: `dj interprets a small operations language that takes one dictionary
entry at a time and runs it through a chain of transforming, extracting,
and filtering operations, emitting the results as it goes.

The script source comes from (in order of precedence): the positional
argument, -o/--script, or -e/--inline. The input dictionary comes from
-d/--dict, or standard input if omitted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().StringVarP(&flagScript, "script", "o", "", "script file to run (alternative to the positional argument)")
	rootCmd.Flags().StringVarP(&flagInline, "inline", "e", "", "inline script source (alternative to a file)")
	rootCmd.Flags().StringVarP(&flagDict, "dict", "d", "", "input dictionary file (default: standard input)")
	rootCmd.Flags().BoolVarP(&flagDedup, "dedup", "u", false, "deduplicate all emissions globally (requires enough memory)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics")
	rootCmd.Flags().BoolVarP(&flagTiming, "timing", "t", false, "report timing diagnostics")
	rootCmd.Flags().BoolVar(&flagProgress, "progress", false, "render a progress line on stderr (non-authoritative, best-effort)")
	rootCmd.Flags().IntVar(&flagPace, "pace", 0, "entries between progress redraws (0 = library default)")
}

// Execute runs the root command and terminates the process with an exit
// code per spec.md §7: 0 on success, a distinct non-zero code per
// diagnostic kind otherwise.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	source, filePath, err := resolveScript(args)
	if err != nil {
		return err
	}

	input, closeInput, err := resolveInput()
	if err != nil {
		return err
	}
	defer closeInput()

	result := dj.Run(dj.Options{
		Source:   source,
		FilePath: filePath,
		Input:    input,
		Report:   os.Stdout,
		Stderr:   os.Stderr,
		Dedup:    flagDedup,
		Verbose:  flagVerbose,
		Timing:   flagTiming,
		Progress: flagProgress,
		Pace:     flagPace,
	})
	if result != nil {
		fmt.Fprintln(os.Stderr, result.Error())
		os.Exit(exitCode(result.Kind))
	}
	return nil
}

func resolveScript(args []string) (source, filePath string, err error) {
	switch {
	case len(args) == 1:
		filePath = args[0]
	case flagScript != "":
		filePath = flagScript
	case flagInline != "":
		return flagInline, "", nil
	default:
		return "", "", fmt.Errorf("no script given: pass a file, -o/--script, or -e/--inline")
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", "", fmt.Errorf("reading script %s: %w", filePath, err)
	}
	return string(data), filePath, nil
}

func resolveInput() (*os.File, func(), error) {
	if flagDict == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(flagDict)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input dictionary %s: %w", flagDict, err)
	}
	return f, func() { f.Close() }, nil
}

// exitCode maps a diagnostic Kind to a distinct process exit status (spec
// §6 "non-zero on parse error (distinct code) or I/O error").
func exitCode(k diagnostics.Kind) int {
	switch k {
	case diagnostics.KindParse:
		return 2
	case diagnostics.KindResolver:
		return 3
	case diagnostics.KindConfig:
		return 4
	case diagnostics.KindIO:
		return 5
	default:
		return 6
	}
}
