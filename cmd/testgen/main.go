// Package main implements the testgen CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"testgen/internal/manifest"
	"testgen/internal/trace"
	"testgen/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	root.SetOut(stdout)
	root.SetErr(stderr)

	known, unknown := splitUnknownFlags(root, args)
	for _, opt := range unknown {
		fmt.Fprintf(stderr, "warning: unknown option %s ignored\n", opt)
	}
	root.SetArgs(known)

	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "testgen <file> [<file> ...]",
		Short: "Generate xUnit test skeletons from C# sources",
		Long: `testgen reads C# source files and writes one xUnit test class per public
class, with a stub test for every public method. Files are read, generated and
written by three bounded worker pools; a file that cannot be read or parsed is
skipped without stopping the others.`,
		Args:              cobra.ArbitraryArgs,
		Version:           version.Current().Version,
		SilenceUsage:      true,
		PersistentPreRunE: applyColorMode,
		RunE:              runGenerate,
	}

	flags := root.Flags()
	// границы стадий строковые: нечисловое значение молча превращается в 5
	flags.StringP("max-read", "r", "", "concurrent file reads (default 5)")
	flags.StringP("max-generate", "p", "", "concurrent generator calls (default 5)")
	flags.StringP("max-write", "w", "", "concurrent file writes (default 5)")
	flags.String("body", "", "test body: empty|template (default empty)")
	flags.Var(newUIMode(), "ui", "per-file progress view")
	flags.BoolP("verbose", "v", false, "list skipped files with the stage and reason")
	flags.Bool("no-manifest", false, "do not record generated files in "+manifest.FileName)

	pflags := root.PersistentFlags()
	pflags.StringP("output", "d", "", "output directory (default \".\")")
	pflags.String("config", "", "path to "+configFileName+" (default: nearest one above the working directory)")
	pflags.String("color", "auto", "colorize output (auto|on|off)")
	pflags.BoolP("quiet", "q", false, "suppress non-essential output")
	pflags.Bool("timings", false, "show per-stage timings")
	pflags.String("trace", "", "trace output file (- for stderr)")
	traceLevel, traceMode, traceFormat := trace.LevelOff, trace.ModeStream, trace.FormatAuto
	pflags.Var(&traceLevel, "trace-level", "trace level")
	pflags.Var(&traceMode, "trace-mode", "trace storage")
	pflags.Var(&traceFormat, "trace-format", "trace format; auto picks ndjson for .ndjson/.jsonl files")
	pflags.Int("trace-ring-size", 4096, "ring buffer size for --trace-mode=ring|both")
	pflags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
	pflags.String("cpu-profile", "", "write a CPU profile to this file")
	pflags.String("mem-profile", "", "write a heap profile to this file")
	pflags.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newCleanCmd(), newInitCmd(), newVersionCmd())
	return root
}

func applyColorMode(cmd *cobra.Command, _ []string) error {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
