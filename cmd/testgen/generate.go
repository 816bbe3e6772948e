package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testgen/internal/manifest"
	"testgen/internal/pipeline"
)

var errNoSources = errors.New("at least one source file is required")

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errNoSources
	}
	opts, err := resolveGenerateOptions(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	noManifest, err := cmd.Flags().GetBool("no-manifest")
	if err != nil {
		return err
	}
	mode, ok := cmd.Flags().Lookup("ui").Value.(*uiMode)
	if !ok {
		return fmt.Errorf("--ui: unexpected flag type")
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", opts.outputDir, err)
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	out := cmd.OutOrStdout()
	if !quiet {
		printConfiguration(out, opts)
	}

	var rec *pipeline.Recorder
	if verbose {
		rec = &pipeline.Recorder{}
	}
	cfg := pipeline.Config{
		MaxRead:     opts.read,
		MaxGenerate: opts.generate,
		MaxWrite:    opts.write,
		OutputDir:   opts.outputDir,
		Extension:   opts.extension,
		Generator:   pipeline.NewGenerator(opts.generatorConfig()),
	}
	if rec != nil {
		cfg.Progress = rec
	}

	ctx := cmd.Context()
	var res pipeline.Result
	if mode.progressView(out, quiet) {
		res, err = runWithUI(ctx, out, "testgen", args, cfg)
	} else {
		res, err = pipeline.New(cfg).Process(ctx, args)
	}
	if err != nil {
		return err
	}

	if res.GeneratedAny() && !noManifest {
		if _, err := manifest.Record(ctx, opts.outputDir, res.Written); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not update %s: %v\n", manifest.FileName, err)
		}
	}
	if rec != nil {
		printFailures(cmd.ErrOrStderr(), rec.Failures(""))
	}
	printSummary(out, res, opts.outputDir)
	if showTimings && res.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
	}
	return nil
}

func printConfiguration(out io.Writer, opts generateOptions) {
	fmt.Fprintf(out, "pipeline configuration: read=%d generate=%d write=%d output=%s body=%s\n",
		opts.read, opts.generate, opts.write, opts.outputDir, opts.body)
	if opts.configPath != "" {
		fmt.Fprintf(out, "config: %s\n", opts.configPath)
	}
}

// printFailures lists error events ordered by source path, then by stage.
func printFailures(w io.Writer, failures []pipeline.Event) {
	stageOrder := func(st pipeline.Stage) int { return slices.Index(pipeline.Stages, st) }
	slices.SortStableFunc(failures, func(a, b pipeline.Event) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return stageOrder(a.Stage) - stageOrder(b.Stage)
	})
	for _, evt := range failures {
		fmt.Fprintf(w, "skipped %s: %s: %v\n", evt.Source, evt.Stage, evt.Err)
	}
}

func printSummary(out io.Writer, res pipeline.Result, outputDir string) {
	if !res.GeneratedAny() {
		color.New(color.FgYellow).Fprintln(out, "No tests were generated.")
		return
	}
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		dir = outputDir
	}
	color.New(color.FgGreen).Fprintf(out, "Tests generated in '%s'.\n", dir)
}
