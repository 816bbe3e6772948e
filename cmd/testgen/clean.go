package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testgen/internal/manifest"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove test files written by previous runs",
		Long: `Remove every test file recorded in the output directory's manifest
(` + manifest.FileName + `), then the manifest itself. Files testgen did not
write are left alone.`,
		Args: cobra.NoArgs,
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	dir, err := cleanTarget(cmd)
	if err != nil {
		return err
	}
	removed, err := manifest.Clean(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("clean %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		for _, path := range removed {
			fmt.Fprintf(out, "  - %s\n", formatPathForOutput(dir, path))
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if len(removed) == 0 {
		color.New(color.FgYellow).Fprintf(out, "Nothing to clean in '%s'.\n", abs)
		return nil
	}
	color.New(color.FgGreen).Fprintf(out, "Removed %d test files from '%s'.\n", len(removed), abs)
	return nil
}

// cleanTarget picks the directory the same way generate does: -d, then the
// config file, then ".".
func cleanTarget(cmd *cobra.Command) (string, error) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		if out, _ := flags.GetString("output"); out != "" {
			return out, nil
		}
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return "", err
	}
	loaded, err := loadConfig(configPath, ".")
	if err != nil {
		return "", err
	}
	if dir := loaded.outputDir(); dir != "" {
		return dir, nil
	}
	return ".", nil
}

func formatPathForOutput(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
