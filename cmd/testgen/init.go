package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + configFileName,
		Long: `Write a default ` + configFileName + ` into dir (the current directory when
omitted). The directory is created if it does not exist.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing "+configFileName)
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	configPath := filepath.Join(target, configFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("already initialized: %s exists (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfigText()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configFileName, err)
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, target); err == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized testgen in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", configFileName)
	return nil
}
