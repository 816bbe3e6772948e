package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"testgen/internal/prof"
)

// setupProfiling starts the profilers requested by the persistent profiling
// flags. The returned cleanup reports write errors on stderr.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Flags()
	var cfg prof.Config
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"cpu-profile", &cfg.CPUProfile},
		{"mem-profile", &cfg.MemProfile},
		{"runtime-trace", &cfg.RuntimeTrace},
	} {
		value, err := flags.GetString(f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", f.name, err)
		}
		*f.dst = value
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}
