package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"testgen/internal/trace"
)

// traceFlags is the parsed view of the --trace* persistent flags.
type traceFlags struct {
	output    string
	level     trace.Level
	mode      trace.StorageMode
	format    trace.Format
	ringSize  int
	heartbeat time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Flags()
	var tf traceFlags
	var err error
	if tf.output, err = flags.GetString("trace"); err != nil {
		return tf, err
	}
	if tf.ringSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return tf, err
	}
	if tf.heartbeat, err = flags.GetDuration("trace-heartbeat"); err != nil {
		return tf, err
	}
	level, okLevel := flags.Lookup("trace-level").Value.(*trace.Level)
	mode, okMode := flags.Lookup("trace-mode").Value.(*trace.StorageMode)
	format, okFormat := flags.Lookup("trace-format").Value.(*trace.Format)
	if !okLevel || !okMode || !okFormat {
		return tf, fmt.Errorf("trace flags have unexpected types")
	}
	tf.level, tf.mode, tf.format = *level, *mode, *format

	// --trace без уровня означает границы стадий
	if tf.level == trace.LevelOff && tf.output != "" {
		tf.level = trace.LevelPhase
	}
	return tf, nil
}

// setupTracing attaches a tracer to the command context and returns the
// cleanup that stops the heartbeat, dumps a ring-only trace to stderr, then
// flushes and closes the tracer.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	if tf.level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      tf.level,
		Mode:       tf.mode,
		Format:     tf.format,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	heartbeat := trace.StartHeartbeat(tracer, tf.heartbeat)

	errOut := cmd.ErrOrStderr()
	return func() {
		heartbeat.Stop()
		// в режиме ring события никуда не пишутся, выводим их в конце
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(errOut, max(tf.format, trace.FormatText)); err != nil {
				fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}, nil
}
