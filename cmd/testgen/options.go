package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"testgen/internal/generator"
	"testgen/internal/pipeline"
)

// generateOptions is the merged view of defaults, testgen.toml and flags.
type generateOptions struct {
	outputDir  string
	read       int
	generate   int
	write      int
	extension  string
	body       generator.BodyStrategy
	usings     []string
	indent     int
	configPath string
}

func defaultGenerateOptions() generateOptions {
	return generateOptions{
		outputDir: ".",
		read:      pipeline.DefaultBound,
		generate:  pipeline.DefaultBound,
		write:     pipeline.DefaultBound,
		extension: pipeline.DefaultExtension,
		body:      generator.BodyEmpty,
	}
}

func resolveGenerateOptions(cmd *cobra.Command) (generateOptions, error) {
	opts := defaultGenerateOptions()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return opts, err
	}
	loaded, err := loadConfig(configPath, ".")
	if err != nil {
		return opts, err
	}
	if loaded != nil {
		for _, key := range loaded.Unknown {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: unknown key %s ignored\n", loaded.Path, key)
		}
		if err := opts.applyFile(loaded); err != nil {
			return opts, err
		}
	}

	if flags.Changed("output") {
		out, _ := flags.GetString("output")
		if out = strings.TrimSpace(out); out != "" {
			opts.outputDir = out
		}
	}
	for _, b := range []struct {
		flag string
		dst  *int
	}{
		{"max-read", &opts.read},
		{"max-generate", &opts.generate},
		{"max-write", &opts.write},
	} {
		if !flags.Changed(b.flag) {
			continue
		}
		value, _ := flags.GetString(b.flag)
		*b.dst = parseBound(value, pipeline.DefaultBound)
	}
	if flags.Changed("body") {
		value, _ := flags.GetString("body")
		body, err := generator.ParseBodyStrategy(value)
		if err != nil {
			return opts, fmt.Errorf("--body: %w", err)
		}
		opts.body = body
	}
	return opts, nil
}

func (o *generateOptions) applyFile(loaded *loadedConfig) error {
	c := loaded.Config
	o.configPath = loaded.Path
	if dir := loaded.outputDir(); dir != "" {
		o.outputDir = dir
	}
	o.read = pipeline.Bound(c.Pipeline.Read)
	o.generate = pipeline.Bound(c.Pipeline.Generate)
	o.write = pipeline.Bound(c.Pipeline.Write)
	if ext := strings.TrimSpace(c.Pipeline.Extension); ext != "" {
		o.extension = ext
	}
	if c.Generator.Body != "" {
		body, err := generator.ParseBodyStrategy(c.Generator.Body)
		if err != nil {
			return fmt.Errorf("%s: [generator].body: %w", loaded.Path, err)
		}
		o.body = body
	}
	if c.Generator.Usings != nil {
		o.usings = c.Generator.Usings
	}
	o.indent = c.Generator.Indent
	return nil
}

func (o generateOptions) generatorConfig() generator.Config {
	return generator.Config{
		Body:           o.body,
		BaselineUsings: o.usings,
		IndentWidth:    o.indent,
	}
}
