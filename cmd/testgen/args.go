package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// splitUnknownFlags drops options that neither the target command nor the
// root know about and returns them separately, so a typo costs a warning
// instead of the whole run. A value following an unknown option is kept as a
// positional argument since its arity cannot be known.
func splitUnknownFlags(root *cobra.Command, args []string) (known, unknown []string) {
	cmd := targetCommand(root, args)
	// cobra adds these lazily on Execute
	root.InitDefaultHelpFlag()
	root.InitDefaultVersionFlag()
	cmd.InitDefaultHelpFlag()
	lookup := func(name string) *pflag.Flag {
		if f := cmd.Flags().Lookup(name); f != nil {
			return f
		}
		return root.PersistentFlags().Lookup(name)
	}
	lookupShort := func(name string) *pflag.Flag {
		if f := cmd.Flags().ShorthandLookup(name); f != nil {
			return f
		}
		return root.PersistentFlags().ShorthandLookup(name)
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			known = append(known, args[i:]...)
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			known = append(known, arg)
			continue
		}

		var (
			flag     *pflag.Flag
			attached bool
		)
		if strings.HasPrefix(arg, "--") {
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag = lookup(name)
			attached = hasValue
		} else {
			flag = lookupShort(arg[1:2])
			attached = len(arg) > 2
		}
		if flag == nil {
			unknown = append(unknown, arg)
			continue
		}
		known = append(known, arg)
		takesValue := flag.NoOptDefVal == ""
		if takesValue && !attached && i+1 < len(args) {
			i++
			known = append(known, args[i])
		}
	}
	return known, unknown
}

// targetCommand returns the subcommand named by the first positional argument,
// or root.
func targetCommand(root *cobra.Command, args []string) *cobra.Command {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		for _, sub := range root.Commands() {
			if sub.Name() == arg || sub.HasAlias(arg) {
				return sub
			}
		}
		break
	}
	return root
}

// parseBound reads a stage bound; anything unparsable or non-positive is the
// default.
func parseBound(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
