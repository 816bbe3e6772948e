package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// uiMode is the value of --ui. It implements pflag.Value, so a bad value is
// rejected while flags are parsed, before any file is touched.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func newUIMode() *uiMode {
	m := uiModeAuto
	return &m
}

func (m *uiMode) String() string { return string(*m) }

func (m *uiMode) Type() string { return "auto|on|off" }

func (m *uiMode) Set(value string) error {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		*m = uiModeAuto
	case "on":
		*m = uiModeOn
	case "off":
		*m = uiModeOff
	default:
		return fmt.Errorf("invalid value %q (expected auto|on|off)", value)
	}
	return nil
}

// progressView reports whether the live per-file view replaces the plain
// summary. Quiet runs never get it; in auto mode out must be a terminal.
func (m uiMode) progressView(out io.Writer, quiet bool) bool {
	if quiet {
		return false
	}
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}
