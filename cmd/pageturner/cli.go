package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds shared context and writers for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `help:"Log level" default:"warn" enum:"debug,info,warn,error"`

	Build BuildCmd `cmd:"" help:"Crawl a novel and write it as an EPUB"`
	Probe ProbeCmd `cmd:"" help:"Fetch a single page and report what would be extracted"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Config string `arg:"" help:"Path to the novel configuration YAML"`
	Output string `short:"o" help:"Output EPUB path (default: derived from the novel title)"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	Config string `arg:"" help:"Path to the novel configuration YAML"`
	URL    string `arg:"" optional:"" help:"Page URL to probe (default: the configured start URL)"`
}
