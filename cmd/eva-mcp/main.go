// Package main runs the eva-mcp server over standard input/output.
// file: cmd/eva-mcp/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/evasystems/eva-mcp/internal/config"
	"github.com/evasystems/eva-mcp/internal/logging"
	"github.com/evasystems/eva-mcp/internal/mcp"
	"github.com/evasystems/eva-mcp/internal/sandbox"
	"github.com/evasystems/eva-mcp/internal/transport"
	"github.com/spf13/afero"
)

// Version information (populated at build time).
var (
	version = "dev"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "eva-mcp: %+v\n", err)
		os.Exit(1)
	}
}

// run wires the streams together: protocol on stdin/stdout, diagnostics on
// stderr, workspace bound by configuration. Returns nil on clean shutdown.
func run() error {
	configPath := flag.String("config", "", "Path to optional YAML configuration file.")
	debug := flag.Bool("debug", false, "Enable debug logging on stderr.")
	flag.Parse()

	logger := logging.NewSlogLogger(os.Stderr, *debug)
	logging.SetDefaultLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = version
	}

	sb, err := sandbox.New(afero.NewOsFs(), cfg.Workspace.Root, logger)
	if err != nil {
		return err
	}

	t := transport.New(os.Stdin, os.Stdout, logger)
	server, err := mcp.NewServer(cfg, t, sb, logger)
	if err != nil {
		return err
	}

	return server.Serve(context.Background())
}
