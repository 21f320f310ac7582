// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// run.go - Command dispatch.

package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ziggornif/appimage-installer/internal/config"
	"github.com/ziggornif/appimage-installer/internal/logging"
	"github.com/ziggornif/appimage-installer/internal/prompt"
	"github.com/ziggornif/appimage-installer/internal/registry"
)

// Env is the process environment a command runs in.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Home is the user home directory, resolved once.
	Home string

	// Interactive is set when stdin is a terminal: prompts use line
	// editing or the TUI instead of plain line reads.
	Interactive bool

	// Terminal is set when stdout is a terminal: progress bar, highlighted
	// preview and rendered help.
	Terminal bool
}

// DefaultEnv returns the environment of the current process.
func DefaultEnv() Env {
	return Env{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Home:        config.HomeDir(),
		Interactive: IsTTY(),
		Terminal:    IsStdoutTTY(),
	}
}

// Main runs argv and returns the process exit code. Errors not yet shown
// to the user are printed on stderr.
func Main(ctx context.Context, env Env, argv []string) int {
	err := Run(ctx, env, argv)
	DisplayError(env.Stderr, err)
	return GetExitCode(err)
}

// Run parses argv and executes the selected command.
func Run(ctx context.Context, env Env, argv []string) error {
	args, err := Parse(argv)
	if err != nil {
		return err
	}

	switch args.Command {
	case CmdVersion:
		_, err := io.WriteString(env.Stdout, VersionString()+"\n")
		return err
	case CmdHelp:
		return printHelp(env)
	}

	cfg, err := config.Load(env.Home, args.ConfigPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, args); err != nil {
		return err
	}

	a := &app{
		env:  env,
		args: args,
		cfg:  cfg,
		log: logging.NewLogger(logging.Config{
			Level:   cfg.Log.Level,
			LogFile: cfg.Log.File,
			NoColor: cfg.Log.NoColor || !ColorsEnabled(),
			Out:     env.Stderr,
		}),
	}
	a.log.Debug().
		Str("command", args.Command.String()).
		Str("home", cfg.Home).
		Msg("starting")

	switch args.Command {
	case CmdList:
		return a.list(ctx)
	case CmdUninstall:
		return a.uninstall(ctx)
	default:
		return a.install(ctx)
	}
}

// applyFlags layers command-line values over the loaded configuration.
func applyFlags(cfg *config.Config, args Args) error {
	if args.LogLevel != "" {
		cfg.Log.Level = args.LogLevel
	}
	if args.OnConflict != "" {
		cfg.Descriptor.OnConflict = args.OnConflict
	}
	if args.NoRegistry {
		cfg.Install.Registry = false
	}
	if args.TUI {
		cfg.Prompt.Mode = "tui"
	}
	return cfg.Validate()
}

// app carries what every command needs.
type app struct {
	env  Env
	args Args
	cfg  *config.Config
	log  *zerolog.Logger
}

// newPrompter picks the line reader for the current terminal.
func (a *app) newPrompter() (*prompt.Prompter, error) {
	policy, err := prompt.ParsePolicy(a.cfg.Prompt.Confirm)
	if err != nil {
		return nil, err
	}

	var reader prompt.LineReader
	switch {
	case a.env.Interactive && strings.EqualFold(a.cfg.Prompt.Mode, "tui"):
		reader = prompt.NewTUI(a.env.Stdin, a.env.Stdout)
	case a.env.Interactive:
		reader = prompt.NewLiner(a.env.Stdout)
	default:
		reader = prompt.NewScanner(a.env.Stdin, a.env.Stdout)
	}
	return prompt.New(reader, a.cfg.Prompt.MaxAttempts, policy), nil
}

// openRegistry opens the installation registry.
func (a *app) openRegistry(ctx context.Context) (*registry.Registry, error) {
	return registry.Open(ctx, a.cfg.Paths.Registry)
}
