// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command selection and shared command-line options.

package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the command to execute.
type Command int

const (
	CmdInstall Command = iota
	CmdList
	CmdUninstall
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdInstall:   "install",
	CmdList:      "list",
	CmdUninstall: "uninstall",
	CmdVersion:   "version",
	CmdHelp:      "help",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds the parsed command line.
type Args struct {
	Command Command

	// Global
	ConfigPath string
	LogLevel   string
	NoRegistry bool
	TUI        bool

	// install
	Name        *string
	File        string
	Description *string
	Icon        *string
	Target      *string
	Category    *string
	OnConflict  string
	DryRun      bool

	// install + uninstall
	Yes bool

	// uninstall
	KeepBundle bool

	// list
	JSON bool
}

// Parse selects the command and reads its flags. Without a command word the
// arguments are install flags.
func Parse(argv []string) (Args, error) {
	p, err := NewArgParser(argv)
	if err != nil {
		return Args{}, err
	}

	args := Args{Command: CmdInstall}

	if p.PositionalCount() > 0 {
		word := strings.ToLower(p.Positional(0))
		switch word {
		case "install":
			args.Command = CmdInstall
		case "list", "ls":
			args.Command = CmdList
		case "uninstall", "remove", "rm":
			args.Command = CmdUninstall
		case "version":
			args.Command = CmdVersion
		case "help":
			args.Command = CmdHelp
		default:
			return Args{}, usageErrorf("unknown command: %s", p.Positional(0))
		}
		if p.PositionalCount() > 1 {
			return Args{}, usageErrorf("unexpected argument: %s", p.Positional(1))
		}
	}

	if p.BoolFlag("help") {
		args.Command = CmdHelp
	}
	if p.BoolFlag("version") {
		args.Command = CmdVersion
	}
	if args.Command == CmdHelp || args.Command == CmdVersion {
		return args, nil
	}

	if err := p.checkAllowed(args.Command); err != nil {
		return Args{}, err
	}

	args.ConfigPath = p.Flag("config")
	args.LogLevel = p.Flag("log-level")
	args.NoRegistry = p.BoolFlag("no-registry")
	args.TUI = p.BoolFlag("tui")
	args.Yes = p.BoolFlag("yes")

	switch args.Command {
	case CmdInstall:
		args.Name = p.OptionalFlag("name")
		args.Description = p.OptionalFlag("description")
		args.Icon = p.OptionalFlag("icon")
		args.Target = p.OptionalFlag("target")
		args.Category = p.OptionalFlag("category")
		args.OnConflict = p.Flag("on-conflict")
		args.DryRun = p.BoolFlag("dry-run")

		file, ok := p.Lookup("file")
		if !ok || file == "" {
			return Args{}, usageErrorf("missing required flag --file")
		}
		args.File = file

	case CmdUninstall:
		args.Name = p.OptionalFlag("name")
		args.KeepBundle = p.BoolFlag("keep-bundle")
		if args.Name == nil || *args.Name == "" {
			return Args{}, usageErrorf("missing required flag --name")
		}

	case CmdList:
		args.JSON = p.BoolFlag("json")
	}

	return args, nil
}

// VersionString returns the one-line version banner.
func VersionString() string {
	return fmt.Sprintf("appimage-installer %s (commit %s, built %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
