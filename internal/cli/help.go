// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// help.go - Usage text.

package cli

import (
	"io"

	"github.com/charmbracelet/glamour"
)

const usageText = `# appimage-installer

Install an AppImage as a desktop application: the bundle is copied to a
target directory, its icon to the icon theme directory, and a launcher
(.desktop file) is written so the desktop shell can start it.

## Usage

    appimage-installer --file <path> [flags]     install (default command)
    appimage-installer list [--json]             installed applications
    appimage-installer uninstall --name <app>    remove an installation
    appimage-installer version
    appimage-installer help

## Install flags

    -f, --file <path>          AppImage to install (required)
    -n, --name <name>          application name
    -d, --description <text>   launcher comment
    -i, --icon <path>          icon file
    -t, --target <dir>         install directory (default ~/Apps)
    -c, --category <name>      launcher category, e.g. Graphics
    -y, --yes                  replace an installed bundle without asking
        --on-conflict <mode>   existing launcher: fail, overwrite or prompt
        --dry-run              show what would be done, change nothing
        --tui                  full-screen prompts

Missing values are asked for interactively.

## Uninstall flags

    -n, --name <name>          application to remove (required)
    -y, --yes                  do not ask for confirmation
        --keep-bundle          keep the AppImage file

## Global flags

    --config <path>            configuration file
    --log-level <level>        trace, debug, info, warn, error
    --no-registry              do not record or read installations

## Exit status

0 on success or when a replacement is declined, 1 on invalid input or a
failed copy, 2 on a usage error, 130 when a prompt is interrupted.
`

// printHelp writes the usage text, rendered as markdown on a terminal.
func printHelp(env Env) error {
	if env.Terminal && ColorsEnabled() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(terminalWidth(env.Stdout)-4),
		)
		if err == nil {
			if rendered, err := r.Render(usageText); err == nil {
				_, err = io.WriteString(env.Stdout, rendered)
				return err
			}
		}
	}
	_, err := io.WriteString(env.Stdout, usageText)
	return err
}
