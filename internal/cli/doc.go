// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for the
// AppImage installer.
//
// # Key Types
//
//   - Command: install (default), list, uninstall, version, help
//   - Args: parsed flags; unset optional values are nil and get prompted
//   - Env: standard streams, home directory and terminal detection
//   - ExitError: an error with an explicit exit status
//
// # Usage
//
//	os.Exit(cli.Main(context.Background(), cli.DefaultEnv(), os.Args[1:]))
//
// # Install pipeline
//
// The install command resolves missing values by prompting, validates the
// request, copies the bundle (asking before replacing an installed one),
// copies the icon, writes the launcher and records the installation in the
// registry. Validation failures stop the run before anything is written.
//
// # Exit codes
//
//   - 0: success, or the user declined a replacement
//   - 1: invalid input, existing launcher, failed copy or removal
//   - 2: usage error
//   - 130: prompt interrupted
package cli
