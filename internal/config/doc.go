// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the AppImage installer.
//
// # Key Types
//
//   - Config: Main configuration structure, including the resolved home directory
//   - PathsConfig: Bundle, icon, descriptor and registry locations
//   - PromptConfig: Prompt mode, yes/no policy and retry bound
//   - DescriptorConfig: Policy for an existing .desktop file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (APPIMAGE_INSTALLER_*)
//   - $XDG_CONFIG_HOME/appimage-installer/config.toml (or config.yaml)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load(config.HomeDir(), "")
//	if err != nil {
//	    return err
//	}
//	target := cfg.Paths.AppsDir
package config
