// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the AppImage installer.
//
// Supports both TOML and YAML configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - --config <path>
//   - $XDG_CONFIG_HOME/appimage-installer/config.toml
//   - $XDG_CONFIG_HOME/appimage-installer/config.yaml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppName is used to locate the configuration and data directories.
const AppName = "appimage-installer"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete installer configuration.
type Config struct {
	// Home is the user home directory, resolved once at startup.
	// It is never read from the configuration file.
	Home string `toml:"-" yaml:"-"`

	Paths      PathsConfig      `toml:"paths" yaml:"paths"`
	Prompt     PromptConfig     `toml:"prompt" yaml:"prompt"`
	Descriptor DescriptorConfig `toml:"descriptor" yaml:"descriptor"`
	Install    InstallConfig    `toml:"install" yaml:"install"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// PathsConfig contains the installation directories.
// A leading "~/" is expanded against Config.Home.
type PathsConfig struct {
	// AppsDir is the default bundle target directory (default: ~/Apps)
	AppsDir string `toml:"apps_dir" yaml:"apps_dir"`
	// IconsDir receives copied icons (default: ~/.local/share/icons)
	IconsDir string `toml:"icons_dir" yaml:"icons_dir"`
	// ApplicationsDir receives launcher descriptors (default: ~/.local/share/applications)
	ApplicationsDir string `toml:"applications_dir" yaml:"applications_dir"`
	// Registry is the SQLite installation registry path
	Registry string `toml:"registry" yaml:"registry"`
}

// PromptConfig controls interactive input.
type PromptConfig struct {
	// Mode is "line" (default) or "tui"
	Mode string `toml:"mode" yaml:"mode"`
	// Confirm is the yes/no policy: "relaxed" (default) or "strict"
	Confirm string `toml:"confirm" yaml:"confirm"`
	// MaxAttempts bounds re-prompts on empty mandatory answers (0 = unbounded)
	MaxAttempts int `toml:"max_attempts" yaml:"max_attempts"`
}

// DescriptorConfig controls how an existing .desktop file is handled.
type DescriptorConfig struct {
	// OnConflict is "fail" (default), "overwrite" or "prompt"
	OnConflict string `toml:"on_conflict" yaml:"on_conflict"`
}

// InstallConfig contains installation behavior toggles.
type InstallConfig struct {
	CheckFreeSpace bool `toml:"check_free_space" yaml:"check_free_space"`
	ShowProgress   bool `toml:"show_progress" yaml:"show_progress"`
	Registry       bool `toml:"registry" yaml:"registry"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level   string `toml:"level" yaml:"level"`
	File    string `toml:"file" yaml:"file"`
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Allowed enumerated values.
var (
	PromptModes       = []string{"line", "tui"}
	ConfirmPolicies   = []string{"relaxed", "strict"}
	ConflictPolicies  = []string{"fail", "overwrite", "prompt"}
	validLogLevels    = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	defaultMaxAttempt = 5
)

// Default returns the built-in configuration for the given home directory.
func Default(home string) *Config {
	return &Config{
		Home: home,
		Paths: PathsConfig{
			AppsDir:         filepath.Join(home, "Apps"),
			IconsDir:        filepath.Join(home, ".local", "share", "icons"),
			ApplicationsDir: filepath.Join(home, ".local", "share", "applications"),
			Registry:        filepath.Join(home, ".local", "share", AppName, "registry.db"),
		},
		Prompt: PromptConfig{
			Mode:        "line",
			Confirm:     "relaxed",
			MaxAttempts: defaultMaxAttempt,
		},
		Descriptor: DescriptorConfig{
			OnConflict: "fail",
		},
		Install: InstallConfig{
			CheckFreeSpace: true,
			ShowProgress:   true,
			Registry:       true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// HomeDir reads $HOME. An unset variable yields the empty string; derived
// paths then become relative, which is accepted rather than validated.
func HomeDir() string {
	return os.Getenv("HOME")
}

// Dir returns the configuration directory for the given home.
func Dir(home string) string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return filepath.Join(home, ".config", AppName)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration for home. An explicit path must exist; without
// one, config.toml then config.yaml are looked up in Dir(home) and missing
// files fall back to defaults. Environment overrides are applied last.
func Load(home, path string) (*Config, error) {
	cfg := Default(home)

	if path == "" {
		for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
			candidate := filepath.Join(Dir(home), name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	if path != "" {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnvOverrides applies APPIMAGE_INSTALLER_* environment variables:
//   - APPIMAGE_INSTALLER_APPS_DIR: overrides paths.apps_dir
//   - APPIMAGE_INSTALLER_LOG_LEVEL: overrides log.level
//   - APPIMAGE_INSTALLER_ON_CONFLICT: overrides descriptor.on_conflict
//   - APPIMAGE_INSTALLER_CONFIRM: overrides prompt.confirm
//   - APPIMAGE_INSTALLER_NO_REGISTRY: "1"/"true" disables the registry
func (c *Config) ApplyEnvOverrides() {
	if dir := os.Getenv("APPIMAGE_INSTALLER_APPS_DIR"); dir != "" {
		c.Paths.AppsDir = dir
	}
	if level := os.Getenv("APPIMAGE_INSTALLER_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if policy := os.Getenv("APPIMAGE_INSTALLER_ON_CONFLICT"); policy != "" {
		c.Descriptor.OnConflict = policy
	}
	if confirm := os.Getenv("APPIMAGE_INSTALLER_CONFIRM"); confirm != "" {
		c.Prompt.Confirm = confirm
	}
	if noRegistry := os.Getenv("APPIMAGE_INSTALLER_NO_REGISTRY"); noRegistry != "" {
		if v, err := strconv.ParseBool(noRegistry); err == nil && v {
			c.Install.Registry = false
		}
	}
}

// expandPaths resolves "~/" prefixes against Home.
func (c *Config) expandPaths() {
	c.Paths.AppsDir = c.ExpandHome(c.Paths.AppsDir)
	c.Paths.IconsDir = c.ExpandHome(c.Paths.IconsDir)
	c.Paths.ApplicationsDir = c.ExpandHome(c.Paths.ApplicationsDir)
	c.Paths.Registry = c.ExpandHome(c.Paths.Registry)
	c.Log.File = c.ExpandHome(c.Log.File)
}

// ExpandHome replaces a leading "~" path element with the home directory.
func (c *Config) ExpandHome(path string) string {
	if path == "~" {
		return c.Home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(c.Home, path[2:])
	}
	return path
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
}

// ValidateErrors collects every invalid setting.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// ErrInvalid is matched by any ValidateErrors value.
var ErrInvalid = errors.New("invalid configuration")

func (e ValidateErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Validate checks enumerated values and numeric bounds.
func (c *Config) Validate() error {
	var errs ValidateErrors

	check := func(field, value string, allowed []string) {
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Value:   value,
			Message: "must be one of " + strings.Join(allowed, ", "),
		})
	}

	check("prompt.mode", c.Prompt.Mode, PromptModes)
	check("prompt.confirm", c.Prompt.Confirm, ConfirmPolicies)
	check("descriptor.on_conflict", c.Descriptor.OnConflict, ConflictPolicies)
	check("log.level", c.Log.Level, validLogLevels)

	if c.Prompt.MaxAttempts < 0 {
		errs = append(errs, ValidationError{
			Field:   "prompt.max_attempts",
			Value:   strconv.Itoa(c.Prompt.MaxAttempts),
			Message: "must not be negative",
		})
	}
	if c.Paths.IconsDir == "" {
		errs = append(errs, ValidationError{Field: "paths.icons_dir", Message: "must not be empty"})
	}
	if c.Paths.ApplicationsDir == "" {
		errs = append(errs, ValidationError{Field: "paths.applications_dir", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
