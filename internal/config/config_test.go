// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at a fresh temporary home.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range []string{
		"APPIMAGE_INSTALLER_APPS_DIR",
		"APPIMAGE_INSTALLER_LOG_LEVEL",
		"APPIMAGE_INSTALLER_ON_CONFLICT",
		"APPIMAGE_INSTALLER_CONFIRM",
		"APPIMAGE_INSTALLER_NO_REGISTRY",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestDefault_DerivesPathsFromHome(t *testing.T) {
	cfg := Default("/home/alice")

	assert.Equal(t, "/home/alice", cfg.Home)
	assert.Equal(t, "/home/alice/Apps", cfg.Paths.AppsDir)
	assert.Equal(t, "/home/alice/.local/share/icons", cfg.Paths.IconsDir)
	assert.Equal(t, "/home/alice/.local/share/applications", cfg.Paths.ApplicationsDir)
	assert.Equal(t, "fail", cfg.Descriptor.OnConflict)
	assert.Equal(t, "relaxed", cfg.Prompt.Confirm)
	assert.Equal(t, 5, cfg.Prompt.MaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(home, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Apps"), cfg.Paths.AppsDir)
	assert.True(t, cfg.Install.Registry)
}

func TestLoad_TOMLFromConfigDir(t *testing.T) {
	home := isolate(t)
	dir := Dir(home)
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `
[paths]
apps_dir = "~/Applications"

[descriptor]
on_conflict = "overwrite"

[prompt]
max_attempts = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(home, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Applications"), cfg.Paths.AppsDir)
	assert.Equal(t, "overwrite", cfg.Descriptor.OnConflict)
	assert.Equal(t, 2, cfg.Prompt.MaxAttempts)
	// Untouched sections keep their defaults
	assert.Equal(t, filepath.Join(home, ".local", "share", "icons"), cfg.Paths.IconsDir)
}

func TestLoad_YAMLExplicitPath(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "installer.yaml")
	content := "prompt:\n  confirm: strict\n  mode: tui\ninstall:\n  registry: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Prompt.Confirm)
	assert.Equal(t, "tui", cfg.Prompt.Mode)
	assert.False(t, cfg.Install.Registry)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	home := isolate(t)

	_, err := Load(home, filepath.Join(home, "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	home := isolate(t)
	t.Setenv("APPIMAGE_INSTALLER_APPS_DIR", "/opt/apps")
	t.Setenv("APPIMAGE_INSTALLER_ON_CONFLICT", "prompt")
	t.Setenv("APPIMAGE_INSTALLER_NO_REGISTRY", "true")

	cfg, err := Load(home, "")
	require.NoError(t, err)
	assert.Equal(t, "/opt/apps", cfg.Paths.AppsDir)
	assert.Equal(t, "prompt", cfg.Descriptor.OnConflict)
	assert.False(t, cfg.Install.Registry)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default("/home/bob")
	cfg.Prompt.Mode = "gui"
	cfg.Descriptor.OnConflict = "merge"
	cfg.Prompt.MaxAttempts = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "descriptor.on_conflict")
}

func TestExpandHome(t *testing.T) {
	cfg := Default("/home/carol")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/carol"},
		{"~/Apps", "/home/carol/Apps"},
		{"/opt/Apps", "/opt/Apps"},
		{"~other/Apps", "~other/Apps"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ExpandHome(tt.in), "ExpandHome(%q)", tt.in)
	}
}
