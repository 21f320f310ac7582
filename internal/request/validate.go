// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidBundle is returned for a bundle path with the wrong extension,
	// or one that is not an existing regular file.
	ErrInvalidBundle = errors.New("invalid AppImage file")
	// ErrInvalidIcon is returned for an icon path that does not exist.
	ErrInvalidIcon = errors.New("invalid icon file")
	// ErrInvalidName is returned for an application name that cannot be
	// used as a descriptor file name.
	ErrInvalidName = errors.New("invalid application name")
)

// ValidateExtension checks the bundle extension. A path without an
// extension fails.
func ValidateExtension(bundlePath string) error {
	ext := strings.TrimPrefix(filepath.Ext(bundlePath), ".")
	if ext == "" || !strings.EqualFold(ext, BundleExtension) {
		return fmt.Errorf("%w: %q does not end with .%s", ErrInvalidBundle, bundlePath, BundleExtension)
	}
	return nil
}

// ValidateBundleSource checks that the bundle exists and is a regular file.
func ValidateBundleSource(bundlePath string) error {
	info, err := os.Stat(bundlePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q is not a regular file", ErrInvalidBundle, bundlePath)
	}
	return nil
}

// ValidateIcon checks that a non-empty icon path exists. An empty path
// means no icon and always passes.
func ValidateIcon(iconPath string) error {
	if iconPath == "" {
		return nil
	}
	if _, err := os.Stat(iconPath); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidIcon, err)
	}
	return nil
}

// ValidateName rejects names that would not stay inside the applications
// directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// Validate runs the checks that must pass before any file is touched.
func (r Request) Validate() error {
	if err := ValidateExtension(r.BundlePath); err != nil {
		return err
	}
	if err := ValidateBundleSource(r.BundlePath); err != nil {
		return err
	}
	if err := ValidateName(r.AppName); err != nil {
		return err
	}
	return ValidateIcon(r.IconSourcePath)
}
