// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package request turns flags and prompt answers into a fully resolved
// installation request and validates it before anything is written.
package request

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// BundleExtension is the expected bundle file extension, compared without
// regard to letter case.
const BundleExtension = "appimage"

// DescriptorExtension is appended to the application name.
const DescriptorExtension = ".desktop"

// Request is one installation, fully resolved: every optional field holds
// either a user value or its applied default.
type Request struct {
	AppName        string
	BundlePath     string
	Description    string
	IconSourcePath string
	TargetDir      string
	Category       string
}

// TargetBundlePath is where the bundle is copied to.
func (r Request) TargetBundlePath() string {
	return filepath.Join(r.TargetDir, filepath.Base(r.BundlePath))
}

// HasIcon reports whether an icon was supplied.
func (r Request) HasIcon() bool {
	return r.IconSourcePath != ""
}

// TargetIconPath is where the icon is copied to, or "" without an icon.
func (r Request) TargetIconPath(iconsDir string) string {
	if !r.HasIcon() {
		return ""
	}
	return filepath.Join(iconsDir, filepath.Base(r.IconSourcePath))
}

// DescriptorPath is the launcher file location for this application.
func (r Request) DescriptorPath(applicationsDir string) string {
	return filepath.Join(applicationsDir, DescriptorFileName(r.AppName))
}

// DescriptorFileName returns the NFC-normalised name plus ".desktop", so
// composed and decomposed spellings of one name map to the same file.
func DescriptorFileName(appName string) string {
	return norm.NFC.String(appName) + DescriptorExtension
}
