// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package installer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ConflictQuestion is asked when the target bundle already exists.
const ConflictQuestion = "Application already installed, do you want to remove the existing AppImage file ? (y/n)"

var (
	// ErrDeclined is returned when the user keeps an existing bundle.
	ErrDeclined = errors.New("installation aborted by user")
	// ErrInsufficientSpace is returned when the target file system cannot
	// hold the bundle.
	ErrInsufficientSpace = errors.New("not enough free space")
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(text string) (bool, error)
}

// Progress receives copy progress.
type Progress interface {
	Start(label string, total int64)
	Update(done int64)
	Finish()
}

// Options configures an Installer.
type Options struct {
	// Confirmer answers the conflict question; unused when AssumeYes is set.
	Confirmer Confirmer
	// AssumeYes removes an existing bundle without asking.
	AssumeYes bool
	// CheckFreeSpace compares the bundle size with the free space first.
	CheckFreeSpace bool
	// Progress, if set, is driven during the bundle copy.
	Progress Progress
	// Out receives user-facing confirmations (default: io.Discard).
	Out io.Writer
	// Logger receives diagnostics (default: disabled).
	Logger *zerolog.Logger
}

// Result describes an installed bundle.
type Result struct {
	Path     string
	Size     int64
	SHA256   string
	Replaced bool
}

// Installer copies bundles and icons into place.
type Installer struct {
	opts      Options
	out       io.Writer
	log       zerolog.Logger
	freeSpace func(path string) (uint64, error)
}

// New creates an installer.
func New(opts Options) *Installer {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Installer{
		opts:      opts,
		out:       out,
		log:       log,
		freeSpace: FreeSpace,
	}
}

// =============================================================================
// BUNDLE
// =============================================================================

// InstallBundle copies src to dst, resolving a pre-existing dst first.
func (i *Installer) InstallBundle(src, dst string) (Result, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read bundle: %w", err)
	}

	var existing int64
	replaced := false
	dstInfo, err := os.Lstat(dst)
	switch {
	case err == nil && os.SameFile(srcInfo, dstInfo):
		return i.registerInPlace(dst, srcInfo)
	case err == nil:
		ok, err := i.confirmRemoval()
		if err != nil {
			return Result{}, err
		}
		if !ok {
			i.log.Debug().Str("path", dst).Msg("existing bundle kept")
			return Result{}, ErrDeclined
		}
		existing = dstInfo.Size()
		replaced = true
	case !errors.Is(err, fs.ErrNotExist):
		return Result{}, fmt.Errorf("failed to inspect %s: %w", dst, err)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create target directory: %w", err)
	}

	if i.opts.CheckFreeSpace {
		if err := i.checkSpace(dir, srcInfo.Size(), existing); err != nil {
			return Result{}, err
		}
	}

	if replaced {
		if err := os.Remove(dst); err != nil {
			return Result{}, fmt.Errorf("failed to remove existing AppImage file: %w", err)
		}
		i.log.Info().Str("path", dst).Msg("existing bundle removed")
	}

	mode := srcInfo.Mode().Perm() | 0o100
	size, sum, err := copyFile(src, dst, mode, i.opts.Progress, filepath.Base(dst))
	if err != nil {
		// Do not leave a truncated bundle behind
		_ = os.Remove(dst)
		return Result{}, fmt.Errorf("failed to install application: %w", err)
	}

	fmt.Fprintf(i.out, "Application installed in %s directory\n", dst)
	i.log.Info().Str("path", dst).Int64("size", size).Str("sha256", sum).Msg("bundle installed")

	return Result{Path: dst, Size: size, SHA256: sum, Replaced: replaced}, nil
}

// registerInPlace handles a bundle that already sits at its target: it is
// neither removed nor copied, only made executable and hashed.
func (i *Installer) registerInPlace(path string, info fs.FileInfo) (Result, error) {
	if err := os.Chmod(path, info.Mode().Perm()|0o100); err != nil {
		return Result{}, fmt.Errorf("failed to install application: %w", err)
	}
	size, sum, err := hashFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read bundle: %w", err)
	}

	fmt.Fprintf(i.out, "Application installed in %s directory\n", path)
	i.log.Info().Str("path", path).Int64("size", size).Str("sha256", sum).Msg("bundle already in place")

	return Result{Path: path, Size: size, SHA256: sum}, nil
}

func (i *Installer) confirmRemoval() (bool, error) {
	if i.opts.AssumeYes {
		return true, nil
	}
	if i.opts.Confirmer == nil {
		return false, errors.New("target exists and no confirmation is possible")
	}
	return i.opts.Confirmer.Confirm(ConflictQuestion)
}

// checkSpace fails when free plus reclaimable bytes cannot hold need.
// An unknown free space is not an error.
func (i *Installer) checkSpace(dir string, need, reclaimable int64) error {
	free, err := i.freeSpace(dir)
	if err != nil {
		i.log.Debug().Err(err).Str("dir", dir).Msg("free space unknown, skipping check")
		return nil
	}
	if uint64(need) > free+uint64(reclaimable) {
		return fmt.Errorf("%w in %s: need %d bytes, %d available", ErrInsufficientSpace, dir, need, free)
	}
	return nil
}

// =============================================================================
// ICON
// =============================================================================

// InstallIcon copies src to dst, overwriting dst if present.
func (i *Installer) InstallIcon(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to read icon: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create icon directory: %w", err)
	}
	if _, _, err := copyFile(src, dst, info.Mode().Perm(), nil, ""); err != nil {
		return fmt.Errorf("failed to copy icon: %w", err)
	}

	fmt.Fprintf(i.out, "Icon has been copied in %s directory\n", dst)
	return nil
}
