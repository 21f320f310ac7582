// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package desktop

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziggornif/appimage-installer/internal/util"
)

// ConflictPolicy decides what happens when the descriptor already exists.
type ConflictPolicy int

const (
	// PolicyFail refuses to touch an existing descriptor.
	PolicyFail ConflictPolicy = iota
	// PolicyOverwrite replaces it atomically.
	PolicyOverwrite
	// PolicyPrompt asks the user first.
	PolicyPrompt
)

var policyNames = map[ConflictPolicy]string{
	PolicyFail:      "fail",
	PolicyOverwrite: "overwrite",
	PolicyPrompt:    "prompt",
}

func (p ConflictPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePolicy maps a config or flag value to a policy.
func ParsePolicy(name string) (ConflictPolicy, error) {
	for p, n := range policyNames {
		if strings.EqualFold(name, n) {
			return p, nil
		}
	}
	return PolicyFail, fmt.Errorf("unknown descriptor conflict policy %q (want fail, overwrite or prompt)", name)
}

// OverwriteQuestion is asked under PolicyPrompt.
const OverwriteQuestion = "A launcher for this application already exists, do you want to replace it ? (y/n)"

var (
	// ErrExists is returned under PolicyFail when the descriptor exists.
	ErrExists = errors.New("descriptor already exists")
	// ErrKept is returned when the user keeps the existing descriptor.
	ErrKept = errors.New("existing descriptor kept")
)

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(text string) (bool, error)
}

// Writer writes descriptors to disk.
type Writer struct {
	Policy    ConflictPolicy
	Confirmer Confirmer
}

// Write stores entry at path according to the conflict policy.
func (w Writer) Write(path string, entry Entry) error {
	data := []byte(entry.Render())

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create applications directory: %w", err)
	}

	switch w.Policy {
	case PolicyOverwrite:
		return util.AtomicWriteFile(path, data, 0644)

	case PolicyPrompt:
		if _, err := os.Stat(path); err == nil {
			if w.Confirmer == nil {
				return fmt.Errorf("%w: %s", ErrExists, path)
			}
			ok, err := w.Confirmer.Confirm(OverwriteQuestion)
			if err != nil {
				return err
			}
			if !ok {
				return ErrKept
			}
			return util.AtomicWriteFile(path, data, 0644)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		return createExclusive(path, data)

	default:
		return createExclusive(path, data)
	}
}

// createExclusive creates path, failing with ErrExists if it is present.
func createExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to create descriptor: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}
