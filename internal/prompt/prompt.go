// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt asks the user questions one line at a time.
//
// The input source is a LineReader, so the same Prompter drives a real
// terminal (liner or bubbletea) and canned input in tests.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrNoInput is returned when input ends before a mandatory answer.
	ErrNoInput = errors.New("no input available")
	// ErrTooManyAttempts is returned when a mandatory question got only
	// empty answers up to the attempt bound.
	ErrTooManyAttempts = errors.New("too many empty answers")
	// ErrAborted is returned when the user interrupts a prompt (Ctrl+C).
	ErrAborted = errors.New("prompt aborted")
)

// LineReader reads one line of user input after showing a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Question describes one prompt.
type Question struct {
	Text string
	// Mandatory questions are asked again on empty input.
	Mandatory bool
	// Default is returned for empty input on optional questions.
	Default string
}

// Prompter asks questions through a LineReader.
type Prompter struct {
	reader      LineReader
	maxAttempts int
	policy      Policy
}

// New creates a prompter. maxAttempts bounds how often a mandatory question
// is repeated; zero means no bound.
func New(reader LineReader, maxAttempts int, policy Policy) *Prompter {
	return &Prompter{
		reader:      reader,
		maxAttempts: maxAttempts,
		policy:      policy,
	}
}

// Ask shows q and returns the trimmed answer, the default, or an error.
func (p *Prompter) Ask(q Question) (string, error) {
	for attempt := 1; ; attempt++ {
		line, err := p.reader.ReadLine(q.Text)
		response := strings.TrimSpace(line)

		if err != nil {
			// A last line without newline still counts as an answer
			if errors.Is(err, io.EOF) && response != "" {
				return response, nil
			}
			if errors.Is(err, io.EOF) {
				if q.Mandatory {
					return "", fmt.Errorf("%s: %w", q.Text, ErrNoInput)
				}
				return q.Default, nil
			}
			return "", err
		}

		if response != "" {
			return response, nil
		}
		if !q.Mandatory {
			return q.Default, nil
		}
		if p.maxAttempts > 0 && attempt >= p.maxAttempts {
			return "", fmt.Errorf("%s: %w", q.Text, ErrTooManyAttempts)
		}
	}
}

// Confirm asks a mandatory yes/no question and interprets the answer with
// the prompter's policy.
func (p *Prompter) Confirm(text string) (bool, error) {
	answer, err := p.Ask(Question{Text: text, Mandatory: true})
	if err != nil {
		return false, err
	}
	return p.policy.Affirmative(answer), nil
}

// Close releases the underlying reader.
func (p *Prompter) Close() error {
	return p.reader.Close()
}
