// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// =============================================================================
// SCANNER READER (pipes, tests)
// =============================================================================

// Scanner prints each prompt on its own line and reads the answer from a
// buffered reader. It is used when stdin is not a terminal.
type Scanner struct {
	in  *bufio.Reader
	out io.Writer
}

// NewScanner creates a line reader over in, writing prompts to out.
func NewScanner(in io.Reader, out io.Writer) *Scanner {
	return &Scanner{in: bufio.NewReader(in), out: out}
}

// ReadLine implements LineReader.
func (s *Scanner) ReadLine(prompt string) (string, error) {
	if _, err := fmt.Fprintln(s.out, prompt); err != nil {
		return "", err
	}
	line, err := s.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// Close implements LineReader.
func (s *Scanner) Close() error { return nil }

// =============================================================================
// LINER READER (interactive terminal)
// =============================================================================

// Liner reads answers with line editing and history, for a terminal stdin.
type Liner struct {
	state *liner.State
	out   io.Writer
}

// NewLiner puts the terminal into liner mode. Close must be called to
// restore it. Prompt text goes to out.
func NewLiner(out io.Writer) *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &Liner{state: state, out: out}
}

// ReadLine implements LineReader. The prompt text sits on its own line,
// the answer is typed below it.
func (l *Liner) ReadLine(prompt string) (string, error) {
	fmt.Fprintln(l.out, prompt)
	line, err := l.state.Prompt("> ")
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	if err != nil {
		return line, err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Close implements LineReader.
func (l *Liner) Close() error {
	return l.state.Close()
}
