// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package installer

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/time/rate"
)

// redrawInterval limits how often the bar is redrawn.
const redrawInterval = 80 * time.Millisecond

// Bar renders copy progress on a single terminal line.
type Bar struct {
	out     io.Writer
	model   progress.Model
	limiter *rate.Sometimes
	label   string
	total   int64
}

// NewBar creates a progress bar of the given width writing to out.
func NewBar(out io.Writer, width int) *Bar {
	if width < 20 {
		width = 20
	}
	return &Bar{
		out:   out,
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(width)),
	}
}

// Start implements Progress.
func (b *Bar) Start(label string, total int64) {
	b.label = label
	b.total = total
	b.limiter = &rate.Sometimes{Interval: redrawInterval}
	b.render(0)
}

// Update implements Progress.
func (b *Bar) Update(done int64) {
	b.limiter.Do(func() { b.render(done) })
}

// Finish implements Progress.
func (b *Bar) Finish() {
	b.render(b.total)
	fmt.Fprintln(b.out)
}

func (b *Bar) render(done int64) {
	percent := 1.0
	if b.total > 0 {
		percent = float64(done) / float64(b.total)
	}
	if percent > 1 {
		percent = 1
	}
	fmt.Fprintf(b.out, "\r%s %s", b.label, b.model.ViewAs(percent))
}
