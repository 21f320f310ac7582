// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package desktop renders and writes launcher descriptors (.desktop files)
// for installed bundles.
package desktop

import (
	"bytes"
	"strings"
	"text/template"
)

// Entry is the content of a launcher descriptor.
type Entry struct {
	Name       string
	Exec       string // installed bundle path
	Icon       string // installed icon path, empty when none
	Comment    string
	Categories string
}

var entryTemplate = template.Must(template.New("desktop").Funcs(template.FuncMap{
	"exec":  quoteExec,
	"value": escapeValue,
}).Parse(`[Desktop Entry]
Type=Application
Name={{value .Name}}
Exec={{exec .Exec}}
Icon={{value .Icon}}
Comment={{value .Comment}}
Terminal=false
Categories={{value .Categories}};

TryExec={{value .Exec}}
PrefersNonDefaultGPU=false
`))

// Render returns the descriptor text.
func (e Entry) Render() string {
	var buf bytes.Buffer
	// The template is fixed and only reads string fields
	if err := entryTemplate.Execute(&buf, e); err != nil {
		panic(err)
	}
	return buf.String()
}

// execReserved are the characters that force quoting of an Exec argument.
const execReserved = " \t\n\"'\\><~|&;$*?#()`"

// quoteExec makes a path safe to use as the Exec program. Paths with
// reserved characters are double-quoted with `"`, "`", "$" and "\" escaped,
// and a literal "%" is doubled since field codes start with it.
func quoteExec(path string) string {
	path = escapeValue(path)
	path = strings.ReplaceAll(path, "%", "%%")
	if !strings.ContainsAny(path, execReserved) {
		return path
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range path {
		switch r {
		case '"', '`', '$', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// escapeValue keeps a value on a single line.
func escapeValue(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\n", " ")
}
