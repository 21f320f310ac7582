// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package request

import (
	"fmt"

	"github.com/ziggornif/appimage-installer/internal/prompt"
)

// Flags holds the values given on the command line. A nil field was not
// supplied and will be prompted for.
type Flags struct {
	Name        *string
	File        string
	Description *string
	Icon        *string
	Target      *string
	Category    *string
}

// Asker is the part of prompt.Prompter the resolver needs.
type Asker interface {
	Ask(q prompt.Question) (string, error)
}

// Resolver fills in a Request from flags, asking for whatever is missing.
type Resolver struct {
	asker         Asker
	defaultTarget string
}

// NewResolver creates a resolver; defaultTarget is offered for the target
// directory and used on an empty answer.
func NewResolver(asker Asker, defaultTarget string) *Resolver {
	return &Resolver{asker: asker, defaultTarget: defaultTarget}
}

// Resolve asks for name, description, icon, target and category in that
// order, skipping every field given as a flag.
func (r *Resolver) Resolve(flags Flags) (Request, error) {
	req := Request{BundlePath: flags.File}

	nameFlag := flags.Name
	if nameFlag != nil && *nameFlag == "" {
		// An explicitly empty name cannot name a descriptor, so it is asked for
		nameFlag = nil
	}
	name, err := r.value(nameFlag, prompt.Question{
		Text:      "Enter the application name (ex: FreeCAD):",
		Mandatory: true,
	})
	if err != nil {
		return Request{}, err
	}
	req.AppName = name

	if req.Description, err = r.value(flags.Description, prompt.Question{
		Text: "Enter the application description:",
	}); err != nil {
		return Request{}, err
	}

	if req.IconSourcePath, err = r.value(flags.Icon, prompt.Question{
		Text: "Enter the icon file path (ex: ./freecad.svg):",
	}); err != nil {
		return Request{}, err
	}

	if req.TargetDir, err = r.value(flags.Target, prompt.Question{
		Text:    fmt.Sprintf("Enter the application target directory (default: %s):", r.defaultTarget),
		Default: r.defaultTarget,
	}); err != nil {
		return Request{}, err
	}

	if req.Category, err = r.value(flags.Category, prompt.Question{
		Text: "Enter the application category (ex: Graphics):",
	}); err != nil {
		return Request{}, err
	}

	return req, nil
}

// value returns the flag verbatim when set, otherwise asks q.
func (r *Resolver) value(flag *string, q prompt.Question) (string, error) {
	if flag != nil {
		return *flag, nil
	}
	return r.asker.Ask(q)
}
