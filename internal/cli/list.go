// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// list.go - Installed applications.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ziggornif/appimage-installer/internal/registry"
	"github.com/ziggornif/appimage-installer/internal/util"
)

const msgNoApplications = "No applications installed."

func (a *app) list(ctx context.Context) error {
	if !a.cfg.Install.Registry {
		return errors.New("the installation registry is disabled")
	}

	reg, err := a.openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	records, err := reg.List(ctx)
	if err != nil {
		return err
	}

	if a.args.JSON {
		if records == nil {
			records = []*registry.Record{}
		}
		enc := json.NewEncoder(a.env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(a.env.Stdout, msgNoApplications)
		return nil
	}

	a.printTable(records)
	return nil
}

// printTable prints name, bundle path and install time, aligned on display
// width and cut to the terminal.
func (a *app) printTable(records []*registry.Record) {
	out := a.env.Stdout
	const timeLayout = "2006-01-02 15:04"
	const maxNameWidth = 28

	names := []string{"NAME"}
	for _, r := range records {
		names = append(names, util.Truncate(r.Name, maxNameWidth))
	}
	nameWidth := labelWidth(names...)

	pathWidth := terminalWidth(out) - nameWidth - len(timeLayout) - 2
	if pathWidth < 20 {
		pathWidth = 20
	}

	fmt.Fprintln(out, TitleStyle.Render(
		util.PadRight("NAME", nameWidth)+util.PadRight("BUNDLE", pathWidth+2)+"INSTALLED"))
	fmt.Fprintln(out, RenderSeparator(nameWidth+pathWidth+2+len(timeLayout)))

	for i, r := range records {
		fmt.Fprintln(out,
			RenderLabel(names[i+1], nameWidth)+
				ValueStyle.Render(util.PadRight(util.Truncate(r.BundlePath, pathWidth), pathWidth+2))+
				DimStyle.Render(r.InstalledAt.Local().Format(timeLayout)))
	}
}
