// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// uninstall.go - Removal of a recorded installation.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

func (a *app) uninstall(ctx context.Context) error {
	if !a.cfg.Install.Registry {
		return errors.New("the installation registry is disabled")
	}

	reg, err := a.openRegistry(ctx)
	if err != nil {
		return err
	}
	defer reg.Close()

	rec, err := reg.Get(ctx, *a.args.Name)
	if err != nil {
		return err
	}

	if !a.args.Yes {
		p, err := a.newPrompter()
		if err != nil {
			return err
		}
		defer p.Close()

		ok, err := p.Confirm(fmt.Sprintf("Do you want to remove %s and its launcher ? (y/n)", rec.Name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.env.Stdout, "Abort uninstallation. Bye.")
			return nil
		}
	}

	paths := []string{rec.DescriptorPath, rec.IconPath}
	if !a.args.KeepBundle {
		paths = append(paths, rec.BundlePath)
	}
	for _, path := range paths {
		if err := removeIfExists(path); err != nil {
			return err
		}
		if path != "" {
			a.log.Debug().Str("path", path).Msg("removed")
		}
	}

	if err := reg.Delete(ctx, rec.Name); err != nil {
		return err
	}

	fmt.Fprintf(a.env.Stdout, "%s %s uninstalled\n", SuccessStyle.Render("Application"), rec.Name)
	return nil
}

// removeIfExists removes path; an empty or already missing path is fine.
func removeIfExists(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
