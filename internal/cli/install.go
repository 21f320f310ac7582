// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// install.go - The install pipeline: resolve, validate, copy, describe.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziggornif/appimage-installer/internal/desktop"
	"github.com/ziggornif/appimage-installer/internal/installer"
	"github.com/ziggornif/appimage-installer/internal/registry"
	"github.com/ziggornif/appimage-installer/internal/request"
)

// User-facing messages.
const (
	msgWelcome       = "Welcome to AppImage desktop installer"
	msgInvalidBundle = "Invalid AppImage file, abort installation."
	msgInvalidIcon   = "Invalid icon file, abort installation."
	msgInvalidName   = "Invalid application name, abort installation."
	msgAbort         = "Abort installation. Bye."
)

func (a *app) install(ctx context.Context) error {
	out := a.env.Stdout
	fmt.Fprintln(out, TitleStyle.Render(msgWelcome))

	// The extension needs no prompt, so a wrong file fails before any question
	if err := request.ValidateExtension(a.args.File); err != nil {
		return a.rejectRequest(err)
	}

	p, err := a.newPrompter()
	if err != nil {
		return err
	}
	defer p.Close()

	req, err := request.NewResolver(p, a.cfg.Paths.AppsDir).Resolve(request.Flags{
		Name:        a.args.Name,
		File:        a.args.File,
		Description: a.args.Description,
		Icon:        a.args.Icon,
		Target:      a.args.Target,
		Category:    a.args.Category,
	})
	if err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return a.rejectRequest(err)
	}

	policy, err := desktop.ParsePolicy(a.cfg.Descriptor.OnConflict)
	if err != nil {
		return &UsageError{Reason: err.Error()}
	}
	descriptorPath := req.DescriptorPath(a.cfg.Paths.ApplicationsDir)

	if a.args.DryRun {
		return a.preview(req, descriptorPath)
	}

	// Under the fail policy an existing launcher stops the run before any copy
	if policy == desktop.PolicyFail {
		if _, err := os.Stat(descriptorPath); err == nil {
			return fmt.Errorf("%w: %s (use --on-conflict overwrite to replace it)", desktop.ErrExists, descriptorPath)
		}
	}

	inst := installer.New(installer.Options{
		Confirmer:      p,
		AssumeYes:      a.args.Yes,
		CheckFreeSpace: a.cfg.Install.CheckFreeSpace,
		Progress:       a.progress(),
		Out:            out,
		Logger:         a.log,
	})

	result, err := inst.InstallBundle(req.BundlePath, req.TargetBundlePath())
	if errors.Is(err, installer.ErrDeclined) {
		fmt.Fprintln(out, msgAbort)
		return nil
	}
	if err != nil {
		return err
	}

	iconPath := ""
	if req.HasIcon() {
		target := req.TargetIconPath(a.cfg.Paths.IconsDir)
		if err := inst.InstallIcon(req.IconSourcePath, target); err != nil {
			// The bundle is installed; a launcher without icon is still useful
			fmt.Fprintf(a.env.Stderr, "%s %v\n", WarningStyle.Render("Warning:"), err)
			a.log.Debug().Err(err).Str("icon", req.IconSourcePath).Msg("icon skipped")
		} else {
			iconPath = target
		}
	}

	entry := desktop.Entry{
		Name:       req.AppName,
		Exec:       result.Path,
		Icon:       iconPath,
		Comment:    req.Description,
		Categories: req.Category,
	}
	err = desktop.Writer{Policy: policy, Confirmer: p}.Write(descriptorPath, entry)
	switch {
	case errors.Is(err, desktop.ErrKept):
		fmt.Fprintf(out, "Existing launcher kept in %s\n", descriptorPath)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "Launcher created in %s\n", descriptorPath)
	}

	a.record(ctx, &registry.Record{
		Name:           req.AppName,
		SourcePath:     absPath(req.BundlePath),
		BundlePath:     absPath(result.Path),
		IconPath:       absPath(iconPath),
		DescriptorPath: absPath(descriptorPath),
		Category:       req.Category,
		SHA256:         result.SHA256,
		Size:           result.Size,
	})

	return nil
}

// rejectRequest reports a validation failure with the matching message.
func (a *app) rejectRequest(err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, request.ErrInvalidBundle):
		msg = msgInvalidBundle
	case errors.Is(err, request.ErrInvalidIcon):
		msg = msgInvalidIcon
	case errors.Is(err, request.ErrInvalidName):
		msg = msgInvalidName
	}
	fmt.Fprintln(a.env.Stdout, ErrorStyle.Render(msg))
	a.log.Debug().Err(err).Msg("request rejected")
	return shown(ExitGeneralError, err)
}

// progress returns a copy progress bar when stdout is a terminal.
func (a *app) progress() installer.Progress {
	if !a.cfg.Install.ShowProgress || !a.env.Terminal {
		return nil
	}
	width := terminalWidth(a.env.Stdout) - 30
	if width > 60 {
		width = 60
	}
	return installer.NewBar(a.env.Stdout, width)
}

// record stores the installation. The registry is a convenience: failures
// are logged and never fail the install.
func (a *app) record(ctx context.Context, rec *registry.Record) {
	if !a.cfg.Install.Registry {
		return
	}
	reg, err := a.openRegistry(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("installation registry unavailable")
		return
	}
	defer reg.Close()

	if err := reg.Put(ctx, rec); err != nil {
		a.log.Warn().Err(err).Str("name", rec.Name).Msg("installation not recorded")
		return
	}
	a.log.Debug().Str("id", rec.ID).Str("name", rec.Name).Msg("installation recorded")
}

// preview prints what an install would do without doing it.
func (a *app) preview(req request.Request, descriptorPath string) error {
	out := a.env.Stdout

	iconPath := ""
	if req.HasIcon() {
		iconPath = req.TargetIconPath(a.cfg.Paths.IconsDir)
	}

	labels := []string{"Bundle", "Icon", "Launcher", "Registry"}
	w := labelWidth(labels...)
	registryPath := a.cfg.Paths.Registry
	if !a.cfg.Install.Registry {
		registryPath = "(disabled)"
	}
	if iconPath == "" {
		iconPath = "(none)"
	}

	fmt.Fprintln(out, DimStyle.Render("Dry run: nothing will be changed."))
	fmt.Fprintln(out, RenderLabel("Bundle", w)+ValueStyle.Render(req.TargetBundlePath()))
	fmt.Fprintln(out, RenderLabel("Icon", w)+ValueStyle.Render(iconPath))
	fmt.Fprintln(out, RenderLabel("Launcher", w)+ValueStyle.Render(descriptorPath))
	fmt.Fprintln(out, RenderLabel("Registry", w)+ValueStyle.Render(registryPath))
	fmt.Fprintln(out)

	entry := desktop.Entry{
		Name:       req.AppName,
		Exec:       req.TargetBundlePath(),
		Comment:    req.Description,
		Categories: req.Category,
	}
	if req.HasIcon() {
		entry.Icon = req.TargetIconPath(a.cfg.Paths.IconsDir)
	}

	content := entry.Render()
	if a.env.Terminal && ColorsEnabled() {
		content = desktop.Highlight(content)
	}
	fmt.Fprint(out, content)
	return nil
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
