// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package installer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziggornif/appimage-installer/internal/logging"
)

type fakeConfirmer struct {
	answer bool
	err    error
	asked  []string
}

func (f *fakeConfirmer) Confirm(text string) (bool, error) {
	f.asked = append(f.asked, text)
	return f.answer, f.err
}

type recordingProgress struct {
	label    string
	total    int64
	last     int64
	finished bool
}

func (r *recordingProgress) Start(label string, total int64) { r.label, r.total = label, total }
func (r *recordingProgress) Update(done int64)               { r.last = done }
func (r *recordingProgress) Finish()                         { r.finished = true }

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestInstallBundle_Fresh(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dl", "tool.AppImage")
	dst := filepath.Join(dir, "Apps", "nested", "tool.AppImage")
	writeFile(t, src, "bundle-bytes", 0644)

	var out bytes.Buffer
	confirm := &fakeConfirmer{}
	inst := New(Options{Confirmer: confirm, Out: &out})

	res, err := inst.InstallBundle(src, dst)
	require.NoError(t, err)

	assert.Equal(t, "bundle-bytes", readFile(t, dst))
	assert.Empty(t, confirm.asked, "no question without a conflict")
	assert.False(t, res.Replaced)
	assert.Equal(t, int64(len("bundle-bytes")), res.Size)

	sum := sha256.Sum256([]byte("bundle-bytes"))
	assert.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)
	assert.Contains(t, out.String(), "Application installed in "+dst+" directory")

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0744), info.Mode().Perm(), "source mode plus owner execute")
}

func TestInstallBundle_ConflictDeclined(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.AppImage")
	dst := filepath.Join(dir, "Apps", "new.AppImage")
	writeFile(t, src, "new", 0755)
	writeFile(t, dst, "old", 0755)

	var logs bytes.Buffer
	confirm := &fakeConfirmer{answer: false}
	inst := New(Options{Confirmer: confirm, Logger: logging.NewTestLogger(&logs)})

	_, err := inst.InstallBundle(src, dst)
	require.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, []string{ConflictQuestion}, confirm.asked)
	assert.Equal(t, "old", readFile(t, dst), "declined install must not touch the target")
	assert.Contains(t, logs.String(), `"message":"existing bundle kept"`)
}

func TestInstallBundle_SameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Apps", "tool.AppImage")
	writeFile(t, path, "in-place", 0644)

	var out, logs bytes.Buffer
	confirm := &fakeConfirmer{answer: true}
	inst := New(Options{Confirmer: confirm, Out: &out, Logger: logging.NewTestLogger(&logs)})

	// The same file reached through a different spelling
	res, err := inst.InstallBundle(filepath.Join(dir, "Apps", ".", "tool.AppImage"), path)
	require.NoError(t, err)

	assert.Equal(t, "in-place", readFile(t, path), "bundle must survive")
	assert.Empty(t, confirm.asked, "nothing to replace")
	assert.False(t, res.Replaced)
	assert.Equal(t, int64(len("in-place")), res.Size)

	sum := sha256.Sum256([]byte("in-place"))
	assert.Equal(t, hex.EncodeToString(sum[:]), res.SHA256)
	assert.Contains(t, out.String(), "Application installed in "+path+" directory")
	assert.Contains(t, logs.String(), `"message":"bundle already in place"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0744), info.Mode().Perm())
}

func TestInstallBundle_ConflictAccepted(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.AppImage")
	dst := filepath.Join(dir, "Apps", "new.AppImage")
	writeFile(t, src, "new", 0755)
	writeFile(t, dst, "old-and-longer", 0755)

	inst := New(Options{Confirmer: &fakeConfirmer{answer: true}})

	res, err := inst.InstallBundle(src, dst)
	require.NoError(t, err)
	assert.True(t, res.Replaced)
	assert.Equal(t, "new", readFile(t, dst))
}

func TestInstallBundle_AssumeYes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	dst := filepath.Join(dir, "out", "a.AppImage")
	writeFile(t, src, "new", 0755)
	writeFile(t, dst, "old", 0755)

	confirm := &fakeConfirmer{}
	inst := New(Options{Confirmer: confirm, AssumeYes: true})

	_, err := inst.InstallBundle(src, dst)
	require.NoError(t, err)
	assert.Empty(t, confirm.asked)
	assert.Equal(t, "new", readFile(t, dst))
}

func TestInstallBundle_ConfirmError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	dst := filepath.Join(dir, "out", "a.AppImage")
	writeFile(t, src, "new", 0755)
	writeFile(t, dst, "old", 0755)

	boom := errors.New("stdin closed")
	inst := New(Options{Confirmer: &fakeConfirmer{err: boom}})

	_, err := inst.InstallBundle(src, dst)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "old", readFile(t, dst))
}

func TestInstallBundle_RemoveFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	dst := filepath.Join(dir, "out", "a.AppImage")
	writeFile(t, src, "new", 0755)
	// A non-empty directory at the target cannot be removed with os.Remove
	writeFile(t, filepath.Join(dst, "keep"), "x", 0644)

	inst := New(Options{Confirmer: &fakeConfirmer{answer: true}})

	_, err := inst.InstallBundle(src, dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove existing AppImage file")
}

func TestInstallBundle_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out", "a.AppImage")

	inst := New(Options{})
	_, err := inst.InstallBundle(filepath.Join(dir, "nope.AppImage"), dst)
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallBundle_InsufficientSpace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	dst := filepath.Join(dir, "out", "a.AppImage")
	writeFile(t, src, "0123456789", 0755)

	inst := New(Options{CheckFreeSpace: true})
	inst.freeSpace = func(string) (uint64, error) { return 4, nil }

	_, err := inst.InstallBundle(src, dst)
	require.ErrorIs(t, err, ErrInsufficientSpace)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallBundle_ReclaimableSpaceCounts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	dst := filepath.Join(dir, "out", "a.AppImage")
	writeFile(t, src, "0123456789", 0755)
	writeFile(t, dst, "01234567", 0755)

	inst := New(Options{CheckFreeSpace: true, AssumeYes: true})
	inst.freeSpace = func(string) (uint64, error) { return 4, nil }

	_, err := inst.InstallBundle(src, dst)
	require.NoError(t, err)
}

func TestInstallBundle_UnknownSpaceSkipsCheck(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	writeFile(t, src, "data", 0755)

	inst := New(Options{CheckFreeSpace: true})
	inst.freeSpace = func(string) (uint64, error) { return 0, errors.New("unsupported") }

	_, err := inst.InstallBundle(src, filepath.Join(dir, "out", "a.AppImage"))
	require.NoError(t, err)
}

func TestInstallBundle_Progress(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.AppImage")
	writeFile(t, src, "progress-data", 0755)

	rec := &recordingProgress{}
	inst := New(Options{Progress: rec})

	_, err := inst.InstallBundle(src, filepath.Join(dir, "out", "a.AppImage"))
	require.NoError(t, err)
	assert.Equal(t, "a.AppImage", rec.label)
	assert.Equal(t, int64(13), rec.total)
	assert.Equal(t, int64(13), rec.last)
	assert.True(t, rec.finished)
}

func TestInstallIcon(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "icon.png")
	dst := filepath.Join(dir, "icons", "icon.png")
	writeFile(t, src, "png-new", 0644)
	writeFile(t, dst, "png-old", 0644)

	var out bytes.Buffer
	inst := New(Options{Out: &out})

	require.NoError(t, inst.InstallIcon(src, dst))
	assert.Equal(t, "png-new", readFile(t, dst), "icons are overwritten without asking")
	assert.Contains(t, out.String(), "Icon has been copied in "+dst+" directory")
}

func TestInstallIcon_MissingSource(t *testing.T) {
	dir := t.TempDir()
	inst := New(Options{})

	err := inst.InstallIcon(filepath.Join(dir, "gone.png"), filepath.Join(dir, "icons", "gone.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read icon")
}

func TestBar(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out, 30)

	bar.Start("tool.AppImage", 100)
	bar.Update(50)
	bar.Finish()

	s := out.String()
	assert.Contains(t, s, "tool.AppImage")
	assert.Contains(t, s, "100%")
	assert.True(t, bytes.HasSuffix(out.Bytes(), []byte("\n")))
}

func TestBar_ZeroTotal(t *testing.T) {
	var out bytes.Buffer
	bar := NewBar(&out, 10)

	bar.Start("empty", 0)
	bar.Finish()
	assert.Contains(t, out.String(), "100%")
}
