// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Registry {
	t.Helper()
	reg, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { reg.Close() })
	return reg
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	reg := openTest(t)

	rec := &Record{
		Name:           "MyApp",
		SourcePath:     "/dl/App-1.2.AppImage",
		BundlePath:     "/tmp/apps/App-1.2.AppImage",
		DescriptorPath: "/home/u/.local/share/applications/MyApp.desktop",
		Category:       "Graphics",
		SHA256:         "abc",
		Size:           42,
	}
	require.NoError(t, reg.Put(ctx, rec))

	_, err := uuid.Parse(rec.ID)
	require.NoError(t, err, "a UUID is assigned")
	assert.False(t, rec.InstalledAt.IsZero())

	got, err := reg.Get(ctx, "MyApp")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.BundlePath, got.BundlePath)
	assert.Equal(t, int64(42), got.Size)
	assert.Equal(t, rec.InstalledAt.UnixMilli(), got.InstalledAt.UnixMilli())
}

func TestPut_UpsertsByName(t *testing.T) {
	ctx := context.Background()
	reg := openTest(t)

	require.NoError(t, reg.Put(ctx, &Record{Name: "MyApp", BundlePath: "/old", DescriptorPath: "/d"}))
	require.NoError(t, reg.Put(ctx, &Record{Name: "MyApp", BundlePath: "/new", DescriptorPath: "/d"}))

	records, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/new", records[0].BundlePath)
}

func TestPut_RequiresName(t *testing.T) {
	reg := openTest(t)
	assert.Error(t, reg.Put(context.Background(), &Record{}))
}

func TestGet_NotFound(t *testing.T) {
	reg := openTest(t)

	_, err := reg.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_Ordered(t *testing.T) {
	ctx := context.Background()
	reg := openTest(t)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"zed", "Blender", "anki"} {
		require.NoError(t, reg.Put(ctx, &Record{Name: name, InstalledAt: at}))
	}

	records, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "anki", records[0].Name)
	assert.Equal(t, "Blender", records[1].Name)
	assert.Equal(t, "zed", records[2].Name)
	assert.True(t, at.Equal(records[0].InstalledAt))
}

func TestList_Empty(t *testing.T) {
	records, err := openTest(t).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	reg := openTest(t)

	require.NoError(t, reg.Put(ctx, &Record{Name: "MyApp"}))
	require.NoError(t, reg.Delete(ctx, "MyApp"))

	_, err := reg.Get(ctx, "MyApp")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, reg.Delete(ctx, "MyApp"), ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "registry.db")

	reg, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, reg.Put(ctx, &Record{Name: "MyApp"}))
	require.NoError(t, reg.Close())

	reg, err = Open(ctx, path)
	require.NoError(t, err)
	defer reg.Close()

	_, err = reg.Get(ctx, "MyApp")
	assert.NoError(t, err)
}
