// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry records installed applications in a local SQLite
// database so they can be listed and uninstalled later.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no record matches a name.
var ErrNotFound = errors.New("application not installed")

// Record is one installed application.
type Record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SourcePath     string    `json:"source_path"`
	BundlePath     string    `json:"bundle_path"`
	IconPath       string    `json:"icon_path,omitempty"`
	DescriptorPath string    `json:"descriptor_path"`
	Category       string    `json:"category,omitempty"`
	SHA256         string    `json:"sha256,omitempty"`
	Size           int64     `json:"size"`
	InstalledAt    time.Time `json:"installed_at"`
}

// Registry is a handle on the registry database.
type Registry struct {
	db *sql.DB
}

// Open opens (and creates if needed) the registry at path.
func Open(ctx context.Context, path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Registry{db: db}, nil
}

// Close closes the database.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Put inserts rec or replaces the record with the same name. A new ID is
// assigned when rec.ID is empty; InstalledAt defaults to now.
func (r *Registry) Put(ctx context.Context, rec *Record) error {
	if rec.Name == "" {
		return errors.New("record name is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.InstalledAt.IsZero() {
		rec.InstalledAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO installations
			(id, name, source_path, bundle_path, icon_path, descriptor_path, category, sha256, size, installed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			id = excluded.id,
			source_path = excluded.source_path,
			bundle_path = excluded.bundle_path,
			icon_path = excluded.icon_path,
			descriptor_path = excluded.descriptor_path,
			category = excluded.category,
			sha256 = excluded.sha256,
			size = excluded.size,
			installed_at = excluded.installed_at`,
		rec.ID, rec.Name, rec.SourcePath, rec.BundlePath, rec.IconPath,
		rec.DescriptorPath, rec.Category, rec.SHA256, rec.Size, rec.InstalledAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record installation: %w", err)
	}
	return nil
}

const selectColumns = `id, name, source_path, bundle_path, icon_path, descriptor_path, category, sha256, size, installed_at`

// Get returns the record for name.
func (r *Registry) Get(ctx context.Context, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM installations WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return rec, nil
}

// List returns every record ordered by name.
func (r *Registry) List(ctx context.Context) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM installations ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read registry: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes the record for name.
func (r *Registry) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM installations WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var rec Record
	var installedAt int64
	err := s.Scan(&rec.ID, &rec.Name, &rec.SourcePath, &rec.BundlePath, &rec.IconPath,
		&rec.DescriptorPath, &rec.Category, &rec.SHA256, &rec.Size, &installedAt)
	if err != nil {
		return nil, err
	}
	rec.InstalledAt = time.UnixMilli(installedAt)
	return &rec, nil
}
