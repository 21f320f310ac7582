// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

// Schema is the registry database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS installations (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	source_path     TEXT NOT NULL,
	bundle_path     TEXT NOT NULL,
	icon_path       TEXT NOT NULL DEFAULT '',
	descriptor_path TEXT NOT NULL,
	category        TEXT NOT NULL DEFAULT '',
	sha256          TEXT NOT NULL DEFAULT '',
	size            INTEGER NOT NULL DEFAULT 0,
	installed_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
