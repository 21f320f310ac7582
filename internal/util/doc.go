// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small file and string helpers shared by the installer
// packages.
//
//   - AtomicWriteFile: temp file, fsync, rename
//   - Truncate: display-width aware truncation for terminal tables
package util
