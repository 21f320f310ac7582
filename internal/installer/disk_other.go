// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !(linux || darwin || freebsd)

package installer

import "errors"

// FreeSpace is not available on this platform; the check is skipped.
func FreeSpace(path string) (uint64, error) {
	return 0, errors.New("free space lookup not supported on this platform")
}
