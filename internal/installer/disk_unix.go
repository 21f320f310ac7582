// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux || darwin || freebsd

package installer

import (
	"golang.org/x/sys/unix"
)

// FreeSpace returns the bytes available to unprivileged users on the file
// system holding path.
func FreeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	// Bavail rather than Bfree: root-reserved blocks are not ours
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}
