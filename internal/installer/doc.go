// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package installer performs the file system side of an installation.

# Bundle

InstallBundle is a small state machine over the target path:

  - target absent: copy the bundle
  - target present: ask "remove existing file?"; yes removes it and copies,
    anything else returns ErrDeclined and leaves the old file untouched

A failed removal or copy is fatal for the caller. The copy keeps the
source permission bits, adds owner-execute, and is hashed with SHA-256
on the way.

# Icon

InstallIcon copies unconditionally and overwrites an existing icon. Its
errors are meant to be logged and skipped: the bundle is the primary
artifact.

# Terminal output

Bar draws a static progress bar (bubbles/progress) for long copies,
redrawn at most every 80ms.
*/
package installer
