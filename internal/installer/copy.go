// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package installer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
)

// copyFile copies src to dst with the given permissions and returns the
// number of bytes written and their SHA-256.
func copyFile(src, dst string, mode fs.FileMode, progress Progress, label string) (int64, string, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, "", err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, "", err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return 0, "", err
	}

	hasher := sha256.New()
	var w io.Writer = io.MultiWriter(out, hasher)
	if progress != nil {
		progress.Start(label, info.Size())
		w = &progressWriter{w: w, progress: progress}
	}

	n, err := io.Copy(w, in)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		out.Close()
		return n, "", err
	}
	if err := out.Close(); err != nil {
		return n, "", err
	}

	// OpenFile applies the umask; the mode is meant literally
	if err := os.Chmod(dst, mode); err != nil {
		return n, "", err
	}

	return n, hex.EncodeToString(hasher.Sum(nil)), nil
}

// hashFile returns the size and SHA-256 of path.
func hashFile(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	hasher := sha256.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return n, "", err
	}
	return n, hex.EncodeToString(hasher.Sum(nil)), nil
}

type progressWriter struct {
	w        io.Writer
	done     int64
	progress Progress
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.done += int64(n)
	p.progress.Update(p.done)
	return n, err
}
