// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build windows

package fs

// lockDir is a no-op on Windows: directory handles cannot be locked there.
func lockDir(string) (func(), error) {
	return func() {}, nil
}
