// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"

	xglog "github.com/ManuGH/cfgsplit/internal/log"
)

// replace writes data for Windows using temp file + rename.
// Windows doesn't support atomic rename with fsync like Unix.
func (w *AtomicWriter) replace(path string, data []byte, mode os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".cfgsplit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
				w.Logger.Debug().Err(err).Str(xglog.FieldPath, tmpPath).Msg("cleanup temp file")
			}
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	tmpFile = nil
	return nil
}
