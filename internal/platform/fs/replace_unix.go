// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

//go:build !windows

package fs

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	xglog "github.com/ManuGH/cfgsplit/internal/log"
)

// replace writes data with full durability guarantees using renameio.
func (w *AtomicWriter) replace(path string, data []byte, mode os.FileMode) error {
	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(mode))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// No-op once the file has been committed
		if err := pendingFile.Cleanup(); err != nil {
			w.Logger.Debug().Err(err).Str(xglog.FieldPath, path).Msg("cleanup pending file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}

	// CloseAtomicallyReplace: fsync + rename (durable + atomic)
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace file: %w", err)
	}
	return nil
}
