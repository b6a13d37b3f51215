// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	xglog "github.com/ManuGH/cfgsplit/internal/log"
)

// DefaultFileMode is the permission of files created by AtomicWriter.
const DefaultFileMode os.FileMode = 0o644

// AtomicWriter replaces files atomically: readers see either the old or the new
// content, never a partial write.
type AtomicWriter struct {
	Mode   os.FileMode
	Logger zerolog.Logger
}

// NewAtomicWriter returns a writer creating files with DefaultFileMode. It
// logs nothing until Logger is set.
func NewAtomicWriter() *AtomicWriter {
	return &AtomicWriter{Mode: DefaultFileMode, Logger: zerolog.Nop()}
}

// WriteFile writes data to path. When exclusive is set, an exclusive advisory
// lock on the containing directory is held for the duration of this write only.
// The directory must exist.
func (w *AtomicWriter) WriteFile(path string, data []byte, exclusive bool) error {
	if exclusive {
		dir := filepath.Dir(path)
		unlock, err := lockDir(dir)
		if err != nil {
			return fmt.Errorf("lock directory: %w", err)
		}
		defer unlock()
		w.Logger.Debug().Str(xglog.FieldDir, dir).Str(xglog.FieldPath, path).Msg("directory locked")
	}

	mode := w.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}
	return w.replace(path, data, mode)
}
