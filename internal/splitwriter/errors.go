// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package splitwriter

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNameCollision is returned when two split keys, or a split key and
	// the stub itself, map to the same file name. Nothing is written.
	ErrFileNameCollision = errors.New("generated file name collision")

	// ErrOutsideDirectory is returned when a generated file name would not be a
	// plain file inside the stub directory. Nothing is written.
	ErrOutsideDirectory = errors.New("generated file name leaves stub directory")
)

// WriteError reports a failed file write. Files written before the failure are
// left on disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing to %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
