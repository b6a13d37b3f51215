// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Path fields
	FieldPath     = "path"
	FieldStubPath = "stub_path"
	FieldDir      = "dir"
	FieldInput    = "input"

	// Split fields
	FieldKey        = "key"
	FieldFile       = "file"
	FieldSplitCount = "split_count"
	FieldSplitAll   = "split_all"
	FieldBytes      = "bytes"
	FieldExclusive  = "exclusive"
	FieldSyntax     = "syntax"
)
