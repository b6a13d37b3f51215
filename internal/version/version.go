// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package version carries build metadata injected through -ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release version of the build.
	Version = "dev"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the build metadata for the -version flag. A build without
// ldflags falls back to the module version recorded by the toolchain.
func String() string {
	v := Version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("cfgsplit %s (commit: %s, built: %s)", v, Commit, Date)
}
