// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package splitwriter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ManuGH/cfgsplit/internal/platform/fs"
	"github.com/ManuGH/cfgsplit/internal/value"
)

// Wildcard is the placeholder replaced by the sanitized key in file name templates.
const Wildcard = "*"

var keySanitizer = strings.NewReplacer("-", "_", "/", "_", `\`, "_", " ", "_")

// fileNameForKey substitutes every wildcard of template with the sanitized key.
func fileNameForKey(template, key string) string {
	return strings.ReplaceAll(template, Wildcard, keySanitizer.Replace(key))
}

// splitFile is one top-level key extracted into its own file.
type splitFile struct {
	key   string
	name  string // file name relative to the stub directory
	path  string // path handed to the file writer
	value *value.Map
}

// plan decides which keys of a configuration go where. It performs no I/O
// besides symlink resolution in the stub directory.
type plan struct {
	stubPath  string
	dir       string // stub directory as given
	absDir    string // absolute stub directory, base for __DIR__ rewriting
	splitAll  bool
	splits    []splitFile
	remainder *value.Map
}

func (w *MultiFileWriter) plan(stubPath string, cfg *value.Map) (*plan, error) {
	dir := filepath.Dir(stubPath)
	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}

	p := &plan{
		stubPath: stubPath,
		dir:      dir,
		absDir:   absDir,
		splitAll: len(w.splitKeys) == 0,
	}

	wanted := make(map[string]struct{}, len(w.splitKeys))
	for _, k := range w.splitKeys {
		wanted[k] = struct{}{}
	}

	stubName := filepath.Base(stubPath)
	taken := make(map[string]string)
	var splitKeys []string

	for _, e := range cfg.Entries() {
		nested, ok := value.AsMap(e.Value)
		if !ok {
			continue
		}
		if !p.splitAll {
			if _, ok := wanted[e.Key]; !ok {
				continue
			}
		}

		name := fileNameForKey(w.fileNameTemplate, e.Key)
		if err := checkFileName(dir, name); err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		if name == stubName {
			return nil, fmt.Errorf("%w: key %q produces stub file name %q", ErrFileNameCollision, e.Key, name)
		}
		if other, dup := taken[name]; dup {
			return nil, fmt.Errorf("%w: keys %q and %q both produce %q", ErrFileNameCollision, other, e.Key, name)
		}
		taken[name] = e.Key

		p.splits = append(p.splits, splitFile{
			key:   e.Key,
			name:  name,
			path:  filepath.Join(dir, name),
			value: nested,
		})
		splitKeys = append(splitKeys, e.Key)
	}

	p.remainder = cfg.Without(splitKeys...)
	return p, nil
}

// checkFileName requires name to be a plain file directly inside dir.
func checkFileName(dir, name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrOutsideDirectory, name)
	}
	if _, err := fs.ConfineRelPath(dir, name); err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideDirectory, err)
	}
	return nil
}
