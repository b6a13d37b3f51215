// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package splitwriter

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ManuGH/cfgsplit/internal/literal"
	xglog "github.com/ManuGH/cfgsplit/internal/log"
	"github.com/ManuGH/cfgsplit/internal/platform/fs"
	"github.com/ManuGH/cfgsplit/internal/value"
)

const (
	// DefaultFileNameTemplate names split files after their key.
	DefaultFileNameTemplate = "*.config.php"
	// DefaultStubFileName is the conventional name of the stub file.
	DefaultStubFileName = "module.config.php"
)

// Serializer renders configuration values as PHP literals.
type Serializer interface {
	// ArraySyntax returns the opening and closing array tokens.
	ArraySyntax() (open, close string)
	// Quote renders a string literal.
	Quote(s string) string
	// RenderEntries renders "key => value," lines at the given indent depth,
	// emitting paths under baseDir relative to __DIR__.
	RenderEntries(m *value.Map, depth int, baseDir string) (string, error)
	// Document renders a complete file returning m.
	Document(m *value.Map, baseDir string) (string, error)
}

// FileWriter writes a whole file, optionally under an exclusive lock.
type FileWriter interface {
	WriteFile(path string, data []byte, exclusive bool) error
}

// MultiFileWriter writes a configuration as a stub file plus one sidecar file
// per split key. Settings are plain fields guarded by nothing: configure the
// writer before sharing it between goroutines.
type MultiFileWriter struct {
	splitKeys        []string
	fileNameTemplate string
	stubFileName     string

	serializer Serializer
	files      FileWriter
	logger     *zerolog.Logger
}

// Option configures a MultiFileWriter.
type Option func(*MultiFileWriter)

// WithSerializer replaces the PHP literal serializer.
func WithSerializer(s Serializer) Option {
	return func(w *MultiFileWriter) { w.serializer = s }
}

// WithArrayStyle selects the array syntax of the default serializer.
func WithArrayStyle(style literal.Style) Option {
	return func(w *MultiFileWriter) { w.serializer = literal.NewRenderer(style) }
}

// WithFileWriter replaces the atomic file writer.
func WithFileWriter(f FileWriter) Option {
	return func(w *MultiFileWriter) { w.files = f }
}

// WithLogger sets a fixed logger, also used by the default file writer.
// Without it the logger is taken from the context passed to Write.
func WithLogger(l zerolog.Logger) Option {
	return func(w *MultiFileWriter) { w.logger = &l }
}

// New returns a writer in split-all mode with the default template.
func New(opts ...Option) *MultiFileWriter {
	atomic := fs.NewAtomicWriter()
	w := &MultiFileWriter{
		fileNameTemplate: DefaultFileNameTemplate,
		stubFileName:     DefaultStubFileName,
		serializer:       literal.NewRenderer(literal.StyleBracket),
		files:            atomic,
	}
	for _, opt := range opts {
		opt(w)
	}
	// The default file writer logs through the writer's logger.
	if w.files == FileWriter(atomic) {
		if w.logger != nil {
			atomic.Logger = w.logger.With().Str(xglog.FieldComponent, "fs").Logger()
		} else {
			atomic.Logger = xglog.WithComponent("fs")
		}
	}
	return w
}

// SplitKeys returns the configured split keys. Empty means split-all mode.
func (w *MultiFileWriter) SplitKeys() []string {
	out := make([]string, len(w.splitKeys))
	copy(out, w.splitKeys)
	return out
}

// SetSplitKeys sets the top-level keys to extract. No keys selects split-all
// mode: every top-level key holding a nested mapping is extracted.
func (w *MultiFileWriter) SetSplitKeys(keys ...string) *MultiFileWriter {
	w.splitKeys = append([]string(nil), keys...)
	return w
}

// FileNameTemplate returns the split file name template.
func (w *MultiFileWriter) FileNameTemplate() string {
	return w.fileNameTemplate
}

// SetFileNameTemplate sets the split file name template; "*" is replaced by the key.
func (w *MultiFileWriter) SetFileNameTemplate(template string) *MultiFileWriter {
	w.fileNameTemplate = template
	return w
}

// StubFileName returns the conventional stub file name. Write does not use it.
func (w *MultiFileWriter) StubFileName() string {
	return w.stubFileName
}

// SetStubFileName sets the conventional stub file name.
func (w *MultiFileWriter) SetStubFileName(name string) *MultiFileWriter {
	w.stubFileName = name
	return w
}

// FileNameForKey returns the split file name generated for key: the template
// with "*" replaced by key, in which "-", "/", "\" and " " become "_".
func (w *MultiFileWriter) FileNameForKey(key string) string {
	return fileNameForKey(w.fileNameTemplate, key)
}

// Write is WriteWithLock with the exclusive lock enabled.
func (w *MultiFileWriter) Write(ctx context.Context, stubPath string, cfg *value.Map) error {
	return w.WriteWithLock(ctx, stubPath, cfg, true)
}

// WriteWithLock writes cfg to stubPath, extracting split keys into sibling files
// of the stub. All files are rendered before the first write; split files are
// written in key order and the stub last. The first failing write aborts the
// call, leaving earlier split files on disk. cfg is not modified.
//
// ctx only carries the logger; the operation is not cancellable.
func (w *MultiFileWriter) WriteWithLock(ctx context.Context, stubPath string, cfg *value.Map, exclusive bool) error {
	logger := w.loggerFor(ctx)

	p, err := w.plan(stubPath, cfg)
	if err != nil {
		return fmt.Errorf("plan split files for %q: %w", stubPath, err)
	}

	docs := make([]string, len(p.splits))
	for i, s := range p.splits {
		doc, err := w.serializer.Document(s.value, p.absDir)
		if err != nil {
			return fmt.Errorf("render %q for key %q: %w", s.path, s.key, err)
		}
		docs[i] = doc
	}
	stub, err := w.renderStub(p)
	if err != nil {
		return fmt.Errorf("render stub %q: %w", stubPath, err)
	}

	for i, s := range p.splits {
		if err := w.files.WriteFile(s.path, []byte(docs[i]), exclusive); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldKey, s.key).Str(xglog.FieldPath, s.path).Msg("split file write failed")
			return &WriteError{Path: s.path, Err: err}
		}
		logger.Debug().
			Str(xglog.FieldKey, s.key).
			Str(xglog.FieldFile, s.name).
			Str(xglog.FieldPath, s.path).
			Int(xglog.FieldBytes, len(docs[i])).
			Msg("split file written")
	}

	if err := w.files.WriteFile(stubPath, []byte(stub), exclusive); err != nil {
		logger.Warn().Err(err).Str(xglog.FieldPath, stubPath).Msg("stub file write failed")
		return &WriteError{Path: stubPath, Err: err}
	}

	logger.Info().
		Str(xglog.FieldEvent, "config.written").
		Str(xglog.FieldStubPath, stubPath).
		Str(xglog.FieldDir, p.dir).
		Int(xglog.FieldSplitCount, len(p.splits)).
		Bool(xglog.FieldSplitAll, p.splitAll).
		Bool(xglog.FieldExclusive, exclusive).
		Msg("configuration written")
	return nil
}

// renderStub renders the include lines followed by the remaining entries.
func (w *MultiFileWriter) renderStub(p *plan) (string, error) {
	open, close := w.serializer.ArraySyntax()

	var b strings.Builder
	b.WriteString(literal.Preamble)
	b.WriteString("return " + open + "\n")
	for _, s := range p.splits {
		fmt.Fprintf(&b, "%s%s => include %s . %s,\n",
			literal.Indent, w.serializer.Quote(s.key), literal.DirToken, w.serializer.Quote("/"+s.name))
	}

	rest, err := w.serializer.RenderEntries(p.remainder, 1, p.absDir)
	if err != nil {
		return "", err
	}
	b.WriteString(rest)
	b.WriteString(close + ";\n")
	return b.String(), nil
}

func (w *MultiFileWriter) loggerFor(ctx context.Context) zerolog.Logger {
	if w.logger != nil {
		return xglog.WithContext(ctx, *w.logger)
	}
	return xglog.WithComponentFromContext(ctx, "splitwriter")
}
