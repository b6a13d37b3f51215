// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Command cfgsplit writes a configuration document as a PHP stub file plus one
// sidecar file per split top-level key.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ManuGH/cfgsplit/internal/config"
	"github.com/ManuGH/cfgsplit/internal/log"
	pfs "github.com/ManuGH/cfgsplit/internal/platform/fs"
	"github.com/ManuGH/cfgsplit/internal/source"
	"github.com/ManuGH/cfgsplit/internal/splitwriter"
	"github.com/ManuGH/cfgsplit/internal/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "cfgsplit: %v\n", err)
	os.Exit(1)
}

type options struct {
	in       string
	out      string
	settings string
	split    string
	template string
	syntax   string
	noLock   bool
	logLevel string
	version  bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	flags := flag.NewFlagSet("cfgsplit", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&o.in, "in", "", "input document (.yaml, .yml, .json, .toml, .hcl)")
	flags.StringVar(&o.out, "out", "", "stub file path, or an existing directory to write the stub file into")
	flags.StringVar(&o.settings, "config", "", "optional settings file (YAML)")
	flags.StringVar(&o.split, "split", "", "comma separated top-level keys to split (default: every nested mapping)")
	flags.StringVar(&o.template, "template", "", "split file name template, \"*\" is replaced by the key")
	flags.StringVar(&o.syntax, "syntax", "", "array syntax: bracket or legacy")
	flags.BoolVar(&o.noLock, "no-lock", false, "do not take an exclusive lock while writing")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&o.version, "version", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	if o.version {
		return o, nil
	}
	if flags.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if o.in == "" || o.out == "" {
		return o, errors.New("both -in and -out are required")
	}
	return o, nil
}

// loadSettings applies defaults, the settings file, the environment and the
// flags, in increasing precedence.
func loadSettings(o options) (config.Settings, error) {
	s := config.Defaults()
	if o.settings != "" {
		fileSettings, err := config.LoadFile(o.settings)
		if err != nil {
			return s, fmt.Errorf("load settings %s: %w", o.settings, err)
		}
		s.Merge(fileSettings)
	}
	config.ApplyEnv(&s)

	flagSettings := config.Settings{
		FileTemplate: o.template,
		ArraySyntax:  o.syntax,
		LogLevel:     o.logLevel,
	}
	for _, k := range strings.Split(o.split, ",") {
		if k = strings.TrimSpace(k); k != "" {
			flagSettings.SplitKeys = append(flagSettings.SplitKeys, k)
		}
	}
	if o.noLock {
		lock := false
		flagSettings.ExclusiveLock = &lock
	}
	s.Merge(flagSettings)

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// earlyLogLevel returns the log level given by flag or environment, ahead of
// the settings file.
func earlyLogLevel(o options) string {
	if o.logLevel != "" {
		return o.logLevel
	}
	if env := strings.TrimSpace(os.Getenv(config.EnvLogLevel)); env != "" {
		return env
	}
	return config.Defaults().LogLevel
}

// stubPath appends the stub file name when out names an existing directory.
func stubPath(out, stubName string) string {
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return filepath.Join(out, stubName)
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, stubName)
	}
	return out
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.version {
		_, err := fmt.Fprintln(stdout, version.String())
		return err
	}
	// Settings loading logs where each value came from, so the level known
	// before loading already applies.
	log.Configure(log.Config{Level: earlyLogLevel(o), Output: stderr, Console: true})
	settings, err := loadSettings(o)
	if err != nil {
		return err
	}

	log.Configure(log.Config{Level: settings.LogLevel, Output: stderr, Console: true})
	runID := uuid.NewString()
	base := log.Base()
	ctx = log.ContextWithRunID(base.WithContext(ctx), runID)
	logger := log.WithContext(ctx, log.WithComponent("cli"))

	if err := pfs.IsRegularFile(o.in); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	cfg, err := source.Load(o.in)
	if err != nil {
		return err
	}

	style, err := settings.Style()
	if err != nil {
		return err
	}
	w := splitwriter.New(splitwriter.WithArrayStyle(style)).
		SetSplitKeys(settings.SplitKeys...).
		SetFileNameTemplate(settings.FileTemplate).
		SetStubFileName(settings.StubFileName)

	target := stubPath(o.out, w.StubFileName())
	logger.Debug().
		Str(log.FieldInput, o.in).
		Str(log.FieldStubPath, target).
		Strs("split_keys", settings.SplitKeys).
		Str(log.FieldSyntax, style.String()).
		Msg("writing configuration")

	return w.WriteWithLock(ctx, target, cfg, settings.Lock())
}
