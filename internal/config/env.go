// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ManuGH/cfgsplit/internal/log"
)

// Environment variables overriding the settings file.
const (
	EnvSplitKeys     = "CFGSPLIT_SPLIT_KEYS"
	EnvFileTemplate  = "CFGSPLIT_FILE_TEMPLATE"
	EnvStubFileName  = "CFGSPLIT_STUB_FILE_NAME"
	EnvArraySyntax   = "CFGSPLIT_ARRAY_SYNTAX"
	EnvExclusiveLock = "CFGSPLIT_EXCLUSIVE_LOCK"
	EnvLogLevel      = "CFGSPLIT_LOG_LEVEL"
)

// ApplyEnv overlays CFGSPLIT_* environment variables onto s.
func ApplyEnv(s *Settings) {
	s.SplitKeys = ParseList(EnvSplitKeys, s.SplitKeys)
	s.FileTemplate = ParseString(EnvFileTemplate, s.FileTemplate)
	s.StubFileName = ParseString(EnvStubFileName, s.StubFileName)
	s.ArraySyntax = ParseString(EnvArraySyntax, s.ArraySyntax)
	lock := ParseBool(EnvExclusiveLock, s.Lock())
	s.ExclusiveLock = &lock
	s.LogLevel = ParseString(EnvLogLevel, s.LogLevel)
}

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

// parseStringWithLogger reads an environment variable with custom logger.
func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value == "" {
			logger.Debug().
				Str("key", key).
				Str("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseList reads a comma separated list. Blank items are dropped.
func ParseList(key string, defaultValue []string) []string {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		logger.Debug().
			Str("key", key).
			Strs("default", defaultValue).
			Str("source", "default").
			Msg("using default value")
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	logger.Debug().
		Str("key", key).
		Strs("value", out).
		Str("source", "environment").
		Msg("using environment variable")
	return out
}

// ParseBool reads a boolean from environment variable or returns default value.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok {
		if v == "" {
			logger.Debug().
				Str("key", key).
				Bool("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			logger.Debug().
				Str("key", key).
				Bool("value", true).
				Str("source", "environment").
				Msg("using environment variable")
			return true
		case "false", "0", "no":
			logger.Debug().
				Str("key", key).
				Bool("value", false).
				Str("source", "environment").
				Msg("using environment variable")
			return false
		default:
			logger.Warn().
				Str("key", key).
				Str("value", v).
				Bool("default", defaultValue).
				Msg("invalid boolean in environment variable, using default")
			return defaultValue
		}
	}
	logger.Debug().
		Str("key", key).
		Bool("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}
