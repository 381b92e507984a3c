// Package logging wires structured, leveled logging across the bridge
// using go.uber.org/zap: a zap logger is constructed once at process
// start and named children are handed to each subsystem. LOG_LEVEL,
// LOG_COMPONENT_LEVELS, and LOG_FILE control verbosity and output.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Registry owns the root zap logger plus per-component atomic levels so
// LOG_COMPONENT_LEVELS overrides can be applied without reconstructing the
// whole logging pipeline.
type Registry struct {
	root       *zap.Logger
	rootLevel  zap.AtomicLevel
	componentLevels map[string]zap.AtomicLevel
}

// NewRegistry builds a Registry from the environment variables below.
// LOG_FILE, if set, tees output to that file in addition to stderr.
func NewRegistry() (*Registry, error) {
	rootLevel := zap.NewAtomicLevel()
	if err := rootLevel.UnmarshalText([]byte(levelOrDefault(os.Getenv("LOG_LEVEL"), "INFO"))); err != nil {
		return nil, fmt.Errorf("logging: invalid LOG_LEVEL: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	writers := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open LOG_FILE %s: %w", logFile, err)
		}
		writers = append(writers, zapcore.AddSync(f))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(writers...),
		rootLevel,
	)

	reg := &Registry{
		root:            zap.New(core),
		rootLevel:       rootLevel,
		componentLevels: map[string]zap.AtomicLevel{},
	}

	for _, pair := range strings.Split(os.Getenv("LOG_COMPONENT_LEVELS"), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		comp, lvl, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		al := zap.NewAtomicLevel()
		if err := al.UnmarshalText([]byte(strings.TrimSpace(lvl))); err != nil {
			return nil, fmt.Errorf("logging: invalid level in LOG_COMPONENT_LEVELS for %q: %w", comp, err)
		}
		reg.componentLevels[strings.TrimSpace(comp)] = al
	}

	return reg, nil
}

// For returns a named logger for a component, honoring any
// LOG_COMPONENT_LEVELS override for that component's name.
func (r *Registry) For(component string) *zap.Logger {
	logger := r.root.Named(component)
	if al, ok := r.componentLevels[component]; ok {
		return logger.WithOptions(zap.IncreaseLevel(al))
	}
	return logger
}

func levelOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
