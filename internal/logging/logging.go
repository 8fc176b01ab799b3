// Package logging builds the slog logger used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Config selects the level and sinks of a logger.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string
	// Terminal receives text records. Nil means os.Stderr.
	Terminal io.Writer
	// File, when set, also receives JSON records appended to that path.
	File string
}

// ParseLevel maps a level name onto slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	name = strings.TrimSpace(name)
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", name)
	}
	return level, nil
}

// New returns the logger together with a close func for the file sink.
func New(cfg Config) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	terminal := cfg.Terminal
	if terminal == nil {
		terminal = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(terminal, opts)}
	closeFn := func() error { return nil }

	if path := strings.TrimSpace(cfg.File); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
		closeFn = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
