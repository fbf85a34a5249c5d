package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig controls where the client writes its log.
type FileConfig struct {
	Dir   string
	Name  string
	Debug bool
}

// CharmLogger adapts *log.Logger from charmbracelet/log to Logger.
type CharmLogger struct {
	l *log.Logger
}

// NewCharmLogger wraps an existing charm logger.
func NewCharmLogger(l *log.Logger) *CharmLogger {
	return &CharmLogger{l: l}
}

// NewFileLogger returns a logger writing to a size-rotated file under
// cfg.Dir. With cfg.Debug the output is mirrored to stderr and the level
// drops to debug; otherwise nothing reaches the terminal, so the interactive
// prompt stays clean.
func NewFileLogger(cfg FileConfig) (*CharmLogger, io.Closer, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, nil, err
	}

	name := cfg.Name
	if name == "" {
		name = "daylog.log"
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var w io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, fileWriter)
	}

	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "daylog",
	})

	return NewCharmLogger(l), fileWriter, nil
}

func (c *CharmLogger) Debug(_ context.Context, msg string, args ...any) {
	c.l.Debug(msg, args...)
}

func (c *CharmLogger) Info(_ context.Context, msg string, args ...any) {
	c.l.Info(msg, args...)
}

func (c *CharmLogger) Warn(_ context.Context, msg string, args ...any) {
	c.l.Warn(msg, args...)
}

func (c *CharmLogger) Error(_ context.Context, msg string, args ...any) {
	c.l.Error(msg, args...)
}

func (c *CharmLogger) With(args ...any) Logger {
	return &CharmLogger{l: c.l.With(args...)}
}
