package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/specialistvlad/hrggo/internal/archive"
	"github.com/specialistvlad/hrggo/internal/ctxlog"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	fs     afero.Fs
}

// NewApp is the constructor for the main application. Command output goes to
// outW and logs to logW. A nil fs means the OS filesystem.
func NewApp(outW, logW io.Writer, cfg *Config, fs afero.Fs) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return &App{outW: outW, logger: logger, config: cfg, fs: fs}
}

// Context attaches the application's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Config returns the configuration the app was built with.
func (a *App) Config() *Config {
	return a.config
}

// Fs returns the filesystem documents are read from and written to.
func (a *App) Fs() afero.Fs {
	return a.fs
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.outW, format, args...)
}

// openArchive opens the configured archive. The archive always lives on the
// OS filesystem since SQLite needs a real file.
func (a *App) openArchive(ctx context.Context) (*archive.Archive, error) {
	arc, err := archive.Open(ctx, a.config.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", a.config.ArchivePath, err)
	}
	return arc, nil
}
