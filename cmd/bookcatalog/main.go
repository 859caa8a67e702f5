// Package main is the entry point for the bookcatalog server.
//
// bookcatalog serves a JSON HTTP API to create, read, update and delete
// books held in memory. Configuration is read from CLI flags, a .env file in
// the working directory, $PORT and an optional HuJSON config file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lmittmann/tint"
	"github.com/maruel/bookcatalog/internal/catalog"
	"github.com/maruel/bookcatalog/internal/server"
	"github.com/maruel/bookcatalog/internal/server/handlers"
	"github.com/maruel/bookcatalog/internal/server/ipgeo"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "bookcatalog: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	env, err := loadDotEnv(".env")
	if err != nil {
		return err
	}
	s, err := parseSettings(os.Args[1:], os.Getenv, env)
	if err != nil {
		return err
	}
	if s.version {
		printVersion()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	if err := ll.UnmarshalText([]byte(s.server.LogLevel)); err != nil {
		return fmt.Errorf("unknown log level: %q", s.server.LogLevel)
	}
	slog.SetDefault(newLogger(ll))

	seeds := catalog.DefaultSeeds()
	if s.server.Seed != "" {
		if seeds, err = catalog.LoadSeeds(s.server.Seed); err != nil {
			return err
		}
	}
	books, err := catalog.New(seeds)
	if err != nil {
		return fmt.Errorf("failed to load seed books: %w", err)
	}

	if s.devRestart {
		if err := watchExecutable(ctx, stop); err != nil {
			return fmt.Errorf("failed to watch executable: %w", err)
		}
	}

	var geoChecker *ipgeo.Checker
	if s.server.GeoDB != "" {
		if geoChecker, err = ipgeo.Open(s.server.GeoDB); err != nil {
			return err
		}
		defer func() { _ = geoChecker.Close() }()
		slog.InfoContext(ctx, "IP geolocation enabled", "db", s.server.GeoDB)
	}

	buildVersion, buildGoVersion, buildRevision, buildDirty := getBuildInfo()
	cfg := &handlers.Config{
		MaxRequestBodyBytes: s.server.MaxRequestBodyBytes,
		Version:             buildVersion,
		GoVersion:           buildGoVersion,
		Revision:            buildRevision,
		Dirty:               buildDirty,
	}
	httpServer := &http.Server{
		Addr:              s.server.HTTP,
		Handler:           server.NewRouter(&handlers.Services{Catalog: books}, cfg, geoChecker),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", s.server.HTTP, "books", books.Len(), "version", buildVersion, "config", s.configPath)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}

func newLogger(level slog.Leveler) *slog.Logger {
	// systemd adds its own timestamps.
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:       level,
		TimeFormat:  "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:     !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: replaceAttr(underSystemd),
	}))
}

// replaceAttr drops attributes that carry no information.
func replaceAttr(dropTime bool) func(groups []string, a slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if dropTime && a.Key == slog.TimeKey && len(groups) == 0 {
			return slog.Attr{}
		}
		if a.Key == "ip" {
			if v := a.Value.String(); v == "127.0.0.1" || v == "::1" {
				return slog.Attr{}
			}
		}
		skip := false
		switch t := a.Value.Any().(type) {
		case string:
			skip = t == ""
		case bool:
			skip = !t
		case uint64:
			skip = t == 0
		case int64:
			skip = t == 0
		case float64:
			skip = t == 0
		case time.Time:
			skip = t.IsZero()
		case time.Duration:
			skip = t == 0
		case nil:
			skip = true
		}
		if skip {
			return slog.Attr{}
		}
		return a
	}
}

func printVersion() {
	version, goVersion, revision, dirty := getBuildInfo()
	fmt.Printf("bookcatalog %s\n", version)
	fmt.Printf("  Go version: %s\n", goVersion)
	fmt.Printf("  Revision:   %s\n", revision)
	if dirty {
		fmt.Printf("  Modified:   true\n")
	}
}

func getBuildInfo() (version, goVersion, revision string, dirty bool) {
	version = "unknown"
	goVersion = "unknown"
	revision = "unknown"
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	version = info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	goVersion = info.GoVersion
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return
}

// watchExecutable calls stop when the current executable is modified, so a
// rebuild during development triggers a graceful shutdown.
func watchExecutable(ctx context.Context, stop context.CancelFunc) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(exe); err != nil {
		_ = w.Close()
		return err
	}
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Chmod) {
					slog.InfoContext(ctx, "Executable modified, initiating shutdown")
					stop()
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching executable", "err", err)
			}
		}
	}()
	return nil
}
