// CLAUDE:SUMMARY CLI entry point for schedimport: one-shot preview to JSON, HTTP upload server, or MCP over stdio.
// Command schedimport previews race weekend schedule imports.
//
// Usage:
//
//	schedimport -type indycar-schedule -file weekend.pdf      # parse and print JSON
//	schedimport -type department-schedule -file crew.xlsx
//	schedimport -config schedimport.yaml -serve               # HTTP upload API
//	schedimport -config schedimport.yaml -mcp                 # MCP tools over stdio
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/schedimport/importsvc"
	"github.com/hazyhaar/schedimport/kit"
	"github.com/hazyhaar/schedimport/schedparse"
)

var version = "dev"

func main() {
	// .env values must be in the environment before flag defaults read it.
	envErr := godotenv.Load()

	configPath := flag.String("config", env("SCHEDIMPORT_CONFIG", ""), "path to schedimport.yaml config file")
	filePath := flag.String("file", "", "document to parse (one-shot mode)")
	importType := flag.String("type", string(schedparse.ImportTrack), "import type: indycar-schedule, department-schedule")
	kind := flag.String("kind", "", "document kind override: pdf, spreadsheet")
	serve := flag.Bool("serve", false, "run the HTTP upload API")
	mcpStdio := flag.Bool("mcp", false, "serve MCP tools over stdio")
	logLevel := flag.String("log-level", env("SCHEDIMPORT_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("schedimport: .env ignored", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := resolveConfig(*configPath)
	if err != nil {
		logger.Error("schedimport: config", "error", err)
		os.Exit(1)
	}
	cfg.Logger = logger

	switch {
	case *serve:
		err = runServer(ctx, logger, cfg)
	case *mcpStdio:
		err = runMCP(ctx, logger, cfg)
	case *filePath != "":
		err = runOnce(ctx, cfg, *filePath, *importType, *kind)
	default:
		fmt.Fprintln(os.Stderr, "usage: schedimport -file <doc> [-type indycar-schedule|department-schedule] | -serve | -mcp [-config <file>]")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("schedimport: fatal", "error", err)
		os.Exit(1)
	}
}

func resolveConfig(path string) (*importsvc.Config, error) {
	if path != "" {
		return importsvc.LoadConfigFile(path)
	}
	return &importsvc.Config{
		Listen:      env("SCHEDIMPORT_LISTEN", ""),
		LogDB:       env("SCHEDIMPORT_LOG_DB", ""),
		RedisURL:    env("SCHEDIMPORT_REDIS_URL", ""),
		CORSOrigins: splitList(env("SCHEDIMPORT_CORS_ORIGINS", "")),
	}, nil
}

// runOnce parses one file and prints the preview. No cache or run log.
func runOnce(ctx context.Context, cfg *importsvc.Config, path, importType, kind string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	cfg.LogDB, cfg.RedisURL, cfg.CacheTTL = "", "", -1
	svc := importsvc.New(*cfg)

	p, err := svc.Preview(kit.WithTransport(ctx, "cli"), importsvc.Request{
		ImportType: schedparse.ImportType(importType),
		FileName:   path,
		Kind:       schedparse.SourceKind(kind),
		Data:       data,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func runServer(ctx context.Context, logger *slog.Logger, cfg *importsvc.Config) error {
	svc, err := importsvc.Open(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer svc.Close()

	go cleanupLoop(ctx, logger, svc)

	srv := &http.Server{
		Addr:              listenAddr(cfg),
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("schedimport: server starting", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("schedimport: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("schedimport: server stopped")
	return nil
}

func runMCP(ctx context.Context, logger *slog.Logger, cfg *importsvc.Config) error {
	svc, err := importsvc.Open(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer svc.Close()

	srv := mcp.NewServer(&mcp.Implementation{Name: "schedimport", Version: version}, nil)
	svc.RegisterMCP(srv)

	logger.Info("schedimport: mcp on stdio")
	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}

// cleanupLoop prunes the run log once at start and then daily.
func cleanupLoop(ctx context.Context, logger *slog.Logger, svc *importsvc.Service) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if n, err := svc.CleanupRuns(ctx); err != nil {
			logger.Warn("schedimport: run cleanup", "error", err)
		} else if n > 0 {
			logger.Info("schedimport: run cleanup", "deleted", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func listenAddr(cfg *importsvc.Config) string {
	if cfg.Listen != "" {
		return cfg.Listen
	}
	return ":" + env("PORT", "8086")
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
