package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/evalstudio/eval-studio/internal/dataset"
	"github.com/evalstudio/eval-studio/internal/judge"
	"github.com/evalstudio/eval-studio/internal/router"
	"github.com/evalstudio/eval-studio/internal/server"
	"github.com/evalstudio/eval-studio/internal/store/persist"
	pkgserver "github.com/evalstudio/eval-studio/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appCfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	manifest, err := dataset.LoadManifest(appCfg.ManifestPath)
	if err != nil {
		slog.Error("Failed to load dataset manifest", "error", err, "path", appCfg.ManifestPath)
		os.Exit(1)
	}
	loader := dataset.NewStaticLoader(manifest, appCfg.DatasetBaseURL)

	ctx := context.Background()
	persister, err := persist.New(ctx, appCfg.Storage)
	if err != nil {
		slog.Error("Failed to create persister", "error", err, "type", appCfg.Storage.Type)
		os.Exit(1)
	}

	s := server.NewServer(sCfg, pkgserver.NewOkHealthChecker())

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Eval Studio API is running")
	})

	wr := router.NewWorkspaceRouter(s.Echo, router.Deps{
		Samples:   loader.Load,
		Persister: persister,
		Fetcher:   judge.NewFetcher(&http.Client{Timeout: 15 * time.Second}),
		OpenRoot:  openRoot,
	})
	wr.Bind()

	slog.Info("Starting eval-studio", "port", sCfg.Port, "storage", appCfg.Storage.Type, "samples", len(manifest.Entries))

	if err := s.Start(); err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}

// openRoot grants access to a local directory tree for dataset loading.
func openRoot(path string) (fs.FS, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	return os.DirFS(path), nil
}
