package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/evalstudio/eval-studio/internal/store/persist"
	"github.com/evalstudio/eval-studio/pkg/config/env"
	"github.com/evalstudio/eval-studio/pkg/stringsutil"
)

const (
	defaultManifestPath = "configs/manifest.yaml"
	defaultDataDir      = "data"
)

type AppConfig struct {
	ManifestPath   string
	DatasetBaseURL string
	Storage        persist.Config
}

func LoadAppConfig() (*AppConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("APP_ENV"), "cmd/evalstudio/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	manifestPath := os.Getenv("MANIFEST_PATH")
	if manifestPath == "" {
		manifestPath = defaultManifestPath
	}

	cfg := &AppConfig{
		ManifestPath:   manifestPath,
		DatasetBaseURL: os.Getenv("DATASET_BASE_URL"),
		Storage:        loadStorageConfig(),
	}
	return cfg, nil
}

func loadStorageConfig() persist.Config {
	storageType := persist.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = persist.File
	}

	cfg := persist.Config{Type: storageType}

	switch storageType {
	case persist.File:
		cfg.Dir = os.Getenv("DATA_DIR")
		if cfg.Dir == "" {
			cfg.Dir = defaultDataDir
		}

	case persist.PG:
		cfg.ConnStr = os.Getenv("PG_CONNECTION_STRING")

	case persist.ES:
		addresses := stringsutil.RemoveEmptyStrings(strings.Split(os.Getenv("ES_ADDRESSES"), ","))
		cfg.Es = &persist.ESConfig{
			Addresses: addresses,
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
	}

	return cfg
}
