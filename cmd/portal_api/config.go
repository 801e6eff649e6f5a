package main

import (
	"log/slog"
	"os"

	searchfactory "github.com/minjae-ko/localtax-portal/internal/search/factory"
	"github.com/minjae-ko/localtax-portal/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type PortalConfig struct {
	ContentDir   string
	NavConfig    string
	BlobDir      string
	PgConnString string
	SearchConfig searchfactory.Config
}

func (as *AppConfig) Load() (*PortalConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/portal_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	searchCfg, err := searchfactory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load search configuration from environment", "error", err)
		return nil, err
	}

	contentDir := os.Getenv("CONTENT_DIR")
	if contentDir == "" {
		contentDir = "content"
	}
	navConfig := os.Getenv("NAV_CONFIG")
	if navConfig == "" {
		navConfig = "config/navigation.yaml"
	}
	blobDir := os.Getenv("BLOB_DIR")
	if blobDir == "" {
		blobDir = "data/attachments"
	}

	return &PortalConfig{
		ContentDir:   contentDir,
		NavConfig:    navConfig,
		BlobDir:      blobDir,
		PgConnString: os.Getenv("PG_CONNECTION_STRING"),
		SearchConfig: *searchCfg,
	}, nil
}
