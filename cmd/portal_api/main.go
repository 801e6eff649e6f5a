package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/minjae-ko/localtax-portal/internal/content"
	"github.com/minjae-ko/localtax-portal/internal/feedback"
	"github.com/minjae-ko/localtax-portal/internal/feedback/fsblob"
	"github.com/minjae-ko/localtax-portal/internal/feedback/inmem"
	"github.com/minjae-ko/localtax-portal/internal/feedback/pg"
	"github.com/minjae-ko/localtax-portal/internal/navigation"
	"github.com/minjae-ko/localtax-portal/internal/router"
	"github.com/minjae-ko/localtax-portal/internal/search"
	searchfactory "github.com/minjae-ko/localtax-portal/internal/search/factory"
	"github.com/minjae-ko/localtax-portal/internal/server"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	serverCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	repo := content.NewFSRepository(cfg.ContentDir)
	registry := content.NewRegistry(repo)

	tree, err := navigation.LoadFile(cfg.NavConfig)
	if err != nil {
		slog.Error("Failed to load navigation config", "path", cfg.NavConfig, "error", err)
		os.Exit(1)
	}
	sequencer := navigation.NewSequencer(tree)

	searcher, err := searchfactory.NewSearcher(ctx, &cfg.SearchConfig, search.NewContentCorpus(repo, tree))
	if err != nil {
		slog.Error("Failed to create searcher", "error", err)
		os.Exit(1)
	}

	comments, attachments, blobs, cleanup, err := setupStores(ctx, cfg)
	if err != nil {
		slog.Error("Failed to set up feedback stores", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	e := echo.New()
	s := server.NewServer(e, serverCfg)

	router.NewContentRouter(e, repo, registry, tree, sequencer).Bind()
	router.NewSearchRouter(e, searcher).Bind()
	router.NewCommentRouter(e, comments).Bind()
	router.NewAttachmentRouter(e, attachments, blobs).Bind()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func setupStores(ctx context.Context, cfg *PortalConfig) (feedback.CommentStore, feedback.AttachmentStore, feedback.BlobStore, func(), error) {
	if cfg.PgConnString == "" {
		slog.Info("PG_CONNECTION_STRING not set, using in-memory feedback store")
		store := inmem.NewStore()
		return store, store, store, func() {}, nil
	}

	blobs, err := fsblob.NewStore(cfg.BlobDir)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.PgConnString})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	store := pg.NewStore(pool, blobs)
	return store, store, blobs, pool.Close, nil
}
