package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/minjae-ko/localtax-portal/internal/content"
	"github.com/minjae-ko/localtax-portal/internal/feedback/fsblob"
	"github.com/minjae-ko/localtax-portal/internal/feedback/pg"
	"github.com/minjae-ko/localtax-portal/internal/pipeline"
	"github.com/minjae-ko/localtax-portal/pkg/config/env"
)

var (
	dryRun bool
	noPush bool
)

var rootCmd = &cobra.Command{
	Use:   "feedback-pipeline",
	Short: "applies user feedback comments to the content repository",
	Example: `feedback-pipeline
feedback-pipeline --dry-run
feedback-pipeline db migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig()
		if err != nil {
			return err
		}

		blobs, err := fsblob.NewStore(cfg.BlobDir)
		if err != nil {
			return fmt.Errorf("failed to open blob store: %w", err)
		}

		pool, err := pg.NewConnectionPool(cmd.Context(), pg.PoolConfig{ConnStr: cfg.PgConnString})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
		store := pg.NewStore(pool, blobs)

		guidelines, err := loadGuidelines(cfg.GuidelinesPath)
		if err != nil {
			return err
		}

		repo := content.NewFSRepository(cfg.ContentDir)
		agent := pipeline.NewCLIAgent(cfg.RepoRoot)
		workspace := pipeline.NewGitWorkspace(cfg.RepoRoot, cfg.ContentDir, !noPush)

		runner := pipeline.NewRunner(store, store, blobs, repo, agent, workspace, guidelines, slog.Default())
		runner.DryRun = dryRun

		_, err = runner.Run(cmd.Context())
		return err
	},
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compose instructions without invoking the agent or committing")
	rootCmd.Flags().BoolVar(&noPush, "no-push", false, "commit locally without pushing")

	rootCmd.AddCommand(dbCmd)
	cobra.EnableCommandSorting = false
}

type pipelineConfig struct {
	RepoRoot       string
	ContentDir     string
	BlobDir        string
	GuidelinesPath string
	PgConnString   string
}

func loadPipelineConfig() (*pipelineConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/feedback_pipeline/.env"); err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("PG_CONNECTION_STRING")
	if connStr == "" {
		return nil, fmt.Errorf("PG_CONNECTION_STRING environment variable is not set")
	}

	repoRoot := os.Getenv("REPO_ROOT")
	if repoRoot == "" {
		repoRoot = "."
	}
	contentDir := os.Getenv("CONTENT_DIR")
	if contentDir == "" {
		contentDir = "content"
	}
	blobDir := os.Getenv("BLOB_DIR")
	if blobDir == "" {
		blobDir = "data/attachments"
	}
	guidelinesPath := os.Getenv("GUIDELINES_PATH")
	if guidelinesPath == "" {
		guidelinesPath = "content/MDX_GUIDELINES.md"
	}

	return &pipelineConfig{
		RepoRoot:       repoRoot,
		ContentDir:     contentDir,
		BlobDir:        blobDir,
		GuidelinesPath: guidelinesPath,
		PgConnString:   connStr,
	}, nil
}

func loadGuidelines(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Guidelines file not found, continuing without it", "path", path)
			return "", nil
		}
		return "", fmt.Errorf("failed to read guidelines: %w", err)
	}
	return string(raw), nil
}
