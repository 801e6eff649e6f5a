package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minjae-ko/localtax-portal/internal/feedback/pg"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(migrateCmd())
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create the feedback tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPipelineConfig()
			if err != nil {
				return err
			}

			pool, err := pg.NewConnectionPool(cmd.Context(), pg.PoolConfig{ConnStr: cfg.PgConnString})
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			return pg.Migrate(cmd.Context(), pool)
		},
	}
}
