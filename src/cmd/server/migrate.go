package main

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/cfc-rewards/src/internal/adapter/repository/implementations"
	"github.com/api-sage/cfc-rewards/src/internal/config"
	"github.com/api-sage/cfc-rewards/src/internal/logger"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Init(cfg.LogLevel); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := implementations.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			logger.Info("migrations completed successfully", logger.Fields{
				"dir": cfg.MigrationsDir,
			})
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall migration timeout")
	return cmd
}
