package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/xw1nchester/dealscan-backend/internal/config"
	"github.com/xw1nchester/dealscan-backend/internal/logging"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	storedb "github.com/xw1nchester/dealscan-backend/internal/market/store/db"
	pgclient "github.com/xw1nchester/dealscan-backend/pkg/client/postgresql"
	"go.uber.org/zap"
)

type repository interface {
	Upsert(ctx context.Context, locations []store.Location) (int, error)
	Deactivate(ctx context.Context, id int) error
}

var (
	configPath string

	logger *zap.Logger
	pool   *pgxpool.Pool
	repo   repository
)

var rootCmd = &cobra.Command{
	Use:           "storeimport",
	Short:         "storeimport seeds and maintains the store locations table.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			configPath = os.Getenv("CONFIG_PATH")
		}
		if configPath == "" {
			return errors.New("config path is empty, use --config or CONFIG_PATH")
		}

		cfg := config.MustLoadByPath(configPath)

		var err error
		if logger, err = logging.New(cfg.Env); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		if pool, err = pgclient.NewClient(cmd.Context(), cfg.PostgreSQL); err != nil {
			return err
		}

		repo = storedb.New(pool, logger)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pool != nil {
			pool.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
