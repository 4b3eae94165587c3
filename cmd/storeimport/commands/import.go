package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"go.uber.org/zap"
)

var dryRun bool

func init() {
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without writing to the database")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <stores.csv>",
	Short: "Inserts the stores of a csv file, overwriting rows with the same id.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		locations, err := store.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if dryRun {
			logger.Info("dry run, nothing written", zap.Int("stores", len(locations)))
			return nil
		}

		n, err := repo.Upsert(cmd.Context(), locations)
		if err != nil {
			return fmt.Errorf("imported %d of %d stores: %w", n, len(locations), err)
		}

		logger.Info("stores imported", zap.String("file", args[0]), zap.Int("stores", n))

		return nil
	},
}
