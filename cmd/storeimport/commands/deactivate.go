package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(deactivateCmd)
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <store id>...",
	Short: "Removes stores from every future candidate set.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid store id %q", arg)
			}

			if err := repo.Deactivate(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to deactivate store %d: %w", id, err)
			}

			logger.Info("store deactivated", zap.Int("id", id))
		}

		return nil
	},
}
