package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fintrack/backend/pkg/auth"
	"github.com/fintrack/backend/pkg/models"
	"github.com/spf13/cobra"
)

func newTrialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Manage user trials",
	}

	cmd.AddCommand(newTrialsExpireCommand())

	return cmd
}

func newTrialsExpireCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Expire all trials that have lapsed",
		Long:  "Expire all trials that have lapsed and reset the trials of allow-listed users. Users are otherwise only updated when they log in or make a request.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			setupLogging(cfg, os.Stderr)

			if err := connect(cfg); err != nil {
				return err
			}
			defer disconnect()

			policy := auth.TrialPolicy{
				Days:      cfg.TrialDays,
				AllowList: cfg.TrialAllowList,
			}

			changed, err := policy.Sweep(models.DB, time.Now())
			if err != nil {
				return fmt.Errorf("sweeping trials: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d users updated\n", changed)
			return nil
		},
	}
}
