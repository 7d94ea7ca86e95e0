package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rockymountnc/licensetracker/internal/config"
	"github.com/rockymountnc/licensetracker/internal/seeder"
)

var seedOpts = seeder.DefaultOptions()

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample data",
	Long: `Seed fills the configured database with linked sample data:
catalog tables, users (password "password123"), software records and
comments. Intended for development and demo environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, cleanup, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := seeder.New(repo, seedOpts.Seed).Run(context.Background(), seedOpts); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		slog.Info("Seed complete",
			slog.Int("users", seedOpts.Users),
			slog.Int("software", seedOpts.Software),
			slog.Int("comments", seedOpts.Comments),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedOpts.Users, "users", seedOpts.Users, "number of users to create")
	seedCmd.Flags().IntVar(&seedOpts.Software, "software", seedOpts.Software, "number of software records to create")
	seedCmd.Flags().IntVar(&seedOpts.Comments, "comments", seedOpts.Comments, "number of comments to create")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(seedCmd)
}
