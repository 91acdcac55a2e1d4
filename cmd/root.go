package cmd

import (
	"fmt"
	"os"

	"kjejekaj/internal/core/logger"
	"kjejekaj/internal/database"
	"kjejekaj/internal/database/migration"
	"kjejekaj/internal/database/seed"

	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("dir")

		err := migration.Migrate(
			dbURL,
			fmt.Sprintf("file://%s", migrationDir),
			logger.NewLogger(),
		)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the database and load test fixtures.",
	Long:  `Development helper: empties all domain tables and loads the sample warehouse, camp and tools.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := database.NewPostgresConnection(os.Getenv("DATABASE_URL"))
		if err != nil {
			return err
		}
		defer db.Close()

		if err := seed.Fill(db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}

		return nil
	},
}

func Execute() {
	rootCmd := &cobra.Command{
		Use:   "kjejekaj",
		Short: "KjeJeKaj inventory service",
	}
	MigrateCmd.Flags().String("dir", "./migrations", "Directory containing the migration files")
	rootCmd.AddCommand(MigrateCmd)
	rootCmd.AddCommand(SeedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
