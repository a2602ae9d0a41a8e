package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkowalik/fridgekeep/internal/config"
	"github.com/mkowalik/fridgekeep/internal/database"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display row counts for users, products and issue reports.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint:errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Users: %d\n", stats.Users)
		fmt.Printf("Fridges: %d\n", stats.Fridges)
		fmt.Printf("Products: %d (%d active, %d given away)\n", stats.Products, stats.ActiveProducts, stats.GivenAway)
		fmt.Printf("Issue Reports: %d\n", stats.IssueReports)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
