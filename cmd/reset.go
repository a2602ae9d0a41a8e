package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkowalik/fridgekeep/internal/config"
)

var resetCmdFlags struct {
	Force bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database file",
	Long:  `This command deletes the FridgeKeep database file, removing all users, products and issue reports. The next server start creates a fresh database with a new default fridge.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Force, "force", false, "Actually delete the database file")

	rootCmd.AddCommand(resetCmd)
}

func reset(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !resetCmdFlags.Force {
		log.Fatalf("refusing to delete %s without --force", cfg.Database.Path)
	}

	if err := os.Remove(cfg.Database.Path); err != nil {
		if os.IsNotExist(err) {
			log.Info("no database file to delete", "path", cfg.Database.Path)
			return
		}
		log.Fatalf("failed to delete database file: %v", err)
	}

	log.Info("deleted database file", "path", cfg.Database.Path)
}
