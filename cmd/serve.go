package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkowalik/fridgekeep/internal/api"
	"github.com/mkowalik/fridgekeep/internal/config"
	"github.com/mkowalik/fridgekeep/internal/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the FridgeKeep server",
	Long:  `Start the FridgeKeep server to track fridge contents and issue reports.`,
	Example: `fridgekeep serve --config config.yml
fridgekeep serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if rootCmdPersistentFlags.LogLevel == "" {
		setLogLevel(cfg.LogLevel)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o750); err != nil {
		log.Fatalf("failed to create database directory: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	fridge, err := db.EnsureDefaultFridge(ctx, cfg.FridgeName)
	if err != nil {
		log.Fatalf("failed to bootstrap default fridge: %v", err)
	}

	if cfg.BootstrapAdmin != "" {
		err := db.GrantAdmin(ctx, cfg.BootstrapAdmin)
		switch {
		case errors.Is(err, database.ErrUserNotFound):
			log.Warn("bootstrap admin user does not exist yet", "username", cfg.BootstrapAdmin)
		case err != nil:
			log.Fatalf("failed to grant bootstrap admin: %v", err)
		}
	}

	server, err := api.New(cfg, db, fridge, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("fridgekeep started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
}
