package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zachkp/spotlight/internal/config"
	"github.com/Zachkp/spotlight/internal/console"
	"github.com/Zachkp/spotlight/internal/content"
	"github.com/Zachkp/spotlight/internal/logging"
	"github.com/Zachkp/spotlight/internal/panels"
	"github.com/Zachkp/spotlight/internal/store"
	"github.com/Zachkp/spotlight/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "spotlight:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init("spotlight")
	defer logging.Sync()
	log := logging.L()

	if cfg.UsingDefaultAdmin() {
		log.Warn("using default admin credentials, set SPOTLIGHT_ADMIN_USERNAME and SPOTLIGHT_ADMIN_PASSWORD")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening analytics database: %w", err)
	}
	defer db.Close()
	log.Infow("analytics database ready", "path", cfg.Database.Path)

	srv, err := web.New(cfg, console.DefaultCatalog(), panels.NewRegistry(content.Default()), db)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
