package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/azunt/technician/internal/config"
	"github.com/azunt/technician/internal/logger"
	"github.com/azunt/technician/internal/schema"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	master := flag.Bool("master", false, "Reconcile the master database instead of the tenant databases")
	dsn := flag.String("dsn", "", "Optional connection string override for master mode")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	masterDSN := cfg.Database.GetMasterDSN()
	if *dsn != "" {
		masterDSN = *dsn
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	r := schema.NewReconciler(cfg.Database.Driver, schema.DefaultCatalog(), logger)

	if *master {
		logger.Infow("reconciling master database", "driver", cfg.Database.Driver)
		if _, err := r.ReconcileMaster(ctx, masterDSN); err != nil {
			// Already logged; a failed master run is a hard failure
			os.Exit(1)
		}
		return
	}

	logger.Infow("reconciling tenant databases", "driver", cfg.Database.Driver)
	results, err := r.ReconcileTenants(ctx, masterDSN)
	if err != nil {
		logger.Errorw("failed to enumerate tenants", "error", err)
		os.Exit(1)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	logger.Infow("tenant reconciliation finished",
		"tenants", len(results),
		"failed", failed,
	)
}
