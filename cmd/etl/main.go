package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fleximart/etl/internal/config"
	"github.com/fleximart/etl/internal/core"
	"github.com/fleximart/etl/internal/database"
	"github.com/fleximart/etl/internal/logging"
	"github.com/fleximart/etl/internal/report"
	"github.com/fleximart/etl/internal/schema"
	"github.com/fleximart/etl/internal/source"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log, runID := logging.NewRunLogger()

	log.Info("pipeline starting",
		"data_dir", cfg.Pipeline.DataDir,
		"report", cfg.Pipeline.ReportPath,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Pipeline.RunTimeout)
	defer cancel()

	os.Exit(run(ctx, cfg, log, runID))
}

// run executes one batch and reports its outcome. The quality report is
// written on every path, including missing sources and storage failures.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, runID string) int {
	var extraNotes []string

	writeReport := func(res *core.Result) {
		sections := []report.Section{
			{Title: cfg.Pipeline.CustomersFile, Counts: res.Customers},
			{Title: cfg.Pipeline.ProductsFile, Counts: res.Products},
			{Title: cfg.Pipeline.SalesFile, Counts: res.Sales},
		}
		notes := append(res.ExtraNotes, extraNotes...)
		if err := report.Write(cfg.Pipeline.ReportPath, time.Now(), runID, sections, notes); err != nil {
			log.Error("failed to write report", "error", err)
		} else {
			log.Info("report written", "path", cfg.Pipeline.ReportPath)
		}
	}

	// Extract. A missing source aborts before any transform, but the report
	// still goes out carrying the failure description.
	src, err := readSources(cfg)
	if err != nil {
		log.Error("extract failed", "error", err)
		extraNotes = append(extraNotes, fmt.Sprintf("Extract error: %v", err))
		writeReport(&core.Result{})
		return 1
	}

	// Connect. A storage failure here still leaves the cleaners worth
	// running: the report then shows what would have loaded.
	var store core.Store
	db, connErr := database.Connect(ctx, &cfg.Database)
	if connErr != nil {
		log.Error("database unavailable", "error", connErr)
		extraNotes = append(extraNotes, fmt.Sprintf("Database error: %v", connErr))
	} else {
		defer db.Close()
		store = db
	}

	// Transform and load.
	res := core.New(store, log).Run(ctx, src)

	writeReport(res)

	if connErr != nil || res.LoadErr != nil {
		return 1
	}
	log.Info("pipeline complete",
		"customers_loaded", res.Customers.Loaded,
		"products_loaded", res.Products.Loaded,
		"orders_loaded", res.OrdersInserted,
	)
	return 0
}

// readSources reads the three raw exports, validating each against its
// expected column set.
func readSources(cfg *config.Config) (core.Sources, error) {
	customers, err := source.ReadTable(cfg.Pipeline.CustomersPath(), schema.CustomerFieldSpecs)
	if err != nil {
		return core.Sources{}, err
	}
	products, err := source.ReadTable(cfg.Pipeline.ProductsPath(), schema.ProductFieldSpecs)
	if err != nil {
		return core.Sources{}, err
	}
	sales, err := source.ReadTable(cfg.Pipeline.SalesPath(), schema.SalesFieldSpecs)
	if err != nil {
		return core.Sources{}, err
	}
	return core.Sources{Customers: customers, Products: products, Sales: sales}, nil
}
