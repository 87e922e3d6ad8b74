package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	auditStore "github.com/mfontes/ohm/internal/audit/store"
	"github.com/mfontes/ohm/internal/catalog"
	catalogStore "github.com/mfontes/ohm/internal/catalog/store"
	"github.com/mfontes/ohm/internal/config"
	"github.com/mfontes/ohm/internal/database"
	"github.com/mfontes/ohm/internal/finance"
	financeStore "github.com/mfontes/ohm/internal/finance/store"
	ohmHttp "github.com/mfontes/ohm/internal/http"
	catalogHandler "github.com/mfontes/ohm/internal/http/catalog"
	financeHandler "github.com/mfontes/ohm/internal/http/finance"
	importHandler "github.com/mfontes/ohm/internal/http/importledger"
	insightHandler "github.com/mfontes/ohm/internal/http/insight"
	recommendHandler "github.com/mfontes/ohm/internal/http/recommend"
	"github.com/mfontes/ohm/internal/importer"
	"github.com/mfontes/ohm/internal/insight"
	orderStore "github.com/mfontes/ohm/internal/order/store"
	"github.com/mfontes/ohm/internal/recommend"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		products = catalogStore.New(db)
		orders   = orderStore.New(db)
		entries  = financeStore.New(db)
		audits   = auditStore.New(db)
	)

	var (
		catalogService = catalog.NewService(products, cfg.Catalog.DefaultLowStockAt)
		financeService = finance.NewService(entries)
		importService  = importer.NewService()

		recommendService = recommend.NewService(products, orders, recommend.Config{
			OrderSample: cfg.Analytics.OrderSample,
		})

		insightService = insight.NewService(products, audits, insight.Config{
			CandidatePool: cfg.Analytics.CandidatePool,
		})
	)

	var (
		catalogH   = catalogHandler.NewHandler(catalogService)
		recommendH = recommendHandler.NewHandler(recommendService)
		financeH   = financeHandler.NewHandler(financeService)
		insightH   = insightHandler.NewHandler(insightService)
		importH    = importHandler.NewHandler(importService, financeService)
	)

	router := ohmHttp.New(catalogH, recommendH, financeH, insightH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
