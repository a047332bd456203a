package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jmulders/veridose/internal/config"
	"github.com/jmulders/veridose/internal/customer/store"
	"github.com/jmulders/veridose/internal/database"
	veridoseHttp "github.com/jmulders/veridose/internal/http"
	importHandler "github.com/jmulders/veridose/internal/http/importcsv"
	licenceHandler "github.com/jmulders/veridose/internal/http/licence"
	matchingHandler "github.com/jmulders/veridose/internal/http/matching"
	overrideHandler "github.com/jmulders/veridose/internal/http/override"
	reclassHandler "github.com/jmulders/veridose/internal/http/reclass"
	txHandler "github.com/jmulders/veridose/internal/http/transaction"
	"github.com/jmulders/veridose/internal/importer"
	"github.com/jmulders/veridose/internal/licence"
	licenceStore "github.com/jmulders/veridose/internal/licence/store"
	"github.com/jmulders/veridose/internal/matching"
	matchingStore "github.com/jmulders/veridose/internal/matching/store"
	"github.com/jmulders/veridose/internal/metrics"
	"github.com/jmulders/veridose/internal/override"
	"github.com/jmulders/veridose/internal/reclass"
	reclassStore "github.com/jmulders/veridose/internal/reclass/store"
	"github.com/jmulders/veridose/internal/report"
	substanceStore "github.com/jmulders/veridose/internal/substance/store"
	"github.com/jmulders/veridose/internal/threshold"
	thresholdStore "github.com/jmulders/veridose/internal/threshold/store"
	"github.com/jmulders/veridose/internal/transaction"
	txStore "github.com/jmulders/veridose/internal/transaction/store"
	"github.com/jmulders/veridose/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.New()

	var (
		customers  = store.New(db)
		substances = substanceStore.New(db)
		licences   = licenceStore.New(db)
		txs        = txStore.New(db)
		thresholds = thresholdStore.New(db)
		reclasses  = reclassStore.New(db)
		aliases    = matchingStore.New(db)
	)

	var (
		transactionService = transaction.NewService(txs)
		coverageService    = licence.NewCoverageService(licences)
		matchingService    = matching.NewService(aliases)
		resolver           = reclass.NewResolver(reclasses, substances)
		reclassService     = reclass.NewService(reclasses, substances, licences, coverageService, m)
		thresholdEval      = threshold.NewEvaluator(thresholds, txs)
		overrideService    = override.NewService(txs, m)
		importService      = importer.NewService(matchingService, substances, licences, coverageService)
		reportService      = report.NewService(reclassService)
	)

	validationService := validation.NewService(
		customers,
		substances,
		resolver,
		coverageService,
		thresholdEval,
		reclassService,
		txs,
		validation.Policy{StrictActivityCheck: cfg.Compliance.StrictActivityCheck},
		m,
	)

	var (
		transactionH = txHandler.NewHandler(transactionService, validationService)
		overrideH    = overrideHandler.NewHandler(overrideService)
		reclassH     = reclassHandler.NewHandler(reclassService, resolver, reportService)
		licenceH     = licenceHandler.NewHandler(coverageService)
		importH      = importHandler.NewHandler(importService)
		matchingH    = matchingHandler.NewHandler(matchingService)
	)

	router := veridoseHttp.New(cfg.Auth.JWTSecret,
		transactionH, overrideH, reclassH, licenceH, importH, matchingH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "name", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
