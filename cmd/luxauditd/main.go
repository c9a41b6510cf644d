// Command luxauditd serves the analysis pipeline over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/common"
	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/history"
	"github.com/luxaudit/luxaudit/internal/llm"
	"github.com/luxaudit/luxaudit/internal/llm/openai"
	"github.com/luxaudit/luxaudit/internal/pdfextract"
	"github.com/luxaudit/luxaudit/internal/server"
	"github.com/luxaudit/luxaudit/internal/standards"
	"github.com/luxaudit/luxaudit/internal/tables"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if path := os.Getenv("LUXAUDIT_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			logger.Error("failed to apply config file", "path", path, "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := history.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	extractor := pdfextract.NewExtractor(pdfextract.Config{
		Pdftotext:   cfg.Extract.Pdftotext,
		Pdftoppm:    cfg.Extract.Pdftoppm,
		Tesseract:   cfg.Extract.Tesseract,
		OCRDPI:      cfg.Extract.OCRDPI,
		MaxPages:    cfg.Extract.MaxPages,
		TessdataDir: cfg.Extract.TessdataDir,
	}, tables.GridsFromText, logger)

	lattice := tables.NewLatticeExtractor(tables.LatticeConfig{
		Pdftoppm:  cfg.Extract.Pdftoppm,
		Tesseract: cfg.Extract.Tesseract,
		MaxPages:  cfg.Extract.MaxPages,
	}, logger)

	db := standards.NewDatabase(cfg.Standards.DBPath, logger)
	checker := standards.NewChecker(db, logger)

	var metadata llm.MetadataExtractor
	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	if client.Configured() {
		metadata = client
	} else {
		logger.Info("no API key configured, enhanced mode disabled")
	}

	analyzer := analyze.New(extractor, facts.NewExtractor(logger), checker, lattice, metadata, logger)

	srv := server.New(cfg.Server, analyzer, store, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
