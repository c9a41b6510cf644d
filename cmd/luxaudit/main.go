// Command luxaudit analyzes Dialux PDF reports and standards documents
// from the command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/batch"
	"github.com/luxaudit/luxaudit/internal/common"
	"github.com/luxaudit/luxaudit/internal/export"
	"github.com/luxaudit/luxaudit/internal/facts"
	"github.com/luxaudit/luxaudit/internal/llm"
	"github.com/luxaudit/luxaudit/internal/llm/openai"
	"github.com/luxaudit/luxaudit/internal/pdfextract"
	"github.com/luxaudit/luxaudit/internal/standards"
	"github.com/luxaudit/luxaudit/internal/tables"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	app := &cli.App{
		Name:  "luxaudit",
		Usage: "extract and compliance-check lighting data from Dialux PDF reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file overlay"},
		},
		Commands: []*cli.Command{
			analyzeCommand(logger),
			batchCommand(logger),
			watchCommand(logger),
			tablesCommand(logger),
			standardsCommand(logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*common.Config, error) {
	cfg := common.LoadConfig()
	if path := c.String("config"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildAnalyzer(cfg *common.Config, logger *slog.Logger) (*analyze.Analyzer, *pdfextract.Extractor) {
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
	}

	return analyze.New(extractor, facts.NewExtractor(logger), checker, lattice, metadata, logger), extractor
}

func analyzeCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "analyze a Dialux PDF report",
		ArgsUsage: "<report.pdf>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "standard", Usage: "analysis mode: fast, standard or enhanced"},
			&cli.StringFlag{Name: "standard", Value: string(standards.StandardEN12464), Usage: "standard to check against"},
			&cli.StringSliceFlag{Name: "format", Value: cli.NewStringSlice("json"), Usage: "export formats: json, csv, xlsx, txt"},
			&cli.StringFlag{Name: "output-dir", Usage: "export directory (overrides EXPORT_DIR)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one PDF path is required", 2)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if dir := c.String("output-dir"); dir != "" {
				cfg.Export.OutputDir = dir
			}
			mode, ok := constants.ParseAnalysisMode(c.String("mode"))
			if !ok {
				return fmt.Errorf("unknown analysis mode %q", c.String("mode"))
			}

			analyzer, _ := buildAnalyzer(cfg, logger)
			ctx, cancel := context.WithTimeout(c.Context, cfg.Extract.Timeout+cfg.LLM.Timeout)
			defer cancel()

			report, err := analyzer.Analyze(ctx, c.Args().First(), mode, standards.StandardType(c.String("standard")))
			if err != nil {
				return err
			}

			exporter := export.NewService(cfg.Export.OutputDir, logger)
			for _, format := range c.StringSlice("format") {
				path, err := exporter.WriteReport(report, constants.NormalizeExt(format))
				if err != nil {
					return err
				}
				fmt.Println(path)
			}
			fmt.Fprint(os.Stderr, export.Summary(report))
			return nil
		},
	}
}

func batchCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "analyze every PDF report under a directory",
		ArgsUsage: "<dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "standard"},
			&cli.StringFlag{Name: "standard", Value: string(standards.StandardEN12464)},
			&cli.IntFlag{Name: "workers", Value: 4},
			&cli.StringFlag{Name: "output-dir", Usage: "export directory for per-file JSON reports"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one directory path is required", 2)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if dir := c.String("output-dir"); dir != "" {
				cfg.Export.OutputDir = dir
			}
			mode, ok := constants.ParseAnalysisMode(c.String("mode"))
			if !ok {
				return fmt.Errorf("unknown analysis mode %q", c.String("mode"))
			}

			analyzer, _ := buildAnalyzer(cfg, logger)
			runner := batch.NewRunner(analyzer, c.Int("workers"), logger)
			results, stats, err := runner.ProcessDirectory(c.Context, c.Args().First(), mode, standards.StandardType(c.String("standard")))
			if err != nil {
				return err
			}

			exporter := export.NewService(cfg.Export.OutputDir, logger)
			for _, res := range results {
				if res.Report == nil {
					continue
				}
				if _, err := exporter.WriteReport(res.Report, "json"); err != nil {
					logger.Warn("export failed", "path", res.Path, "error", err)
				}
			}
			fmt.Printf("scanned %d, matched %d, succeeded %d, failed %d\n",
				stats.Scanned, stats.Matched, stats.Succeeded, stats.Failed)
			return nil
		},
	}
}

func watchCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "watch directories and analyze reports as they arrive",
		ArgsUsage: "<dir> [dir ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mode", Value: "standard"},
			&cli.StringFlag{Name: "standard", Value: string(standards.StandardEN12464)},
			&cli.BoolFlag{Name: "initial-scan", Usage: "also analyze files already present"},
			&cli.DurationFlag{Name: "debounce", Value: 2 * time.Second},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one directory path is required", 2)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			mode, ok := constants.ParseAnalysisMode(c.String("mode"))
			if !ok {
				return fmt.Errorf("unknown analysis mode %q", c.String("mode"))
			}
			standard := standards.StandardType(c.String("standard"))

			analyzer, _ := buildAnalyzer(cfg, logger)
			exporter := export.NewService(cfg.Export.OutputDir, logger)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			paths, errs, err := batch.StartWatcher(ctx, batch.WatchConfig{
				Roots:       c.Args().Slice(),
				InitialScan: c.Bool("initial-scan"),
				Debounce:    c.Duration("debounce"),
			}, logger)
			if err != nil {
				return err
			}

			for {
				select {
				case <-ctx.Done():
					return nil
				case err, ok := <-errs:
					if ok {
						logger.Error("watch error", "error", err)
					}
				case path, ok := <-paths:
					if !ok {
						return nil
					}
					report, err := analyzer.Analyze(ctx, path, mode, standard)
					if err != nil {
						logger.Warn("analysis failed", "path", path, "error", err)
						continue
					}
					if out, err := exporter.WriteReport(report, "json"); err == nil {
						logger.Info("report written", "path", out)
					}
				}
			}
		},
	}
}

func tablesCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "tables",
		Usage:     "detect tables in a PDF and print the quality report",
		ArgsUsage: "<report.pdf>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("exactly one PDF path is required", 2)
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			_, extractor := buildAnalyzer(cfg, logger)

			ctx, cancel := context.WithTimeout(c.Context, cfg.Extract.Timeout)
			defer cancel()
			result, err := extractor.Extract(ctx, c.Args().First())
			if err != nil {
				return err
			}

			cands := tables.ExtractFromText(result.Text)
			lattice := tables.NewLatticeExtractor(tables.LatticeConfig{
				Pdftoppm:  cfg.Extract.Pdftoppm,
				Tesseract: cfg.Extract.Tesseract,
				MaxPages:  cfg.Extract.MaxPages,
			}, logger)
			if lattice.Available() {
				latticeCands, err := lattice.Extract(ctx, c.Args().First())
				if err != nil {
					logger.Warn("lattice extraction failed", "error", err)
				} else {
					cands = tables.Dedup(append(cands, latticeCands...), 0)
				}
			}

			csvOut, err := export.TableQualityCSV(cands)
			if err != nil {
				return err
			}
			os.Stdout.Write(csvOut)
			return nil
		},
	}
}

func standardsCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "standards",
		Usage: "manage the compliance requirements database",
		Subcommands: []*cli.Command{
			{
				Name:      "process",
				Usage:     "harvest requirements from a standards document PDF",
				ArgsUsage: "<standard.pdf>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("exactly one PDF path is required", 2)
					}
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					_, extractor := buildAnalyzer(cfg, logger)

					ctx, cancel := context.WithTimeout(c.Context, cfg.Extract.Timeout)
					defer cancel()
					result, err := extractor.Extract(ctx, c.Args().First())
					if err != nil {
						return err
					}

					db := standards.NewDatabase(cfg.Standards.DBPath, logger)
					doc, err := standards.NewProcessor(db, logger).Process(c.Args().First(), result.Text)
					if err != nil {
						return err
					}
					fmt.Printf("%s %s (%s): %d requirements\n", doc.Type, doc.Version, doc.Language, len(doc.Requirements))
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list known standards",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					db := standards.NewDatabase(cfg.Standards.DBPath, logger)
					for _, st := range db.Standards() {
						entry, _ := db.Lookup(st)
						fmt.Printf("%-12s %s (version %s, %d room types)\n", st, entry.Name, entry.Version, len(entry.Requirements))
					}
					return nil
				},
			},
		},
	}
}
