// Package history persists analysis runs so past results can be listed and
// re-fetched through the API.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/luxaudit/luxaudit/internal/common"
)

// Store wraps the runs table. The driver is picked from the DSN: postgres
// URLs go through pgx, anything else is treated as a sqlite file path.
type Store struct {
	db     *sql.DB
	driver string
	log    *slog.Logger
}

func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, common.WrapError(err, "open database")
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		logger.Error("failed to connect to database", "error", err)
		return nil, common.WrapError(err, "connect to database")
	}

	s := &Store{db: db, driver: driver, log: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("successfully connected to database")
	return s, nil
}

func (s *Store) Close() {
	s.log.Info("closing database connection")
	if err := s.db.Close(); err != nil {
		s.log.Error("failed to close database", "error", err)
	}
}

// HealthCheck pings with a bounded deadline to catch DSN issues early.
func (s *Store) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.db.PingContext(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id              TEXT PRIMARY KEY,
	source_file     TEXT NOT NULL,
	analysis_mode   TEXT NOT NULL,
	standard        TEXT NOT NULL,
	status          TEXT NOT NULL,
	project_name    TEXT NOT NULL DEFAULT '',
	total_rooms     INTEGER NOT NULL DEFAULT 0,
	total_area      DOUBLE PRECISION NOT NULL DEFAULT 0,
	compliance_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	data_quality    DOUBLE PRECISION NOT NULL DEFAULT 0,
	report_json     TEXT,
	error_message   TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL,
	finished_at     TIMESTAMP
)`

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate analysis_runs: %w", err)
	}
	return nil
}

// rebind converts ? placeholders to the $N form pgx requires. Queries are
// written with ? so the sqlite path stays untouched.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
