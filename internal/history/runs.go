package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/common"
	"github.com/luxaudit/luxaudit/internal/export"
)

// Run is one analysis run's persisted summary. ReportJSON holds the full
// report for finished runs.
type Run struct {
	ID             string              `json:"id"`
	SourceFile     string              `json:"source_file"`
	Mode           string              `json:"analysis_mode"`
	Standard       string              `json:"standard"`
	Status         constants.RunStatus `json:"status"`
	ProjectName    string              `json:"project_name,omitempty"`
	TotalRooms     int                 `json:"total_rooms"`
	TotalArea      float64             `json:"total_area"`
	ComplianceRate float64             `json:"compliance_rate"`
	DataQuality    float64             `json:"data_quality"`
	ReportJSON     []byte              `json:"report,omitempty"`
	ErrorMessage   string              `json:"error_message,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	FinishedAt     *time.Time          `json:"finished_at,omitempty"`
}

// StartRun records a new run in RUNNING state and returns its id.
func (s *Store) StartRun(ctx context.Context, sourceFile string, mode constants.AnalysisMode, standard string) (string, error) {
	id := uuid.NewString()
	query := s.rebind(`
		INSERT INTO analysis_runs (id, source_file, analysis_mode, standard, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, id, sourceFile, string(mode), standard, string(constants.RunStatusRunning), time.Now().UTC())
	if err != nil {
		s.log.Error("run start failed", "source_file", sourceFile, "err", err)
		return "", common.NewAppError("history", "failed to record run", err)
	}
	s.log.Info("run started", "run_id", id, "source_file", sourceFile, "mode", mode)
	return id, nil
}

// FinishRun stores the report and marks the run ANALYZED.
func (s *Store) FinishRun(ctx context.Context, id string, report *analyze.Report) error {
	raw, err := export.ReportJSON(report)
	if err != nil {
		return err
	}
	query := s.rebind(`
		UPDATE analysis_runs
		SET status = ?, project_name = ?, total_rooms = ?, total_area = ?,
		    compliance_rate = ?, data_quality = ?, report_json = ?, finished_at = ?
		WHERE id = ?`)
	_, err = s.db.ExecContext(ctx, query,
		string(constants.RunStatusAnalyzed), report.ProjectName, report.TotalRooms, report.TotalArea,
		report.Stats.ComplianceRate, report.Stats.DataQuality, string(raw), time.Now().UTC(), id)
	if err != nil {
		s.log.Error("run finish failed", "run_id", id, "err", err)
		return common.NewAppError("history", "failed to finish run", err)
	}
	s.log.Info("run finished", "run_id", id, "rooms", report.TotalRooms)
	return nil
}

// FailRun marks the run FAILED with its error text.
func (s *Store) FailRun(ctx context.Context, id, message string) error {
	query := s.rebind(`
		UPDATE analysis_runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`)
	_, err := s.db.ExecContext(ctx, query, string(constants.RunStatusFailed), message, time.Now().UTC(), id)
	if err != nil {
		s.log.Error("run fail-mark failed", "run_id", id, "err", err)
		return common.NewAppError("history", "failed to mark run failed", err)
	}
	s.log.Warn("run failed", "run_id", id, "error", message)
	return nil
}

const runColumns = `id, source_file, analysis_mode, standard, status, project_name,
	total_rooms, total_area, compliance_rate, data_quality, report_json, error_message,
	created_at, finished_at`

// GetRun fetches one run by id, common.ErrNotFound when absent.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	query := s.rebind(`SELECT ` + runColumns + ` FROM analysis_runs WHERE id = ?`)
	row := s.db.QueryRowContext(ctx, query, id)
	run, err := scanRun(row)
	if err != nil {
		if isNoRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewAppError("history", "failed to load run", err)
	}
	return run, nil
}

// ListRuns returns recent runs, newest first. Report payloads are omitted.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	query := s.rebind(`SELECT ` + runColumns + ` FROM analysis_runs ORDER BY created_at DESC LIMIT ?`)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, common.NewAppError("history", "failed to list runs", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, common.NewAppError("history", "failed to scan run", err)
		}
		run.ReportJSON = nil
		out = append(out, *run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		status     string
		reportJSON sql.NullString
		finishedAt sql.NullTime
	)
	err := row.Scan(
		&run.ID, &run.SourceFile, &run.Mode, &run.Standard, &status, &run.ProjectName,
		&run.TotalRooms, &run.TotalArea, &run.ComplianceRate, &run.DataQuality,
		&reportJSON, &run.ErrorMessage, &run.CreatedAt, &finishedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = constants.RunStatus(status)
	if reportJSON.Valid {
		run.ReportJSON = []byte(reportJSON.String)
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
