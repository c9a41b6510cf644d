package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxaudit/luxaudit/constants"
	"github.com/luxaudit/luxaudit/internal/analyze"
	"github.com/luxaudit/luxaudit/internal/common"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := common.DatabaseConfig{DSN: filepath.Join(t.TempDir(), "test.db")}
	store, err := Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestStore_RunLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.StartRun(ctx, "/data/report.pdf", constants.ModeStandard, "EN_12464_1")
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if id == "" {
		t.Fatal("empty run id")
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.Status != constants.RunStatusRunning {
		t.Errorf("status = %s, want %s", run.Status, constants.RunStatusRunning)
	}
	if run.SourceFile != "/data/report.pdf" {
		t.Errorf("source file = %q", run.SourceFile)
	}
	if run.FinishedAt != nil {
		t.Error("running run must have no finish time")
	}

	report := &analyze.Report{
		ProjectName: "Tower",
		TotalRooms:  3,
		TotalArea:   120.5,
		Stats:       analyze.Stats{ComplianceRate: 0.75, DataQuality: 0.5},
		ProcessedAt: time.Now().UTC(),
	}
	if err := store.FinishRun(ctx, id, report); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	run, err = store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get finished run: %v", err)
	}
	if run.Status != constants.RunStatusAnalyzed {
		t.Errorf("status = %s, want %s", run.Status, constants.RunStatusAnalyzed)
	}
	if run.ProjectName != "Tower" || run.TotalRooms != 3 {
		t.Errorf("summary fields = %q/%d, want Tower/3", run.ProjectName, run.TotalRooms)
	}
	if len(run.ReportJSON) == 0 {
		t.Error("finished run must carry the report payload")
	}
	if run.FinishedAt == nil {
		t.Error("finished run must have a finish time")
	}
}

func TestStore_FailRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.StartRun(ctx, "/data/broken.pdf", constants.ModeFast, "EN_12464_1")
	if err != nil {
		t.Fatalf("start run: %v", err)
	}
	if err := store.FailRun(ctx, id, "extraction exhausted"); err != nil {
		t.Fatalf("fail run: %v", err)
	}

	run, err := store.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if run.Status != constants.RunStatusFailed {
		t.Errorf("status = %s, want %s", run.Status, constants.RunStatusFailed)
	}
	if run.ErrorMessage != "extraction exhausted" {
		t.Errorf("error message = %q", run.ErrorMessage)
	}
}

func TestStore_GetRunNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetRun(context.Background(), "no-such-id")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("err = %v, want common.ErrNotFound", err)
	}
}

func TestStore_ListRunsOmitsPayload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := store.StartRun(ctx, "/data/r.pdf", constants.ModeStandard, "EN_12464_1")
		if err != nil {
			t.Fatalf("start run: %v", err)
		}
		if err := store.FinishRun(ctx, id, &analyze.Report{ProjectName: "P"}); err != nil {
			t.Fatalf("finish run: %v", err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want limit of 2", len(runs))
	}
	for _, r := range runs {
		if len(r.ReportJSON) != 0 {
			t.Error("listing must omit report payloads")
		}
	}
}
