package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		ID:           "run_abc123",
		Status:       StatusRunning,
		StartedAt:    time.Now().UTC(),
		Campaign:     "memex",
		AdaptersUsed: []string{"github", "hackernews"},
		Log:          []string{"github: 2 prospects"},
	}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := s.GetRun(ctx, "run_abc123")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != StatusRunning {
		t.Errorf("status = %q, want %q", got.Status, StatusRunning)
	}
	if got.FinishedAt != nil {
		t.Errorf("finished_at = %v, want nil", got.FinishedAt)
	}
	if len(got.AdaptersUsed) != 2 || got.AdaptersUsed[0] != "github" {
		t.Errorf("adapters = %v", got.AdaptersUsed)
	}
	if got.ProspectCount != 0 {
		t.Errorf("prospect count = %d, want 0", got.ProspectCount)
	}

	// Finishing the run updates in place.
	now := time.Now().UTC()
	run.Status = StatusDone
	run.FinishedAt = &now
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun update: %v", err)
	}
	got, err = s.GetRun(ctx, "run_abc123")
	if err != nil {
		t.Fatalf("GetRun after update: %v", err)
	}
	if got.Status != StatusDone || got.FinishedAt == nil {
		t.Errorf("run not finished: status=%q finished=%v", got.Status, got.FinishedAt)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("ListRuns returned %d runs, want 1", len(runs))
	}
	count, err := s.CountRuns(ctx)
	if err != nil {
		t.Fatalf("CountRuns: %v", err)
	}
	if count != 1 {
		t.Errorf("CountRuns = %d, want 1", count)
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetRun(context.Background(), "run_missing"); err == nil {
		t.Fatal("expected error for missing run")
	}
}

func testProspect(runID, username string, score float64) prospect.Prospect {
	return prospect.Prospect{
		RunID:      runID,
		Source:     prospect.SourceGitHub,
		Username:   username,
		Bio:        "self-taught developer",
		Category:   "Self-Taught Developer",
		Signals:    []string{"self_taught"},
		RawData:    map[string]any{"github_url": "https://github.com/" + username},
		FinalScore: score,
		FetchedAt:  time.Now().UTC(),
	}
}

func TestSaveAndQueryProspects(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{ID: "run_1", Status: StatusDone, StartedAt: time.Now().UTC(), Campaign: "memex"}
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	prospects := []prospect.Prospect{
		testProspect("run_1", "alice", 0.9),
		testProspect("run_1", "bob", 0.4),
	}
	if err := s.SaveProspects(ctx, "run_1", prospects); err != nil {
		t.Fatalf("SaveProspects: %v", err)
	}

	got, err := s.RunProspects(ctx, "run_1")
	if err != nil {
		t.Fatalf("RunProspects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d prospects, want 2", len(got))
	}
	if got[0].Username != "alice" {
		t.Errorf("first prospect = %q, want alice (highest score first)", got[0].Username)
	}
	if len(got[0].Signals) != 1 || got[0].Signals[0] != "self_taught" {
		t.Errorf("signals round trip failed: %v", got[0].Signals)
	}
	if got[0].RawData["github_url"] != "https://github.com/alice" {
		t.Errorf("raw data round trip failed: %v", got[0].RawData)
	}

	gotRun, err := s.GetRun(ctx, "run_1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if gotRun.ProspectCount != 2 {
		t.Errorf("prospect count = %d, want 2", gotRun.ProspectCount)
	}
}

func TestSaveProspectsUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, &Run{ID: "run_1", Status: StatusDone, StartedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	p := testProspect("run_1", "alice", 0.5)
	if err := s.SaveProspects(ctx, "run_1", []prospect.Prospect{p}); err != nil {
		t.Fatalf("SaveProspects: %v", err)
	}
	p.FinalScore = 0.8
	p.Bio = "updated bio"
	if err := s.SaveProspects(ctx, "run_1", []prospect.Prospect{p}); err != nil {
		t.Fatalf("SaveProspects again: %v", err)
	}

	got, err := s.RunProspects(ctx, "run_1")
	if err != nil {
		t.Fatalf("RunProspects: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d prospects, want 1 after upsert", len(got))
	}
	if got[0].FinalScore != 0.8 || got[0].Bio != "updated bio" {
		t.Errorf("upsert did not update: score=%v bio=%q", got[0].FinalScore, got[0].Bio)
	}
}

func TestAllProspectsDedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run_1", "run_2"} {
		if err := s.SaveRun(ctx, &Run{ID: id, Status: StatusDone, StartedAt: time.Now().UTC()}); err != nil {
			t.Fatalf("SaveRun %s: %v", id, err)
		}
	}
	if err := s.SaveProspects(ctx, "run_1", []prospect.Prospect{
		testProspect("run_1", "alice", 0.5),
		testProspect("run_1", "bob", 0.3),
	}); err != nil {
		t.Fatalf("SaveProspects run_1: %v", err)
	}
	if err := s.SaveProspects(ctx, "run_2", []prospect.Prospect{
		testProspect("run_2", "alice", 0.9),
	}); err != nil {
		t.Fatalf("SaveProspects run_2: %v", err)
	}

	got, err := s.AllProspects(ctx)
	if err != nil {
		t.Fatalf("AllProspects: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d prospects, want 2 after dedup", len(got))
	}
	if got[0].Username != "alice" || got[0].FinalScore != 0.9 {
		t.Errorf("best alice not kept: %q score=%v", got[0].Username, got[0].FinalScore)
	}
}

func TestUpdateOutreach(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, &Run{ID: "run_1", Status: StatusDone, StartedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveProspects(ctx, "run_1", []prospect.Prospect{testProspect("run_1", "alice", 0.5)}); err != nil {
		t.Fatalf("SaveProspects: %v", err)
	}
	all, err := s.RunProspects(ctx, "run_1")
	if err != nil {
		t.Fatalf("RunProspects: %v", err)
	}

	deep := map[string]any{"top_repo": "memex"}
	if err := s.UpdateOutreach(ctx, all[0].ID, "Hey Alice!", deep); err != nil {
		t.Fatalf("UpdateOutreach: %v", err)
	}
	got, err := s.GetProspect(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("GetProspect: %v", err)
	}
	if got.OutreachMessage != "Hey Alice!" {
		t.Errorf("outreach = %q", got.OutreachMessage)
	}
	if got.DeepProfile["top_repo"] != "memex" {
		t.Errorf("deep profile = %v", got.DeepProfile)
	}
}

func TestDailyCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.SaveRun(ctx, &Run{ID: "run_1", Status: StatusDone, StartedAt: now}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := s.SaveProspects(ctx, "run_1", []prospect.Prospect{
		testProspect("run_1", "alice", 0.5),
		testProspect("run_1", "bob", 0.3),
	}); err != nil {
		t.Fatalf("SaveProspects: %v", err)
	}

	counts, err := s.DailyProspectCounts(ctx, 30)
	if err != nil {
		t.Fatalf("DailyProspectCounts: %v", err)
	}
	if len(counts) != 1 {
		t.Fatalf("got %d days, want 1", len(counts))
	}
	if counts[0].Date != now.Format("2006-01-02") {
		t.Errorf("date = %q, want %q", counts[0].Date, now.Format("2006-01-02"))
	}
	if counts[0].Count != 2 {
		t.Errorf("count = %d, want 2", counts[0].Count)
	}

	runCounts, err := s.DailyRunCounts(ctx, 30)
	if err != nil {
		t.Fatalf("DailyRunCounts: %v", err)
	}
	if len(runCounts) != 1 || runCounts[0].Count != 1 {
		t.Errorf("run counts = %v", runCounts)
	}
}
