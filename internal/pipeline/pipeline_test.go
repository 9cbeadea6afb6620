package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joenewbry/prospector/internal/store"
	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

type stubAdapter struct {
	source    prospect.Source
	prospects []prospect.Prospect
	err       error
}

func (s *stubAdapter) Name() prospect.Source { return s.source }
func (s *stubAdapter) Description() string   { return "stub" }
func (s *stubAdapter) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	return s.prospects, s.err
}

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func stubProspect(source prospect.Source, username string, signals []string) prospect.Prospect {
	return prospect.Prospect{
		Source:   source,
		Username: username,
		Category: "Self-Taught Developer",
		Signals:  signals,
	}
}

func TestRunFullCycle(t *testing.T) {
	db := newTestStore(t)
	adapters := []prospect.Adapter{
		&stubAdapter{
			source: prospect.SourceGitHub,
			prospects: []prospect.Prospect{
				stubProspect(prospect.SourceGitHub, "alice", []string{"self_taught"}),
				stubProspect(prospect.SourceGitHub, "bob", nil),
			},
		},
		&stubAdapter{source: prospect.SourceHackerNews, err: errors.New("algolia down")},
	}
	pl := New(db, adapters, nil, "memex")

	run, prospects, err := pl.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := db.GetRun(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != store.StatusDone {
		t.Errorf("status = %q, want done", got.Status)
	}
	if got.FinishedAt == nil {
		t.Error("finished_at not set")
	}
	if len(got.AdaptersUsed) != 2 {
		t.Errorf("adapters_used = %v", got.AdaptersUsed)
	}

	// Adapter errors are logged, not fatal.
	foundErr := false
	for _, entry := range got.Log {
		if strings.Contains(entry, "algolia down") {
			foundErr = true
		}
	}
	if !foundErr {
		t.Errorf("adapter error missing from log: %v", got.Log)
	}

	if len(prospects) != 2 {
		t.Fatalf("got %d prospects, want 2", len(prospects))
	}
	// alice has a real signal so she outranks bob.
	if prospects[0].Username != "alice" {
		t.Errorf("first prospect = %q, want alice", prospects[0].Username)
	}
	if prospects[0].FinalScore <= prospects[1].FinalScore {
		t.Errorf("scores not descending: %v vs %v", prospects[0].FinalScore, prospects[1].FinalScore)
	}
	if prospects[0].TrustGapScore == 0 {
		t.Error("trust gap score not computed")
	}
}

func TestRunAdapterFilter(t *testing.T) {
	db := newTestStore(t)
	adapters := []prospect.Adapter{
		&stubAdapter{source: prospect.SourceGitHub,
			prospects: []prospect.Prospect{stubProspect(prospect.SourceGitHub, "alice", nil)}},
		&stubAdapter{source: prospect.SourceHackerNews,
			prospects: []prospect.Prospect{stubProspect(prospect.SourceHackerNews, "hner", nil)}},
	}
	pl := New(db, adapters, nil, "memex")

	run, prospects, err := pl.Run(context.Background(), Options{Adapters: []string{"hn"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(prospects) != 1 || prospects[0].Username != "hner" {
		t.Errorf("prospects = %v", prospects)
	}
	if len(run.AdaptersUsed) != 1 || run.AdaptersUsed[0] != "hackernews" {
		t.Errorf("adapters_used = %v", run.AdaptersUsed)
	}
}

func TestRunUnknownAdapter(t *testing.T) {
	db := newTestStore(t)
	pl := New(db, []prospect.Adapter{&stubAdapter{source: prospect.SourceGitHub}}, nil, "memex")

	if _, _, err := pl.Run(context.Background(), Options{Adapters: []string{"nope"}}); err == nil {
		t.Fatal("expected error for unknown adapter")
	}
}

func TestRunWeightOverride(t *testing.T) {
	db := newTestStore(t)
	rel := 1.0
	zero := 0.0
	adapters := []prospect.Adapter{
		&stubAdapter{source: prospect.SourceGitHub, prospects: []prospect.Prospect{
			stubProspect(prospect.SourceGitHub, "alice", []string{"self_taught"}),
		}},
	}
	pl := New(db, adapters, nil, "memex")

	_, prospects, err := pl.Run(context.Background(), Options{
		Weights: scoring.Override{TrustGap: &zero, Reachability: &zero, Relevance: &rel},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// With relevance-only weights the final score equals the relevance score.
	if prospects[0].FinalScore != prospects[0].RelevanceScore {
		t.Errorf("final = %v, relevance = %v", prospects[0].FinalScore, prospects[0].RelevanceScore)
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if !strings.HasPrefix(id, "run_") || len(id) != len("run_")+8 {
		t.Errorf("run id = %q", id)
	}
	if id == NewRunID() {
		t.Error("run ids should be unique")
	}
}
