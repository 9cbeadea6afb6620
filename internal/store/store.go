package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joenewbry/prospector/pkg/analytics"
	"github.com/joenewbry/prospector/pkg/prospect"
)

// Run statuses. A run moves from running to done and stays there.
const (
	StatusRunning = "running"
	StatusDone    = "done"
)

// Run is one pipeline execution. It owns a set of prospects via run_id.
type Run struct {
	ID            string     `db:"id" json:"id"`
	Status        string     `db:"status" json:"status"`
	StartedAt     time.Time  `db:"started_at" json:"started_at"`
	FinishedAt    *time.Time `db:"finished_at" json:"finished_at,omitempty"`
	Campaign      string     `db:"campaign" json:"campaign"`
	ProspectCount int        `db:"prospect_count" json:"prospect_count"`

	AdaptersUsed []string `db:"-" json:"adapters_used"`
	Log          []string `db:"-" json:"log"`

	AdaptersJSON string `db:"adapters_used" json:"-"`
	LogJSON      string `db:"log" json:"-"`
}

// Store is the persistence interface.
type Store interface {
	SaveRun(ctx context.Context, r *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context) ([]Run, error)
	CountRuns(ctx context.Context) (int, error)

	SaveProspects(ctx context.Context, runID string, prospects []prospect.Prospect) error
	RunProspects(ctx context.Context, runID string) ([]prospect.Prospect, error)
	AllProspects(ctx context.Context) ([]prospect.Prospect, error)
	GetProspect(ctx context.Context, id int64) (*prospect.Prospect, error)
	UpdateOutreach(ctx context.Context, id int64, message string, deepProfile map[string]any) error

	DailyProspectCounts(ctx context.Context, days int) ([]analytics.DailyCount, error)
	DailyRunCounts(ctx context.Context, days int) ([]analytics.DailyCount, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r *Run) error {
	adaptersJSON, _ := json.Marshal(orEmpty(r.AdaptersUsed))
	logJSON, _ := json.Marshal(orEmpty(r.Log))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, status, started_at, finished_at, adapters_used, log, campaign)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			finished_at = excluded.finished_at,
			adapters_used = excluded.adapters_used,
			log = excluded.log,
			campaign = excluded.campaign
	`, r.ID, r.Status, r.StartedAt, r.FinishedAt, string(adaptersJSON), string(logJSON), r.Campaign)
	if err != nil {
		return fmt.Errorf("save run %s: %w", r.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.GetContext(ctx, &run, `
		SELECT r.*, COUNT(p.id) AS prospect_count
		FROM runs r LEFT JOIN prospects p ON r.id = p.run_id
		WHERE r.id = ?
		GROUP BY r.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	unmarshalRun(&run)
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.db.SelectContext(ctx, &runs, `
		SELECT r.*, COUNT(p.id) AS prospect_count
		FROM runs r LEFT JOIN prospects p ON r.id = p.run_id
		GROUP BY r.id ORDER BY r.started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	for i := range runs {
		unmarshalRun(&runs[i])
	}
	return runs, nil
}

func (s *SQLiteStore) CountRuns(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM runs"); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) SaveProspects(ctx context.Context, runID string, prospects []prospect.Prospect) error {
	for i := range prospects {
		p := &prospects[i]
		signalsJSON, _ := json.Marshal(orEmpty(p.Signals))
		rawJSON, _ := json.Marshal(orEmptyMap(p.RawData))

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO prospects
				(run_id, source, username, display_name, profile_url, bio, category,
				 signals, raw_data, trust_gap_score, reachability_score, relevance_score,
				 final_score, outreach_message, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, source, username) DO UPDATE SET
				display_name = excluded.display_name,
				profile_url = excluded.profile_url,
				bio = excluded.bio,
				category = excluded.category,
				signals = excluded.signals,
				raw_data = excluded.raw_data,
				trust_gap_score = excluded.trust_gap_score,
				reachability_score = excluded.reachability_score,
				relevance_score = excluded.relevance_score,
				final_score = excluded.final_score,
				fetched_at = excluded.fetched_at
		`, runID, p.Source, p.Username, p.DisplayName, p.ProfileURL, p.Bio, p.Category,
			string(signalsJSON), string(rawJSON), p.TrustGapScore, p.ReachabilityScore,
			p.RelevanceScore, p.FinalScore, p.OutreachMessage, p.FetchedAt)
		if err != nil {
			return fmt.Errorf("save prospect %s/%s: %w", p.Source, p.Username, err)
		}
	}
	return nil
}

func (s *SQLiteStore) RunProspects(ctx context.Context, runID string) ([]prospect.Prospect, error) {
	var prospects []prospect.Prospect
	err := s.db.SelectContext(ctx, &prospects,
		"SELECT * FROM prospects WHERE run_id = ? ORDER BY final_score DESC, id", runID)
	if err != nil {
		return nil, fmt.Errorf("run prospects %s: %w", runID, err)
	}
	for i := range prospects {
		unmarshalProspect(&prospects[i])
	}
	return prospects, nil
}

// AllProspects returns every prospect across runs, deduped by
// (source, username) keeping the highest-scoring row.
func (s *SQLiteStore) AllProspects(ctx context.Context) ([]prospect.Prospect, error) {
	var prospects []prospect.Prospect
	err := s.db.SelectContext(ctx, &prospects, `
		SELECT * FROM prospects p
		WHERE p.id IN (
			SELECT p2.id FROM prospects p2
			WHERE p2.source = p.source AND p2.username = p.username
			ORDER BY p2.final_score DESC LIMIT 1
		)
		ORDER BY final_score DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("all prospects: %w", err)
	}
	for i := range prospects {
		unmarshalProspect(&prospects[i])
	}
	return prospects, nil
}

func (s *SQLiteStore) GetProspect(ctx context.Context, id int64) (*prospect.Prospect, error) {
	var p prospect.Prospect
	if err := s.db.GetContext(ctx, &p, "SELECT * FROM prospects WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get prospect %d: %w", id, err)
	}
	unmarshalProspect(&p)
	return &p, nil
}

func (s *SQLiteStore) UpdateOutreach(ctx context.Context, id int64, message string, deepProfile map[string]any) error {
	deepJSON, _ := json.Marshal(deepProfile)
	_, err := s.db.ExecContext(ctx,
		"UPDATE prospects SET outreach_message = ?, deep_profile = ? WHERE id = ?",
		message, string(deepJSON), id)
	if err != nil {
		return fmt.Errorf("update outreach %d: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) DailyProspectCounts(ctx context.Context, days int) ([]analytics.DailyCount, error) {
	return s.dailyCounts(ctx, "prospects", "fetched_at", days)
}

func (s *SQLiteStore) DailyRunCounts(ctx context.Context, days int) ([]analytics.DailyCount, error) {
	return s.dailyCounts(ctx, "runs", "started_at", days)
}

func (s *SQLiteStore) dailyCounts(ctx context.Context, table, column string, days int) ([]analytics.DailyCount, error) {
	if days <= 0 {
		days = 30
	}
	query := fmt.Sprintf(`
		SELECT date(%[2]s) AS date, COUNT(*) AS count
		FROM %[1]s
		WHERE %[2]s > datetime('now', ?)
		GROUP BY date(%[2]s)
		ORDER BY date
	`, table, column)

	var counts []analytics.DailyCount
	err := s.db.SelectContext(ctx, &counts, query, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("daily counts %s: %w", table, err)
	}
	return counts, nil
}

func unmarshalRun(r *Run) {
	json.Unmarshal([]byte(r.AdaptersJSON), &r.AdaptersUsed)
	json.Unmarshal([]byte(r.LogJSON), &r.Log)
}

func unmarshalProspect(p *prospect.Prospect) {
	json.Unmarshal([]byte(p.SignalsJSON), &p.Signals)
	json.Unmarshal([]byte(p.RawDataJSON), &p.RawData)
	json.Unmarshal([]byte(p.DeepProfileJSON), &p.DeepProfile)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
