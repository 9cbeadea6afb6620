package prospect

import (
	"context"
	"time"
)

// Source identifies which platform a prospect came from.
type Source string

const (
	SourceGitHub     Source = "github"
	SourceHackerNews Source = "hackernews"
	SourceTwitter    Source = "x_twitter"
	SourceRSS        Source = "rss"
	SourceBootcamps  Source = "bootcamps"
	SourceGaming     Source = "gaming_platforms"
)

// Prospect is a discovered lead. Identity is the (source, username) pair
// within a run; the same pair across runs refers to the same person.
type Prospect struct {
	ID          int64  `json:"id" db:"id"`
	RunID       string `json:"run_id" db:"run_id"`
	Source      Source `json:"source" db:"source"`
	Username    string `json:"username" db:"username"`
	DisplayName string `json:"display_name" db:"display_name"`
	ProfileURL  string `json:"profile_url" db:"profile_url"`
	Bio         string `json:"bio" db:"bio"`
	Category    string `json:"category" db:"category"`

	// Signals is a list of short heuristic tags emitted by the adapter.
	// Adapters may emit duplicates; scoring treats the list as a set.
	Signals []string       `json:"signals" db:"-"`
	RawData map[string]any `json:"raw_data,omitempty" db:"-"`

	// Sub-scores are written by the scorer, FinalScore by the ranker.
	// All are in [0,1] after scoring.
	TrustGapScore     float64 `json:"trust_gap_score" db:"trust_gap_score"`
	ReachabilityScore float64 `json:"reachability_score" db:"reachability_score"`
	RelevanceScore    float64 `json:"relevance_score" db:"relevance_score"`
	FinalScore        float64 `json:"final_score" db:"final_score"`

	OutreachMessage string         `json:"outreach_message" db:"outreach_message"`
	DeepProfile     map[string]any `json:"deep_profile,omitempty" db:"-"`

	FetchedAt time.Time `json:"fetched_at" db:"fetched_at"`

	SignalsJSON     string `json:"-" db:"signals"`
	RawDataJSON     string `json:"-" db:"raw_data"`
	DeepProfileJSON string `json:"-" db:"deep_profile"`
}

// Adapter is the interface every prospect source must implement. Campaign
// selects source-specific search behavior (queries, signal vocabulary);
// adapters must treat unrecognized campaign tokens as the default.
type Adapter interface {
	Name() Source
	Description() string
	Fetch(ctx context.Context, campaign string) ([]Prospect, error)
}

// AllSources returns all known source types.
func AllSources() []Source {
	return []Source{
		SourceGitHub,
		SourceHackerNews,
		SourceTwitter,
		SourceRSS,
		SourceBootcamps,
		SourceGaming,
	}
}
