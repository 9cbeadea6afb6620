package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joenewbry/prospector/internal/store"
	"github.com/joenewbry/prospector/pkg/alert"
	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

// Options selects what a single run does. Zero values mean all adapters,
// the configured campaign, and preset weights.
type Options struct {
	Adapters []string         `json:"adapters"` // adapter names; empty means all
	Campaign string           `json:"campaign"` // campaign token; empty means pipeline default
	Weights  scoring.Override `json:"weights"`  // per-run weight overrides
}

// Pipeline fetches prospects from every adapter, scores and ranks them,
// and persists the result as one run.
type Pipeline struct {
	store    store.Store
	adapters []prospect.Adapter
	alerts   *alert.Manager
	campaign string
}

// New creates a pipeline. alerts may be nil.
func New(db store.Store, adapters []prospect.Adapter, alerts *alert.Manager, campaign string) *Pipeline {
	return &Pipeline{
		store:    db,
		adapters: adapters,
		alerts:   alerts,
		campaign: campaign,
	}
}

// Adapters returns the adapters the pipeline can run.
func (pl *Pipeline) Adapters() []prospect.Adapter {
	return pl.adapters
}

// Campaign returns the pipeline's default campaign token.
func (pl *Pipeline) Campaign() string {
	return pl.campaign
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return "run_" + uuid.NewString()[:8]
}

// Start persists a running run record and returns it. Execute finishes it.
func (pl *Pipeline) Start(ctx context.Context, opts Options) (*store.Run, error) {
	adapters := pl.selectAdapters(opts.Adapters)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no matching adapters for: %s", strings.Join(opts.Adapters, ", "))
	}

	run := &store.Run{
		ID:           NewRunID(),
		Status:       store.StatusRunning,
		StartedAt:    time.Now().UTC(),
		Campaign:     string(pl.resolveCampaign(opts.Campaign)),
		AdaptersUsed: adapterNames(adapters),
	}
	if err := pl.store.SaveRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// Execute runs the full fetch, score, rank, save cycle for a started run.
func (pl *Pipeline) Execute(ctx context.Context, run *store.Run, opts Options) ([]prospect.Prospect, error) {
	adapters := pl.selectAdapters(opts.Adapters)
	campaign := pl.resolveCampaign(opts.Campaign)

	var all []prospect.Prospect
	var logEntries []string

	for _, a := range adapters {
		fmt.Fprintf(os.Stderr, "fetching from %s...\n", a.Name())
		prospects, err := a.Fetch(ctx, string(campaign))
		if err != nil {
			msg := fmt.Sprintf("%s: error: %v", a.Name(), err)
			logEntries = append(logEntries, msg)
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
			continue
		}
		all = append(all, prospects...)
		msg := fmt.Sprintf("%s: found %d prospects", a.Name(), len(prospects))
		logEntries = append(logEntries, msg)
		fmt.Fprintf(os.Stderr, "  %s\n", msg)
	}

	scorer := scoring.NewScorer(campaign)
	scorer.ScoreAll(all)

	ranker := scoring.NewCampaignRanker(campaign, opts.Weights)
	ranker.Rank(all)

	if err := pl.store.SaveProspects(ctx, run.ID, all); err != nil {
		return nil, fmt.Errorf("save prospects: %w", err)
	}

	now := time.Now().UTC()
	run.Status = store.StatusDone
	run.FinishedAt = &now
	run.Log = logEntries
	if err := pl.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("finish run: %w", err)
	}

	saved, err := pl.store.RunProspects(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	pl.notify(ctx, run, saved)
	return saved, nil
}

// Run starts and executes in one call, for CLI and scheduler use.
func (pl *Pipeline) Run(ctx context.Context, opts Options) (*store.Run, []prospect.Prospect, error) {
	run, err := pl.Start(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	prospects, err := pl.Execute(ctx, run, opts)
	if err != nil {
		return run, nil, err
	}
	return run, prospects, nil
}

func (pl *Pipeline) notify(ctx context.Context, run *store.Run, prospects []prospect.Prospect) {
	if pl.alerts == nil || !pl.alerts.HasNotifiers() {
		return
	}
	top := prospects
	if len(top) > 5 {
		top = top[:5]
	}
	n := &alert.Notification{
		RunID:    run.ID,
		Campaign: run.Campaign,
		Total:    len(prospects),
		Adapters: run.AdaptersUsed,
		Top:      top,
	}
	if err := pl.alerts.Broadcast(ctx, n); err != nil {
		fmt.Fprintf(os.Stderr, "alert error: %v\n", err)
	}
}

func (pl *Pipeline) resolveCampaign(token string) scoring.Campaign {
	if token == "" {
		token = pl.campaign
	}
	return scoring.NormalizeCampaign(token)
}

// selectAdapters filters to the requested adapter names, or returns all
// adapters when no filter is given.
func (pl *Pipeline) selectAdapters(names []string) []prospect.Adapter {
	if len(names) == 0 {
		return pl.adapters
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var selected []prospect.Adapter
	for _, a := range pl.adapters {
		if wanted[string(a.Name())] || wanted[shortName(a.Name())] {
			selected = append(selected, a)
		}
	}
	return selected
}

func adapterNames(adapters []prospect.Adapter) []string {
	names := make([]string, len(adapters))
	for i, a := range adapters {
		names[i] = string(a.Name())
	}
	return names
}

func shortName(s prospect.Source) string {
	switch s {
	case prospect.SourceHackerNews:
		return "hn"
	case prospect.SourceTwitter:
		return "twitter"
	case prospect.SourceGaming:
		return "gaming"
	}
	return string(s)
}
