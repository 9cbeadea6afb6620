package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joenewbry/prospector/internal/config"
	"github.com/joenewbry/prospector/internal/pipeline"
	"github.com/joenewbry/prospector/internal/scheduler"
	"github.com/joenewbry/prospector/internal/store"
	"github.com/joenewbry/prospector/pkg/adapter"
	"github.com/joenewbry/prospector/pkg/alert"
	"github.com/joenewbry/prospector/pkg/analytics"
	"github.com/joenewbry/prospector/pkg/outreach"
	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/server"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildAdapters(cfg *config.Config) []prospect.Adapter {
	var adapters []prospect.Adapter

	if cfg.Adapters.GitHub.Enabled {
		adapters = append(adapters, adapter.NewGitHub(
			cfg.Adapters.GitHub.Token,
			cfg.Adapters.GitHub.Queries,
			cfg.Adapters.GitHub.MaxPerQuery,
			cfg.Adapters.GitHub.RecencyMonths,
		))
	}
	if cfg.Adapters.HackerNews.Enabled {
		adapters = append(adapters, adapter.NewHackerNews(
			cfg.Adapters.HackerNews.ThreadType,
			cfg.Adapters.HackerNews.MonthsBack,
			cfg.Adapters.HackerNews.MaxResults,
		))
	}
	if cfg.Adapters.Twitter.Enabled {
		adapters = append(adapters, adapter.NewTwitter(
			cfg.Adapters.Twitter.BearerToken,
			cfg.Adapters.Twitter.Queries,
			cfg.Adapters.Twitter.MaxPerQuery,
		))
	}
	if cfg.Adapters.RSS.Enabled {
		feeds := make([]adapter.Feed, len(cfg.Adapters.RSS.Feeds))
		for i, f := range cfg.Adapters.RSS.Feeds {
			feeds[i] = adapter.Feed{Name: f.Name, URL: f.URL}
		}
		adapters = append(adapters, adapter.NewRSS(feeds, cfg.Adapters.RSS.ParseMaxAge()))
	}
	if cfg.Adapters.Bootcamps.Enabled {
		adapters = append(adapters, adapter.NewBootcamps())
	}
	if cfg.Adapters.Gaming.Enabled {
		adapters = append(adapters, adapter.NewGamingPlatforms())
	}

	return adapters
}

func buildAlertManager(cfg *config.Config) *alert.Manager {
	var notifiers []alert.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewSlack(cfg.Alerts.Slack.WebhookURL))
	}
	if cfg.Alerts.Discord.Enabled && cfg.Alerts.Discord.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewDiscord(cfg.Alerts.Discord.WebhookURL))
	}
	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alert.NewWebhook(cfg.Alerts.Webhook.URL, cfg.Alerts.Webhook.Secret))
	}

	return alert.NewManager(notifiers)
}

func buildGenerator(cfg *config.Config) *outreach.Generator {
	var llm *outreach.LLM
	if cfg.Outreach.LLM.Enabled && cfg.Outreach.LLM.APIKey != "" {
		llm = outreach.NewLLM(
			cfg.Outreach.LLM.Provider,
			cfg.Outreach.LLM.Model,
			cfg.Outreach.LLM.APIKey,
			cfg.Outreach.LLM.BaseURL,
		)
		fmt.Fprintf(os.Stderr, "llm polish: %s/%s\n", cfg.Outreach.LLM.Provider, cfg.Outreach.LLM.Model)
	}
	return outreach.NewGenerator(outreach.NewLookup(cfg.Adapters.GitHub.Token), llm)
}

func buildPipeline(cfg *config.Config, db store.Store) *pipeline.Pipeline {
	return pipeline.New(db, buildAdapters(cfg), buildAlertManager(cfg), cfg.Pipeline.Campaign)
}

func runPipeline(adapters []string, campaign string, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	pl := buildPipeline(cfg, db)
	run, prospects, err := pl.Run(context.Background(), pipeline.Options{
		Adapters: adapters,
		Campaign: campaign,
		Weights:  cfg.Pipeline.Weights,
	})
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"run": run, "prospects": prospects})
	}

	fmt.Fprintf(os.Stderr, "\nrun %s finished: %d prospects\n\n", run.ID, len(prospects))
	return printProspects(prospects, 20)
}

func runProspects(jsonOutput bool, source string, minScore float64, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	all, err := db.AllProspects(context.Background())
	if err != nil {
		return fmt.Errorf("list prospects: %w", err)
	}

	var prospects []prospect.Prospect
	for _, p := range all {
		if source != "" && string(p.Source) != source {
			continue
		}
		if p.FinalScore < minScore {
			continue
		}
		prospects = append(prospects, p)
	}

	if jsonOutput {
		if limit > 0 && len(prospects) > limit {
			prospects = prospects[:limit]
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prospects)
	}

	if len(prospects) == 0 {
		fmt.Println("no prospects found (try running the pipeline first: prospector run)")
		return nil
	}
	return printProspects(prospects, limit)
}

func printProspects(prospects []prospect.Prospect, limit int) error {
	if limit > 0 && len(prospects) > limit {
		prospects = prospects[:limit]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCORE\tSOURCE\tUSERNAME\tCATEGORY")
	for _, p := range prospects {
		fmt.Fprintf(w, "%d\t%.2f\t%s\t%s\t%s\n",
			p.ID, p.FinalScore, p.Source, p.Username, p.Category)
	}
	return w.Flush()
}

func runRuns(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("no runs yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTATUS\tCAMPAIGN\tPROSPECTS\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Status, r.Campaign, r.ProspectCount,
			r.StartedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func runOutreach(idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid prospect id %q", idArg)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	p, err := db.GetProspect(ctx, id)
	if err != nil {
		return fmt.Errorf("get prospect: %w", err)
	}

	campaign := cfg.Pipeline.Campaign
	if run, err := db.GetRun(ctx, p.RunID); err == nil {
		campaign = run.Campaign
	}

	gen := buildGenerator(cfg)
	message, profile, err := gen.Generate(ctx, p, campaign)
	if err != nil {
		return fmt.Errorf("generate outreach: %w", err)
	}

	if err := db.UpdateOutreach(ctx, id, message, profile.Map()); err != nil {
		return fmt.Errorf("save outreach: %w", err)
	}

	fmt.Fprintf(os.Stderr, "outreach for %s (%s):\n\n", p.Username, p.Source)
	fmt.Println(message)
	return nil
}

func runStats(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	prospects, err := db.AllProspects(ctx)
	if err != nil {
		return fmt.Errorf("list prospects: %w", err)
	}

	summary := analytics.Summarize(prospects)
	if n, err := db.CountRuns(ctx); err == nil {
		summary.TotalRuns = n
	}

	prospectCounts, err := db.DailyProspectCounts(ctx, 30)
	if err != nil {
		return fmt.Errorf("daily prospect counts: %w", err)
	}
	runCounts, err := db.DailyRunCounts(ctx, 30)
	if err != nil {
		return fmt.Errorf("daily run counts: %w", err)
	}
	prospectPVA := analytics.ComputePVA(prospectCounts)
	runPVA := analytics.ComputePVA(runCounts)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"summary":          summary,
			"prospect_metrics": prospectPVA,
			"run_metrics":      runPVA,
		})
	}

	fmt.Printf("prospects: %d  outreach: %d  runs: %d\n\n",
		summary.TotalProspects, summary.TotalOutreach, summary.TotalRuns)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tCOUNT\tAVG SCORE")
	for _, s := range summary.BySource {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", s.Source, s.Count, s.AvgScore)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nprospect growth (30d): position %d, velocity %.2f/day, acceleration %.2f\n",
		prospectPVA.Position, prospectPVA.Velocity, prospectPVA.Acceleration)
	fmt.Printf("run cadence (30d): position %d, velocity %.2f/day, acceleration %.2f\n",
		runPVA.Position, runPVA.Velocity, runPVA.Acceleration)
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	srv := server.New(db, buildPipeline(cfg, db), buildGenerator(cfg), port)
	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	pl := buildPipeline(cfg, db)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(pl, cfg.Schedule.ParseRunInterval())

	// Start scheduler in background.
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "scheduler error: %v\n", err)
		}
	}()

	// Start HTTP server.
	srv := server.New(db, pl, buildGenerator(cfg), port)
	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nshutting down...")
	}()

	return srv.ListenAndServe()
}
