package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

// Feed is a named RSS/Atom feed URL.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds mine dev community tags where learners post in public.
var DefaultFeeds = []Feed{
	{Name: "devto-codenewbie", URL: "https://dev.to/feed/tag/codenewbie"},
	{Name: "devto-career", URL: "https://dev.to/feed/tag/career"},
	{Name: "devto-100daysofcode", URL: "https://dev.to/feed/tag/100daysofcode"},
	{Name: "devto-beginners", URL: "https://dev.to/feed/tag/beginners"},
}

// GamingFeeds mine indie game dev communities for the openarcade campaign.
var GamingFeeds = []Feed{
	{Name: "devto-gamedev", URL: "https://dev.to/feed/tag/gamedev"},
	{Name: "itch-devlogs", URL: "https://itch.io/feed/featured.xml"},
}

// RSS finds prospects among authors posting to dev community feeds.
// Each distinct author in the window becomes one prospect whose bio is
// their latest post title and summary.
type RSS struct {
	client *http.Client
	parser *gofeed.Parser
	feeds  []Feed
	maxAge time.Duration
}

// NewRSS creates a new RSS adapter. An empty feed list uses the campaign
// defaults.
func NewRSS(feeds []Feed, maxAge time.Duration) *RSS {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &RSS{
		client: &http.Client{Timeout: 30 * time.Second},
		parser: gofeed.NewParser(),
		feeds:  feeds,
		maxAge: maxAge,
	}
}

func (r *RSS) Name() prospect.Source { return prospect.SourceRSS }

func (r *RSS) Description() string {
	return "Find developers posting their learning journey on dev community RSS feeds"
}

func (r *RSS) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	gaming := scoring.NormalizeCampaign(campaign) == scoring.CampaignOpenArcade

	feeds := r.feeds
	if len(feeds) == 0 {
		feeds = DefaultFeeds
		if gaming {
			feeds = GamingFeeds
		}
	}

	var prospects []prospect.Prospect
	seen := make(map[string]bool)

	for _, feed := range feeds {
		items, err := r.fetchFeed(ctx, feed, gaming, seen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  rss feed %s error: %v\n", feed.Name, err)
			continue
		}
		prospects = append(prospects, items...)
	}

	return prospects, nil
}

func (r *RSS) fetchFeed(ctx context.Context, feed Feed, gaming bool, seen map[string]bool) ([]prospect.Prospect, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create rss request %s: %w", feed.Name, err)
	}
	req.Header.Set("User-Agent", "prospector/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rss %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss %s status %d", feed.Name, resp.StatusCode)
	}

	parsed, err := r.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse rss %s: %w", feed.Name, err)
	}

	var prospects []prospect.Prospect
	cutoff := time.Now().Add(-r.maxAge)

	for _, entry := range parsed.Items {
		published := time.Now().UTC()
		if entry.PublishedParsed != nil {
			published = entry.PublishedParsed.UTC()
		} else if entry.UpdatedParsed != nil {
			published = entry.UpdatedParsed.UTC()
		}
		if published.Before(cutoff) {
			continue
		}

		author := ""
		if entry.Author != nil {
			author = strings.TrimSpace(entry.Author.Name)
		}
		if author == "" || seen[author] {
			continue
		}
		seen[author] = true

		text := entry.Title + " " + entry.Description
		signals := append(BioSignals(text), "posts_in_public")
		if gaming {
			signals = append(signals, GamingSignals(text)...)
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		category := categorizeDefault(text, signals, feed.Name)
		if gaming {
			category = categorizeGaming(signals, feed.Name)
		}

		prospects = append(prospects, prospect.Prospect{
			Source:      prospect.SourceRSS,
			Username:    slugify(author),
			DisplayName: author,
			ProfileURL:  link,
			Bio:         CleanBio(text, 500),
			Category:    category,
			Signals:     signals,
			RawData: map[string]any{
				"feed_name":    feed.Name,
				"post_title":   entry.Title,
				"post_url":     link,
				"published_at": published.Format(time.RFC3339),
				"tags":         entry.Categories,
			},
			FetchedAt: time.Now().UTC(),
		})
	}

	return prospects, nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return url.PathEscape(slug)
}
