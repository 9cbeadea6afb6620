package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

var githubDefaultQueries = []string{
	"open to work",
	"looking for work developer",
	"bootcamp graduate",
	"career change software",
	"self-taught developer",
}

var githubGamingQueries = []string{
	"retro gaming",
	"arcade games",
	"browser games javascript",
	"html5 game",
	"phaser.js",
	"game jam",
	"pixel art games",
	"game reviewer",
	"indie game dev",
}

// GitHub finds developers with trust gaps via bio search: sparse repos,
// no company, hireable flag, seeking language. Recently active users only.
type GitHub struct {
	client        *http.Client
	token         string
	queries       []string
	maxPerQuery   int
	recencyMonths int
}

// NewGitHub creates a new GitHub adapter. An empty query list uses the
// campaign defaults; an empty token runs unauthenticated (60 req/hour).
func NewGitHub(token string, queries []string, maxPerQuery, recencyMonths int) *GitHub {
	if maxPerQuery <= 0 {
		maxPerQuery = 20
	}
	if recencyMonths <= 0 {
		recencyMonths = 6
	}
	return &GitHub{
		client:        &http.Client{Timeout: 30 * time.Second},
		token:         token,
		queries:       queries,
		maxPerQuery:   maxPerQuery,
		recencyMonths: recencyMonths,
	}
}

func (g *GitHub) Name() prospect.Source { return prospect.SourceGitHub }

func (g *GitHub) Description() string {
	return "Find developers on GitHub with trust gaps: sparse commits, no portfolio, career changers. Filters to recently active users only."
}

func (g *GitHub) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	gaming := scoring.NormalizeCampaign(campaign) == scoring.CampaignOpenArcade

	queries := g.queries
	if len(queries) == 0 {
		queries = githubDefaultQueries
		if gaming {
			queries = githubGamingQueries
		}
	}

	cutoff := time.Now().AddDate(0, 0, -g.recencyMonths*30).Format("2006-01-02")

	var prospects []prospect.Prospect
	seen := make(map[string]bool)

	for _, query := range queries {
		logins, rateLimited, err := g.searchUsers(ctx, query, cutoff)
		if err != nil {
			continue
		}
		if rateLimited {
			break
		}

		for _, login := range logins {
			if seen[login] {
				continue
			}
			seen[login] = true

			profile, rateLimited, err := g.fetchProfile(ctx, login)
			if err != nil || profile == nil {
				if rateLimited {
					return prospects, nil
				}
				continue
			}

			// Skip users who haven't been active recently.
			if len(profile.UpdatedAt) >= 10 && profile.UpdatedAt[:10] < cutoff {
				continue
			}

			p := g.toProspect(profile, query, gaming)
			prospects = append(prospects, p)
		}
	}

	return prospects, nil
}

func (g *GitHub) toProspect(profile *ghProfile, query string, gaming bool) prospect.Prospect {
	var signals []string

	if profile.PublicRepos > 0 && profile.PublicRepos < 10 {
		signals = append(signals, "few_public_repos")
	}
	if profile.Company == "" {
		signals = append(signals, "no_company")
	}
	if profile.Hireable {
		signals = append(signals, "hireable_flag")
	}
	if profile.Followers < 50 {
		signals = append(signals, "low_followers")
	}
	signals = append(signals, BioSignals(profile.Bio)...)

	if gaming {
		signals = append(signals, GamingSignals(profile.Bio)...)
		if profile.PublicRepos > 0 {
			signals = append(signals, "has_game_repos")
		}
	}

	category := categorizeDefault(profile.Bio, signals, query)
	if gaming {
		category = categorizeGaming(signals, query)
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}

	return prospect.Prospect{
		Source:      prospect.SourceGitHub,
		Username:    profile.Login,
		DisplayName: name,
		ProfileURL:  profile.HTMLURL,
		Bio:         profile.Bio,
		Category:    category,
		Signals:     signals,
		RawData: map[string]any{
			"public_repos":  profile.PublicRepos,
			"followers":     profile.Followers,
			"following":     profile.Following,
			"company":       profile.Company,
			"location":      profile.Location,
			"hireable":      profile.Hireable,
			"github_url":    profile.HTMLURL,
			"created_at":    profile.CreatedAt,
			"updated_at":    profile.UpdatedAt,
			"query_matched": query,
		},
		FetchedAt: time.Now().UTC(),
	}
}

type ghUserSearchResult struct {
	Items []struct {
		Login string `json:"login"`
	} `json:"items"`
}

type ghProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	HTMLURL     string `json:"html_url"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Hireable    bool   `json:"hireable"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (g *GitHub) searchUsers(ctx context.Context, query, cutoff string) ([]string, bool, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s in:bio created:>%s", query, cutoff))
	params.Set("sort", "joined")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(min(g.maxPerQuery, 30)))

	var result ghUserSearchResult
	rateLimited, err := g.getJSON(ctx, "https://api.github.com/search/users?"+params.Encode(), &result)
	if err != nil || rateLimited {
		return nil, rateLimited, err
	}

	logins := make([]string, 0, len(result.Items))
	for _, u := range result.Items {
		logins = append(logins, u.Login)
	}
	return logins, false, nil
}

func (g *GitHub) fetchProfile(ctx context.Context, login string) (*ghProfile, bool, error) {
	var profile ghProfile
	rateLimited, err := g.getJSON(ctx, "https://api.github.com/users/"+url.PathEscape(login), &profile)
	if err != nil || rateLimited {
		return nil, rateLimited, err
	}
	return &profile, false, nil
}

func (g *GitHub) getJSON(ctx context.Context, reqURL string, out any) (rateLimited bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("github API status %d for %s", resp.StatusCode, strings.TrimPrefix(reqURL, "https://api.github.com"))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode github response: %w", err)
	}
	return false, nil
}
