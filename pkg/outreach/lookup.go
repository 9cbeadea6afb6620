package outreach

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
)

// GitHubDetails is the profile slice of a deep lookup.
type GitHubDetails struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Blog        string `json:"blog"`
	Twitter     string `json:"twitter_username"`
	CreatedAt   string `json:"created_at"`
}

// Repo is a non-fork repository surfaced by a deep lookup.
type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
}

// Activity summarizes recent public GitHub events.
type Activity struct {
	EventTypes  []string `json:"event_types"`
	ActiveRepos []string `json:"active_repos"`
}

// HNDetails is the Hacker News profile slice of a deep lookup.
type HNDetails struct {
	Karma          int    `json:"karma"`
	About          string `json:"about"`
	Created        int64  `json:"created"`
	SubmittedCount int    `json:"submitted_count"`
}

// DeepProfile is what a deep lookup learned about a prospect. Lookup
// failures degrade gracefully; the profile records which lookups landed.
type DeepProfile struct {
	LookupsDone []string       `json:"lookups_done"`
	GitHub      *GitHubDetails `json:"github,omitempty"`
	TopRepos    []Repo         `json:"top_repos,omitempty"`
	Activity    *Activity      `json:"recent_activity,omitempty"`
	HN          *HNDetails     `json:"hn,omitempty"`
	IsSenior    bool           `json:"is_senior"`
}

// Map converts the profile to the generic shape the store persists.
func (d *DeepProfile) Map() map[string]any {
	raw, _ := json.Marshal(d)
	var m map[string]any
	json.Unmarshal(raw, &m)
	return m
}

// Lookup fetches public profile data about a prospect from GitHub and HN.
type Lookup struct {
	client      *http.Client
	githubToken string
}

// NewLookup creates a new deep lookup client. The GitHub token is
// optional and only raises rate limits.
func NewLookup(githubToken string) *Lookup {
	return &Lookup{
		client:      &http.Client{Timeout: 15 * time.Second},
		githubToken: githubToken,
	}
}

// Research runs every lookup that applies to the prospect's source and
// returns what it found. Individual lookup failures are logged and skipped.
func (l *Lookup) Research(ctx context.Context, p *prospect.Prospect) *DeepProfile {
	deep := &DeepProfile{LookupsDone: []string{}}

	if username := githubUsername(p); username != "" {
		l.lookupGitHub(ctx, username, deep)
	}
	if p.Source == prospect.SourceHackerNews {
		l.lookupHN(ctx, p.Username, deep)
	}

	deep.IsSenior = assessSeniority(p, deep)
	return deep
}

// githubUsername resolves the GitHub login either from the source
// itself or from a github_url in the raw data.
func githubUsername(p *prospect.Prospect) string {
	if p.Source == prospect.SourceGitHub {
		return p.Username
	}
	githubURL, _ := p.RawData["github_url"].(string)
	if githubURL == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(githubURL, "/"), "/")
	return parts[len(parts)-1]
}

func (l *Lookup) lookupGitHub(ctx context.Context, username string, deep *DeepProfile) {
	base := "https://api.github.com/users/" + url.PathEscape(username)

	var profile struct {
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		PublicRepos int    `json:"public_repos"`
		Followers   int    `json:"followers"`
		Blog        string `json:"blog"`
		Twitter     string `json:"twitter_username"`
		CreatedAt   string `json:"created_at"`
	}
	if err := l.getJSON(ctx, base, &profile); err == nil {
		deep.GitHub = &GitHubDetails{
			Name:        profile.Name,
			Bio:         profile.Bio,
			Company:     profile.Company,
			Location:    profile.Location,
			PublicRepos: profile.PublicRepos,
			Followers:   profile.Followers,
			Blog:        profile.Blog,
			Twitter:     profile.Twitter,
			CreatedAt:   profile.CreatedAt,
		}
		deep.LookupsDone = append(deep.LookupsDone, "github_profile")
	} else {
		fmt.Fprintf(os.Stderr, "github lookup failed for %s: %v\n", username, err)
	}

	var repos []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Stars       int    `json:"stargazers_count"`
		Language    string `json:"language"`
		Fork        bool   `json:"fork"`
	}
	if err := l.getJSON(ctx, base+"/repos?sort=stars&per_page=5", &repos); err == nil {
		for _, r := range repos {
			if r.Fork || len(deep.TopRepos) >= 5 {
				continue
			}
			deep.TopRepos = append(deep.TopRepos, Repo{
				Name:        r.Name,
				Description: r.Description,
				Stars:       r.Stars,
				Language:    r.Language,
			})
		}
		deep.LookupsDone = append(deep.LookupsDone, "github_repos")
	}

	var events []struct {
		Type string `json:"type"`
		Repo struct {
			Name string `json:"name"`
		} `json:"repo"`
	}
	if err := l.getJSON(ctx, base+"/events/public?per_page=10", &events); err == nil {
		activity := &Activity{}
		seen := make(map[string]bool)
		for _, e := range events {
			activity.EventTypes = append(activity.EventTypes, e.Type)
			if e.Repo.Name != "" && !seen[e.Repo.Name] && len(activity.ActiveRepos) < 5 {
				seen[e.Repo.Name] = true
				activity.ActiveRepos = append(activity.ActiveRepos, e.Repo.Name)
			}
		}
		deep.Activity = activity
		deep.LookupsDone = append(deep.LookupsDone, "github_activity")
	}
}

func (l *Lookup) lookupHN(ctx context.Context, username string, deep *DeepProfile) {
	var user struct {
		Karma     int    `json:"karma"`
		About     string `json:"about"`
		Created   int64  `json:"created"`
		Submitted []int  `json:"submitted"`
	}
	reqURL := "https://hacker-news.firebaseio.com/v0/user/" + url.PathEscape(username) + ".json"
	if err := l.getJSON(ctx, reqURL, &user); err != nil {
		fmt.Fprintf(os.Stderr, "hn lookup failed for %s: %v\n", username, err)
		return
	}

	deep.HN = &HNDetails{
		Karma:          user.Karma,
		About:          user.About,
		Created:        user.Created,
		SubmittedCount: len(user.Submitted),
	}
	deep.LookupsDone = append(deep.LookupsDone, "hn_profile")
}

var seniorityMarkers = []string{
	"senior", "staff", "principal", "lead", "architect", "director",
	"vp ", "cto", "founder", "ex-faang", "10+ years", "8+ years",
}

// assessSeniority decides whether the advice-seeking message variant
// fits better than the standard pitch.
func assessSeniority(p *prospect.Prospect, deep *DeepProfile) bool {
	for _, s := range p.Signals {
		if s == "senior_level" {
			return true
		}
	}
	if deep.GitHub != nil && (deep.GitHub.Followers > 100 || deep.GitHub.PublicRepos > 30) {
		return true
	}
	if deep.HN != nil && deep.HN.Karma > 5000 {
		return true
	}
	bio := strings.ToLower(p.Bio)
	for _, kw := range seniorityMarkers {
		if strings.Contains(bio, kw) {
			return true
		}
	}
	return false
}

func (l *Lookup) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create lookup request: %w", err)
	}
	if strings.Contains(reqURL, "api.github.com") {
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		if l.githubToken != "" {
			req.Header.Set("Authorization", "Bearer "+l.githubToken)
		}
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode lookup response: %w", err)
	}
	return nil
}
