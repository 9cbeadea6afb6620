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
)

const hnAlgoliaURL = "https://hn.algolia.com/api/v1"

// ThreadWantsHired is the default monthly thread to mine for prospects.
const (
	ThreadWantsHired = "Who wants to be hired?"
	ThreadIsHiring   = "Who is hiring?"
	ThreadFreelancer = "Freelancer? Seeking freelancer?"
)

// HackerNews finds job seekers in the monthly Who's Hiring threads on HN,
// located via the Algolia search API by the whoishiring bot account.
type HackerNews struct {
	client     *http.Client
	threadType string
	monthsBack int
	maxResults int
}

// NewHackerNews creates a new Hacker News adapter.
func NewHackerNews(threadType string, monthsBack, maxResults int) *HackerNews {
	if threadType == "" {
		threadType = ThreadWantsHired
	}
	if monthsBack <= 0 {
		monthsBack = 2
	}
	if maxResults <= 0 {
		maxResults = 50
	}
	return &HackerNews{
		client:     &http.Client{Timeout: 30 * time.Second},
		threadType: threadType,
		monthsBack: monthsBack,
		maxResults: maxResults,
	}
}

func (h *HackerNews) Name() prospect.Source { return prospect.SourceHackerNews }

func (h *HackerNews) Description() string {
	return "Find job seekers and hiring startups from HN Who's Hiring monthly threads"
}

func (h *HackerNews) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	threads, err := h.findThreads(ctx)
	if err != nil {
		return nil, err
	}

	var prospects []prospect.Prospect
	for _, thread := range threads {
		comments, err := h.fetchComments(ctx, thread.ObjectID)
		if err != nil {
			continue
		}
		for _, c := range comments {
			if len(c.CommentText) < 50 {
				continue
			}
			prospects = append(prospects, h.toProspect(c, thread.Title))
		}
	}

	return prospects, nil
}

func (h *HackerNews) toProspect(c hnComment, threadTitle string) prospect.Prospect {
	author := c.Author
	if author == "" {
		author = "unknown"
	}

	signals := BioSignals(c.CommentText)
	if strings.Contains(strings.ToLower(c.CommentText), "fullstack") ||
		strings.Contains(strings.ToLower(c.CommentText), "full-stack") {
		signals = append(signals, "fullstack")
	}

	githubURL, linkedinURL, websiteURL := ContactURLs(c.CommentText)
	if githubURL != "" {
		signals = append(signals, "has_github")
	}
	if linkedinURL != "" {
		signals = append(signals, "has_linkedin")
	}
	if websiteURL != "" {
		signals = append(signals, "has_website")
	}

	raw := map[string]any{
		"thread_title": threadTitle,
		"comment_id":   c.ObjectID,
		"thread_type":  h.threadType,
		"created_at":   c.CreatedAt,
	}
	if githubURL != "" {
		raw["github_url"] = githubURL
	}
	if linkedinURL != "" {
		raw["linkedin_url"] = linkedinURL
	}
	if websiteURL != "" {
		raw["website_url"] = websiteURL
	}

	return prospect.Prospect{
		Source:      prospect.SourceHackerNews,
		Username:    author,
		DisplayName: author,
		ProfileURL:  "https://news.ycombinator.com/user?id=" + url.QueryEscape(author),
		Bio:         CleanBio(c.CommentText, 500),
		Category:    h.categorize(signals),
		Signals:     signals,
		RawData:     raw,
		FetchedAt:   time.Now().UTC(),
	}
}

func (h *HackerNews) categorize(signals []string) string {
	switch {
	case strings.Contains(h.threadType, "Who is hiring"):
		return "Startup Hiring"
	case hasSignal(signals, "freelance_available"):
		return "Freelancer"
	case hasSignal(signals, "junior_level"):
		return "Junior Developer"
	case hasSignal(signals, "senior_level"):
		return "Senior Developer"
	}
	return "Job Seeker"
}

type hnThread struct {
	ObjectID string `json:"objectID"`
	Title    string `json:"title"`
}

type hnComment struct {
	ObjectID    string `json:"objectID"`
	Author      string `json:"author"`
	CommentText string `json:"comment_text"`
	CreatedAt   string `json:"created_at"`
}

// findThreads locates the most recent official monthly threads matching
// the configured type, newest first.
func (h *HackerNews) findThreads(ctx context.Context) ([]hnThread, error) {
	params := url.Values{}
	params.Set("tags", "ask_hn,author_whoishiring")
	params.Set("hitsPerPage", "20")

	var result struct {
		Hits []hnThread `json:"hits"`
	}
	if err := h.getJSON(ctx, hnAlgoliaURL+"/search_by_date?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	keyword := strings.ToLower(strings.TrimSpace(strings.Split(h.threadType, "?")[0]))
	var matching []hnThread
	for _, t := range result.Hits {
		if strings.Contains(strings.ToLower(t.Title), keyword) {
			matching = append(matching, t)
		}
	}
	if len(matching) > h.monthsBack {
		matching = matching[:h.monthsBack]
	}
	return matching, nil
}

func (h *HackerNews) fetchComments(ctx context.Context, storyID string) ([]hnComment, error) {
	params := url.Values{}
	params.Set("tags", "comment,story_"+storyID)
	params.Set("hitsPerPage", strconv.Itoa(h.maxResults))

	var result struct {
		Hits []hnComment `json:"hits"`
	}
	if err := h.getJSON(ctx, hnAlgoliaURL+"/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result.Hits, nil
}

func (h *HackerNews) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create hn request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch hn: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("hn algolia status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode hn response: %w", err)
	}
	return nil
}
