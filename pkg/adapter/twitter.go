package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
	"github.com/joenewbry/prospector/pkg/scoring"
)

var twitterDefaultQueries = []string{
	"#OpenToWork developer",
	"#buildinpublic",
	"laid off software engineer looking",
	"self-taught developer portfolio",
	"prompt engineer seeking",
}

var twitterGamingQueries = []string{
	"#indiedev browser game",
	"#retrogaming arcade",
	"#gamedev html5",
	"free browser games",
	"#screenshotsaturday arcade",
}

// Twitter finds job seekers and builders on X. Recent search needs a paid
// API tier, so without a bearer token the adapter returns curated mock
// profiles that exercise the full scoring pipeline.
type Twitter struct {
	client      *http.Client
	bearer      string
	queries     []string
	maxPerQuery int
}

// NewTwitter creates a new X/Twitter adapter.
func NewTwitter(bearer string, queries []string, maxPerQuery int) *Twitter {
	if maxPerQuery <= 0 {
		maxPerQuery = 20
	}
	return &Twitter{
		client:      &http.Client{Timeout: 30 * time.Second},
		bearer:      bearer,
		queries:     queries,
		maxPerQuery: maxPerQuery,
	}
}

func (t *Twitter) Name() prospect.Source { return prospect.SourceTwitter }

func (t *Twitter) Description() string {
	return "Find job seekers and builders on X/Twitter. Requires API bearer token for live search, uses mock data without one."
}

func (t *Twitter) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	gaming := scoring.NormalizeCampaign(campaign) == scoring.CampaignOpenArcade

	if t.bearer == "" {
		if gaming {
			return t.mockProspects(gamingMocks, true), nil
		}
		return t.mockProspects(developerMocks, false), nil
	}
	return t.liveFetch(ctx, gaming)
}

func (t *Twitter) liveFetch(ctx context.Context, gaming bool) ([]prospect.Prospect, error) {
	queries := t.queries
	if len(queries) == 0 {
		queries = twitterDefaultQueries
		if gaming {
			queries = twitterGamingQueries
		}
	}

	var prospects []prospect.Prospect
	seen := make(map[string]bool)

	for _, query := range queries {
		tweets, users, err := t.search(ctx, query)
		if err != nil {
			continue
		}

		for _, tweet := range tweets {
			user, ok := users[tweet.AuthorID]
			if !ok || user.Username == "" || seen[user.Username] {
				continue
			}
			seen[user.Username] = true

			signals := BioSignals(user.Description + " " + tweet.Text)
			if gaming {
				signals = append(signals, GamingSignals(user.Description+" "+tweet.Text)...)
			}

			category := categorizeDefault(user.Description, signals, query)
			if gaming {
				category = categorizeGaming(signals, query)
			}

			prospects = append(prospects, prospect.Prospect{
				Source:      prospect.SourceTwitter,
				Username:    user.Username,
				DisplayName: user.Name,
				ProfileURL:  "https://x.com/" + user.Username,
				Bio:         user.Description,
				Category:    category,
				Signals:     signals,
				RawData: map[string]any{
					"tweet_text":    tweet.Text,
					"tweet_id":      tweet.ID,
					"followers":     user.PublicMetrics.Followers,
					"following":     user.PublicMetrics.Following,
					"tweet_likes":   tweet.PublicMetrics.Likes,
					"query_matched": query,
					"created_at":    tweet.CreatedAt,
				},
				FetchedAt: time.Now().UTC(),
			})
		}
	}

	return prospects, nil
}

type xTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		Likes int `json:"like_count"`
	} `json:"public_metrics"`
}

type xUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Description   string `json:"description"`
	PublicMetrics struct {
		Followers int `json:"followers_count"`
		Following int `json:"following_count"`
	} `json:"public_metrics"`
}

func (t *Twitter) search(ctx context.Context, query string) ([]xTweet, map[string]xUser, error) {
	params := url.Values{}
	params.Set("query", query+" -is:retweet lang:en")
	params.Set("max_results", strconv.Itoa(min(t.maxPerQuery, 100)))
	params.Set("tweet.fields", "author_id,created_at,public_metrics")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "name,username,description,public_metrics")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.twitter.com/2/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create x request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.bearer)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch x search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("x API status %d", resp.StatusCode)
	}

	var result struct {
		Data     []xTweet `json:"data"`
		Includes struct {
			Users []xUser `json:"users"`
		} `json:"includes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, nil, fmt.Errorf("decode x response: %w", err)
	}

	users := make(map[string]xUser, len(result.Includes.Users))
	for _, u := range result.Includes.Users {
		users[u.ID] = u
	}
	return result.Data, users, nil
}

type mockProfile struct {
	username string
	name     string
	bio      string
	query    string
	signals  []string
}

var developerMocks = []mockProfile{
	{"sarahcodes_", "Sarah Chen", "Self-taught dev | Day 87 of #100DaysOfCode | Building a habit tracker in React | Previously in marketing | Open to junior roles", "#OpenToWork developer",
		[]string{"bio_mentions_open_to", "self_taught", "career_changer", "tech_react"}},
	{"rustacean_mike", "Mike Okonkwo", "Rust + WebAssembly | Ex-FAANG, laid off Jan 2026 | Building CLI tools in public | DMs open for collab", "laid off software engineer looking",
		[]string{"bio_mentions_laid_off", "senior_level", "tech_rust", "build_in_public"}},
	{"promptcraft_ai", "Jess Rivera", "Prompt engineer & AI workflow designer | I make LLMs do things they shouldn't be able to | Freelance available", "prompt engineer seeking",
		[]string{"freelance_available", "ai_prompt_engineer", "bio_mentions_available"}},
	{"fullstack_nomad", "Alex Petrov", "Digital nomad | Full-stack TS/React/Node | Building SaaS products from Lisbon | #buildinpublic | Portfolio: alexdev.io", "#buildinpublic",
		[]string{"fullstack", "digital_nomad", "build_in_public", "has_website", "tech_typescript"}},
	{"boot2code", "Priya Sharma", "Flatiron grad '25 | Python + Django | Looking for my first role | Love pair programming | She/her", "#OpenToWork developer",
		[]string{"bootcamp_grad", "junior_level", "bio_mentions_looking_for", "tech_python"}},
	{"ml_marcus", "Marcus Johnson", "ML Engineer | PyTorch + Transformers | Fine-tuning LLMs on weekends | Open to contract work | ex-research at university lab", "prompt engineer seeking",
		[]string{"tech_machine_learning", "freelance_available", "senior_level"}},
	{"designdev_kate", "Kate Nakamura", "Design engineer → Full-stack dev | Career changer | Building in Svelte + Go | #100DaysOfCode Day 45", "#buildinpublic",
		[]string{"career_changer", "self_taught", "tech_go", "build_in_public"}},
	{"indie_hacker_tom", "Tom Blackwood", "Indie hacker | 3 shipped products, 0 that make money yet | Currently building an AI writing tool | #buildinpublic", "#buildinpublic",
		[]string{"build_in_public", "indie_hacker", "tech_ai", "has_shipped_products"}},
	{"dao_contrib_sam", "Sam Osei", "DAO contributor | Solidity + React | Built governance tools for 3 DAOs | Seeking full-time web3 role", "#OpenToWork developer",
		[]string{"tech_solidity", "web3", "bio_mentions_seeking", "has_portfolio"}},
	{"junior_jana", "Jana Mueller", "CS student → self-taught web dev | Left academia for tech | Building React apps | Looking for internship/junior role in Berlin", "#OpenToWork developer",
		[]string{"junior_level", "career_changer", "tech_react", "bio_mentions_looking_for"}},
	{"devops_diana", "Diana Reyes", "SRE/DevOps | AWS + Terraform + K8s | Just got laid off from Series B startup | 8 years exp | Open to remote", "laid off software engineer looking",
		[]string{"senior_level", "bio_mentions_laid_off", "tech_devops", "wants_remote"}},
	{"ai_artisan", "Kai Thompson", "AI image generation + workflow automation | Building custom Stable Diffusion pipelines | Freelance open", "prompt engineer seeking",
		[]string{"ai_prompt_engineer", "freelance_available", "tech_ai"}},
	{"react_queen", "Aisha Williams", "React/Next.js specialist | 5 years frontend | Contributor to Radix UI | Exploring new opportunities post-layoff", "laid off software engineer looking",
		[]string{"senior_level", "bio_mentions_laid_off", "tech_react", "open_source_contributor"}},
	{"data_dave", "Dave Kowalski", "Data engineer | Spark + dbt + Snowflake | Ex-fintech | Building a personal data stack in public | Available Q1 2026", "#buildinpublic",
		[]string{"senior_level", "build_in_public", "bio_mentions_available", "tech_data"}},
	{"code_newbie_li", "Li Wei", "Career changer: teacher → developer | Learning Python through building | #100DaysOfCode Day 23 | Documenting everything", "#OpenToWork developer",
		[]string{"career_changer", "self_taught", "junior_level", "tech_python", "build_in_public"}},
}

var gamingMocks = []mockProfile{
	{"retro_replay_yt", "RetroReplay", "Retro gaming YouTuber | 50K subs | Weekly reviews of classic arcade games | Pac-Man enthusiast | DMs open for collabs", "#retrogaming arcade",
		[]string{"gaming_interest_youtuber", "gaming_interest_retro", "gaming_interest_arcade"}},
	{"pixelquest_stream", "PixelQuest", "Twitch streamer | Retro arcade + indie browser games | 12K followers | Streaming since 2019 | Game recommendations welcome", "#retrogaming arcade",
		[]string{"gaming_interest_streamer", "gaming_interest_retro", "gaming_interest_game"}},
	{"indiegame_weekly", "IndieGameWeekly", "Reviewing indie and browser games every Friday | 8K newsletter subscribers | Always looking for hidden gems | Submit your game!", "#indiedev browser game",
		[]string{"gaming_interest_reviewer", "gaming_interest_game", "gaming_interest_gamedev"}},
	{"arcade_nostalgia", "ArcadeNostalgia", "Celebrating the golden age of arcade games | Collector + player | Documenting arcade history | Tetris world record attempt in progress", "#retrogaming arcade",
		[]string{"gaming_interest_retro", "gaming_interest_arcade", "active_in_gaming"}},
	{"html5_gamedev", "HTML5GameDev", "Making browser games with Phaser.js and vanilla JS | #gamedev | Open source game engine contributor | Game jam veteran", "#gamedev html5",
		[]string{"gaming_interest_gamedev", "gaming_interest_phaser", "has_game_repos"}},
	{"casualgamer_sam", "CasualGamerSam", "I play free browser games so you don't have to | Reviews + rankings | 15K followers | Love puzzle and arcade games", "free browser games",
		[]string{"gaming_interest_reviewer", "gaming_interest_game", "active_in_gaming"}},
	{"screenshotsarah", "ScreenshotSarah", "Game dev | #screenshotsaturday regular | Building a retro-style arcade platformer | Pixel art + chiptune music", "#screenshotsaturday arcade",
		[]string{"gaming_interest_gamedev", "gaming_interest_retro", "gaming_interest_pixel"}},
	{"webgame_hub", "WebGameHub", "Curating the best free browser games | Daily recommendations | 20K followers | DM me your browser game!", "free browser games",
		[]string{"gaming_interest_reviewer", "gaming_interest_game", "active_in_gaming"}},
	{"retro_dev_mike", "RetroDevMike", "Remaking classic arcade games in JavaScript | Space Invaders clone got 500 stars on GitHub | Full-stack by day, game dev by night", "#gamedev html5",
		[]string{"gaming_interest_gamedev", "gaming_interest_retro", "gaming_interest_arcade", "has_game_repos"}},
	{"gamejam_junkie", "GameJamJunkie", "48-hour game jam addict | 15+ jams completed | Ludum Dare regular | Browser games only | Always down to playtest", "#indiedev browser game",
		[]string{"gaming_interest_game_jam", "gaming_interest_game", "active_in_gaming"}},
	{"pacman_stan", "PacManStan", "Pac-Man speedrunner | Classic arcade game historian | Writing a book about the golden age of arcades | 10K followers", "#retrogaming arcade",
		[]string{"gaming_interest_retro", "gaming_interest_arcade", "active_in_gaming"}},
	{"indie_arcade_blog", "IndieArcadeBlog", "Blogging about indie arcade games since 2020 | Game reviews, developer interviews | 5K monthly readers", "#indiedev browser game",
		[]string{"gaming_interest_arcade", "gaming_interest_gamedev", "gaming_interest_reviewer"}},
}

func (t *Twitter) mockProspects(mocks []mockProfile, gaming bool) []prospect.Prospect {
	prospects := make([]prospect.Prospect, 0, len(mocks))
	for _, m := range mocks {
		category := categorizeDefault(m.bio, m.signals, m.query)
		if gaming {
			category = categorizeGaming(m.signals, m.query)
		}
		prospects = append(prospects, prospect.Prospect{
			Source:      prospect.SourceTwitter,
			Username:    m.username,
			DisplayName: m.name,
			ProfileURL:  "https://x.com/" + m.username,
			Bio:         m.bio,
			Category:    category,
			Signals:     m.signals,
			RawData: map[string]any{
				"tweet_text":    "[Mock] Based on query: " + m.query,
				"followers":     0,
				"query_matched": m.query,
				"is_mock":       true,
			},
			FetchedAt: time.Now().UTC(),
		})
	}
	return prospects
}
