package adapter

import (
	"context"
	"strings"
	"time"

	"github.com/joenewbry/prospector/pkg/prospect"
)

type gamingPlatform struct {
	name        string
	url         string
	kind        string
	audience    string
	size        string
	contactRole string
	pitchAngle  string
}

// Curated gaming platforms, portals, and directories to pitch for featuring.
var gamingPlatformTargets = []gamingPlatform{
	{
		name:        "itch.io",
		url:         "https://itch.io",
		kind:        "Game Platform",
		audience:    "Indie game developers and players",
		size:        "500K+ games hosted, millions of monthly visitors",
		contactRole: "Community team",
		pitchAngle:  "Featured collection of 100+ instant-play browser arcade games alongside itch.io's existing web game catalog",
	},
	{
		name:        "Newgrounds",
		url:         "https://www.newgrounds.com",
		kind:        "Game Platform",
		audience:    "Flash/HTML5 game enthusiasts, animators, indie creators",
		size:        "Active community of creators and players since 1999",
		contactRole: "Content curation team",
		pitchAngle:  "Classic arcade games plus modern indie browser games, a natural fit for the home of browser gaming",
	},
	{
		name:        "CrazyGames",
		url:         "https://www.crazygames.com",
		kind:        "Game Portal",
		audience:    "Casual browser game players worldwide",
		size:        "30M+ monthly visitors",
		contactRole: "Game submissions team",
		pitchAngle:  "Free HTML5 games playable instantly with no downloads or login",
	},
	{
		name:        "Poki",
		url:         "https://poki.com",
		kind:        "Game Portal",
		audience:    "Casual gamers, especially younger demographics",
		size:        "50M+ monthly players",
		contactRole: "Developer relations",
		pitchAngle:  "High-quality collection of browser-playable arcade games with instant load times",
	},
	{
		name:        "GameJolt",
		url:         "https://gamejolt.com",
		kind:        "Game Platform",
		audience:    "Indie game community, game jam participants",
		size:        "Millions of users, 300K+ games",
		contactRole: "Community team",
		pitchAngle:  "Indie arcade collection with classic remakes and original games, community-friendly and free to play",
	},
	{
		name:        "Kongregate",
		url:         "https://www.kongregate.com",
		kind:        "Game Portal",
		audience:    "Browser game enthusiasts",
		size:        "Legacy platform with loyal player base",
		contactRole: "Publisher team",
		pitchAngle:  "100+ browser arcade games that would bring new life to the platform's classic web gaming roots",
	},
	{
		name:        "Armor Games",
		url:         "https://armorgames.com",
		kind:        "Game Portal",
		audience:    "Strategy and arcade game players",
		size:        "Established community since 2004",
		contactRole: "Game submissions",
		pitchAngle:  "Curated collection of arcade-style browser games matching Armor Games' standards",
	},
	{
		name:        "FreeGamesAZ",
		url:         "https://www.freegamesaz.com",
		kind:        "Aggregator",
		audience:    "Free game seekers",
		size:        "Large free games directory",
		contactRole: "Site admin",
		pitchAngle:  "100+ completely free browser games for directory listing",
	},
	{
		name:        "Jay is Games",
		url:         "https://jayisgames.com",
		kind:        "Review Site",
		audience:    "Curated browser game enthusiasts",
		size:        "Established review community",
		contactRole: "Editor / reviewer",
		pitchAngle:  "Curated browser game arcade with retro classics and modern indie titles, ideal for a feature review",
	},
	{
		name:        "idev.games",
		url:         "https://idev.games",
		kind:        "Developer Community",
		audience:    "Indie game developers",
		size:        "Growing indie dev community",
		contactRole: "Community admin",
		pitchAngle:  "Open arcade showcasing what's possible with browser game tech",
	},
	{
		name:        "Game Distribution",
		url:         "https://gamedistribution.com",
		kind:        "Game Distribution",
		audience:    "Game publishers and portal operators",
		size:        "10K+ HTML5 games distributed",
		contactRole: "Publisher relations",
		pitchAngle:  "Distribution opportunity for 100+ quality HTML5 arcade games with proven player engagement",
	},
	{
		name:        "Game Jolt (Game Jams)",
		url:         "https://jams.gamejolt.com",
		kind:        "Game Jam Hub",
		audience:    "Game jam participants and organizers",
		size:        "Regular game jams with hundreds of participants",
		contactRole: "Jam organizers",
		pitchAngle:  "Showcase game jam-style projects alongside polished arcade games",
	},
}

// GamingPlatforms yields submission targets from a curated list of game
// portals and directories. Static data, no network access.
type GamingPlatforms struct{}

// NewGamingPlatforms creates a new gaming platform adapter.
func NewGamingPlatforms() *GamingPlatforms { return &GamingPlatforms{} }

func (g *GamingPlatforms) Name() prospect.Source { return prospect.SourceGaming }

func (g *GamingPlatforms) Description() string {
	return "Gaming platforms, portals, and directories to pitch: curated list of submission targets"
}

func (g *GamingPlatforms) Fetch(ctx context.Context, campaign string) ([]prospect.Prospect, error) {
	prospects := make([]prospect.Prospect, 0, len(gamingPlatformTargets))
	for _, gp := range gamingPlatformTargets {
		signals := []string{"gaming_platform", "gaming_submission_target"}
		kindLower := strings.ToLower(gp.kind)
		if strings.Contains(kindLower, "portal") {
			signals = append(signals, "game_portal")
		}
		if strings.Contains(kindLower, "review") {
			signals = append(signals, "game_review_site")
		}
		if strings.Contains(kindLower, "aggregator") {
			signals = append(signals, "game_aggregator")
		}
		if strings.Contains(kindLower, "community") || strings.Contains(kindLower, "jam") {
			signals = append(signals, "gaming_community")
		}

		username := strings.ReplaceAll(strings.ToLower(gp.name), " ", "-")
		username = strings.ReplaceAll(username, ".", "-")

		prospects = append(prospects, prospect.Prospect{
			Source:      prospect.SourceGaming,
			Username:    username,
			DisplayName: gp.name,
			ProfileURL:  gp.url,
			Bio:         gp.kind + ". " + gp.audience + ". " + gp.size + ".",
			Category:    "Gaming Platform",
			Signals:     signals,
			RawData: map[string]any{
				"platform_type": gp.kind,
				"audience":      gp.audience,
				"size":          gp.size,
				"contact_role":  gp.contactRole,
				"pitch_angle":   gp.pitchAngle,
			},
			FetchedAt: time.Now().UTC(),
		})
	}
	return prospects, nil
}
