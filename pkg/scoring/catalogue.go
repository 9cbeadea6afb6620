package scoring

// Campaign selects which signal-weight tables and category-relevance table
// apply to a run.
type Campaign string

const (
	// CampaignMemex is the default campaign: developers with a trust gap
	// that verifiable screen history can close.
	CampaignMemex Campaign = "memex"
	// CampaignOpenArcade targets retro/browser gaming creators and
	// platforms; the trust-gap dimension reads as influence here.
	CampaignOpenArcade Campaign = "openarcade"
)

const (
	// trustGapNorm and reachabilityNorm divide the summed signal weights
	// before clamping. A handful of strong independent signals saturates
	// toward 1.0 without needing every signal in the table.
	trustGapNorm     = 3.0
	reachabilityNorm = 2.0

	// UnknownSignalWeight is credited for trust-gap signals absent from the
	// catalogue, so signal diversity counts even for untracked tags.
	UnknownSignalWeight = 0.1

	// DefaultRelevance applies to categories absent from the relevance table.
	DefaultRelevance = 0.5
)

// Catalogue bundles the signal-weight tables for one campaign.
type Catalogue struct {
	// TrustGap maps signal tags to trust-gap (or influence) weights.
	TrustGap map[string]float64
	// Reachability maps signal tags to reachability weights. Signals absent
	// from this table contribute nothing.
	Reachability map[string]float64
	// ContactBonuses maps raw_data keys to flat reachability bonuses awarded
	// when the key is present and non-empty. New sources extend reachability
	// by registering keys here rather than by editing the scorer.
	ContactBonuses map[string]float64
	// Relevance maps category labels to relevance values in [0,1].
	Relevance map[string]float64
	// DefaultWeights is the campaign's preset ranking weight triple.
	DefaultWeights Weights
}

var memexCatalogue = Catalogue{
	TrustGap: map[string]float64{
		"no_company":               0.3,
		"few_public_repos":         0.4,
		"low_followers":            0.2,
		"self_taught":              0.8,
		"career_changer":           0.7,
		"bootcamp_grad":            0.6,
		"junior_level":             0.5,
		"bio_mentions_looking_for": 0.3,
		"bio_mentions_open_to":     0.3,
		"bio_mentions_seeking":     0.3,
		"bio_mentions_available":   0.2,
		"bio_mentions_laid_off":    0.6,
		"freelance_available":      0.5,
		"build_in_public":          0.7,
		"100_days_of_code":         0.6,
		"ai_prompt_engineer":       0.8,
		"indie_hacker":             0.5,
		"web3":                     0.4,
		"wants_remote":             0.3,
	},
	Reachability: map[string]float64{
		"has_github":             0.3,
		"has_linkedin":           0.4,
		"has_website":            0.5,
		"hireable_flag":          0.6,
		"bio_mentions_open_to":   0.4,
		"bio_mentions_available": 0.5,
		"freelance_available":    0.5,
		"build_in_public":        0.3,
	},
	ContactBonuses: map[string]float64{
		"github_url":   0.3,
		"linkedin_url": 0.3,
		"website_url":  0.2,
	},
	Relevance: map[string]float64{
		"Self-Taught Developer": 0.9,
		"Career Changer":        0.85,
		"Bootcamp Graduate":     0.8,
		"Build in Public":       0.9,
		"AI/Prompt Engineer":    0.95,
		"100DaysOfCode":         0.85,
		"Recently Laid Off":     0.7,
		"Freelancer":            0.75,
		"Junior Developer":      0.7,
		"Job Seeker":            0.65,
		"Senior Developer":      0.5,
		"OSS Contributor":       0.7,
		"Developer":             0.5,
		"Startup Hiring":        0.6,
		"Bootcamp Partnership":  0.8,
	},
	DefaultWeights: Weights{TrustGap: 0.45, Reachability: 0.25, Relevance: 0.30},
}

var openArcadeCatalogue = Catalogue{
	TrustGap: map[string]float64{
		"gaming_interest_youtuber": 0.8,
		"gaming_interest_youtube":  0.8,
		"gaming_interest_streamer": 0.7,
		"gaming_interest_twitch":   0.7,
		"gaming_interest_reviewer": 0.6,
		"gaming_interest_retro":    0.5,
		"gaming_interest_arcade":   0.5,
		"gaming_interest_game_jam": 0.5,
		"gaming_interest_phaser":   0.5,
		"gaming_interest_pixel":    0.4,
		"gaming_interest_gamedev":  0.4,
		"gaming_interest_game_dev": 0.4,
		"gaming_interest_gaming":   0.3,
		"gaming_interest_game":     0.3,
		"has_game_repos":           0.4,
		"build_in_public":          0.5,
		"indie_hacker":             0.4,
	},
	Reachability: map[string]float64{
		"gaming_submission_target": 0.6,
		"game_review_site":         0.6,
		"gaming_platform":          0.5,
		"game_portal":              0.5,
		"gaming_community":         0.4,
		"game_aggregator":          0.4,
		"has_github":               0.3,
		"has_website":              0.5,
		"hireable_flag":            0.4,
		"build_in_public":          0.3,
	},
	ContactBonuses: map[string]float64{
		"github_url":   0.3,
		"website_url":  0.2,
		"contact_role": 0.2,
	},
	Relevance: map[string]float64{
		"Gaming YouTuber":       0.95,
		"Retro Gaming Streamer": 0.9,
		"Game Reviewer":         0.9,
		"Retro Enthusiast":      0.85,
		"Gaming Platform":       0.85,
		"Game Jam Participant":  0.8,
		"Game Developer":        0.75,
	},
	DefaultWeights: Weights{TrustGap: 0.35, Reachability: 0.30, Relevance: 0.35},
}

// CatalogueFor returns the signal catalogue for a campaign. Unrecognized
// campaign tokens fall back to the memex tables.
func CatalogueFor(c Campaign) *Catalogue {
	if c == CampaignOpenArcade {
		return &openArcadeCatalogue
	}
	return &memexCatalogue
}

// NormalizeCampaign maps an arbitrary token to a recognized campaign.
func NormalizeCampaign(token string) Campaign {
	if Campaign(token) == CampaignOpenArcade {
		return CampaignOpenArcade
	}
	return CampaignMemex
}
