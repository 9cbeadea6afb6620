package scoring

import (
	"math"
	"testing"

	"github.com/joenewbry/prospector/pkg/prospect"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreKnownSignals(t *testing.T) {
	p := prospect.Prospect{
		Source:   prospect.SourceGitHub,
		Username: "octocat",
		Category: "Self-Taught Developer",
		Signals:  []string{"self_taught", "bio_mentions_open_to"},
	}

	NewScorer(CampaignMemex).Score(&p)

	// trust gap: (0.8 + 0.3) / 3.0
	if !almostEqual(p.TrustGapScore, 1.1/3.0) {
		t.Errorf("trust gap = %f, want %f", p.TrustGapScore, 1.1/3.0)
	}
	// reachability: bio_mentions_open_to contributes 0.4, self_taught nothing
	if !almostEqual(p.ReachabilityScore, 0.4/2.0) {
		t.Errorf("reachability = %f, want 0.2", p.ReachabilityScore)
	}
	if !almostEqual(p.RelevanceScore, 0.9) {
		t.Errorf("relevance = %f, want 0.9", p.RelevanceScore)
	}
}

func TestScoreEmptyProspect(t *testing.T) {
	p := prospect.Prospect{Source: prospect.SourceGitHub, Username: "ghost"}

	NewScorer(CampaignMemex).Score(&p)

	if p.TrustGapScore != 0 || p.ReachabilityScore != 0 {
		t.Errorf("empty prospect should score 0 trust/reach, got %f/%f",
			p.TrustGapScore, p.ReachabilityScore)
	}
	if p.RelevanceScore != DefaultRelevance {
		t.Errorf("unknown category relevance = %f, want %f", p.RelevanceScore, DefaultRelevance)
	}
}

func TestScoreUnknownSignalDefault(t *testing.T) {
	p := prospect.Prospect{Signals: []string{"completely_untracked_tag"}}

	NewScorer(CampaignMemex).Score(&p)

	if !almostEqual(p.TrustGapScore, UnknownSignalWeight/3.0) {
		t.Errorf("unknown signal trust gap = %f, want %f", p.TrustGapScore, UnknownSignalWeight/3.0)
	}
	// Unknown signals contribute nothing to reachability.
	if p.ReachabilityScore != 0 {
		t.Errorf("unknown signal reachability = %f, want 0", p.ReachabilityScore)
	}
}

func TestScoreDuplicateSignalsDoNotDoubleCount(t *testing.T) {
	single := prospect.Prospect{Signals: []string{"self_taught"}}
	doubled := prospect.Prospect{Signals: []string{"self_taught", "self_taught", "self_taught"}}

	s := NewScorer(CampaignMemex)
	s.Score(&single)
	s.Score(&doubled)

	if single.TrustGapScore != doubled.TrustGapScore {
		t.Errorf("duplicates changed trust gap: %f vs %f", single.TrustGapScore, doubled.TrustGapScore)
	}
}

func TestScoreClampedToUnit(t *testing.T) {
	// Pile on enough heavy signals to exceed the normalizer.
	p := prospect.Prospect{
		Signals: []string{
			"self_taught", "career_changer", "bootcamp_grad", "build_in_public",
			"ai_prompt_engineer", "100_days_of_code", "bio_mentions_laid_off",
		},
		RawData: map[string]any{
			"github_url":   "https://github.com/x",
			"linkedin_url": "https://linkedin.com/in/x",
			"website_url":  "https://x.dev",
		},
	}

	NewScorer(CampaignMemex).Score(&p)

	if p.TrustGapScore != 1.0 {
		t.Errorf("trust gap should saturate at 1.0, got %f", p.TrustGapScore)
	}
	for _, score := range []float64{p.TrustGapScore, p.ReachabilityScore, p.RelevanceScore} {
		if score < 0 || score > 1 {
			t.Errorf("sub-score %f out of [0,1]", score)
		}
	}
}

func TestScoreContactBonuses(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want float64
	}{
		{"no raw data", nil, 0},
		{"github url", map[string]any{"github_url": "https://github.com/x"}, 0.3 / 2.0},
		{"empty string ignored", map[string]any{"github_url": ""}, 0},
		{"nil value ignored", map[string]any{"github_url": nil}, 0},
		{"all three links", map[string]any{
			"github_url":   "https://github.com/x",
			"linkedin_url": "https://linkedin.com/in/x",
			"website_url":  "https://x.dev",
		}, (0.3 + 0.3 + 0.2) / 2.0},
	}

	s := NewScorer(CampaignMemex)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := prospect.Prospect{RawData: tt.raw}
			s.Score(&p)
			if !almostEqual(p.ReachabilityScore, tt.want) {
				t.Errorf("reachability = %f, want %f", p.ReachabilityScore, tt.want)
			}
		})
	}
}

func TestScoreMonotonicity(t *testing.T) {
	base := prospect.Prospect{Signals: []string{"no_company"}}
	s := NewScorer(CampaignMemex)
	s.Score(&base)

	for sig := range CatalogueFor(CampaignMemex).TrustGap {
		if sig == "no_company" {
			continue
		}
		grown := prospect.Prospect{Signals: []string{"no_company", sig}}
		s.Score(&grown)
		if grown.TrustGapScore < base.TrustGapScore {
			t.Errorf("adding %q decreased trust gap: %f -> %f", sig, base.TrustGapScore, grown.TrustGapScore)
		}
		if grown.ReachabilityScore < base.ReachabilityScore {
			t.Errorf("adding %q decreased reachability: %f -> %f", sig, base.ReachabilityScore, grown.ReachabilityScore)
		}
	}
}

func TestOpenArcadeCatalogue(t *testing.T) {
	p := prospect.Prospect{
		Category: "Gaming YouTuber",
		Signals:  []string{"gaming_interest_youtuber", "has_game_repos"},
	}

	NewScorer(CampaignOpenArcade).Score(&p)

	if !almostEqual(p.TrustGapScore, (0.8+0.4)/3.0) {
		t.Errorf("influence score = %f, want %f", p.TrustGapScore, 1.2/3.0)
	}
	if !almostEqual(p.RelevanceScore, 0.95) {
		t.Errorf("relevance = %f, want 0.95", p.RelevanceScore)
	}
}

func TestNormalizeCampaign(t *testing.T) {
	tests := []struct {
		token string
		want  Campaign
	}{
		{"memex", CampaignMemex},
		{"openarcade", CampaignOpenArcade},
		{"", CampaignMemex},
		{"something-else", CampaignMemex},
	}
	for _, tt := range tests {
		if got := NormalizeCampaign(tt.token); got != tt.want {
			t.Errorf("NormalizeCampaign(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
