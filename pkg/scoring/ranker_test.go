package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/joenewbry/prospector/pkg/prospect"
)

func scored(username string, trust, reach, rel float64) prospect.Prospect {
	return prospect.Prospect{
		Username:          username,
		TrustGapScore:     trust,
		ReachabilityScore: reach,
		RelevanceScore:    rel,
	}
}

func TestRankWeightedCombination(t *testing.T) {
	// The worked example: trust 0.3667, reach 0.2, relevance 0.9 under the
	// default memex weights combines to ~0.485.
	p := scored("octocat", 1.1/3.0, 0.2, 0.9)

	ranked := NewCampaignRanker(CampaignMemex, Override{}).Rank([]prospect.Prospect{p})

	want := (1.1/3.0)*0.45 + 0.2*0.25 + 0.9*0.30
	if math.Abs(ranked[0].FinalScore-want) > 1e-9 {
		t.Errorf("final score = %f, want %f", ranked[0].FinalScore, want)
	}
	if math.Abs(ranked[0].FinalScore-0.485) > 0.001 {
		t.Errorf("final score = %f, want ~0.485", ranked[0].FinalScore)
	}
}

func TestRankDescendingOrder(t *testing.T) {
	in := []prospect.Prospect{
		scored("low", 0.1, 0.1, 0.5),
		scored("high", 0.9, 0.8, 0.9),
		scored("mid", 0.5, 0.4, 0.7),
	}

	out := NewCampaignRanker(CampaignMemex, Override{}).Rank(in)

	var order []string
	for _, p := range out {
		order = append(order, p.Username)
	}
	if !reflect.DeepEqual(order, []string{"high", "mid", "low"}) {
		t.Errorf("order = %v, want [high mid low]", order)
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	in := []prospect.Prospect{
		scored("first", 0.5, 0.5, 0.5),
		scored("second", 0.5, 0.5, 0.5),
		scored("third", 0.5, 0.5, 0.5),
	}

	out := NewRanker(Weights{TrustGap: 0.45, Reachability: 0.25, Relevance: 0.30}).Rank(in)

	for i, want := range []string{"first", "second", "third"} {
		if out[i].Username != want {
			t.Errorf("position %d = %q, want %q (ties must keep input order)", i, out[i].Username, want)
		}
	}
}

func TestRankIdempotent(t *testing.T) {
	r := NewCampaignRanker(CampaignMemex, Override{})
	in := []prospect.Prospect{
		scored("a", 0.2, 0.9, 0.5),
		scored("b", 0.8, 0.1, 0.6),
		scored("c", 0.4, 0.4, 0.4),
	}

	first := r.Rank(in)
	snapshot := make([]prospect.Prospect, len(first))
	copy(snapshot, first)

	second := r.Rank(first)
	if !reflect.DeepEqual(snapshot, second) {
		t.Errorf("ranking is not idempotent:\nfirst:  %v\nsecond: %v", snapshot, second)
	}
}

func TestRankEmptyInput(t *testing.T) {
	out := NewCampaignRanker(CampaignMemex, Override{}).Rank([]prospect.Prospect{})
	if len(out) != 0 {
		t.Errorf("empty input should rank to empty output, got %d", len(out))
	}
}

func TestOverrideMerge(t *testing.T) {
	half := 0.5
	tenth := 0.1

	tests := []struct {
		name     string
		override Override
		want     Weights
	}{
		{"empty keeps preset", Override{}, Weights{TrustGap: 0.45, Reachability: 0.25, Relevance: 0.30}},
		{"partial", Override{TrustGap: &half}, Weights{TrustGap: 0.5, Reachability: 0.25, Relevance: 0.30}},
		{"full", Override{TrustGap: &half, Reachability: &tenth, Relevance: &tenth},
			Weights{TrustGap: 0.5, Reachability: 0.1, Relevance: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.override.Merge(DefaultWeights(CampaignMemex))
			if got != tt.want {
				t.Errorf("merged = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCampaignPresets(t *testing.T) {
	memex := DefaultWeights(CampaignMemex)
	arcade := DefaultWeights(CampaignOpenArcade)

	if memex == arcade {
		t.Error("campaign presets should differ")
	}
	for _, w := range []Weights{memex, arcade} {
		if sum := w.TrustGap + w.Reachability + w.Relevance; math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("preset %+v sums to %f, want 1.0", w, sum)
		}
	}
}

func TestNegativeWeightsAcceptedVerbatim(t *testing.T) {
	// Weight ranges are deliberately unvalidated.
	out := NewRanker(Weights{TrustGap: -1}).Rank([]prospect.Prospect{scored("x", 0.5, 0, 0)})
	if out[0].FinalScore != -0.5 {
		t.Errorf("final score = %f, want -0.5", out[0].FinalScore)
	}
}
