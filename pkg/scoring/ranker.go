package scoring

import (
	"sort"

	"github.com/joenewbry/prospector/pkg/prospect"
)

// Weights combines the three sub-scores into a final score. Weights are
// expected to be non-negative but are used verbatim: no validation and no
// renormalization happens here.
type Weights struct {
	TrustGap     float64 `json:"trust_gap" yaml:"trust_gap"`
	Reachability float64 `json:"reachability" yaml:"reachability"`
	Relevance    float64 `json:"relevance" yaml:"relevance"`
}

// Override is a partial weight override supplied at run-trigger time. Absent
// fields fall back to the campaign preset.
type Override struct {
	TrustGap     *float64 `json:"trust_gap,omitempty" yaml:"trust_gap,omitempty"`
	Reachability *float64 `json:"reachability,omitempty" yaml:"reachability,omitempty"`
	Relevance    *float64 `json:"relevance,omitempty" yaml:"relevance,omitempty"`
}

// Merge applies the override on top of base and returns the result.
func (o Override) Merge(base Weights) Weights {
	if o.TrustGap != nil {
		base.TrustGap = *o.TrustGap
	}
	if o.Reachability != nil {
		base.Reachability = *o.Reachability
	}
	if o.Relevance != nil {
		base.Relevance = *o.Relevance
	}
	return base
}

// DefaultWeights returns the preset weight triple for a campaign.
func DefaultWeights(campaign Campaign) Weights {
	return CatalogueFor(campaign).DefaultWeights
}

// Ranker computes final scores and orders prospects. A run's weight triple is
// fixed at construction and treated as read-only afterward.
type Ranker struct {
	weights Weights
}

// NewRanker creates a ranker with an explicit weight triple.
func NewRanker(w Weights) *Ranker {
	return &Ranker{weights: w}
}

// NewCampaignRanker creates a ranker using the campaign preset, with any
// override fields applied on top.
func NewCampaignRanker(campaign Campaign, override Override) *Ranker {
	return &Ranker{weights: override.Merge(DefaultWeights(campaign))}
}

// Weights returns the triple this ranker applies.
func (r *Ranker) Weights() Weights { return r.weights }

// Rank computes final_score = trust_gap*w1 + reachability*w2 + relevance*w3
// for every prospect and sorts descending by final score. The sort is stable,
// so equal scores keep their input order and repeated calls with the same
// input produce identical output.
func (r *Ranker) Rank(prospects []prospect.Prospect) []prospect.Prospect {
	for i := range prospects {
		p := &prospects[i]
		p.FinalScore = p.TrustGapScore*r.weights.TrustGap +
			p.ReachabilityScore*r.weights.Reachability +
			p.RelevanceScore*r.weights.Relevance
	}
	sort.SliceStable(prospects, func(i, j int) bool {
		return prospects[i].FinalScore > prospects[j].FinalScore
	})
	return prospects
}
