package scoring

import (
	"github.com/joenewbry/prospector/pkg/prospect"
)

// Scorer computes the three normalized sub-scores for a prospect from its
// signal set, raw_data, and category.
type Scorer struct {
	cat *Catalogue
}

// NewScorer creates a scorer for a campaign.
func NewScorer(campaign Campaign) *Scorer {
	return &Scorer{cat: CatalogueFor(campaign)}
}

// Score fills in the trust-gap, reachability, and relevance sub-scores. It is
// a pure function of the prospect's own state: unknown signals and categories
// fall back to defaults, missing fields count as empty, and every sub-score
// lands in [0,1]. Score never fails.
func (s *Scorer) Score(p *prospect.Prospect) {
	set := signalSet(p.Signals)
	p.TrustGapScore = s.trustGap(set)
	p.ReachabilityScore = s.reachability(set, p.RawData)
	p.RelevanceScore = s.relevance(p.Category)
}

// ScoreAll scores every prospect in place.
func (s *Scorer) ScoreAll(prospects []prospect.Prospect) {
	for i := range prospects {
		s.Score(&prospects[i])
	}
}

func (s *Scorer) trustGap(signals map[string]bool) float64 {
	sum := 0.0
	for sig := range signals {
		w, ok := s.cat.TrustGap[sig]
		if !ok {
			w = UnknownSignalWeight
		}
		sum += w
	}
	return clamp01(sum / trustGapNorm)
}

func (s *Scorer) reachability(signals map[string]bool, raw map[string]any) float64 {
	sum := 0.0
	for sig := range signals {
		sum += s.cat.Reachability[sig]
	}
	// Flat bonuses for concrete contact surface, independent of signal count.
	for key, bonus := range s.cat.ContactBonuses {
		if hasValue(raw, key) {
			sum += bonus
		}
	}
	return clamp01(sum / reachabilityNorm)
}

func (s *Scorer) relevance(category string) float64 {
	if r, ok := s.cat.Relevance[category]; ok {
		return r
	}
	return DefaultRelevance
}

// signalSet normalizes the signal list to a set so a duplicate tag emitted by
// an adapter never double-counts.
func signalSet(signals []string) map[string]bool {
	set := make(map[string]bool, len(signals))
	for _, s := range signals {
		if s != "" {
			set[s] = true
		}
	}
	return set
}

func hasValue(raw map[string]any, key string) bool {
	v, ok := raw[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
