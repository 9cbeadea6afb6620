package analytics

import (
	"sort"

	"github.com/joenewbry/prospector/pkg/prospect"
)

// SourceStat is a per-source rollup.
type SourceStat struct {
	Source   string  `json:"source"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// CategoryStat is a per-category rollup.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// ScoreBucket is one bin of the final-score histogram.
type ScoreBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// Summary holds cross-prospect rollups. TotalRuns is filled in by the caller
// from the run store; everything else derives from the prospect set.
type Summary struct {
	TotalProspects    int            `json:"total_prospects"`
	TotalOutreach     int            `json:"total_outreach"`
	TotalRuns         int            `json:"total_runs"`
	BySource          []SourceStat   `json:"by_source"`
	ByCategory        []CategoryStat `json:"by_category"`
	ScoreDistribution []ScoreBucket  `json:"score_distribution"`
}

// histogram bin labels, five equal-width bins over [0,1). Bins are half-open
// [lo, hi) except the last, which includes 1.0.
var bucketLabels = [5]string{"0.0-0.2", "0.2-0.4", "0.4-0.6", "0.6-0.8", "0.8-1.0"}

// Summarize computes read-only rollups over a prospect set. It never mutates
// its input.
func Summarize(prospects []prospect.Prospect) Summary {
	s := Summary{
		TotalProspects: len(prospects),
		BySource:       []SourceStat{},
		ByCategory:     []CategoryStat{},
	}

	type agg struct {
		count int
		sum   float64
	}
	bySource := make(map[string]*agg)
	byCategory := make(map[string]*agg)
	var buckets [5]int

	for i := range prospects {
		p := &prospects[i]

		if p.OutreachMessage != "" {
			s.TotalOutreach++
		}

		src := string(p.Source)
		if bySource[src] == nil {
			bySource[src] = &agg{}
		}
		bySource[src].count++
		bySource[src].sum += p.FinalScore

		if p.Category != "" {
			if byCategory[p.Category] == nil {
				byCategory[p.Category] = &agg{}
			}
			byCategory[p.Category].count++
			byCategory[p.Category].sum += p.FinalScore
		}

		buckets[bucketIndex(p.FinalScore)]++
	}

	for src, a := range bySource {
		s.BySource = append(s.BySource, SourceStat{
			Source:   src,
			Count:    a.count,
			AvgScore: a.sum / float64(a.count),
		})
	}
	for cat, a := range byCategory {
		s.ByCategory = append(s.ByCategory, CategoryStat{
			Category: cat,
			Count:    a.count,
			AvgScore: a.sum / float64(a.count),
		})
	}

	// Largest groups first; name breaks ties so output is deterministic.
	sort.Slice(s.BySource, func(i, j int) bool {
		if s.BySource[i].Count != s.BySource[j].Count {
			return s.BySource[i].Count > s.BySource[j].Count
		}
		return s.BySource[i].Source < s.BySource[j].Source
	})
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Count != s.ByCategory[j].Count {
			return s.ByCategory[i].Count > s.ByCategory[j].Count
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	for i, label := range bucketLabels {
		s.ScoreDistribution = append(s.ScoreDistribution, ScoreBucket{
			Bucket: label,
			Count:  buckets[i],
		})
	}

	return s
}

func bucketIndex(score float64) int {
	idx := int(score / 0.2)
	if idx < 0 {
		idx = 0
	}
	if idx > 4 {
		idx = 4 // 1.0 lands in the top bucket
	}
	return idx
}
