package main

import (
	"fmt"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/xhhuango/json"

	"github.com/bcdannyboy/marbd/models"
)

const (
	weightReturn    = 0.5
	weightLiquidity = 0.3
	weightTightness = 0.2
)

type report struct {
	Deal          models.DealTerms `json:"deal"`
	CurrentPrice  float64          `json:"current_price"`
	Contracts     int              `json:"contracts_scanned"`
	Opportunities []scoredOpp      `json:"opportunities"`
}

type scoredOpp struct {
	models.Opportunity
	CompositeScore float64 `json:"composite_score"`
}

// writeReport attaches a normalized composite score to the top-N
// opportunities and writes the JSON report. The composite is
// report-only color; the scanner's own ordering is what callers rely
// on.
func writeReport(path string, deal models.DealTerms, currentPrice float64, contracts int, opps []models.Opportunity, topN int) error {
	scored := compositeScores(opps)
	if len(scored) > topN {
		scored = scored[:topN]
	}

	out := report{
		Deal:          deal,
		CurrentPrice:  currentPrice,
		Contracts:     contracts,
		Opportunities: scored,
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}

	return nil
}

// compositeScores blends the return metric, open interest and quoted
// spread of each opportunity, each min/max normalized across the result
// set. Order of the input is preserved.
func compositeScores(opps []models.Opportunity) []scoredOpp {
	scored := make([]scoredOpp, 0, len(opps))
	if len(opps) == 0 {
		return scored
	}

	returns := make([]float64, len(opps))
	liquidity := make([]float64, len(opps))
	spreads := make([]float64, len(opps))
	for i, opp := range opps {
		returns[i] = opp.RankMetric()
		liquidity[i] = float64(opp.OpenInterest())
		spreads[i] = opp.QuotedSpread()
	}

	for i, opp := range opps {
		score := weightReturn*normalize(returns[i], returns) +
			weightLiquidity*normalize(liquidity[i], liquidity) +
			weightTightness*(1-normalize(spreads[i], spreads))
		scored = append(scored, scoredOpp{Opportunity: opp, CompositeScore: score})
	}

	return scored
}

// normalize rescales v to [0, 1] against the sample; a flat sample maps
// to 1 so single-strategy result sets still score.
func normalize(v float64, sample []float64) float64 {
	min, err := stats.Min(sample)
	if err != nil {
		return 0
	}
	max, err := stats.Max(sample)
	if err != nil {
		return 0
	}
	if max == min {
		return 1
	}
	return (v - min) / (max - min)
}
