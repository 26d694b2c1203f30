package probability

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bcdannyboy/marbd/models"
	"github.com/bcdannyboy/marbd/positions"
)

const NumSimulations = 1000

var rngPool = sync.Pool{
	New: func() interface{} {
		return rand.New(rand.NewSource(uint64(rand.Int63())))
	},
}

// OutcomeParams describes the downside branch of a pending deal: where
// the stock lands if the deal breaks, and how noisy that landing is.
type OutcomeParams struct {
	BreakPrice float64 // expected unaffected price on a break
	BreakVol   float64 // annualized lognormal dispersion around it
}

// DefaultOutcomeParams is a policy default, not a calibration: a broken
// deal typically gives back the remaining spread roughly twice over,
// with wide dispersion.
func DefaultOutcomeParams(deal models.DealTerms, currentPrice float64) OutcomeParams {
	breakPrice := currentPrice - 2*(deal.TotalDealValue-currentPrice)
	if breakPrice < 0.01 {
		breakPrice = 0.01
	}
	return OutcomeParams{BreakPrice: breakPrice, BreakVol: 0.60}
}

// Result summarizes a deal-outcome simulation for one opportunity.
type Result struct {
	ExpectedPayoff float64 `json:"expected_payoff"`
	ProbProfit     float64 `json:"prob_profit"`
}

// SimulateDealOutcome mixes two terminal scenarios per draw: with
// probability deal.Confidence the deal completes and the stock sits on
// the convergence path at expiry; otherwise it breaks and reprices
// around params.BreakPrice with lognormal noise. Returns the mean
// payoff per share and the fraction of profitable draws. Informational
// only; admission logic never consumes it.
func SimulateDealOutcome(opp models.Opportunity, deal models.DealTerms, currentPrice float64, params OutcomeParams) Result {
	model := positions.NewConvergenceModel(deal)
	closePrice := model.ExpectedPriceAt(currentPrice, opp.Long.Expiry)

	days := deal.DaysUntil(opp.Long.Expiry)
	if days < 1 {
		days = 1
	}
	tau := float64(days) / 365.0

	rng := rngPool.Get().(*rand.Rand)
	defer rngPool.Put(rng)

	logReturn := distuv.Normal{
		Mu:    -0.5 * params.BreakVol * params.BreakVol * tau,
		Sigma: params.BreakVol * math.Sqrt(tau),
		Src:   rng,
	}

	var totalPayoff float64
	profitCount := 0

	for i := 0; i < NumSimulations; i++ {
		finalPrice := closePrice
		if rng.Float64() >= deal.Confidence {
			finalPrice = params.BreakPrice * math.Exp(logReturn.Rand())
		}

		payoff := payoffAt(opp, currentPrice, finalPrice)
		totalPayoff += payoff
		if payoff > 0 {
			profitCount++
		}
	}

	return Result{
		ExpectedPayoff: totalPayoff / float64(NumSimulations),
		ProbProfit:     float64(profitCount) / float64(NumSimulations),
	}
}

// payoffAt is the per-share terminal payoff of the structure with the
// underlying at finalPrice.
func payoffAt(opp models.Opportunity, currentPrice, finalPrice float64) float64 {
	switch opp.Strategy {
	case models.StrategySingleCall:
		return math.Max(0, finalPrice-opp.Long.Strike) - opp.EntryCost
	case models.StrategyCallSpread:
		width := opp.Short.Strike - opp.Long.Strike
		value := math.Max(0, math.Min(finalPrice-opp.Long.Strike, width))
		return value - opp.EntryCost
	case models.StrategyCoveredCall:
		return math.Min(finalPrice, opp.Long.Strike) - currentPrice + opp.Long.Bid
	default:
		return 0
	}
}
