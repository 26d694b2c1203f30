package positions

import (
	"github.com/bcdannyboy/marbd/models"
)

// Covered-call admissibility policy. Conservative defaults; both are
// tunable per run rather than hard invariants.
var (
	// CoveredCallStrikeBand keeps written strikes within
	// DealPrice*[1-band, 1+band], rejecting strikes clearly
	// mispositioned relative to the expected settlement price.
	CoveredCallStrikeBand = 0.02

	// CoveredCallMinOpenInterest rejects illiquid contracts.
	CoveredCallMinOpenInterest = 10

	// CoveredCallMinBid rejects markets with no real buyer.
	CoveredCallMinBid = 0.01
)

// EvaluateCoveredCall admits a call written against shares of the
// target. PremiumAnnualizedYield is deliberately the only
// time-annualized figure among the evaluators: written premium recurs
// structurally with position rolling, so it is a yield rate, while
// EdgeVsMarket stays un-annualized for apples-to-apples comparison
// against the deal spread.
func EvaluateCoveredCall(quote models.OptionQuote, currentPrice float64, deal models.DealTerms) *models.Opportunity {
	if quote.Right != models.Call {
		return nil
	}
	if quote.Bid <= CoveredCallMinBid {
		return nil
	}
	if quote.OpenInterest < CoveredCallMinOpenInterest {
		return nil
	}
	if quote.Strike < deal.DealPrice*(1-CoveredCallStrikeBand) || quote.Strike > deal.DealPrice*(1+CoveredCallStrikeBand) {
		return nil
	}

	days := deal.DaysUntil(quote.Expiry)
	if days < 1 {
		days = 1
	}
	yearsToExpiry := float64(days) / 365.0

	model := NewConvergenceModel(deal)

	return &models.Opportunity{
		Strategy:               models.StrategyCoveredCall,
		Long:                   quote,
		EntryCost:              quote.MidPrice(),
		EntryCostFarTouch:      quote.Bid,
		PremiumAnnualizedYield: (quote.Bid / currentPrice) / yearsToExpiry,
		EdgeVsMarket:           quote.Bid / currentPrice,
		IfCalledReturn:         ((quote.Strike - currentPrice) + quote.Bid) / currentPrice,
		ExpectedPrice:          model.ExpectedPriceAt(currentPrice, quote.Expiry),
	}
}
