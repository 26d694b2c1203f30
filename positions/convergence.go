package positions

import (
	"time"

	"github.com/bcdannyboy/marbd/models"
)

// ConvergenceModel estimates where the target's stock trades at a
// future date while the deal is pending. A naive model that assumes
// full convergence for any option expiring before close systematically
// overstates near-dated option value; this one interpolates linearly in
// calendar time from today's price to the deal's total cash value.
type ConvergenceModel struct {
	deal models.DealTerms
}

func NewConvergenceModel(deal models.DealTerms) ConvergenceModel {
	return ConvergenceModel{deal: deal}
}

// ExpectedPriceAt returns the modeled underlying price on targetDate.
// At or past the expected close the stock trades at deal terms; before
// it, the gap between current price and total deal value closes in
// proportion to elapsed calendar days.
func (m ConvergenceModel) ExpectedPriceAt(currentPrice float64, targetDate time.Time) float64 {
	total := m.deal.TotalDealValue

	if !targetDate.Before(m.deal.ExpectedClose) {
		return total
	}
	if currentPrice == total {
		return total
	}

	elapsed := float64(m.deal.DaysUntil(targetDate)) / float64(m.deal.DaysToClose)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > 1 {
		elapsed = 1
	}

	return currentPrice + elapsed*(total-currentPrice)
}
