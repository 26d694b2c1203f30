package positions

import (
	"math"

	"github.com/bcdannyboy/marbd/models"
)

// EvaluateSingleCall admits a long call when its expected intrinsic
// value at the model's expected underlying price exceeds the cost of
// entry. A nil return is the normal "no opportunity" outcome, not an
// error.
//
// The reported return is a one-shot holding-period ratio, never scaled
// by time: a merger payoff is a terminal event, not a recurring yield.
func EvaluateSingleCall(quote models.OptionQuote, currentPrice float64, deal models.DealTerms) *models.Opportunity {
	if quote.Right != models.Call {
		return nil
	}

	mid := quote.MidPrice()
	if mid == 0 || quote.Ask == 0 {
		return nil
	}

	model := NewConvergenceModel(deal)
	expectedPrice := model.ExpectedPriceAt(currentPrice, quote.Expiry)
	expectedIntrinsic := math.Max(0, expectedPrice-quote.Strike)

	if expectedIntrinsic <= mid {
		return nil
	}

	return &models.Opportunity{
		Strategy:            models.StrategySingleCall,
		Long:                quote,
		EntryCost:           mid,
		EntryCostFarTouch:   quote.Ask,
		Breakeven:           quote.Strike + mid,
		HoldingPeriodReturn: (expectedIntrinsic - mid) / mid,
		ExpectedPrice:       expectedPrice,
	}
}
