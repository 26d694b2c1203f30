package positions

import (
	"github.com/bcdannyboy/marbd/models"
)

// EvaluateCallSpread admits a vertical debit spread: long the lower
// strike, short the higher, same expiry. A net credit on this structure
// signals a pricing/data anomaly for a pending cash deal and is
// rejected rather than treated as free money.
func EvaluateCallSpread(longLeg, shortLeg models.OptionQuote, currentPrice float64, deal models.DealTerms) *models.Opportunity {
	if longLeg.Right != models.Call || shortLeg.Right != models.Call {
		return nil
	}
	if !longLeg.Expiry.Equal(shortLeg.Expiry) || longLeg.Strike >= shortLeg.Strike {
		return nil
	}

	longMid := longLeg.MidPrice()
	shortMid := shortLeg.MidPrice()
	if longMid == 0 || shortMid == 0 {
		return nil
	}

	entryCost := longMid - shortMid
	if entryCost <= 0 {
		return nil
	}

	model := NewConvergenceModel(deal)
	expectedPrice := model.ExpectedPriceAt(currentPrice, longLeg.Expiry)

	width := shortLeg.Strike - longLeg.Strike
	spreadValue := expectedPrice - longLeg.Strike
	if spreadValue > width {
		spreadValue = width
	}
	if spreadValue <= 0 {
		return nil
	}

	short := shortLeg
	return &models.Opportunity{
		Strategy:            models.StrategyCallSpread,
		Long:                longLeg,
		Short:               &short,
		EntryCost:           entryCost,
		EntryCostFarTouch:   longLeg.Ask - shortLeg.Bid,
		Breakeven:           longLeg.Strike + entryCost,
		MaxProfit:           spreadValue - entryCost,
		HoldingPeriodReturn: (spreadValue - entryCost) / entryCost,
		ExpectedPrice:       expectedPrice,
	}
}
