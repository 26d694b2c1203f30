package positions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/marbd/models"
)

func TestEvaluateSingleCallAccepted(t *testing.T) {
	// Long 85 call mid $11 (10/12), spot $90, deal $100, expiry after
	// close: full convergence puts intrinsic at $15.
	deal := newDeal(t, 100, 90)
	quote := newCall(85, 120, 10, 12)

	opp := EvaluateSingleCall(quote, 90, deal)
	require.NotNil(t, opp)

	assert.Equal(t, models.StrategySingleCall, opp.Strategy)
	assert.Equal(t, 11.0, opp.EntryCost)
	assert.Equal(t, 12.0, opp.EntryCostFarTouch)
	assert.Equal(t, 96.0, opp.Breakeven)
	assert.InDelta(t, (15.0-11.0)/11.0, opp.HoldingPeriodReturn, 1e-9)
	assert.Equal(t, 100.0, opp.ExpectedPrice)
}

func TestEvaluateSingleCallRejectsUntradableMarket(t *testing.T) {
	deal := newDeal(t, 100, 90)

	noPrices := newCall(85, 120, 0, 0)
	assert.Nil(t, EvaluateSingleCall(noPrices, 90, deal))

	// A last print alone gives a mid but no ask to lift.
	noAsk := newCall(85, 120, 0, 0)
	noAsk.Last = 11
	assert.Nil(t, EvaluateSingleCall(noAsk, 90, deal))
}

func TestEvaluateSingleCallRejectsNoExpectedProfit(t *testing.T) {
	deal := newDeal(t, 100, 90)

	// Expected intrinsic at full convergence is 15; mid of 15.5 leaves
	// nothing. A normal no-opportunity outcome, not an error.
	rich := newCall(85, 120, 15, 16)
	assert.Nil(t, EvaluateSingleCall(rich, 90, deal))

	// Strike above deal value never has expected intrinsic.
	otm := newCall(105, 120, 0.5, 0.7)
	assert.Nil(t, EvaluateSingleCall(otm, 90, deal))
}

func TestEvaluateSingleCallIgnoresPuts(t *testing.T) {
	deal := newDeal(t, 100, 90)
	assert.Nil(t, EvaluateSingleCall(newPut(85, 120, 10, 12), 90, deal))
}

func TestEvaluateSingleCallNearDatedReturnBounded(t *testing.T) {
	// Regression for the unit-error defect class: a near-dated option
	// must not be credited with full convergence. Five days into a
	// 180-day deal the stock has barely moved, so the reported
	// holding-period return stays a sane ratio.
	deal := newDeal(t, 100, 180)
	quote := newCall(85, 5, 5.0, 5.2)

	opp := EvaluateSingleCall(quote, 90, deal)
	require.NotNil(t, opp)

	// Expected price after 5/180 of the gap: 90.28, intrinsic 5.28.
	// Mid 5.1 leaves a thin edge, not a multi-hundred-percent return.
	assert.InDelta(t, 90.28, opp.ExpectedPrice, 0.01)
	assert.InDelta(t, (90.28-85-5.1)/5.1, opp.HoldingPeriodReturn, 0.01)
	assert.Less(t, opp.HoldingPeriodReturn, 5.0)
}

func TestEvaluateSingleCallPartialConvergence(t *testing.T) {
	// Expiry at the deal's halfway point uses the interpolated price,
	// not the deal value.
	deal := newDeal(t, 100, 180)
	quote := newCall(85, 90, 8, 9)

	opp := EvaluateSingleCall(quote, 90, deal)
	require.NotNil(t, opp)
	assert.InDelta(t, 95.0, opp.ExpectedPrice, 0.01)
	assert.InDelta(t, (10.0-8.5)/8.5, opp.HoldingPeriodReturn, 1e-9)
}
