package positions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/marbd/models"
)

func TestEvaluateCallSpreadAccepted(t *testing.T) {
	// Long 85 / short 100, expiry after close: spread worth its full
	// $15 width at the deal price.
	deal := newDeal(t, 100, 90)
	long := newCall(85, 120, 10, 12)
	short := newCall(100, 120, 2, 3)

	opp := EvaluateCallSpread(long, short, 90, deal)
	require.NotNil(t, opp)

	assert.Equal(t, models.StrategyCallSpread, opp.Strategy)
	assert.Equal(t, 11.0-2.5, opp.EntryCost)
	assert.Equal(t, 12.0-2.0, opp.EntryCostFarTouch)
	assert.InDelta(t, 15.0-8.5, opp.MaxProfit, 1e-9)
	assert.InDelta(t, (15.0-8.5)/8.5, opp.HoldingPeriodReturn, 1e-9)
	require.NotNil(t, opp.Short)
	assert.Equal(t, 100.0, opp.Short.Strike)
}

func TestEvaluateCallSpreadCapsAtWidth(t *testing.T) {
	// Expected price beyond the short strike: value clamps to width.
	deal := newDeal(t, 110, 90)
	long := newCall(85, 120, 10, 12)
	short := newCall(100, 120, 2, 3)

	opp := EvaluateCallSpread(long, short, 90, deal)
	require.NotNil(t, opp)
	assert.InDelta(t, 15.0-8.5, opp.MaxProfit, 1e-9)
}

func TestEvaluateCallSpreadRejectsZeroMidLegs(t *testing.T) {
	deal := newDeal(t, 100, 90)

	assert.Nil(t, EvaluateCallSpread(newCall(85, 120, 0, 0), newCall(100, 120, 2, 3), 90, deal))
	assert.Nil(t, EvaluateCallSpread(newCall(85, 120, 10, 12), newCall(100, 120, 0, 0), 90, deal))
}

func TestEvaluateCallSpreadRejectsCreditAnomaly(t *testing.T) {
	// Short leg priced above the long leg nets a credit; for this
	// structure that is a data anomaly, not free money.
	deal := newDeal(t, 100, 90)
	long := newCall(85, 120, 2, 3)
	short := newCall(100, 120, 10, 12)

	assert.Nil(t, EvaluateCallSpread(long, short, 90, deal))
}

func TestEvaluateCallSpreadRejectsStructuralMismatch(t *testing.T) {
	deal := newDeal(t, 100, 90)

	// Strikes out of order.
	assert.Nil(t, EvaluateCallSpread(newCall(100, 120, 2, 3), newCall(85, 120, 10, 12), 90, deal))
	// Differing expiries.
	assert.Nil(t, EvaluateCallSpread(newCall(85, 120, 10, 12), newCall(100, 150, 2, 3), 90, deal))
	// Put leg.
	assert.Nil(t, EvaluateCallSpread(newPut(85, 120, 10, 12), newCall(100, 120, 2, 3), 90, deal))
}

func TestEvaluateCallSpreadRejectsNoValueAtExpectedPrice(t *testing.T) {
	// Both strikes above the deal value: the spread expires worthless
	// at the expected price.
	deal := newDeal(t, 80, 90)
	long := newCall(85, 120, 1, 1.5)
	short := newCall(100, 120, 0.3, 0.5)

	assert.Nil(t, EvaluateCallSpread(long, short, 75, deal))
}
