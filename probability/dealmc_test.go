package probability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/marbd/models"
)

var testAsOf = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

func testDeal(t *testing.T, confidence float64) models.DealTerms {
	t.Helper()
	deal, err := models.NewDealTerms("TGT", 100, "2026-07-01", 0, 0, confidence, testAsOf)
	require.NoError(t, err)
	return deal
}

func testCallOpp(strike, entry float64) models.Opportunity {
	return models.Opportunity{
		Strategy: models.StrategySingleCall,
		Long: models.OptionQuote{
			Symbol: "TGT260701C00085000",
			Strike: strike,
			Expiry: testAsOf.AddDate(0, 0, 200),
			Right:  models.Call,
		},
		EntryCost: entry,
	}
}

func TestSimulateFullConfidenceIsDeterministic(t *testing.T) {
	// Confidence 1: every draw lands on the convergence path, so the
	// expected payoff is exactly the full-convergence payoff.
	deal := testDeal(t, 1)
	opp := testCallOpp(85, 11)

	res := SimulateDealOutcome(opp, deal, 90, OutcomeParams{BreakPrice: 60, BreakVol: 0.6})

	assert.InDelta(t, 15.0-11.0, res.ExpectedPayoff, 1e-9)
	assert.Equal(t, 1.0, res.ProbProfit)
}

func TestSimulateZeroConfidenceIsDownsideOnly(t *testing.T) {
	// Confidence 0 with negligible dispersion pins every draw near the
	// break price; a call struck above it expires worthless.
	deal := testDeal(t, 0)
	opp := testCallOpp(85, 11)

	res := SimulateDealOutcome(opp, deal, 90, OutcomeParams{BreakPrice: 60, BreakVol: 0.0001})

	assert.InDelta(t, -11.0, res.ExpectedPayoff, 0.01)
	assert.Equal(t, 0.0, res.ProbProfit)
}

func TestSimulateExpectedPayoffScalesWithConfidence(t *testing.T) {
	opp := testCallOpp(85, 11)
	params := OutcomeParams{BreakPrice: 60, BreakVol: 0.0001}

	low := SimulateDealOutcome(opp, testDeal(t, 0.2), 90, params)
	high := SimulateDealOutcome(opp, testDeal(t, 0.9), 90, params)

	assert.Greater(t, high.ExpectedPayoff, low.ExpectedPayoff)
	assert.Greater(t, high.ProbProfit, low.ProbProfit)
}

func TestSimulateCoveredCallPayoff(t *testing.T) {
	// Covered call assigned at the strike on the close path: premium
	// plus appreciation to the strike.
	deal := testDeal(t, 1)
	opp := models.Opportunity{
		Strategy: models.StrategyCoveredCall,
		Long: models.OptionQuote{
			Symbol: "TGT260701C00100000",
			Strike: 100,
			Expiry: testAsOf.AddDate(0, 0, 200),
			Right:  models.Call,
			Bid:    2,
		},
	}

	res := SimulateDealOutcome(opp, deal, 95, OutcomeParams{BreakPrice: 60, BreakVol: 0.6})
	assert.InDelta(t, (100.0-95.0)+2.0, res.ExpectedPayoff, 1e-9)
}

func TestDefaultOutcomeParams(t *testing.T) {
	deal := testDeal(t, 0.8)

	params := DefaultOutcomeParams(deal, 90)
	assert.InDelta(t, 70.0, params.BreakPrice, 1e-9)

	// Break price never goes non-positive even for huge spreads.
	wide := DefaultOutcomeParams(deal, 10)
	assert.Greater(t, wide.BreakPrice, 0.0)
}
