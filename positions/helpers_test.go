package positions

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/marbd/models"
)

var testAsOf = time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

// newDeal builds session terms closing the given number of days out.
func newDeal(t *testing.T, dealPrice float64, daysToClose int) models.DealTerms {
	t.Helper()
	closeDate := testAsOf.AddDate(0, 0, daysToClose).Format("2006-01-02")
	deal, err := models.NewDealTerms("TGT", dealPrice, closeDate, 0, 0, 0, testAsOf)
	require.NoError(t, err)
	return deal
}

func newCall(strike float64, daysToExpiry int, bid, ask float64) models.OptionQuote {
	expiry := testAsOf.AddDate(0, 0, daysToExpiry)
	return models.OptionQuote{
		Symbol:       fmt.Sprintf("TGT%sC%08.0f", expiry.Format("060102"), strike*1000),
		Strike:       strike,
		Expiry:       expiry,
		Right:        models.Call,
		Bid:          bid,
		Ask:          ask,
		OpenInterest: 100,
		ImpliedVol:   0.30,
	}
}

func newPut(strike float64, daysToExpiry int, bid, ask float64) models.OptionQuote {
	q := newCall(strike, daysToExpiry, bid, ask)
	q.Symbol = fmt.Sprintf("TGT%sP%08.0f", q.Expiry.Format("060102"), strike*1000)
	q.Right = models.Put
	return q
}
