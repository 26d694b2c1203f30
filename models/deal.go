package models

import (
	"fmt"
	"math"
	"time"
)

// DealTerms holds the cash terms of a pending acquisition. One instance
// binds to one evaluation session: TotalDealValue and DaysToClose are
// computed once against AsOf so every contract in a chain scan sees the
// same "now".
type DealTerms struct {
	Ticker              string    `json:"ticker"`
	DealPrice           float64   `json:"deal_price"`
	ExpectedClose       time.Time `json:"expected_close"`
	DividendBeforeClose float64   `json:"dividend_before_close"`
	ContingentValue     float64   `json:"contingent_value_estimate"`
	Confidence          float64   `json:"confidence"`

	AsOf           time.Time `json:"as_of"`
	TotalDealValue float64   `json:"total_deal_value"`
	DaysToClose    int       `json:"days_to_close"`
}

func NewDealTerms(ticker string, dealPrice float64, expectedClose string, dividend, contingentValue, confidence float64, asOf time.Time) (DealTerms, error) {
	if ticker == "" {
		return DealTerms{}, fmt.Errorf("deal terms: ticker is required")
	}
	if dealPrice < 0 {
		return DealTerms{}, fmt.Errorf("deal terms: deal price must be non-negative, got %.2f", dealPrice)
	}
	closeDate, err := time.Parse("2006-01-02", expectedClose)
	if err != nil {
		return DealTerms{}, fmt.Errorf("deal terms: failed to parse expected close date %q: %w", expectedClose, err)
	}
	if confidence < 0 || confidence > 1 {
		return DealTerms{}, fmt.Errorf("deal terms: confidence must be in [0, 1], got %.2f", confidence)
	}

	// Floored at 1 so past or same-day close dates never divide by zero.
	days := int(math.Floor(closeDate.Sub(asOf).Hours() / 24))
	if days < 1 {
		days = 1
	}

	return DealTerms{
		Ticker:              ticker,
		DealPrice:           dealPrice,
		ExpectedClose:       closeDate,
		DividendBeforeClose: dividend,
		ContingentValue:     contingentValue,
		Confidence:          confidence,
		AsOf:                asOf,
		TotalDealValue:      dealPrice + dividend + contingentValue,
		DaysToClose:         days,
	}, nil
}

// DaysUntil reports whole calendar days from the session's AsOf to t,
// never negative.
func (d DealTerms) DaysUntil(t time.Time) int {
	days := int(math.Floor(t.Sub(d.AsOf).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
