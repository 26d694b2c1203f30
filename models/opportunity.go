package models

type Strategy string

const (
	StrategySingleCall  Strategy = "single_call"
	StrategyCallSpread  Strategy = "call_spread"
	StrategyCoveredCall Strategy = "covered_call"
)

// Chain is a full option chain keyed by expiration date (2006-01-02).
type Chain map[string][]OptionQuote

// BSMResult carries the Black-Scholes fair value and greeks computed
// for a quote. Informational only; admission logic never reads it.
type BSMResult struct {
	Price float64 `json:"price"`
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

// Opportunity is one admitted strategy instance. Produced fresh per
// evaluation, never mutated afterwards. Fields that do not apply to a
// strategy stay zero.
type Opportunity struct {
	Strategy Strategy     `json:"strategy"`
	Long     OptionQuote  `json:"long"`
	Short    *OptionQuote `json:"short,omitempty"` // call_spread only

	EntryCost         float64 `json:"entry_cost"`
	EntryCostFarTouch float64 `json:"entry_cost_far_touch"`
	Breakeven         float64 `json:"breakeven,omitempty"`

	// One-shot holding-period ratio for single_call/call_spread. Merger
	// payoffs are terminal events, so this is never scaled by time.
	HoldingPeriodReturn float64 `json:"holding_period_return,omitempty"`
	MaxProfit           float64 `json:"max_profit,omitempty"`

	// Covered-call metrics. PremiumAnnualizedYield is the one
	// time-annualized figure in this file: written premium recurs with
	// position rolling, so it is a rate, not a payoff.
	PremiumAnnualizedYield float64 `json:"premium_annualized_yield,omitempty"`
	EdgeVsMarket           float64 `json:"edge_vs_market,omitempty"`
	IfCalledReturn         float64 `json:"if_called_return,omitempty"`

	ExpectedPrice  float64   `json:"expected_price"`
	FairValue      BSMResult `json:"fair_value"`
	ExpectedPayoff float64   `json:"expected_payoff,omitempty"`
	ProbProfit     float64   `json:"prob_profit,omitempty"`
}

// RankMetric is the strategy-appropriate return used for ordering.
func (o Opportunity) RankMetric() float64 {
	if o.Strategy == StrategyCoveredCall {
		return o.PremiumAnnualizedYield
	}
	return o.HoldingPeriodReturn
}

// OpenInterest sums the contributing legs' open interest for
// liquidity tie-breaks.
func (o Opportunity) OpenInterest() int {
	oi := o.Long.OpenInterest
	if o.Short != nil {
		oi += o.Short.OpenInterest
	}
	return oi
}

// QuotedSpread sums the contributing legs' bid/ask widths.
func (o Opportunity) QuotedSpread() float64 {
	s := o.Long.QuotedSpread()
	if o.Short != nil {
		s += o.Short.QuotedSpread()
	}
	return s
}
