package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bcdannyboy/marbd/tradier"
)

type OptionRight string

const (
	Call OptionRight = "call"
	Put  OptionRight = "put"
)

// quoteDefaults is the full defaulting table for optional feed fields.
// Any field the feed omits or sends as an explicit null takes the value
// listed here; a present-but-zero value is treated identically.
var quoteDefaults = map[string]float64{
	"bid":           0,
	"ask":           0,
	"last":          0,
	"volume":        0,
	"open_interest": 0,
	"bidsize":       0,
	"asksize":       0,
	"delta":         0,
	"gamma":         0,
	"theta":         0,
	"vega":          0,
	"implied_vol":   0.30,
}

// OptionQuote is an immutable snapshot of one option's market state,
// normalized from the raw Tradier payload. Structural identity (symbol,
// strike, expiry, right) is required; everything else is defaulted per
// quoteDefaults.
type OptionQuote struct {
	Symbol       string      `json:"symbol"`
	Strike       float64     `json:"strike"`
	Expiry       time.Time   `json:"expiry"`
	Right        OptionRight `json:"right"`
	Bid          float64     `json:"bid"`
	Ask          float64     `json:"ask"`
	Last         float64     `json:"last"`
	Volume       int         `json:"volume"`
	OpenInterest int         `json:"open_interest"`
	ImpliedVol   float64     `json:"implied_vol"`
	Delta        float64     `json:"delta"`
	Gamma        float64     `json:"gamma"`
	Theta        float64     `json:"theta"`
	Vega         float64     `json:"vega"`
	BidSize      int         `json:"bid_size"`
	AskSize      int         `json:"ask_size"`
}

func NewOptionQuote(raw tradier.Option) (OptionQuote, error) {
	if raw.Symbol == "" {
		return OptionQuote{}, fmt.Errorf("option quote: symbol is required")
	}
	if raw.Strike <= 0 {
		return OptionQuote{}, fmt.Errorf("option quote %s: strike must be positive, got %.2f", raw.Symbol, raw.Strike)
	}
	expiry, err := time.Parse("2006-01-02", raw.ExpirationDate)
	if err != nil {
		return OptionQuote{}, fmt.Errorf("option quote %s: failed to parse expiration date %q: %w", raw.Symbol, raw.ExpirationDate, err)
	}
	right := OptionRight(raw.OptionType)
	if right != Call && right != Put {
		return OptionQuote{}, fmt.Errorf("option quote %s: option type must be call or put, got %q", raw.Symbol, raw.OptionType)
	}

	q := OptionQuote{
		Symbol:       raw.Symbol,
		Strike:       raw.Strike,
		Expiry:       expiry,
		Right:        right,
		Bid:          numOrDefault(raw.Bid, "bid"),
		Ask:          numOrDefault(raw.Ask, "ask"),
		Last:         numOrDefault(raw.Last, "last"),
		Volume:       int(numOrDefault(raw.Volume, "volume")),
		OpenInterest: int(numOrDefault(raw.OpenInterest, "open_interest")),
		BidSize:      int(numOrDefault(raw.Bidsize, "bidsize")),
		AskSize:      int(numOrDefault(raw.Asksize, "asksize")),
	}

	if raw.Greeks != nil {
		q.Delta = numOrDefault(raw.Greeks.Delta, "delta")
		q.Gamma = numOrDefault(raw.Greeks.Gamma, "gamma")
		q.Theta = numOrDefault(raw.Greeks.Theta, "theta")
		q.Vega = numOrDefault(raw.Greeks.Vega, "vega")
		q.ImpliedVol = numOrDefault(raw.Greeks.MidIv, "implied_vol")
	} else {
		q.Delta = quoteDefaults["delta"]
		q.Gamma = quoteDefaults["gamma"]
		q.Theta = quoteDefaults["theta"]
		q.Vega = quoteDefaults["vega"]
		q.ImpliedVol = quoteDefaults["implied_vol"]
	}

	return q, nil
}

// numOrDefault resolves a nullable feed value against quoteDefaults.
// Zero is indistinguishable from null here on purpose: the feed sends
// both for untraded contracts.
func numOrDefault(v interface{}, field string) float64 {
	def := quoteDefaults[field]
	switch n := v.(type) {
	case float64:
		if n == 0 {
			return def
		}
		return n
	case int:
		if n == 0 {
			return def
		}
		return float64(n)
	case int64:
		if n == 0 {
			return def
		}
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || f == 0 {
			return def
		}
		return f
	default:
		return def
	}
}

// MidPrice resolves a usable price for the contract: bid/ask average
// when both sides are quoted, the last trade otherwise, zero when the
// quote carries no price at all. A zero mid is the evaluators' cue to
// reject, never an error here.
func (q OptionQuote) MidPrice() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	if q.Last > 0 {
		return q.Last
	}
	return 0
}

// QuotedSpread is the bid/ask width, used for liquidity tie-breaks.
// One-sided or empty markets rank behind any two-sided market.
func (q OptionQuote) QuotedSpread() float64 {
	if q.Bid > 0 && q.Ask > 0 && q.Ask >= q.Bid {
		return q.Ask - q.Bid
	}
	return maxQuotedSpread
}

const maxQuotedSpread = 1e9
