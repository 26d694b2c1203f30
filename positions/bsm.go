package positions

import (
	"math"
	"time"

	"github.com/bcdannyboy/marbd/models"
)

// RiskFreeRate feeds the fair-value estimate attached to opportunities.
var RiskFreeRate = 0.0379

// FairValue prices a quote with Black-Scholes using the quote's implied
// vol (the 0.30 fallback applies when the feed carried none). Attached
// to opportunities as informational metadata; admission logic never
// depends on it.
func FairValue(q models.OptionQuote, underlyingPrice, riskFreeRate float64, asOf time.Time) models.BSMResult {
	days := int(math.Floor(q.Expiry.Sub(asOf).Hours() / 24))
	if days < 1 {
		days = 1
	}
	T := float64(days) / 365.0

	return calculateBSM(underlyingPrice, q.Strike, T, riskFreeRate, q.ImpliedVol, q.Right == models.Call)
}

func calculateBSM(S, K, T, r, sigma float64, isCall bool) models.BSMResult {
	if S <= 0 || K <= 0 || sigma <= 0 {
		return models.BSMResult{}
	}

	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 := d1 - sigma*math.Sqrt(T)

	var delta, price float64
	if isCall {
		delta = normCDF(d1)
		price = S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	} else {
		delta = normCDF(d1) - 1
		price = K*math.Exp(-r*T)*normCDF(-d2) - S*normCDF(-d1)
	}

	gamma := normPDF(d1) / (S * sigma * math.Sqrt(T))
	vega := S * normPDF(d1) * math.Sqrt(T)
	theta := -(S*normPDF(d1)*sigma)/(2*math.Sqrt(T)) - r*K*math.Exp(-r*T)*normCDF(d2)
	rho := K * T * math.Exp(-r*T) * normCDF(d2)
	if !isCall {
		theta = theta + r*K*math.Exp(-r*T)
		rho = -K * T * math.Exp(-r*T) * normCDF(-d2)
	}

	return models.BSMResult{
		Price: sanitizeFloat(price),
		Delta: sanitizeFloat(delta),
		Gamma: sanitizeFloat(gamma),
		Theta: sanitizeFloat(theta),
		Vega:  sanitizeFloat(vega),
		Rho:   sanitizeFloat(rho),
	}
}

func sanitizeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
