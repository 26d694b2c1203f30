package positions

import (
	"github.com/sirupsen/logrus"

	"github.com/bcdannyboy/marbd/models"
	"github.com/bcdannyboy/marbd/tradier"
)

// BuildChain normalizes a raw Tradier chain map into evaluation-ready
// quotes. Contracts missing structural identity are logged and skipped;
// everything else survives with defaulted fields, so economic rejection
// stays the evaluators' call.
func BuildChain(raw map[string]*tradier.OptionChain) models.Chain {
	chain := make(models.Chain, len(raw))

	for exp, oc := range raw {
		if oc == nil {
			continue
		}
		quotes := make([]models.OptionQuote, 0, len(oc.Options.Option))
		for _, opt := range oc.Options.Option {
			q, err := models.NewOptionQuote(opt)
			if err != nil {
				logrus.WithError(err).WithField("expiration", exp).Warn("skipping malformed contract")
				continue
			}
			quotes = append(quotes, q)
		}
		if len(quotes) > 0 {
			chain[exp] = quotes
		}
	}

	return chain
}
