package positions

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/sirupsen/logrus"
	mpb "github.com/vbauerster/mpb/v7"

	"github.com/bcdannyboy/marbd/models"
)

const (
	jobBatchSize    = 1000
	resultBatchSize = 1000
)

// job is one structurally eligible evaluation: a single contract for
// single_call/covered_call, or an ordered same-expiry strike pair for
// call_spread.
type job struct {
	strategy models.Strategy
	long     models.OptionQuote
	short    models.OptionQuote
	pair     bool
}

// generateJobs enumerates every structurally eligible combination in
// the chain exactly once. No economic filtering happens here: a
// contract must reach its evaluator before it can be rejected, so that
// nothing in the strike x expiry grid is silently dropped.
func generateJobs(chain models.Chain) []job {
	expiries := make([]string, 0, len(chain))
	for exp := range chain {
		expiries = append(expiries, exp)
	}
	sort.Strings(expiries)

	var jobs []job
	for _, exp := range expiries {
		calls := filterCallQuotes(chain[exp])
		if len(calls) == 0 {
			continue
		}

		sort.Slice(calls, func(i, j int) bool {
			if calls[i].Strike != calls[j].Strike {
				return calls[i].Strike < calls[j].Strike
			}
			return calls[i].Symbol < calls[j].Symbol
		})

		for _, c := range calls {
			jobs = append(jobs, job{strategy: models.StrategySingleCall, long: c})
			jobs = append(jobs, job{strategy: models.StrategyCoveredCall, long: c})
		}

		for i := 0; i < len(calls)-1; i++ {
			for j := i + 1; j < len(calls); j++ {
				if calls[i].Strike == calls[j].Strike {
					continue
				}
				jobs = append(jobs, job{
					strategy: models.StrategyCallSpread,
					long:     calls[i],
					short:    calls[j],
					pair:     true,
				})
			}
		}
	}

	return jobs
}

// CountJobs reports how many evaluations a scan of the chain will run,
// for sizing progress bars. Matches generateJobs exactly, including the
// equal-strike pair skip.
func CountJobs(chain models.Chain) int {
	return len(generateJobs(chain))
}

func evaluateJob(j job, currentPrice float64, deal models.DealTerms) *models.Opportunity {
	var opp *models.Opportunity
	switch j.strategy {
	case models.StrategySingleCall:
		opp = EvaluateSingleCall(j.long, currentPrice, deal)
	case models.StrategyCallSpread:
		opp = EvaluateCallSpread(j.long, j.short, currentPrice, deal)
	case models.StrategyCoveredCall:
		opp = EvaluateCoveredCall(j.long, currentPrice, deal)
	}
	if opp != nil {
		opp.FairValue = FairValue(j.long, currentPrice, RiskFreeRate, deal.AsOf)
	}
	return opp
}

// FindBestOpportunities scans the full chain sequentially and returns
// every admitted opportunity ranked best-first. This is the reference
// semantics; the parallel variant must produce identical results.
func FindBestOpportunities(deal models.DealTerms, currentPrice float64, chain models.Chain) []models.Opportunity {
	jobs := generateJobs(chain)

	var opps []models.Opportunity
	for _, j := range jobs {
		if opp := evaluateJob(j, currentPrice, deal); opp != nil {
			opps = append(opps, *opp)
		}
	}

	sortOpportunities(opps)
	return opps
}

// FindBestOpportunitiesParallel fans the same job set out over a worker
// pool. Evaluation is a pure function of its inputs, so the only
// difference from the sequential scan is wall-clock time. bar may be
// nil.
func FindBestOpportunitiesParallel(deal models.DealTerms, currentPrice float64, chain models.Chain, numWorkers int, bar *mpb.Bar) []models.Opportunity {
	jobs := generateJobs(chain)

	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	logrus.WithFields(logrus.Fields{
		"ticker":  deal.Ticker,
		"jobs":    len(jobs),
		"workers": numWorkers,
	}).Info("scanning option chain")

	stop := make(chan struct{})
	defer close(stop)
	go monitorCPUUsage(stop)

	opps := processJobs(jobs, currentPrice, deal, numWorkers, bar)

	sortOpportunities(opps)

	logrus.WithFields(logrus.Fields{
		"ticker":        deal.Ticker,
		"opportunities": len(opps),
	}).Info("scan complete")

	return opps
}

func processJobs(jobs []job, currentPrice float64, deal models.DealTerms, numWorkers int, bar *mpb.Bar) []models.Opportunity {
	var wg sync.WaitGroup
	jobChan := make(chan job, jobBatchSize)
	resultChan := make(chan models.Opportunity, resultBatchSize)
	var processed int64

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(jobChan, resultChan, currentPrice, deal, &wg, &processed, bar)
	}

	go func() {
		for _, j := range jobs {
			jobChan <- j
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var opps []models.Opportunity
	for opp := range resultChan {
		opps = append(opps, opp)
	}

	return opps
}

func worker(jobs <-chan job, results chan<- models.Opportunity, currentPrice float64, deal models.DealTerms, wg *sync.WaitGroup, processed *int64, bar *mpb.Bar) {
	defer wg.Done()
	for j := range jobs {
		if opp := evaluateJob(j, currentPrice, deal); opp != nil {
			results <- *opp
		}
		atomic.AddInt64(processed, 1)
		if bar != nil {
			bar.Increment()
		}
	}
}

// sortOpportunities orders by the strategy-appropriate return metric,
// breaking ties by open interest, then bid/ask tightness. The trailing
// symbol keys make the order total so sequential and parallel scans
// sort identically.
func sortOpportunities(opps []models.Opportunity) {
	sort.Slice(opps, func(i, j int) bool {
		if opps[i].RankMetric() != opps[j].RankMetric() {
			return opps[i].RankMetric() > opps[j].RankMetric()
		}
		if opps[i].OpenInterest() != opps[j].OpenInterest() {
			return opps[i].OpenInterest() > opps[j].OpenInterest()
		}
		if opps[i].QuotedSpread() != opps[j].QuotedSpread() {
			return opps[i].QuotedSpread() < opps[j].QuotedSpread()
		}
		if opps[i].Strategy != opps[j].Strategy {
			return opps[i].Strategy < opps[j].Strategy
		}
		if opps[i].Long.Symbol != opps[j].Long.Symbol {
			return opps[i].Long.Symbol < opps[j].Long.Symbol
		}
		return opps[i].Short != nil && opps[j].Short != nil && opps[i].Short.Symbol < opps[j].Short.Symbol
	})
}

func filterCallQuotes(quotes []models.OptionQuote) []models.OptionQuote {
	var calls []models.OptionQuote
	for _, q := range quotes {
		if q.Right == models.Call {
			calls = append(calls, q)
		}
	}
	return calls
}

func monitorCPUUsage(stop <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			percentage, err := cpu.Percent(time.Second, false)
			if err == nil && len(percentage) > 0 {
				logrus.WithField("cpu_pct", percentage[0]).Debug("scan cpu usage")
			}
		case <-stop:
			return
		}
	}
}
