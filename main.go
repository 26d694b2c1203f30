package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/bcdannyboy/marbd/models"
	"github.com/bcdannyboy/marbd/positions"
	"github.com/bcdannyboy/marbd/probability"
	marbslack "github.com/bcdannyboy/marbd/slack"
	"github.com/bcdannyboy/marbd/tradier"
)

var (
	flagSymbol     string
	flagDealPrice  float64
	flagCloseDate  string
	flagDividend   float64
	flagCVR        float64
	flagConfidence float64
	flagSpot       float64
	flagLookback   int
	flagTopN       int
	flagOut        string
	flagVerbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "marbd",
		Short: "Merger-arbitrage options analyzer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a target's option chain against pending deal terms",
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&flagSymbol, "symbol", "", "target ticker (required)")
	scanCmd.Flags().Float64Var(&flagDealPrice, "deal-price", 0, "cash per share (required)")
	scanCmd.Flags().StringVar(&flagCloseDate, "close", "", "expected close date YYYY-MM-DD (required)")
	scanCmd.Flags().Float64Var(&flagDividend, "dividend", 0, "expected dividend before close")
	scanCmd.Flags().Float64Var(&flagCVR, "cvr", 0, "contingent value right estimate")
	scanCmd.Flags().Float64Var(&flagConfidence, "confidence", 0, "deal completion probability (0-1)")
	scanCmd.Flags().Float64Var(&flagSpot, "spot", 0, "override current price (skips quote fetch)")
	scanCmd.Flags().IntVar(&flagLookback, "lookback", 30, "days before close to start the expiry window")
	scanCmd.Flags().IntVar(&flagTopN, "top", 10, "opportunities to keep in the report")
	scanCmd.Flags().StringVar(&flagOut, "out", "opportunities.json", "report output file")
	scanCmd.MarkFlagRequired("symbol")
	scanCmd.MarkFlagRequired("deal-price")
	scanCmd.MarkFlagRequired("close")

	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Slack bot frontend",
		RunE:  runBot,
	}

	root.AddCommand(scanCmd, botCmd)

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	now := time.Now()
	deal, err := models.NewDealTerms(flagSymbol, flagDealPrice, flagCloseDate, flagDividend, flagCVR, flagConfidence, now)
	if err != nil {
		return err
	}

	tradierKey := os.Getenv("TRADIER_KEY")
	if tradierKey == "" {
		return fmt.Errorf("TRADIER_KEY is not set")
	}

	currentPrice := flagSpot
	if currentPrice == 0 {
		today := now.Format("2006-01-02")
		monthAgo := now.AddDate(0, -1, 0).Format("2006-01-02")
		quotes, err := tradier.GET_QUOTES(deal.Ticker, monthAgo, today, "daily", tradierKey)
		if err != nil {
			return fmt.Errorf("fetching quotes for %s: %w", deal.Ticker, err)
		}
		currentPrice = quotes.History.Day[len(quotes.History.Day)-1].Close
	}

	logrus.WithFields(logrus.Fields{
		"ticker":        deal.Ticker,
		"spot":          currentPrice,
		"deal_value":    deal.TotalDealValue,
		"days_to_close": deal.DaysToClose,
	}).Info("starting scan")

	windowStart, windowEnd := tradier.FetchWindow(now, deal.ExpectedClose, flagLookback)
	rawChain, err := tradier.GET_OPTIONS_CHAIN(deal.Ticker, tradierKey, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("fetching options chain for %s: %w", deal.Ticker, err)
	}

	chain := positions.BuildChain(rawChain)

	contracts := 0
	for _, quotes := range chain {
		contracts += len(quotes)
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(positions.CountJobs(chain)),
		mpb.PrependDecorators(
			decor.Name("Progress"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	opps := positions.FindBestOpportunitiesParallel(deal, currentPrice, chain, runtime.NumCPU(), bar)
	p.Wait()

	if deal.Confidence > 0 && deal.Confidence < 1 {
		params := probability.DefaultOutcomeParams(deal, currentPrice)
		for i := range opps {
			sim := probability.SimulateDealOutcome(opps[i], deal, currentPrice, params)
			opps[i].ExpectedPayoff = sim.ExpectedPayoff
			opps[i].ProbProfit = sim.ProbProfit
		}
	}

	if err := writeReport(flagOut, deal, currentPrice, contracts, opps, flagTopN); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"contracts":     contracts,
		"opportunities": len(opps),
		"report":        flagOut,
	}).Info("scan finished")

	return nil
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on environment")
	}

	appToken := os.Getenv("SLACK_APP_TOKEN")
	botToken := os.Getenv("SLACK_BOT_TOKEN")
	tradierKey := os.Getenv("TRADIER_KEY")
	if appToken == "" || botToken == "" || tradierKey == "" {
		return fmt.Errorf("SLACK_APP_TOKEN, SLACK_BOT_TOKEN and TRADIER_KEY must be set")
	}

	bot := marbslack.NewSlackBot(appToken, botToken, tradierKey)
	return bot.Start()
}
