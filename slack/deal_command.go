package marbslack

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/bcdannyboy/marbd/models"
	"github.com/bcdannyboy/marbd/positions"
	"github.com/bcdannyboy/marbd/probability"
	"github.com/bcdannyboy/marbd/tradier"
)

const dealLookbackDays = 30

type DealHandler struct {
	tradierToken string
}

func NewDealHandler(tradierToken string) *DealHandler {
	return &DealHandler{tradierToken: tradierToken}
}

func (h *DealHandler) HandleCommand(evt *socketmode.Event, client *socketmode.Client) error {
	data := evt.Data.(slack.SlashCommand)
	args := strings.Fields(data.Text)

	if len(args) < 3 || len(args) > 6 {
		_, _, err := client.PostMessage(data.ChannelID,
			slack.MsgOptionText("Usage: /marb <symbol> <dealPrice> <closeDate YYYY-MM-DD> [dividend] [cvr] [confidence]", false))
		return err
	}

	symbol := strings.ToUpper(args[0])
	dealPrice, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		_, _, perr := client.PostMessage(data.ChannelID,
			slack.MsgOptionText(fmt.Sprintf("Invalid deal price %q", args[1]), false))
		return perr
	}
	closeDate := args[2]

	var dividend, cvr, confidence float64
	if len(args) > 3 {
		dividend, _ = strconv.ParseFloat(args[3], 64)
	}
	if len(args) > 4 {
		cvr, _ = strconv.ParseFloat(args[4], 64)
	}
	if len(args) > 5 {
		confidence, _ = strconv.ParseFloat(args[5], 64)
	}

	_, ts, err := client.PostMessage(data.ChannelID,
		slack.MsgOptionText(fmt.Sprintf("Analyzing %s merger-arb structures...", symbol), false))
	if err != nil {
		return err
	}

	go h.runAnalysis(client, data.ChannelID, ts, symbol, dealPrice, closeDate, dividend, cvr, confidence)

	return nil
}

func (h *DealHandler) runAnalysis(client *socketmode.Client, channelID, timestamp, symbol string, dealPrice float64, closeDate string, dividend, cvr, confidence float64) {
	result := h.analyze(symbol, dealPrice, closeDate, dividend, cvr, confidence)
	client.PostMessage(channelID,
		slack.MsgOptionText(result, false),
		slack.MsgOptionTS(timestamp))
}

func (h *DealHandler) analyze(symbol string, dealPrice float64, closeDate string, dividend, cvr, confidence float64) string {
	now := time.Now()

	deal, err := models.NewDealTerms(symbol, dealPrice, closeDate, dividend, cvr, confidence, now)
	if err != nil {
		return fmt.Sprintf("Invalid deal terms: %s", err.Error())
	}

	today := now.Format("2006-01-02")
	monthAgo := now.AddDate(0, -1, 0).Format("2006-01-02")
	quotes, err := tradier.GET_QUOTES(symbol, monthAgo, today, "daily", h.tradierToken)
	if err != nil {
		return fmt.Sprintf("Error fetching quotes for %s: %s", symbol, err.Error())
	}
	currentPrice := quotes.History.Day[len(quotes.History.Day)-1].Close

	windowStart, windowEnd := tradier.FetchWindow(now, deal.ExpectedClose, dealLookbackDays)
	rawChain, err := tradier.GET_OPTIONS_CHAIN(symbol, h.tradierToken, windowStart, windowEnd)
	if err != nil {
		return fmt.Sprintf("Error fetching options chain for %s: %s", symbol, err.Error())
	}

	chain := positions.BuildChain(rawChain)
	opps := positions.FindBestOpportunitiesParallel(deal, currentPrice, chain, 0, nil)

	return renderOpportunities(deal, currentPrice, opps)
}

func renderOpportunities(deal models.DealTerms, currentPrice float64, opps []models.Opportunity) string {
	if len(opps) == 0 {
		return fmt.Sprintf("No admissible opportunities for %s (deal value %.2f, spot %.2f, %d days to close).",
			deal.Ticker, deal.TotalDealValue, currentPrice, deal.DaysToClose)
	}

	top := opps
	if len(top) > 5 {
		top = top[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: deal value %.2f, spot %.2f, %d days to close, %d opportunities. Top %d:\n",
		deal.Ticker, deal.TotalDealValue, currentPrice, deal.DaysToClose, len(opps), len(top))

	for i, opp := range top {
		line := describeOpportunity(opp)
		if deal.Confidence > 0 && deal.Confidence < 1 {
			sim := probability.SimulateDealOutcome(opp, deal, currentPrice, probability.DefaultOutcomeParams(deal, currentPrice))
			line += fmt.Sprintf(" | E[payoff] %.2f, P(profit) %.0f%%", sim.ExpectedPayoff, sim.ProbProfit*100)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}

	return b.String()
}

func describeOpportunity(opp models.Opportunity) string {
	switch opp.Strategy {
	case models.StrategySingleCall:
		return fmt.Sprintf("CALL %s %.2f exp %s: entry %.2f (far %.2f), breakeven %.2f, HPR %.1f%%",
			opp.Long.Symbol, opp.Long.Strike, opp.Long.Expiry.Format("2006-01-02"),
			opp.EntryCost, opp.EntryCostFarTouch, opp.Breakeven, opp.HoldingPeriodReturn*100)
	case models.StrategyCallSpread:
		return fmt.Sprintf("SPREAD %.2f/%.2f exp %s: entry %.2f (far %.2f), max profit %.2f, HPR %.1f%%",
			opp.Long.Strike, opp.Short.Strike, opp.Long.Expiry.Format("2006-01-02"),
			opp.EntryCost, opp.EntryCostFarTouch, opp.MaxProfit, opp.HoldingPeriodReturn*100)
	case models.StrategyCoveredCall:
		return fmt.Sprintf("COVERED %s %.2f exp %s: bid %.2f, annualized yield %.1f%%, edge %.2f%%, if-called %.2f%%",
			opp.Long.Symbol, opp.Long.Strike, opp.Long.Expiry.Format("2006-01-02"),
			opp.Long.Bid, opp.PremiumAnnualizedYield*100, opp.EdgeVsMarket*100, opp.IfCalledReturn*100)
	default:
		return string(opp.Strategy)
	}
}
