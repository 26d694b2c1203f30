package tradier

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PostCloseWindowDays pads the fetch window past the expected close so
// post-close expirations stay available. Policy constant, not derived.
var PostCloseWindowDays = 45

// FetchWindow computes the expiration window queried for a deal:
// [max(today, closeDate-lookbackDays), closeDate+PostCloseWindowDays].
func FetchWindow(today, closeDate time.Time, lookbackDays int) (time.Time, time.Time) {
	start := closeDate.AddDate(0, 0, -lookbackDays)
	if start.Before(today) {
		start = today
	}
	return start, closeDate.AddDate(0, 0, PostCloseWindowDays)
}

func GET_QUOTES(Symbol, Start, End, Interval, Token string) (*QuoteHistory, error) {
	apiURL := fmt.Sprintf("https://api.tradier.com/v1/markets/history?symbol=%s&interval=%s&start=%s&end=%s&session_filter=all", Symbol, Interval, Start, End)

	responseData, err := get(apiURL, Token)
	if err != nil {
		return nil, err
	}

	quoteHistory := &QuoteHistory{}
	if err := json.Unmarshal(responseData, quoteHistory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history response data: %w", err)
	}
	if len(quoteHistory.History.Day) == 0 {
		return nil, fmt.Errorf("no quote history returned for %s", Symbol)
	}

	return quoteHistory, nil
}

// GET_OPTIONS_CHAIN fetches every expiration inside [windowStart,
// windowEnd] and its full chain, keyed by expiration date. Contracts
// are returned as-is; normalization happens at quote construction.
func GET_OPTIONS_CHAIN(Symbol, Token string, windowStart, windowEnd time.Time) (map[string]*OptionChain, error) {
	expirationsURL := fmt.Sprintf("https://api.tradier.com/v1/markets/options/expirations?symbol=%s&includeAllRoots=true&strikes=true&contractSize=true&expirationType=true", Symbol)

	expirationsData, err := get(expirationsURL, Token)
	if err != nil {
		return nil, err
	}

	expirations := &OptionExpirations{}
	if err := json.Unmarshal(expirationsData, expirations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal expirations response data: %w", err)
	}

	ChainMap := make(map[string]*OptionChain)

	for _, expiration := range expirations.Expirations.Expiration {
		expirationTime, err := time.Parse("2006-01-02", expiration.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expiration date %q: %w", expiration.Date, err)
		}

		if expirationTime.Before(windowStart) || expirationTime.After(windowEnd) {
			continue
		}

		chainURL := fmt.Sprintf("https://api.tradier.com/v1/markets/options/chains?symbol=%s&expiration=%s&greeks=true", Symbol, expiration.Date)
		chainData, err := get(chainURL, Token)
		if err != nil {
			return nil, err
		}

		optionChain := &OptionChain{}
		if err := json.Unmarshal(chainData, optionChain); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chain response data: %w", err)
		}

		ChainMap[expiration.Date] = optionChain
	}

	return ChainMap, nil
}

func get(apiURL, token string) ([]byte, error) {
	u, err := url.ParseRequestURI(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid tradier url %q: %w", apiURL, err)
	}

	r, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tradier request: %w", err)
	}
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	r.Header.Add("Accept", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(r)
	if err != nil {
		return nil, fmt.Errorf("tradier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tradier returned status %d for %s", resp.StatusCode, u.Path)
	}

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response data: %w", err)
	}

	return responseData, nil
}
