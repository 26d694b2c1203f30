package tradier

// QuoteHistory is the markets/history response; the last day's close
// is the session's current price for the underlying.
type QuoteHistory struct {
	History struct {
		Day []struct {
			Date   string  `json:"date"`
			Open   float64 `json:"open"`
			High   float64 `json:"high"`
			Low    float64 `json:"low"`
			Close  float64 `json:"close"`
			Volume int     `json:"volume"`
		} `json:"day"`
	} `json:"history"`
}

type OptionExpirations struct {
	Expirations struct {
		Expiration []struct {
			Date           string `json:"date"`
			ContractSize   int    `json:"contract_size"`
			ExpirationType string `json:"expiration_type"`
			Strikes        struct {
				Strike []float64 `json:"strike"`
			} `json:"strikes"`
		} `json:"expiration"`
	} `json:"expirations"`
}

// Option mirrors the chain feed. Tradier sends null for every market
// field of an untraded contract, so anything optional stays interface{}
// here and is normalized downstream; only structural identity is typed.
type Option struct {
	Symbol         string      `json:"symbol"`
	Description    string      `json:"description"`
	Underlying     string      `json:"underlying"`
	Strike         float64     `json:"strike"`
	ExpirationDate string      `json:"expiration_date"`
	OptionType     string      `json:"option_type"`
	Last           interface{} `json:"last"`
	Bid            interface{} `json:"bid"`
	Ask            interface{} `json:"ask"`
	Volume         interface{} `json:"volume"`
	OpenInterest   interface{} `json:"open_interest"`
	Bidsize        interface{} `json:"bidsize"`
	Asksize        interface{} `json:"asksize"`
	Greeks         *Greeks     `json:"greeks"`
}

type Greeks struct {
	Delta interface{} `json:"delta"`
	Gamma interface{} `json:"gamma"`
	Theta interface{} `json:"theta"`
	Vega  interface{} `json:"vega"`
	BidIv interface{} `json:"bid_iv"`
	MidIv interface{} `json:"mid_iv"`
	AskIv interface{} `json:"ask_iv"`
}

type OptionChain struct {
	Options struct {
		Option []Option `json:"option"`
	} `json:"options"`
}
