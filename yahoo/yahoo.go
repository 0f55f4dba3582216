// Package yahoo implements a price provider backed by the Yahoo Finance
// chart API. It satisfies the stockwatch.Quoter capability: one closing
// price per symbol and date, or a fetch failure the caller isolates.
package yahoo

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/dipwatch/stockwatch/date"
)

// DefaultBaseURL is the public chart endpoint host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Provider fetches daily closing prices from Yahoo Finance. The zero value
// is not usable; use New.
type Provider struct {
	baseURL string
	client  *http.Client
}

// New returns a Provider with a daily-expiring disk cache, so re-running a
// tracking cycle the same day does not hit the API again per symbol.
func New() *Provider {
	return &Provider{baseURL: DefaultBaseURL, client: newDailyCachingClient()}
}

// NewWithClient returns a Provider with a custom endpoint and client.
// For tests and proxies.
func NewWithClient(baseURL string, client *http.Client) *Provider {
	return &Provider{baseURL: baseURL, client: client}
}

// chartResponse mirrors the subset of the v8 chart payload we read.
//
//	{"chart":{"result":[{"meta":{...},"timestamp":[...],
//	  "indicators":{"quote":[{"close":[...]}]}}],"error":null}}
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Currency           string          `json:"currency"`
		Symbol             string          `json:"symbol"`
		RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			// Close entries are null on non-trading intervals.
			Close []*decimal.Decimal `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// Quote returns the closing price for the symbol on the given date, rounded
// to two decimals. It queries the day's 1d candle; when the market has no
// close yet the last quoted price of the day is used, matching what a
// tracking run launched after the session close records.
func (p *Provider) Quote(symbol string, on date.Date) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		p.baseURL, url.PathEscape(symbol), on.Time().Unix(), on.Add(1).Time().Unix())

	var resp chartResponse
	if err := jwget(p.client, addr, &resp); err != nil {
		return 0, fmt.Errorf("fetch failed for %q: %w", symbol, err)
	}
	return closingPrice(&resp, symbol)
}

// closingPrice extracts the day's close from a chart payload.
func closingPrice(resp *chartResponse, symbol string) (float64, error) {
	if e := resp.Chart.Error; e != nil {
		return 0, fmt.Errorf("fetch failed for %q: %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("fetch failed for %q: empty chart result", symbol)
	}
	result := resp.Chart.Result[0]

	// Walk the candle closes backwards: the last non-null entry is the most
	// recent close of the requested window.
	for _, quote := range result.Indicators.Quote {
		for i := len(quote.Close) - 1; i >= 0; i-- {
			if quote.Close[i] == nil {
				continue
			}
			price, _ := quote.Close[i].Round(2).Float64()
			if price <= 0 {
				return 0, fmt.Errorf("fetch failed for %q: non-positive close %v", symbol, price)
			}
			return price, nil
		}
	}

	// No candle data: fall back to the meta quote when present.
	if result.Meta.RegularMarketPrice.IsPositive() {
		price, _ := result.Meta.RegularMarketPrice.Round(2).Float64()
		return price, nil
	}
	return 0, fmt.Errorf("fetch failed for %q: no closing price in response", symbol)
}
