package quotes

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/folioscout/folioscout"
)

// tiingoBaseURL is a variable so tests can point the fetcher at a local server.
var tiingoBaseURL = "https://api.tiingo.com"

// fetchTiingoPrices retrieves the daily price history of a ticker from Tiingo,
// starting at 'from'. It returns the adjusted close, which folds splits back
// into the series.
//
//	[
//	  {
//	    "date": "2024-01-02T00:00:00.000Z",
//	    "close": 185.64,
//	    "adjClose": 184.9012,
//	    ...
//	  },
func fetchTiingoPrices(ctx context.Context, client *http.Client, token, ticker string, from folioscout.Date) (*folioscout.History[float64], error) {
	addr := fmt.Sprintf("%s/tiingo/daily/%s/prices?startDate=%s&token=%s",
		tiingoBaseURL, url.PathEscape(ticker), from, url.QueryEscape(token))

	type row struct {
		Date     string  `json:"date"`
		AdjClose float64 `json:"adjClose"`
	}
	content := make([]row, 0)
	if err := jwget(ctx, client, addr, &content); err != nil {
		return nil, fmt.Errorf("tiingo %s: %w", ticker, err)
	}

	h := &folioscout.History[float64]{}
	for _, r := range content {
		// The date field is a full timestamp, only its day part matters.
		if len(r.Date) < len(folioscout.DateFormat) {
			continue
		}
		day, err := folioscout.ParseDate(r.Date[:len(folioscout.DateFormat)])
		if err != nil {
			continue
		}
		if math.IsNaN(r.AdjClose) || math.IsInf(r.AdjClose, 0) {
			continue
		}
		h.Append(day, r.AdjClose)
	}
	if h.Len() == 0 {
		return nil, fmt.Errorf("tiingo %s: empty response", ticker)
	}
	return h, nil
}
