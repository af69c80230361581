package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/folioscout/folioscout"
)

// alphaVantageBaseURL is a variable so tests can point the fetcher at a local server.
var alphaVantageBaseURL = "https://www.alphavantage.co"

/*
	{
	    "Meta Data": { ... },
	    "Time Series (Daily)": {
	        "2024-01-03": {
	            "1. open": "27.1100",
	            "2. high": "27.2000",
	            "3. low": "26.9000",
	            "4. close": "27.0500",
	            "5. volume": "1043300"
	        },
*/
func fetchAlphaVantagePrices(ctx context.Context, client *http.Client, key, symbol string, from folioscout.Date) (*folioscout.History[float64], error) {
	addr := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&outputsize=compact&symbol=%s&apikey=%s",
		alphaVantageBaseURL, url.QueryEscape(symbol), url.QueryEscape(key))

	var jobj map[string]any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", symbol, err)
	}

	// Errors and rate-limit notices come back as 200 with a message field.
	for _, field := range []string{"Error Message", "Note", "Information"} {
		if msg, ok := jobj[field].(string); ok {
			return nil, fmt.Errorf("alphavantage %s: %s", symbol, msg)
		}
	}

	path := `$["Time Series (Daily)"]`
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: error parsing %q: %w", symbol, path, err)
	}
	series, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("alphavantage %s: %q is not an object", symbol, path)
	}

	h := &folioscout.History[float64]{}
	for dateStr, jrow := range series {
		day, err := folioscout.ParseDate(dateStr)
		if err != nil || day.Before(from) {
			continue
		}
		row, ok := jrow.(map[string]any)
		if !ok {
			continue
		}
		// Prices are strings in this weird API.
		sval, ok := row["4. close"].(string)
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(sval, 64)
		if err != nil {
			continue
		}
		h.Append(day, price)
	}
	if h.Len() == 0 {
		return nil, fmt.Errorf("alphavantage %s: empty response", symbol)
	}
	return h, nil
}
