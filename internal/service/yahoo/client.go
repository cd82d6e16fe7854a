package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"StockSage/internal/domain/models"
	drepo "StockSage/internal/domain/repository"
	"StockSage/internal/service/cache"
	xhttp "StockSage/pkg/http"
	"StockSage/pkg/logger"
)

// ErrNoData means the provider has no price series for the symbol: unknown
// ticker, delisted, or an empty lookback window. Anything else that goes
// wrong here is a transport-level fault.
var ErrNoData = errors.New("no price data for symbol")

// Client implements MarketData backed by the Yahoo Finance public API: the
// v8 chart endpoint for the lookback series and v10 quoteSummary for the
// descriptive fundamentals.
type Client struct {
	http     *xhttp.Client
	log      *logger.Logger
	baseURL  string
	rng      string
	interval string
	cache    *cache.TTLCache
	cacheTTL time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithCache enables snapshot caching with the given TTL.
func WithCache(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache.NewTTLCache()
		c.cacheTTL = ttl
	}
}

// WithLookback sets the chart range and bar interval.
func WithLookback(rng, interval string) Option {
	return func(c *Client) {
		c.rng = rng
		c.interval = interval
	}
}

// New creates a new Yahoo Finance market-data client.
func New(httpClient *xhttp.Client, lgr *logger.Logger, baseURL string, opts ...Option) drepo.MarketData {
	c := &Client{
		http:     httpClient,
		log:      lgr,
		baseURL:  baseURL,
		rng:      "3mo",
		interval: "1d",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type yahooNumber struct {
	Raw *float64 `json:"raw"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				ShortName *string `json:"shortName"`
			} `json:"price"`
			SummaryDetail *struct {
				TrailingPE *yahooNumber `json:"trailingPE"`
			} `json:"summaryDetail"`
			FinancialData *struct {
				ProfitMargins *yahooNumber `json:"profitMargins"`
				TotalRevenue  *yahooNumber `json:"totalRevenue"`
			} `json:"financialData"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// Snapshot fetches metadata and the lookback price series for a symbol.
func (c *Client) Snapshot(ctx context.Context, symbol string) (*models.Snapshot, error) {
	if c.cache != nil {
		if v, ok := c.cache.Get(symbol); ok {
			return v.(*models.Snapshot), nil
		}
	}

	series, err := c.fetchChart(ctx, symbol)
	if err != nil {
		return nil, err
	}

	info := c.fetchInfo(ctx, symbol)
	info.Symbol = symbol

	snap := &models.Snapshot{Info: info, Series: series}
	if c.cache != nil {
		c.cache.Set(symbol, snap, c.cacheTTL)
	}
	return snap, nil
}

func (c *Client) fetchChart(ctx context.Context, symbol string) (models.PriceSeries, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"interval": {c.interval},
			"range":    {c.rng},
		},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && (se.Status == http.StatusNotFound || se.Status == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
		}
		return nil, fmt.Errorf("chart fetch: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNoData, symbol, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Null closes appear on partial trading days; skip them.
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, models.PricePoint{Timestamp: ts, Close: *closes[i]})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}
	return series, nil
}

// fetchInfo retrieves the optional fundamentals. Failures here are logged
// and leave the fields absent; the analysis proceeds with N/A placeholders.
func (c *Client) fetchInfo(ctx context.Context, symbol string) models.StockInfo {
	var info models.StockInfo

	var resp quoteSummaryResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v10/finance/quoteSummary/%s", c.baseURL, url.PathEscape(symbol)),
		Headers: map[string]string{
			"User-Agent": "Mozilla/5.0",
		},
		QueryParams: map[string][]string{
			"modules": {"price,summaryDetail,financialData"},
		},
	}, &resp)
	if err != nil {
		c.log.Warn("quote summary fetch failed",
			logger.String("symbol", symbol),
			logger.Error(err))
		return info
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return info
	}

	r := resp.QuoteSummary.Result[0]
	if r.Price != nil {
		info.ShortName = r.Price.ShortName
	}
	if r.SummaryDetail != nil && r.SummaryDetail.TrailingPE != nil {
		info.TrailingPE = r.SummaryDetail.TrailingPE.Raw
	}
	if r.FinancialData != nil {
		if r.FinancialData.ProfitMargins != nil {
			info.ProfitMargin = r.FinancialData.ProfitMargins.Raw
		}
		if r.FinancialData.TotalRevenue != nil {
			info.TotalRevenue = r.FinancialData.TotalRevenue.Raw
		}
	}
	return info
}
