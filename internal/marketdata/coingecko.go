package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// CoinGecko public API client. Every method is a single network call with a
// bounded timeout: no retries, no backoff. Callers decide how to degrade.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

type Client struct {
	baseURL string
	cli     *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client against baseURL (DefaultBaseURL in production,
// an httptest server in tests). The limiter paces outbound calls under the
// public-tier rate limit; it never rejects, only delays within the request
// context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cli:     &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
}

type marketRow struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	SparklineIn7d            *struct {
		Price []float64 `json:"price"`
	} `json:"sparkline_in_7d"`
}

// Catalog fetches the top-N coins by market capitalization: canonical id,
// ticker and display name. Used once at startup to seed the symbol resolver.
func (c *Client) Catalog(ctx context.Context, limit int) ([]types.CatalogCoin, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")

	var rows []marketRow
	if err := c.get(ctx, "/coins/markets", q, &rows); err != nil {
		return nil, err
	}
	coins := make([]types.CatalogCoin, 0, len(rows))
	for _, r := range rows {
		coins = append(coins, types.CatalogCoin{ID: r.ID, Symbol: r.Symbol, Name: r.Name})
	}
	return coins, nil
}

// Markets fetches full quotes for the given canonical ids, pre-converted by
// the provider into the requested display currency.
func (c *Client) Markets(ctx context.Context, ids []string, currency string, sparkline bool) (map[string]types.MarketQuote, error) {
	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(currency))
	q.Set("ids", strings.Join(ids, ","))
	q.Set("sparkline", strconv.FormatBool(sparkline))
	q.Set("price_change_percentage", "24h")

	var rows []marketRow
	if err := c.get(ctx, "/coins/markets", q, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]types.MarketQuote, len(rows))
	for _, r := range rows {
		out[r.ID] = toQuote(r)
	}
	return out, nil
}

// TopMarkets fetches the top-N quotes by market cap with sparklines, feeding
// the market-explorer snapshot cache.
func (c *Client) TopMarkets(ctx context.Context, currency string, limit int) ([]types.MarketQuote, error) {
	q := url.Values{}
	q.Set("vs_currency", strings.ToLower(currency))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")
	q.Set("sparkline", "true")

	var rows []marketRow
	if err := c.get(ctx, "/coins/markets", q, &rows); err != nil {
		return nil, err
	}
	quotes := make([]types.MarketQuote, 0, len(rows))
	for _, r := range rows {
		quotes = append(quotes, toQuote(r))
	}
	return quotes, nil
}

// SimplePrices fetches price plus 24h change for the given ids in the given
// currency. The provider keys the change field as "<currency>_24h_change".
func (c *Client) SimplePrices(ctx context.Context, ids []string, currency string) (map[string]types.SimplePrice, error) {
	currency = strings.ToLower(currency)
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", currency)
	q.Set("include_24hr_change", "true")

	var raw map[string]map[string]float64
	if err := c.get(ctx, "/simple/price", q, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]types.SimplePrice, len(raw))
	for id, fields := range raw {
		out[id] = types.SimplePrice{
			Price:     decimal.NewFromFloat(fields[currency]),
			Change24h: fields[currency+"_24h_change"],
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko http %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("coingecko decode %s: %w", path, err)
	}
	return nil
}

func toQuote(r marketRow) types.MarketQuote {
	quote := types.MarketQuote{
		ID:           r.ID,
		Symbol:       r.Symbol,
		Name:         r.Name,
		Image:        r.Image,
		CurrentPrice: decimal.NewFromFloat(r.CurrentPrice),
		Change24h:    r.PriceChangePercentage24h,
	}
	if r.SparklineIn7d != nil {
		quote.Sparkline = r.SparklineIn7d.Price
	}
	return quote
}
