package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gab-8323/crypto-portfolio-manager/internal/cache"
	"github.com/gab-8323/crypto-portfolio-manager/types"
)

const (
	// NewsTTL bounds how long cached headlines are served before the feed
	// is polled again.
	NewsTTL = 10 * time.Minute

	// MarketSnapshotTTL bounds the age of the cached top-market listing,
	// kept per display currency.
	MarketSnapshotTTL = 5 * time.Minute

	marketSnapshotSize = 50
	newsCacheKey       = "headlines"
)

// Service owns holdings, trade recording and portfolio valuation for all
// users, plus the cached market snapshot and news feed shared between them.
type Service struct {
	store        Store
	market       MarketGateway
	resolver     SymbolResolver
	news         NewsSource
	marketCache  *cache.Cache[[]types.MarketQuote]
	newsCache    *cache.Cache[[]types.NewsItem]
	baseCurrency string
	log          zerolog.Logger
}

func NewService(
	store Store,
	market MarketGateway,
	resolver SymbolResolver,
	news NewsSource,
	marketCache *cache.Cache[[]types.MarketQuote],
	newsCache *cache.Cache[[]types.NewsItem],
	baseCurrency string,
	log zerolog.Logger,
) *Service {
	base := strings.ToLower(strings.TrimSpace(baseCurrency))
	if base == "" {
		base = "usd"
	}
	return &Service{
		store:        store,
		market:       market,
		resolver:     resolver,
		news:         news,
		marketCache:  marketCache,
		newsCache:    newsCache,
		baseCurrency: base,
		log:          log,
	}
}

// NewMarketCache builds the snapshot cache over the given store. A snapshot
// is valid only while fresh and non-empty.
func NewMarketCache(store cache.Store[[]types.MarketQuote], log zerolog.Logger) *cache.Cache[[]types.MarketQuote] {
	return cache.New(store, MarketSnapshotTTL, func(v []types.MarketQuote) bool { return len(v) > 0 }, log)
}

// NewNewsCache builds the headline cache over the given store.
func NewNewsCache(store cache.Store[[]types.NewsItem], log zerolog.Logger) *cache.Cache[[]types.NewsItem] {
	return cache.New(store, NewsTTL, func(v []types.NewsItem) bool { return len(v) > 0 }, log)
}

// Portfolio returns the valued positions and aggregate totals for a user in
// the requested display currency. Positions whose quote cannot be fetched are
// valued at zero rather than failing the whole listing.
func (s *Service) Portfolio(ctx context.Context, userID int, currency string) ([]types.PositionView, types.PortfolioTotals, error) {
	currency = s.displayCurrency(currency)
	holdings, err := s.store.ListHoldings(ctx, userID)
	if err != nil {
		return nil, types.PortfolioTotals{}, err
	}
	if len(holdings) == 0 {
		return nil, types.PortfolioTotals{}, nil
	}

	resolved := make(map[string]string, len(holdings))
	ids := make([]string, 0, len(holdings))
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		id := s.resolver.Resolve(h.Symbol)
		resolved[h.Symbol] = id
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	quotes, err := s.market.Markets(ctx, ids, currency, true)
	if err != nil {
		s.log.Warn().Err(err).Msg("market data unavailable, valuing positions at zero")
		quotes = nil
	}

	positions, totals := Valuate(holdings, quotes, resolved)
	return positions, totals, nil
}

// Dashboard summarises a user's portfolio with lightweight quotes and a
// notification line per priced position.
func (s *Service) Dashboard(ctx context.Context, userID int, currency string) (types.DashboardView, error) {
	currency = s.displayCurrency(currency)
	holdings, err := s.store.ListHoldings(ctx, userID)
	if err != nil {
		return types.DashboardView{}, err
	}

	view := types.DashboardView{CurrencySymbol: SymbolFor(currency)}
	if len(holdings) == 0 {
		return view, nil
	}

	resolved := make(map[string]string, len(holdings))
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		id := s.resolver.Resolve(h.Symbol)
		resolved[h.Symbol] = id
		ids = append(ids, id)
	}
	prices, err := s.market.SimplePrices(ctx, ids, currency)
	if err != nil {
		s.log.Warn().Err(err).Msg("simple price lookup failed, dashboard prices zeroed")
		prices = nil
	}

	view.Positions, view.Notifications, view.TotalValue, view.TotalPL, view.TotalROI =
		summarize(holdings, prices, resolved, SymbolFor(currency))
	return view, nil
}

// MarketSnapshot returns the top coins by market cap in the given currency,
// served from cache while fresh. It never fails: on a cold cache plus a
// provider outage the snapshot is simply empty.
func (s *Service) MarketSnapshot(ctx context.Context, currency string) []types.MarketQuote {
	currency = s.displayCurrency(currency)
	return s.marketCache.Get(ctx, currency, func(ctx context.Context) ([]types.MarketQuote, error) {
		return s.market.TopMarkets(ctx, currency, marketSnapshotSize)
	})
}

// Headlines returns the cached news feed, refreshing it when stale.
func (s *Service) Headlines(ctx context.Context) []types.NewsItem {
	return s.newsCache.Get(ctx, newsCacheKey, s.news.Fetch)
}

func (s *Service) displayCurrency(currency string) string {
	c := strings.ToLower(strings.TrimSpace(currency))
	if c == "" {
		return s.baseCurrency
	}
	return c
}
