package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gab-8323/crypto-portfolio-manager/internal/cache"
	"github.com/gab-8323/crypto-portfolio-manager/internal/catalog"
	"github.com/gab-8323/crypto-portfolio-manager/internal/config"
	"github.com/gab-8323/crypto-portfolio-manager/internal/httpapi"
	"github.com/gab-8323/crypto-portfolio-manager/internal/marketdata"
	"github.com/gab-8323/crypto-portfolio-manager/internal/news"
	"github.com/gab-8323/crypto-portfolio-manager/internal/portfolio"
	"github.com/gab-8323/crypto-portfolio-manager/internal/repository"
	"github.com/gab-8323/crypto-portfolio-manager/internal/user"
	"github.com/gab-8323/crypto-portfolio-manager/types"
)

func main() {
	port := flag.String("port", "", "port to listen on (overrides SERVER_PORT)")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load()
	if *port != "" {
		cfg.ServerPort = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup := openStore(ctx, cfg, log)
	defer cleanup()

	market := marketdata.NewClient(cfg.MarketDataURL, cfg.RequestTimeout)
	resolver := catalog.NewResolver(ctx, market, log)
	feed := news.NewClient(cfg.NewsFeedURL, cfg.RequestTimeout)
	marketCache, newsCache := openCaches(ctx, cfg, log)

	portfolioSvc := portfolio.NewService(store, market, resolver, feed,
		marketCache, newsCache, cfg.BaseCurrency, log)
	userSvc := user.NewService(store)

	srv := httpapi.NewServer(":"+cfg.ServerPort, portfolioSvc, userSvc, resolver, log)
	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}

// storage is what both services need from the persistence layer, satisfied
// by repository.Database and repository.Memory alike.
type storage interface {
	portfolio.Store
	user.Store
}

// openStore connects to Postgres when a DSN is configured, otherwise serves
// from process memory.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (storage, func()) {
	if cfg.PostgresDSN == "" {
		log.Warn().Msg("no POSTGRES_DSN configured, holdings kept in memory")
		return repository.NewMemory(), func() {}
	}
	db, err := repository.NewDatabase(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	if err := db.InitSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}
	log.Info().Msg("connected to postgres")
	return db, db.Close
}

// openCaches backs the market and news caches with Redis when configured,
// memory otherwise.
func openCaches(ctx context.Context, cfg config.Config, log zerolog.Logger) (*cache.Cache[[]types.MarketQuote], *cache.Cache[[]types.NewsItem]) {
	if cfg.RedisAddr == "" {
		log.Warn().Msg("no REDIS_ADDR configured, caches kept in memory")
		return portfolio.NewMarketCache(cache.NewMemoryStore[[]types.MarketQuote](), log),
			portfolio.NewNewsCache(cache.NewMemoryStore[[]types.NewsItem](), log)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, falling back to memory caches")
		return portfolio.NewMarketCache(cache.NewMemoryStore[[]types.MarketQuote](), log),
			portfolio.NewNewsCache(cache.NewMemoryStore[[]types.NewsItem](), log)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")
	return portfolio.NewMarketCache(cache.NewRedisStore[[]types.MarketQuote](rdb, "markets"), log),
		portfolio.NewNewsCache(cache.NewRedisStore[[]types.NewsItem](rdb, "news"), log)
}
