// Package httpapi exposes the portfolio, market and account operations over
// a JSON REST surface.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gab-8323/crypto-portfolio-manager/internal/catalog"
	"github.com/gab-8323/crypto-portfolio-manager/internal/portfolio"
	"github.com/gab-8323/crypto-portfolio-manager/internal/user"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	portfolio *portfolio.Service
	users     *user.Service
	catalog   *catalog.Resolver
	sessions  *sessionStore
	srv       *http.Server
	log       zerolog.Logger
}

func NewServer(addr string, p *portfolio.Service, u *user.Service, c *catalog.Resolver, log zerolog.Logger) *Server {
	s := &Server{
		portfolio: p,
		users:     u,
		catalog:   c,
		sessions:  newSessionStore(),
		log:       log,
	}
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /portfolio", s.requireAuth(s.handlePortfolio))
	mux.HandleFunc("POST /trades", s.requireAuth(s.handleTrade))
	mux.HandleFunc("DELETE /positions/{id}", s.requireAuth(s.handleRemovePosition))
	mux.HandleFunc("GET /history", s.requireAuth(s.handleHistory))
	mux.HandleFunc("GET /history/export", s.requireAuth(s.handleHistoryExport))
	mux.HandleFunc("GET /api/dashboard", s.requireAuth(s.handleDashboard))
	mux.HandleFunc("POST /currency", s.requireAuth(s.handleSetCurrency))

	mux.HandleFunc("GET /api/markets", s.handleMarkets)
	mux.HandleFunc("GET /api/coins", s.handleCoins)
	mux.HandleFunc("GET /news", s.handleNews)

	return mux
}

// Start runs the server until ctx is cancelled, then drains connections.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Msg("http server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info().Msg("http server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
