package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gab-8323/crypto-portfolio-manager/internal/portfolio"
	"github.com/gab-8323/crypto-portfolio-manager/internal/repository"
	"github.com/gab-8323/crypto-portfolio-manager/internal/user"
	"github.com/gab-8323/crypto-portfolio-manager/types"
)

type authedHandler func(w http.ResponseWriter, r *http.Request, userID int)

func (s *Server) requireAuth(h authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		userID, ok := s.sessions.lookup(token)
		if !ok {
			httpError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		h(w, r, userID)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

type registerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	u, err := s.users.Register(r.Context(), req.Name, req.Phone, req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		httpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicateUser):
		httpError(w, http.StatusConflict, "an account with that phone number already exists")
	case err != nil:
		s.internalError(w, err, "register")
	default:
		writeJSON(w, http.StatusCreated, u)
	}
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	u, err := s.users.Login(r.Context(), req.Name, req.Password)
	if errors.Is(err, user.ErrInvalidCredentials) {
		httpError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.internalError(w, err, "login")
		return
	}
	token, err := s.sessions.issue(u.ID)
	if err != nil {
		s.internalError(w, err, "login")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ int) {
	s.sessions.revoke(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

type portfolioResponse struct {
	Positions []types.PositionView  `json:"positions"`
	Totals    types.PortfolioTotals `json:"totals"`
	Currency  string                `json:"currency"`
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, userID int) {
	currency := s.displayCurrency(r, userID)
	positions, totals, err := s.portfolio.Portfolio(r.Context(), userID, currency)
	if err != nil {
		s.internalError(w, err, "portfolio")
		return
	}
	writeJSON(w, http.StatusOK, portfolioResponse{Positions: positions, Totals: totals, Currency: currency})
}

type tradeRequest struct {
	Symbol   string          `json:"symbol"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request, userID int) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	var err error
	switch types.TradeType(strings.ToUpper(req.Type)) {
	case types.TradeTypeBuy:
		err = s.portfolio.Buy(r.Context(), userID, req.Symbol, req.Quantity, req.Price)
	case types.TradeTypeSell:
		err = s.portfolio.Sell(r.Context(), userID, req.Symbol, req.Quantity, req.Price)
	default:
		httpError(w, http.StatusBadRequest, "type must be BUY or SELL")
		return
	}

	switch {
	case errors.Is(err, portfolio.ErrInvalidTrade):
		httpError(w, http.StatusBadRequest, "quantity must be positive and price non-negative")
	case errors.Is(err, portfolio.ErrInsufficientQuantity):
		httpError(w, http.StatusUnprocessableEntity, "not enough units held to sell")
	case err != nil:
		s.internalError(w, err, "trade")
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
	}
}

func (s *Server) handleRemovePosition(w http.ResponseWriter, r *http.Request, userID int) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "position id must be an integer")
		return
	}
	err = s.portfolio.RemovePosition(r.Context(), userID, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httpError(w, http.StatusNotFound, "position not found")
	case err != nil:
		s.internalError(w, err, "remove position")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, userID int) {
	txs, err := s.portfolio.History(r.Context(), userID)
	if err != nil {
		s.internalError(w, err, "history")
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request, userID int) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := s.portfolio.WriteHistoryCSV(r.Context(), w, userID); err != nil {
		s.log.Error().Err(err).Msg("history export failed")
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, userID int) {
	view, err := s.portfolio.Dashboard(r.Context(), userID, s.displayCurrency(r, userID))
	if err != nil {
		s.internalError(w, err, "dashboard")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleSetCurrency(w http.ResponseWriter, r *http.Request, userID int) {
	var req currencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	err := s.users.SetCurrency(r.Context(), userID, req.Currency)
	switch {
	case errors.Is(err, user.ErrInvalidInput):
		httpError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.internalError(w, err, "set currency")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	currency := strings.ToLower(r.URL.Query().Get("currency"))
	if currency == "" {
		currency = "usd"
	}
	writeJSON(w, http.StatusOK, s.portfolio.MarketSnapshot(r.Context(), currency))
}

func (s *Server) handleCoins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Coins())
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.portfolio.Headlines(r.Context()))
}

// displayCurrency prefers an explicit query override, then the user's stored
// preference.
func (s *Server) displayCurrency(r *http.Request, userID int) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return strings.ToLower(c)
	}
	u, err := s.users.Get(r.Context(), userID)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Currency)
}

func (s *Server) internalError(w http.ResponseWriter, err error, op string) {
	s.log.Error().Err(err).Str("op", op).Msg("request failed")
	httpError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
