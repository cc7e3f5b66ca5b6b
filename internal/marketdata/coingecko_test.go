package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestClientMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "eur" {
			t.Errorf("vs_currency = %q, want eur", got)
		}
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png",
			 "current_price":90000.5,"price_change_percentage_24h":2.1,
			 "sparkline_in_7d":{"price":[1,2,3]}},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"",
			 "current_price":3000,"price_change_percentage_24h":-1.5}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	quotes, err := c.Markets(context.Background(), []string{"bitcoin", "ethereum"}, "EUR", true)
	if err != nil {
		t.Fatalf("Markets() error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}
	btc := quotes["bitcoin"]
	if !btc.CurrentPrice.Equal(decimal.NewFromFloat(90000.5)) {
		t.Errorf("btc price = %s, want 90000.5", btc.CurrentPrice)
	}
	if len(btc.Sparkline) != 3 {
		t.Errorf("btc sparkline length = %d, want 3", len(btc.Sparkline))
	}
	if quotes["ethereum"].Sparkline != nil {
		t.Errorf("eth sparkline should be nil when omitted")
	}
}

func TestClientSimplePrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"bitcoin":{"usd":90000,"usd_24h_change":2.5}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	prices, err := c.SimplePrices(context.Background(), []string{"bitcoin"}, "usd")
	if err != nil {
		t.Fatalf("SimplePrices() error: %v", err)
	}
	sp, ok := prices["bitcoin"]
	if !ok {
		t.Fatal("bitcoin missing from result")
	}
	if !sp.Price.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("price = %s, want 90000", sp.Price)
	}
	if sp.Change24h != 2.5 {
		t.Errorf("change = %v, want 2.5", sp.Change24h)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Markets(context.Background(), []string{"bitcoin"}, "usd", false); err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if _, err := c.Catalog(context.Background(), 250); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
