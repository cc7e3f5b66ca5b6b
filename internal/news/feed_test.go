package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>Feed</title>
<item>
  <title><![CDATA[Bitcoin hits $100k &amp; keeps going]]></title>
  <link>https://example.com/a</link>
  <pubDate>Mon, 02 Jun 2025 10:00:00 +0000</pubDate>
</item>
<item>
  <title>Plain title</title>
  <link> https://example.com/b </link>
</item>
<item>
  <link>https://example.com/missing-title</link>
</item>
<item><title>C</title><link>https://example.com/c</link></item>
<item><title>D</title><link>https://example.com/d</link></item>
<item><title>E</title><link>https://example.com/e</link></item>
<item><title>F — should be cut off</title><link>https://example.com/f</link></item>
</channel></rss>`

func TestFetchParsesFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	items, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5 (skip malformed, cap at 5)", len(items))
	}

	first := items[0]
	if first.Title != "Bitcoin hits $100k & keeps going" {
		t.Errorf("CDATA/entity title = %q", first.Title)
	}
	if first.Link != "https://example.com/a" {
		t.Errorf("link = %q", first.Link)
	}
	if first.Date == "" {
		t.Errorf("pubDate missing")
	}

	if items[1].Link != "https://example.com/b" {
		t.Errorf("link not trimmed: %q", items[1].Link)
	}
	if items[1].Date != "" {
		t.Errorf("missing pubDate should stay empty, got %q", items[1].Date)
	}

	for _, it := range items {
		if strings.Contains(it.Link, "missing-title") {
			t.Errorf("item without title should be skipped")
		}
		if strings.HasSuffix(it.Link, "/f") {
			t.Errorf("items beyond the 5th should be dropped")
		}
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
