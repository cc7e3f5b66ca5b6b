package news

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

const DefaultFeedURL = "https://cointelegraph.com/rss"

const maxItems = 5

// Items are pulled out with regular expressions rather than an XML decoder:
// the upstream feed mixes namespaces and CDATA-wrapped titles, and a partial
// parse of a slightly malformed document is preferable to none.
var (
	reItem  = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	reTitle = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	reLink  = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	reDate  = regexp.MustCompile(`(?s)<pubDate>(.*?)</pubDate>`)
	reCDATA = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
)

type Client struct {
	feedURL string
	cli     *http.Client
}

func NewClient(feedURL string, timeout time.Duration) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{feedURL: feedURL, cli: &http.Client{Timeout: timeout}}
}

// Fetch returns up to 5 headline items from the feed. Items missing a title
// or link are skipped; a missing publish date is tolerated.
func (c *Client) Fetch(ctx context.Context) ([]types.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var items []types.NewsItem
	for _, m := range reItem.FindAllStringSubmatch(string(body), -1) {
		raw := m[1]
		titleMatch := reTitle.FindStringSubmatch(raw)
		linkMatch := reLink.FindStringSubmatch(raw)
		if titleMatch == nil || linkMatch == nil {
			continue
		}
		title := strings.TrimSpace(reCDATA.ReplaceAllString(titleMatch[1], "$1"))
		item := types.NewsItem{
			Title: html.UnescapeString(title),
			Link:  strings.TrimSpace(linkMatch[1]),
		}
		if dateMatch := reDate.FindStringSubmatch(raw); dateMatch != nil {
			item.Date = strings.TrimSpace(dateMatch[1])
		}
		items = append(items, item)
		if len(items) == maxItems {
			break
		}
	}
	return items, nil
}
