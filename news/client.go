package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUpstream      = errors.New("market trends provider error")
	ErrMissingAPIKey = errors.New("market trends provider key is not configured")
)

// Item is one news entry of a market trends payload.
type Item struct {
	Title       string
	ArticleURL  string
	PhotoURL    string
	Source      string
	PostTimeUTC string
	Stocks      []string
}

// Trends is a decoded provider response; Raw keeps the body untouched so it can
// be relayed to API callers.
type Trends struct {
	Raw  json.RawMessage
	News []Item
}

type Provider interface {
	MarketTrends(ctx context.Context) (*Trends, error)
}

type ClientConfig struct {
	Host      string
	APIKey    string
	TrendType string
	Country   string
	Language  string
	Timeout   time.Duration
}

type Client struct {
	baseURL    string
	cfg        ClientConfig
	httpClient *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    "https://" + cfg.Host,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) MarketTrends(ctx context.Context) (*Trends, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	query := url.Values{}
	query.Set("trend_type", c.cfg.TrendType)
	query.Set("country", c.cfg.Country)
	query.Set("language", c.cfg.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/market-trends?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build market trends request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // limit to 4MB
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, excerpt(body))
	}

	trends, err := decodeTrends(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return trends, nil
}

type trendsEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		News []rawItem `json:"news"`
	} `json:"data"`
}

type rawItem struct {
	ArticleTitle    string            `json:"article_title"`
	Title           string            `json:"title"`
	ArticleURL      string            `json:"article_url"`
	ArticlePhotoURL string            `json:"article_photo_url"`
	Source          string            `json:"source"`
	PostTimeUTC     string            `json:"post_time_utc"`
	StocksInNews    []json.RawMessage `json:"stocks_in_news"`
}

func decodeTrends(body []byte) (*Trends, error) {
	var env trendsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(env.Data.News))
	for _, raw := range env.Data.News {
		title := raw.ArticleTitle
		if title == "" {
			title = raw.Title
		}
		stocks, err := decodeStocks(raw.StocksInNews)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			Title:       title,
			ArticleURL:  raw.ArticleURL,
			PhotoURL:    raw.ArticlePhotoURL,
			Source:      raw.Source,
			PostTimeUTC: raw.PostTimeUTC,
			Stocks:      stocks,
		})
	}

	return &Trends{Raw: json.RawMessage(body), News: items}, nil
}

// decodeStocks accepts either plain ticker strings or stock objects carrying a
// "symbol" field.
func decodeStocks(raw []json.RawMessage) ([]string, error) {
	stocks := make([]string, 0, len(raw))
	for _, r := range raw {
		var symbol string
		if err := json.Unmarshal(r, &symbol); err == nil {
			stocks = append(stocks, symbol)
			continue
		}
		var obj struct {
			Symbol string `json:"symbol"`
		}
		if err := json.Unmarshal(r, &obj); err != nil {
			return nil, fmt.Errorf("stocks_in_news entry: %w", err)
		}
		if obj.Symbol != "" {
			stocks = append(stocks, obj.Symbol)
		}
	}
	return stocks, nil
}

func excerpt(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}
