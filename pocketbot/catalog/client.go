// Package catalog is the read-only client for the external card catalog. It
// never mutates local state; every component treats it as a possibly
// unavailable remote dependency and surfaces its failures as
// ErrCatalogUnavailable.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/singleflight"

	"github.com/wonderpick/pocketbot/pocketbot/config"
)

var (
	ErrCatalogUnavailable = errors.New("card catalog unavailable")
	ErrCardNotFound       = errors.New("card not found in catalog")
)

// Card is one catalog definition. A card id is a type, not a serial number:
// ownership of a card is multiset membership keyed by this id.
type Card struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Attack   int    `json:"attack"`
	Defense  int    `json:"defense"`
}

// Source is the catalog surface consumed by the game services.
type Source interface {
	FetchCandidates(ctx context.Context, count int) ([]Card, error)
	FindByID(ctx context.Context, id string) (*Card, error)
	SearchByName(ctx context.Context, query string) ([]Card, error)
}

type Config struct {
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
	PageSize int    `toml:"page_size"`
}

type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     *http.Client
	cache    *lru.Cache
	group    singleflight.Group
}

const defaultPageSize = 250

func NewClient(cfg Config) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	cache, _ := lru.New(config.CatalogCacheSize)
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		http: &http.Client{
			Timeout: config.CatalogRequestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: config.NetworkDialTimeout}).DialContext,
			},
		},
		cache: cache,
	}
}

type cardPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

type listResponse struct {
	Data []cardPayload `json:"data"`
}

type getResponse struct {
	Data cardPayload `json:"data"`
}

// FetchCandidates returns a candidate pool of at least count definitions.
// Concurrent pack openings share one in-flight request via singleflight.
func (c *Client) FetchCandidates(ctx context.Context, count int) ([]Card, error) {
	v, err, _ := c.group.Do("candidates", func() (interface{}, error) {
		return c.fetchPage(ctx)
	})
	if err != nil {
		return nil, err
	}

	cards := v.([]Card)
	if len(cards) < count {
		slog.Warn("Catalog returned too few candidates",
			slog.String("type", "sys"),
			slog.Int("want", count),
			slog.Int("got", len(cards)))
		return nil, ErrCatalogUnavailable
	}
	return cards, nil
}

func (c *Client) fetchPage(ctx context.Context) ([]Card, error) {
	endpoint := fmt.Sprintf("%s/cards?pageSize=%d", c.baseURL, c.pageSize)
	var resp listResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(resp.Data))
	for _, p := range resp.Data {
		card := payloadToCard(p)
		c.cache.Add(card.ID, card)
		cards = append(cards, card)
	}
	return cards, nil
}

// FindByID resolves one definition, serving repeats from the LRU cache.
func (c *Client) FindByID(ctx context.Context, id string) (*Card, error) {
	if v, ok := c.cache.Get(id); ok {
		card := v.(Card)
		return &card, nil
	}

	endpoint := fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(id))
	var resp getResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	card := payloadToCard(resp.Data)
	c.cache.Add(card.ID, card)
	return &card, nil
}

// SearchByName queries the catalog by name and fuzzy-ranks the results so a
// user-typed partial name resolves to the closest definitions.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Card, error) {
	endpoint := fmt.Sprintf("%s/cards?q=%s&pageSize=%d", c.baseURL, url.QueryEscape("name:"+query+"*"), c.pageSize)
	var resp listResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	cards := make([]Card, 0, len(resp.Data))
	names := make([]string, 0, len(resp.Data))
	for _, p := range resp.Data {
		card := payloadToCard(p)
		c.cache.Add(card.ID, card)
		cards = append(cards, card)
		names = append(names, card.Name)
	}

	matches := fuzzy.Find(query, names)
	sort.Stable(matches)

	ranked := make([]Card, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, cards[m.Index])
	}
	if len(ranked) == 0 {
		// Fuzzy can reject all server results for very short queries; fall
		// back to the server ordering.
		ranked = cards
	}
	return ranked, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("Catalog request failed",
			slog.String("type", "sys"),
			slog.String("endpoint", endpoint),
			slog.Duration("took", time.Since(start)),
			slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrCardNotFound
	case resp.StatusCode != http.StatusOK:
		slog.Error("Catalog returned error status",
			slog.String("type", "sys"),
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return nil
}

func payloadToCard(p cardPayload) Card {
	image := p.Images.Small
	if image == "" {
		image = p.Images.Large
	}
	return Card{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: image,
		Attack:   p.Attack,
		Defense:  p.Defense,
	}
}
