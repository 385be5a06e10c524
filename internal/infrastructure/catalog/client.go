package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amnatp/taiyim/config"
	"github.com/amnatp/taiyim/internal/domain/entity"
)

// Client talks to the server catalog: a GET returning the full food list and
// a POST appending one item. The server assigns an id when the posted item
// has none.
type Client struct {
	listURL   string
	appendURL string
	http      *http.Client
}

func NewClient(cfg config.CatalogConfig) *Client {
	return &Client{
		listURL:   cfg.ListURL,
		appendURL: cfg.AppendURL,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Fetch(ctx context.Context) ([]entity.FoodItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", res.StatusCode)
	}

	var items []entity.FoodItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}

// appendResponse is the wire shape of the append endpoint's reply.
type appendResponse struct {
	OK   bool            `json:"ok"`
	Item entity.FoodItem `json:"item"`
}

func (c *Client) Append(ctx context.Context, item entity.FoodItem) (entity.FoodItem, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return entity.FoodItem{}, fmt.Errorf("encode food item: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.appendURL, bytes.NewReader(body))
	if err != nil {
		return entity.FoodItem{}, fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return entity.FoodItem{}, fmt.Errorf("append to catalog: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		return entity.FoodItem{}, fmt.Errorf("append to catalog: unexpected status %d", res.StatusCode)
	}

	var reply appendResponse
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		return entity.FoodItem{}, fmt.Errorf("decode append reply: %w", err)
	}
	return reply.Item, nil
}
