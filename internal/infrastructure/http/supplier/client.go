package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	appcatalog "github.com/BolivianProgrammer/RazorPedidos/internal/application/catalog"
	"github.com/BolivianProgrammer/RazorPedidos/internal/config"
	"github.com/BolivianProgrammer/RazorPedidos/pkg/logger"
)

// Client fetches the supplier catalog feed, page by page.
type Client struct {
	httpClient *http.Client
	cfg        config.SupplierConfig
	logger     logger.Logger
}

func NewClient(cfg config.SupplierConfig, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type catalogResponse struct {
	Data       []appcatalog.FeedRow `json:"data"`
	TotalPages int                  `json:"total_pages"`
}

// FetchCatalog pages through the supplier catalog endpoint, sleeping between
// pages to stay under the supplier's rate limit.
func (c *Client) FetchCatalog(ctx context.Context) ([]appcatalog.FeedRow, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("supplier api_key is empty")
	}

	allRows := make([]appcatalog.FeedRow, 0)
	page := 1
	totalPages := 1
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	sleep := time.Duration(c.cfg.SleepMS) * time.Millisecond
	if sleep <= 0 {
		sleep = time.Second
	}

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier base url: %w", err)
	}

	for page <= totalPages {
		u := *base
		u.Path = base.Path + "/catalog"

		q := u.Query()
		q.Set("api_key", c.cfg.APIKey)
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
		q.Set("page_number", fmt.Sprintf("%d", page))
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call supplier api: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			c.logger.Error("Supplier API returned non-OK status",
				logger.Int("status", resp.StatusCode),
				logger.Int("page", page),
			)
			return nil, fmt.Errorf("supplier api status %d", resp.StatusCode)
		}

		var body catalogResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		if len(body.Data) == 0 {
			break
		}

		allRows = append(allRows, body.Data...)
		c.logger.Debug("Fetched supplier catalog page",
			logger.Int("page", page),
			logger.Int("rows", len(body.Data)),
		)

		if body.TotalPages > 0 {
			totalPages = body.TotalPages
		}
		page++

		if page > totalPages {
			break
		}

		select {
		case <-ctx.Done():
			return allRows, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return allRows, nil
}
