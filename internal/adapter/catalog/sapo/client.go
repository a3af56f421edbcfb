// Package sapo searches products through the Sapo admin REST API.
package sapo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/infrastructure/circuitbreaker"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

const maxErrorBody = 4 << 10

// Client is a Sapo catalog client authenticated with the store's private app key pair.
type Client struct {
	http      *circuitbreaker.HTTPClient
	endpoint  string
	apiKey    string
	apiSecret string
	limit     int
	log       *zap.Logger
}

// NewClient creates a catalog client. When cfg.BaseURL is empty the store subdomain
// https://<store>.mysapo.net is used.
func NewClient(cfg config.CatalogConfig, httpClient *circuitbreaker.HTTPClient, log *zap.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.mysapo.net", cfg.StoreName)
	}

	limit := cfg.ResultLimit
	if limit <= 0 {
		limit = 5
	}

	return &Client{
		http:      httpClient,
		endpoint:  fmt.Sprintf("%s/admin/api/%s/products.json", base, cfg.APIVersion),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		limit:     limit,
		log:       log,
	}
}

// Endpoint returns the products URL queried by Search.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type productsResponse struct {
	Products []product `json:"products"`
}

type product struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Variants []variant `json:"variants"`
}

type variant struct {
	Price json.RawMessage `json:"price"`
}

var errNoPrice = errors.New("no price")

// parsePrice accepts both JSON numbers and numeric strings. A missing, null or empty
// price is an error.
func parsePrice(raw json.RawMessage) (float64, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || string(data) == "null" {
		return 0, errNoPrice
	}
	data = bytes.Trim(data, `"`)
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, errNoPrice
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(data)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", data, err)
	}
	return f, nil
}

// Search returns up to the configured limit of products whose title matches query,
// in the order Sapo returns them. Products without a usable first-variant price are skipped.
func (c *Client) Search(ctx context.Context, query string) ([]domain.ProductMatch, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "sapo.Search")
	defer span.End()
	span.SetAttributes(attribute.Int("catalog.limit", c.limit))

	start := time.Now()
	matches, err := c.search(ctx, query)
	telemetry.UpstreamLatency.WithLabelValues("catalog", telemetry.Status(err)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog search failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("catalog.matches", len(matches)))
	return matches, nil
}

func (c *Client) search(ctx context.Context, query string) ([]domain.ProductMatch, error) {
	params := url.Values{}
	params.Set("title", query)
	params.Set("limit", strconv.Itoa(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrCatalog, err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrCatalog, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalog, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrCatalog, err)
	}

	return c.toMatches(result.Products), nil
}

func (c *Client) toMatches(products []product) []domain.ProductMatch {
	matches := make([]domain.ProductMatch, 0, len(products))
	for _, p := range products {
		if len(matches) == c.limit {
			break
		}
		if len(p.Variants) == 0 {
			c.log.Warn("Skipping catalog product without variants",
				zap.Int64("product_id", p.ID),
				zap.String("name", p.Name),
			)
			continue
		}
		price, err := parsePrice(p.Variants[0].Price)
		if err != nil {
			c.log.Warn("Skipping catalog product without a usable price",
				zap.Int64("product_id", p.ID),
				zap.String("name", p.Name),
				zap.Error(err),
			)
			continue
		}
		matches = append(matches, domain.ProductMatch{
			Name:  p.Name,
			Price: price,
		})
	}
	return matches
}
