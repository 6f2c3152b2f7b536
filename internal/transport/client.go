// Package transport talks to the remote data service: it encodes queries in
// the service's RQL-style syntax, posts them over HTTP, and decodes the JSON
// record lists that come back. It also exposes the service's schema
// introspection endpoint behind a small LRU cache.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/SEEDtk/p3-core/internal/domain"
)

const (
	contentTypeRQL = "application/rqlquery+x-www-form-urlencoded"
	// defaultLimit is sent when the caller has not configured a result cap;
	// the service's own default page size is far too small for batch tooling.
	defaultLimit = 1000000

	schemaCacheSize = 32
	detailLimit     = 200
)

// Client implements domain.Transport against an HTTP endpoint.
type Client struct {
	base       string
	token      string
	httpClient *http.Client
	limit      int
	schemas    *lru.Cache[string, []PhysicalField]
}

// Option customizes a Client.
type Option func(*Client)

// WithToken attaches an authorization token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a client for the service rooted at base.
func NewClient(base string, opts ...Option) (*Client, error) {
	cache, err := lru.New[string, []PhysicalField](schemaCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}
	c := &Client{
		base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		schemas:    cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetLimit caps the number of records returned by subsequent queries.
func (c *Client) SetLimit(n int) {
	c.limit = n
}

// ClearLimit removes any configured result-size cap.
func (c *Client) ClearLimit() {
	c.limit = 0
}

// Query posts one RQL query against table and decodes the matched records.
func (c *Client) Query(ctx context.Context, table string, selectFields []string, filters []domain.FilterClause) ([]domain.ResultRecord, error) {
	body := EncodeQuery(selectFields, filters, c.effectiveLimit())
	requestID := uuid.NewString()
	log.Printf("[API] %s query %s (%d clauses)", requestID, table, len(filters))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+table, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build query request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeRQL)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.TransportError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var records []domain.ResultRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode query response for %s: %w", table, err)
	}
	return records, nil
}

func (c *Client) effectiveLimit() int {
	if c.limit > 0 {
		return c.limit
	}
	return defaultLimit
}

// EncodeQuery renders the select directive, filter clauses, and result cap in
// the service's RQL syntax. Clause order follows the input; the service ANDs
// all clauses regardless of order.
func EncodeQuery(selectFields []string, filters []domain.FilterClause, limit int) string {
	var parts []string
	for _, clause := range filters {
		switch clause.Op {
		case domain.OpKeyword:
			parts = append(parts, "keyword("+escapeValue(clause.Value)+")")
		case domain.OpIn:
			// In-clause values arrive already parenthesized.
			parts = append(parts, "in("+clause.Field+","+clause.Value+")")
		default:
			parts = append(parts, string(clause.Op)+"("+clause.Field+","+escapeValue(clause.Value)+")")
		}
	}
	if len(selectFields) > 0 {
		parts = append(parts, "select("+strings.Join(selectFields, ",")+")")
	}
	if limit > 0 {
		parts = append(parts, "limit("+strconv.Itoa(limit)+")")
	}
	return strings.Join(parts, "&")
}

var valueEscaper = strings.NewReplacer(
	"%", "%25",
	"&", "%26",
	"+", "%2B",
	"#", "%23",
	" ", "+",
)

func escapeValue(v string) string {
	return valueEscaper.Replace(v)
}

func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, detailLimit))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
