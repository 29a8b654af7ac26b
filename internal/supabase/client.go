package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stitchesx/stitchesx/internal/config"
	ierr "github.com/stitchesx/stitchesx/internal/errors"
	"github.com/stitchesx/stitchesx/internal/httpclient"
	"github.com/stitchesx/stitchesx/internal/logger"
)

// Client is a thin wrapper over the Supabase PostgREST data plane. It
// authenticates with the service key; row ownership is enforced by the
// user_id filters the repositories apply.
type Client struct {
	baseURL    string
	serviceKey string
	http       httpclient.Client
	logger     *logger.Logger
}

// NewClient creates a PostgREST client from configuration.
func NewClient(cfg *config.Configuration, http httpclient.Client, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.Supabase.BaseURL, "/"),
		serviceKey: cfg.Supabase.ServiceKey,
		http:       http,
		logger:     logger,
	}
}

// From starts a query against a table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{
		client: c,
		table:  table,
		params: url.Values{},
	}
}

// RPC invokes a Postgres function exposed through PostgREST. Used where a
// multi-row change must be atomic.
func (c *Client) RPC(ctx context.Context, fn string, args any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, fn)
	resp, err := c.send(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseError(resp.StatusCode, resp.Body)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, headers map[string]string, body []byte) (*httpclient.Response, error) {
	merged := map[string]string{
		"apikey":        c.serviceKey,
		"Authorization": "Bearer " + c.serviceKey,
	}
	for k, v := range headers {
		merged[k] = v
	}

	return c.http.Send(ctx, &httpclient.Request{
		Method:  method,
		URL:     endpoint,
		Headers: merged,
		Body:    body,
	})
}

// QueryBuilder accumulates PostgREST query parameters.
type QueryBuilder struct {
	client *Client
	table  string
	params url.Values
	single bool
}

// Select sets the returned columns (defaults to *).
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter on a column.
func (q *QueryBuilder) Eq(column string, value any) *QueryBuilder {
	q.params.Add(column, fmt.Sprintf("eq.%v", value))
	return q
}

// Order sorts the result by a column.
func (q *QueryBuilder) Order(column string, ascending bool) *QueryBuilder {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.params.Set("order", column+"."+dir)
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Single requests exactly one object. PostgREST answers with CodeNoRows
// when no row matches.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

func (q *QueryBuilder) endpoint() string {
	u := fmt.Sprintf("%s/rest/v1/%s", q.client.baseURL, q.table)
	if encoded := q.params.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (q *QueryBuilder) headers(prefer ...string) map[string]string {
	h := map[string]string{}
	if q.single {
		h["Accept"] = "application/vnd.pgrst.object+json"
	}
	if len(prefer) > 0 {
		h["Prefer"] = strings.Join(prefer, ",")
	}
	return h
}

func (q *QueryBuilder) execute(ctx context.Context, method string, headers map[string]string, body []byte, dest any) error {
	resp, err := q.client.send(ctx, method, q.endpoint(), headers, body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return parseError(resp.StatusCode, resp.Body)
	}
	if dest == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, dest); err != nil {
		return ierr.WithError(err).
			WithHint("Unexpected response from backend").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// Get executes the built query and decodes rows into dest.
func (q *QueryBuilder) Get(ctx context.Context, dest any) error {
	return q.execute(ctx, http.MethodGet, q.headers(), nil, dest)
}

// Insert creates rows and decodes the representation into dest.
func (q *QueryBuilder) Insert(ctx context.Context, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return q.execute(ctx, http.MethodPost, q.headers("return=representation"), body, dest)
}

// Upsert creates or merges rows keyed by onConflict.
func (q *QueryBuilder) Upsert(ctx context.Context, payload any, onConflict string, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	q.params.Set("on_conflict", onConflict)
	return q.execute(ctx, http.MethodPost,
		q.headers("return=representation", "resolution=merge-duplicates"), body, dest)
}

// Update patches the rows matching the filters.
func (q *QueryBuilder) Update(ctx context.Context, payload any, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	return q.execute(ctx, http.MethodPatch, q.headers("return=representation"), body, dest)
}

// Delete removes the rows matching the filters.
func (q *QueryBuilder) Delete(ctx context.Context) error {
	return q.execute(ctx, http.MethodDelete, q.headers(), nil, nil)
}
