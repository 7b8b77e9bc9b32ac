// Package analytics implements the Cloudflare GraphQL Analytics API client.
// It delivers pre-aggregated counter groups to the aggregation engine, which
// never sees raw transport payloads.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/davidbz/haku/internal/domain"
	"github.com/davidbz/haku/internal/observability"
)

// ErrGraphQL indicates an application-level error payload in an otherwise
// successful HTTP response.
var ErrGraphQL = errors.New("analytics query returned errors")

// Config contains Cloudflare API client configuration.
type Config struct {
	AccountID string `env:"CLOUDFLARE_ACCOUNT_ID"`
	APIToken  string `env:"CLOUDFLARE_API_TOKEN"`
	BaseURL   string `env:"CLOUDFLARE_API_BASE_URL" envDefault:"https://api.cloudflare.com/client/v4"`
	Timeout   int    `env:"CLOUDFLARE_API_TIMEOUT"  envDefault:"30"`
}

// Client queries the GraphQL Analytics endpoint.
type Client struct {
	accountID  string
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new analytics client.
func NewClient(cfg Config) *Client {
	return &Client{
		accountID: cfg.AccountID,
		apiToken:  cfg.APIToken,
		baseURL:   cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Groups runs the dataset's query document for the billing period and maps
// each row to a CounterGroup. A dataset absent from the response is empty
// data, not an error.
func (c *Client) Groups(ctx context.Context, dataset domain.Dataset, period domain.BillingPeriod) ([]domain.CounterGroup, error) {
	if c.apiToken == "" {
		return nil, errors.New("API token is not configured")
	}

	doc, ok := queryDocuments[dataset]
	if !ok {
		return nil, fmt.Errorf("no query registered for dataset %s", dataset)
	}

	ctx = observability.WithDataset(ctx, string(dataset))

	raw, err := c.execute(ctx, doc, map[string]any{
		"accountTag": c.accountID,
		"start":      period.Start.Format(time.RFC3339),
		"end":        period.End.Format(time.RFC3339),
		"startDate":  period.Start.Format("2006-01-02"),
		"endDate":    period.End.Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	if errs := gjson.GetBytes(raw, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrGraphQL, errs.Array()[0].Get("message").String())
	}

	rows := gjson.GetBytes(raw, "data.viewer.accounts.0."+string(dataset))
	if !rows.Exists() {
		observability.FromContext(ctx).Debug("dataset absent from response, treating as empty")
		return nil, nil
	}

	groups := make([]domain.CounterGroup, 0, len(rows.Array()))
	for _, row := range rows.Array() {
		groups = append(groups, counterGroup(row))
	}

	return groups, nil
}

func (c *Client) execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	reqBody, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/graphql",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// counterGroup flattens one analytics row into the engine's shape. Missing
// sections decode to empty maps so absent counters read as zero downstream.
func counterGroup(row gjson.Result) domain.CounterGroup {
	group := domain.CounterGroup{
		Dimensions: map[string]string{},
		Sum:        map[string]float64{},
		Max:        map[string]float64{},
		Count:      row.Get("count").Float(),
	}

	row.Get("dimensions").ForEach(func(key, value gjson.Result) bool {
		group.Dimensions[key.String()] = value.String()
		return true
	})
	row.Get("sum").ForEach(func(key, value gjson.Result) bool {
		group.Sum[key.String()] = value.Float()
		return true
	})
	row.Get("max").ForEach(func(key, value gjson.Result) bool {
		group.Max[key.String()] = value.Float()
		return true
	})

	return group
}
