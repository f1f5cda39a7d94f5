// Package websearch wraps the Google Custom Search API. It normalizes hits
// to {title, snippet, link}, paginates past the provider's 10-per-request
// cap, and fails closed when credentials are missing.
package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/medinfo/medinfo-api/logging"
	"github.com/medinfo/medinfo-api/metrics"
)

// searchBaseURL is the Custom Search endpoint. Declared as a var so tests
// can substitute an httptest server.
var searchBaseURL = "https://www.googleapis.com/customsearch/v1"

// The provider returns at most 10 results per request and 100 in total.
const (
	maxResultsPerRequest = 10
	maxTotalResults      = 100
)

var (
	// ErrNotConfigured means the search credentials are absent. No network
	// call is made in that case.
	ErrNotConfigured = errors.New("web search API credentials are not configured on the server")
	// ErrProvider wraps an HTTP-level error message relayed from the provider.
	ErrProvider = errors.New("search provider error")
	// ErrNetwork covers transport failures reaching the provider.
	ErrNetwork = errors.New("a network error occurred while contacting the search API")
)

// SearchResult is one normalized web search hit, consumed within a single
// pipeline run.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Client calls the Custom Search API. Construct once at startup and share;
// all methods are safe for concurrent use.
type Client struct {
	apiKey      string
	cseID       string
	httpClient  *http.Client
	imageClient *http.Client
}

// NewClient builds a search client. Empty credentials are allowed; every
// Search call then returns ErrNotConfigured.
func NewClient(apiKey, cseID string) *Client {
	return &Client{
		apiKey:      apiKey,
		cseID:       cseID,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		imageClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// searchResponse mirrors the subset of the provider payload we consume.
type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

// errorResponse is the provider's error envelope on non-2xx replies.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs the query and returns up to resultCount normalized results.
// resultCount is clamped to [1,100]; requests beyond the provider's
// per-call cap are paginated with increasing start offsets. Any page
// failure aborts the remaining pagination and discards partial results.
func (c *Client) Search(ctx context.Context, query string, resultCount int) ([]SearchResult, error) {
	if c.apiKey == "" || c.cseID == "" {
		return nil, ErrNotConfigured
	}

	if resultCount < 1 {
		resultCount = 1
	}
	if resultCount > maxTotalResults {
		resultCount = maxTotalResults
	}

	logging.Debug("Performing web search", "query", query, "result_count", resultCount)

	var all []SearchResult

	// Provider offsets are 1-based: 1, 11, 21, ...
	for start := 1; start <= resultCount; start += maxResultsPerRequest {
		num := resultCount - start + 1
		if num > maxResultsPerRequest {
			num = maxResultsPerRequest
		}

		page, err := c.searchPage(ctx, query, num, start)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}

	metrics.SearchesPerformed.Inc()
	return all, nil
}

func (c *Client) searchPage(ctx context.Context, query string, num, start int) ([]SearchResult, error) {
	params := url.Values{
		"q":     {query},
		"key":   {c.apiKey},
		"cx":    {c.cseID},
		"num":   {strconv.Itoa(num)},
		"start": {strconv.Itoa(start)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Warn("Web search request failed", "query", query, "error", err)
		return nil, ErrNetwork
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		message := "an unknown HTTP error occurred"
		if decodeErr := json.NewDecoder(resp.Body).Decode(&er); decodeErr == nil && er.Error.Message != "" {
			message = er.Error.Message
		}
		logging.Warn("Web search HTTP error", "query", query, "status", resp.StatusCode, "message", message)
		return nil, fmt.Errorf("%w: %s", ErrProvider, message)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProvider, "malformed response body")
	}

	results := make([]SearchResult, 0, len(sr.Items))
	for _, item := range sr.Items {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: strings.ReplaceAll(item.Snippet, "\n", " "),
			Link:    item.Link,
		})
	}
	return results, nil
}

// Snippets concatenates the snippets of results into one space-separated
// string for use as LLM grounding context.
func Snippets(results []SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if r.Snippet != "" {
			parts = append(parts, r.Snippet)
		}
	}
	return strings.Join(parts, " ")
}
