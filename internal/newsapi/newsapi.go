// Package newsapi is the client for the article-search provider. One page
// request is one billable, rate-limited unit.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxPageSize is the provider's maximum page size; every page request uses it.
const MaxPageSize = 100

// DefaultBaseURL is used when the config does not override it.
const DefaultBaseURL = "https://newsapi.org"

// Article is one returned headline. Transient: produced per fetch call and
// never persisted.
type Article struct {
	ID          string    `json:"id,omitempty"`
	SourceName  string    `json:"source_name"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url,omitempty"`
}

// SearchPage is one page of search results.
type SearchPage struct {
	Articles    []Article
	TotalPages  int
	CurrentPage int
}

// SearchParams describe one page request.
type SearchParams struct {
	Start     time.Time
	End       time.Time
	Page      int
	PageSize  int
	SourceIDs []string
	Language  string
}

// SourceCandidate is one suggestion for a friendly source name.
type SourceCandidate struct {
	ID    string
	Title string
}

// Client is the provider surface the orchestrator consumes.
type Client interface {
	SearchPage(ctx context.Context, params SearchParams) (SearchPage, error)
	SuggestSources(ctx context.Context, name string) ([]SourceCandidate, error)
}

// HTTPClient talks to the provider's REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a provider client. An empty baseURL falls back to
// DefaultBaseURL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type wireArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
}

type wireSearchResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []wireArticle `json:"articles"`
}

func (c *HTTPClient) SearchPage(ctx context.Context, params SearchParams) (SearchPage, error) {
	if params.PageSize <= 0 || params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}
	if params.Page <= 0 {
		params.Page = 1
	}

	q := url.Values{}
	q.Set("from", params.Start.Format("2006-01-02"))
	q.Set("to", params.End.Format("2006-01-02"))
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("pageSize", strconv.Itoa(params.PageSize))
	q.Set("sortBy", "popularity")
	if params.Language != "" {
		q.Set("language", params.Language)
	}
	if len(params.SourceIDs) > 0 {
		q.Set("sources", strings.Join(params.SourceIDs, ","))
	} else {
		// The provider requires some query dimension; without a source
		// filter we fall back to a broad news query.
		q.Set("q", "news")
	}

	var wire wireSearchResponse
	if err := c.get(ctx, "/v2/everything", q, &wire); err != nil {
		return SearchPage{}, err
	}

	page := SearchPage{CurrentPage: params.Page}
	if params.PageSize > 0 {
		page.TotalPages = (wire.TotalResults + params.PageSize - 1) / params.PageSize
	}
	for _, a := range wire.Articles {
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		page.Articles = append(page.Articles, Article{
			ID:          a.Source.ID,
			SourceName:  a.Source.Name,
			Title:       a.Title,
			PublishedAt: published,
			URL:         a.URL,
		})
	}
	return page, nil
}

type wireSourcesResponse struct {
	Sources []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"sources"`
}

func (c *HTTPClient) SuggestSources(ctx context.Context, name string) ([]SourceCandidate, error) {
	q := url.Values{}
	q.Set("q", name)

	var wire wireSourcesResponse
	if err := c.get(ctx, "/v2/top-headlines/sources", q, &wire); err != nil {
		return nil, err
	}

	candidates := make([]SourceCandidate, 0, len(wire.Sources))
	for _, s := range wire.Sources {
		candidates = append(candidates, SourceCandidate{ID: s.ID, Title: s.Name})
	}
	return candidates, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
