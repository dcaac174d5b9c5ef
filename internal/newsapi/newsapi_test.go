package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/everything" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("sources") != "cnn,fox-news" {
			t.Errorf("sources = %q", q.Get("sources"))
		}
		if q.Get("pageSize") != "100" {
			t.Errorf("pageSize = %q", q.Get("pageSize"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 150,
			"articles": [
				{"source": {"id": "cnn", "name": "CNN"}, "title": "Fed holds rates", "publishedAt": "2025-06-15T09:00:00Z", "url": "https://example.com/a"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	page, err := c.SearchPage(context.Background(), SearchParams{
		Start:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Page:      1,
		SourceIDs: []string{"cnn", "fox-news"},
	})
	if err != nil {
		t.Fatalf("SearchPage: %v", err)
	}
	if len(page.Articles) != 1 {
		t.Fatalf("articles = %d, want 1", len(page.Articles))
	}
	if page.Articles[0].SourceName != "CNN" || page.Articles[0].ID != "cnn" {
		t.Errorf("article source mismatch: %+v", page.Articles[0])
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2 (150 results / 100 per page)", page.TotalPages)
	}
	if page.CurrentPage != 1 {
		t.Errorf("current page = %d", page.CurrentPage)
	}
}

func TestSearchPageProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"error","code":"rateLimited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	if _, err := c.SearchPage(context.Background(), SearchParams{Page: 1}); err == nil {
		t.Fatal("expected error for non-success status")
	}
}

func TestSuggestSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/top-headlines/sources" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"sources": [{"id": "fox-news", "name": "Fox News"}, {"id": "", "name": "Fox Sports"}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key")
	candidates, err := c.SuggestSources(context.Background(), "Fox News")
	if err != nil {
		t.Fatalf("SuggestSources: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	if candidates[0].ID != "fox-news" || candidates[0].Title != "Fox News" {
		t.Errorf("first candidate = %+v", candidates[0])
	}
}
