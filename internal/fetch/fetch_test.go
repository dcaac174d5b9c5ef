package fetch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"newspulse/internal/newsapi"
)

// fakeClient scripts SearchPage responses per page and records calls.
type fakeClient struct {
	pages       map[int]newsapi.SearchPage
	pageErrs    map[int]error
	calls       []newsapi.SearchParams
	suggestions map[string][]newsapi.SourceCandidate
	suggestErr  error
	suggestHits int
}

func (f *fakeClient) SearchPage(_ context.Context, p newsapi.SearchParams) (newsapi.SearchPage, error) {
	f.calls = append(f.calls, p)
	if err := f.pageErrs[p.Page]; err != nil {
		return newsapi.SearchPage{}, err
	}
	return f.pages[p.Page], nil
}

func (f *fakeClient) SuggestSources(_ context.Context, name string) ([]newsapi.SourceCandidate, error) {
	f.suggestHits++
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return f.suggestions[name], nil
}

func fullPage(page int) newsapi.SearchPage {
	sp := newsapi.SearchPage{CurrentPage: page, TotalPages: 10}
	for i := 0; i < newsapi.MaxPageSize; i++ {
		sp.Articles = append(sp.Articles, newsapi.Article{
			SourceName: "CNN",
			Title:      fmt.Sprintf("headline %d-%d", page, i),
		})
	}
	return sp
}

func shortPage(page, n int) newsapi.SearchPage {
	sp := newsapi.SearchPage{CurrentPage: page, TotalPages: page}
	for i := 0; i < n; i++ {
		sp.Articles = append(sp.Articles, newsapi.Article{SourceName: "CNN", Title: fmt.Sprintf("h%d", i)})
	}
	return sp
}

func day(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return d, d
}

func TestFetchStopsOnShortPage(t *testing.T) {
	api := &fakeClient{pages: map[int]newsapi.SearchPage{
		1: fullPage(1),
		2: shortPage(2, 7),
		3: fullPage(3),
	}}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	res, err := o.Fetch(context.Background(), start, end, Options{PageCap: 5})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.PagesFetched != 2 || res.RequestCount != 2 {
		t.Errorf("pages = %d, requests = %d, want 2/2", res.PagesFetched, res.RequestCount)
	}
	if len(res.Articles) != newsapi.MaxPageSize+7 {
		t.Errorf("articles = %d", len(res.Articles))
	}
}

func TestFetchRespectsPageCap(t *testing.T) {
	api := &fakeClient{pages: map[int]newsapi.SearchPage{
		1: fullPage(1), 2: fullPage(2), 3: fullPage(3), 4: fullPage(4),
	}}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	res, err := o.Fetch(context.Background(), start, end, Options{PageCap: 3})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.PagesFetched != 3 {
		t.Errorf("pages = %d, want 3", res.PagesFetched)
	}
}

func TestFetchStopsWhenNoMorePages(t *testing.T) {
	full := fullPage(1)
	full.TotalPages = 1
	api := &fakeClient{pages: map[int]newsapi.SearchPage{1: full}}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	res, err := o.Fetch(context.Background(), start, end, Options{PageCap: 5})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.PagesFetched != 1 {
		t.Errorf("pages = %d, want 1", res.PagesFetched)
	}
}

func TestFetchPartialOnMidLoopError(t *testing.T) {
	api := &fakeClient{
		pages:    map[int]newsapi.SearchPage{1: fullPage(1)},
		pageErrs: map[int]error{2: errors.New("boom")},
	}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	res, err := o.Fetch(context.Background(), start, end, Options{PageCap: 5})
	if err != nil {
		t.Fatalf("mid-loop error should not fail the fetch: %v", err)
	}
	if len(res.Articles) != newsapi.MaxPageSize {
		t.Errorf("partial results lost: %d articles", len(res.Articles))
	}
	// The failed attempt was issued, so it counts.
	if res.RequestCount != 2 {
		t.Errorf("request count = %d, want 2", res.RequestCount)
	}
}

func TestFetchFirstPageErrorIsTerminal(t *testing.T) {
	api := &fakeClient{pageErrs: map[int]error{1: errors.New("boom")}}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	res, err := o.Fetch(context.Background(), start, end, Options{PageCap: 5})
	if err == nil {
		t.Fatal("expected terminal error when the first page fails")
	}
	if res.RequestCount != 1 {
		t.Errorf("request count = %d, want 1", res.RequestCount)
	}
}

func TestFetchWithoutResolverSendsNoFilter(t *testing.T) {
	api := &fakeClient{pages: map[int]newsapi.SearchPage{1: shortPage(1, 2)}}
	o := NewOrchestrator(api, nil, zerolog.Nop())

	start, end := day(t)
	if _, err := o.Fetch(context.Background(), start, end, Options{Sources: []string{"CNN"}, PageCap: 1}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(api.calls[0].SourceIDs) != 0 {
		t.Errorf("expected unfiltered fetch, got sources %v", api.calls[0].SourceIDs)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestResolverPrefersExactTitleMatch(t *testing.T) {
	api := &fakeClient{suggestions: map[string][]newsapi.SourceCandidate{
		"Fox News": {
			{ID: "fox-sports", Title: "Fox Sports"},
			{ID: "fox-news", Title: "Fox News"},
		},
	}}
	r := NewCachedResolver(api, openTestStore(t), zerolog.Nop())

	ids := r.Resolve(context.Background(), []string{"Fox News"})
	if len(ids) != 1 || ids[0] != "fox-news" {
		t.Errorf("ids = %v, want [fox-news]", ids)
	}
}

func TestResolverFallsBackToFirstUsableCandidate(t *testing.T) {
	api := &fakeClient{suggestions: map[string][]newsapi.SourceCandidate{
		"Guardian": {
			{ID: "", Title: "The Guardian Weekly"},
			{ID: "the-guardian", Title: "The Guardian"},
		},
	}}
	r := NewCachedResolver(api, openTestStore(t), zerolog.Nop())

	ids := r.Resolve(context.Background(), []string{"Guardian"})
	if len(ids) != 1 || ids[0] != "the-guardian" {
		t.Errorf("ids = %v, want [the-guardian]", ids)
	}
}

func TestResolverCachesLookups(t *testing.T) {
	api := &fakeClient{suggestions: map[string][]newsapi.SourceCandidate{
		"CNN": {{ID: "cnn", Title: "CNN"}},
	}}
	r := NewCachedResolver(api, openTestStore(t), zerolog.Nop())

	r.Resolve(context.Background(), []string{"CNN"})
	r.Resolve(context.Background(), []string{"CNN"})
	if api.suggestHits != 1 {
		t.Errorf("suggest hits = %d, want 1 (second call should be a cache hit)", api.suggestHits)
	}
}

func TestResolverSkipsFailures(t *testing.T) {
	api := &fakeClient{
		suggestErr:  errors.New("suggest down"),
		suggestions: map[string][]newsapi.SourceCandidate{},
	}
	r := NewCachedResolver(api, openTestStore(t), zerolog.Nop())

	ids := r.Resolve(context.Background(), []string{"CNN", "Fox News"})
	if len(ids) != 0 {
		t.Errorf("ids = %v, want none on lookup failure", ids)
	}
}

func TestResolverPassesCanonicalThrough(t *testing.T) {
	api := &fakeClient{}
	r := NewCachedResolver(api, openTestStore(t), zerolog.Nop())

	ids := r.Resolve(context.Background(), []string{"foxnews.com"})
	if len(ids) != 1 || ids[0] != "foxnews.com" {
		t.Errorf("ids = %v", ids)
	}
	if api.suggestHits != 0 {
		t.Errorf("canonical-looking name should skip lookup, got %d hits", api.suggestHits)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.Get("cnn"); err != nil || ok {
		t.Fatalf("empty store Get = ok=%v err=%v", ok, err)
	}
	if err := s.Put(Entry{Slug: "cnn", URI: "cnn", Title: "CNN"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	e, ok, err := s.Get("cnn")
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if e.URI != "cnn" || e.Title != "CNN" {
		t.Errorf("entry = %+v", e)
	}
	if !strings.Contains(e.Slug, "cnn") {
		t.Errorf("slug = %q", e.Slug)
	}

	n, err := s.Clear()
	if err != nil || n != 1 {
		t.Errorf("Clear = %d, %v", n, err)
	}
	if count, _ := s.Count(); count != 0 {
		t.Errorf("count after clear = %d", count)
	}
}
