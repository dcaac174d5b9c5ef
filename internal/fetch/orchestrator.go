// Package fetch retrieves articles for a date window across a curated source
// list, within a page cap, and reports exactly how much work it performed so
// the budget ledger can be reconciled.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"newspulse/internal/newsapi"
)

// Options shape one fetch.
type Options struct {
	Sources  []string
	PageCap  int
	Language string
}

// Result is the outcome of one fetch. RequestCount and PagesFetched are
// always equal (one request = one page) and stay accurate on partial or
// error termination.
type Result struct {
	Articles     []newsapi.Article
	RequestCount int
	PagesFetched int
}

// Orchestrator drives the paginated retrieval. The resolver is optional:
// nil, or a resolver returning nothing, means fetch without a source filter.
type Orchestrator struct {
	api      newsapi.Client
	resolver Resolver
	log      zerolog.Logger
}

// NewOrchestrator builds an orchestrator.
func NewOrchestrator(api newsapi.Client, resolver Resolver, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{api: api, resolver: resolver, log: log}
}

// Fetch paginates from page 1 up to the page cap, stopping early on a short
// page or when the provider reports no more pages. A page failure after the
// first terminates the loop and returns the partial result; a failure on the
// very first page is a terminal provider error.
func (o *Orchestrator) Fetch(ctx context.Context, start, end time.Time, opts Options) (Result, error) {
	pageCap := opts.PageCap
	if pageCap <= 0 {
		pageCap = 1
	}

	var sourceIDs []string
	if o.resolver != nil && len(opts.Sources) > 0 {
		sourceIDs = o.resolver.Resolve(ctx, opts.Sources)
	}

	var res Result
	for page := 1; page <= pageCap; page++ {
		res.RequestCount++
		res.PagesFetched = res.RequestCount

		sp, err := o.api.SearchPage(ctx, newsapi.SearchParams{
			Start:     start,
			End:       end,
			Page:      page,
			PageSize:  newsapi.MaxPageSize,
			SourceIDs: sourceIDs,
			Language:  opts.Language,
		})
		if err != nil {
			if page == 1 {
				return res, fmt.Errorf("searching articles: %w", err)
			}
			o.log.Warn().Err(err).Int("page", page).
				Msg("page request failed, returning partial results")
			break
		}

		res.Articles = append(res.Articles, sp.Articles...)

		if len(sp.Articles) < newsapi.MaxPageSize {
			break
		}
		if sp.TotalPages > 0 && sp.CurrentPage >= sp.TotalPages {
			break
		}
	}
	return res, nil
}
