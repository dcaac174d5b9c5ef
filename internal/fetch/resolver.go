package fetch

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"newspulse/internal/newsapi"
	"newspulse/internal/textutil"
)

// Resolver turns friendly source names into provider-canonical identifiers.
// It is best-effort by contract: an empty result means "fetch without a
// source filter", never failure.
type Resolver interface {
	Resolve(ctx context.Context, names []string) []string
}

// CachedResolver resolves through the on-disk store first and falls back to
// the provider's suggestion endpoint, caching the first strong match.
type CachedResolver struct {
	api   newsapi.Client
	store *Store
	log   zerolog.Logger
}

// NewCachedResolver builds a resolver. The store may be nil, in which case
// every resolution goes to the provider.
func NewCachedResolver(api newsapi.Client, store *Store, log zerolog.Logger) *CachedResolver {
	return &CachedResolver{api: api, store: store, log: log}
}

// looksCanonical reports whether a name already looks like a provider
// identifier rather than a friendly display name.
func looksCanonical(name string) bool {
	return strings.Contains(name, ".")
}

// Resolve maps each friendly name to a canonical id. Names that fail to
// resolve are logged and skipped so the fetch proceeds without them.
func (r *CachedResolver) Resolve(ctx context.Context, names []string) []string {
	var ids []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if looksCanonical(name) {
			ids = append(ids, name)
			continue
		}

		slug := textutil.Slug(name)
		if r.store != nil {
			if entry, ok, err := r.store.Get(slug); err == nil && ok {
				ids = append(ids, entry.URI)
				continue
			} else if err != nil {
				r.log.Warn().Err(err).Str("source", name).Msg("source cache read failed")
			}
		}

		id, title := r.lookup(ctx, name)
		if id == "" {
			r.log.Warn().Str("source", name).Msg("could not resolve source, fetching without it")
			continue
		}
		ids = append(ids, id)

		if r.store != nil {
			if err := r.store.Put(Entry{Slug: slug, URI: id, Title: title}); err != nil {
				r.log.Warn().Err(err).Str("source", name).Msg("source cache write failed")
			}
		}
	}
	return ids
}

// lookup queries the suggestion endpoint and picks the strongest candidate:
// an exact normalized-title match wins, otherwise the first candidate with a
// usable identifier.
func (r *CachedResolver) lookup(ctx context.Context, name string) (id, title string) {
	candidates, err := r.api.SuggestSources(ctx, name)
	if err != nil {
		r.log.Warn().Err(err).Str("source", name).Msg("source suggestion lookup failed")
		return "", ""
	}

	want := textutil.Fold(name)
	var first *newsapi.SourceCandidate
	for i := range candidates {
		c := &candidates[i]
		if c.ID == "" {
			continue
		}
		if textutil.Fold(c.Title) == want {
			return c.ID, c.Title
		}
		if first == nil {
			first = c
		}
	}
	if first != nil {
		return first.ID, first.Title
	}
	return "", ""
}
