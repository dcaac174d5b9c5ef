// Package analysis composes the filter, categorizer, scorers, budget
// governor and fetch orchestrator into daily and monthly results.
package analysis

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"newspulse/internal/budget"
	"newspulse/internal/dates"
	"newspulse/internal/fetch"
	"newspulse/internal/leaning"
	"newspulse/internal/newsapi"
	"newspulse/internal/relevance"
	"newspulse/internal/scoring"
)

// ErrRateLimited is returned when the request rate pre-check denies an
// operation before any estimate is reserved.
var ErrRateLimited = errors.New("request rate limit reached, try again shortly")

// Fetcher is the orchestrator surface the pipeline consumes.
type Fetcher interface {
	Fetch(ctx context.Context, start, end time.Time, opts fetch.Options) (fetch.Result, error)
}

// Settings configure one pipeline instance.
type Settings struct {
	Sources      []string
	PageCap      int
	Language     string
	MaxHeadlines int
}

// RunOptions carry per-invocation overrides.
type RunOptions struct {
	// AllowOverage overrides the governor's static overage policy when set.
	AllowOverage *bool
}

// Pipeline runs day and month-range analyses. Months within one range are
// processed sequentially: the budget ledger is shared mutable state and must
// be updated in request order.
type Pipeline struct {
	governor *budget.Governor
	rates    *budget.RateCounter
	fetcher  Fetcher
	compare  scoring.ComparativeFunc
	settings Settings
	log      zerolog.Logger

	// Rolling baseline from the previous invocation, feeding the novelty
	// and volatility-shock scorers. First invocation scores neutral.
	mu             sync.Mutex
	baselineTerms  map[string]float64
	baselineSeries []float64
}

// New builds a pipeline.
func New(governor *budget.Governor, rates *budget.RateCounter, fetcher Fetcher,
	compare scoring.ComparativeFunc, settings Settings, log zerolog.Logger) *Pipeline {
	if settings.MaxHeadlines <= 0 {
		settings.MaxHeadlines = 40
	}
	if settings.PageCap <= 0 {
		settings.PageCap = 1
	}
	return &Pipeline{
		governor: governor,
		rates:    rates,
		fetcher:  fetcher,
		compare:  compare,
		settings: settings,
		log:      log,
	}
}

// AnalyzeDay analyzes a single calendar day.
func (p *Pipeline) AnalyzeDay(ctx context.Context, day time.Time, opts RunOptions) (*Report, error) {
	return p.analyzeWindow(ctx, day, day, day.Format("2006-01-02"), opts)
}

// AnalyzeMonths analyzes each calendar month from 'from' through 'to'
// inclusive. A month whose fetch or budget check fails is embedded as an
// error entry; later months still run.
func (p *Pipeline) AnalyzeMonths(ctx context.Context, from, to time.Time, opts RunOptions) (*MonthRangeReport, error) {
	out := &MonthRangeReport{
		From: from.Format("2006-01"),
		To:   to.Format("2006-01"),
	}
	for _, m := range dates.MonthsBetween(from, to) {
		first, last := dates.MonthSpan(m)
		label := m.Format("2006-01")

		report, err := p.analyzeWindow(ctx, first, last, label, opts)
		entry := MonthEntry{Month: label, Report: report}
		if err != nil {
			entry.Report = nil
			entry.Error = err.Error()
			p.log.Error().Err(err).Str("month", label).Msg("month analysis failed, continuing range")
		}
		out.Months = append(out.Months, entry)
	}
	return out, nil
}

func (p *Pipeline) analyzeWindow(ctx context.Context, start, end time.Time, label string, opts RunOptions) (*Report, error) {
	if p.rates != nil && !p.rates.Allow() {
		return nil, ErrRateLimited
	}

	allowOverage := p.governor.AllowOverage()
	if opts.AllowOverage != nil {
		allowOverage = *opts.AllowOverage
	}

	estimate := p.governor.Estimate(start, end, p.settings.PageCap)
	check := p.governor.CheckAndReserve(estimate, allowOverage)
	if !check.Allowed {
		return nil, &budget.ExhaustedError{
			Estimate:         estimate,
			MTDTokens:        check.MTDTokens,
			MonthlyAllowance: check.MonthlyAllowance,
		}
	}

	res, fetchErr := p.fetcher.Fetch(ctx, start, end, fetch.Options{
		Sources:  p.settings.Sources,
		PageCap:  p.settings.PageCap,
		Language: p.settings.Language,
	})

	// Requests were issued and pages were billed whether or not the fetch
	// ultimately succeeded; reconcile before deciding what to return.
	if p.rates != nil {
		p.rates.Record(res.RequestCount)
	}
	actual := p.governor.Estimate(start, end, res.PagesFetched)
	p.governor.RecordActual(actual, estimate)

	if fetchErr != nil {
		return nil, fetchErr
	}

	return p.assemble(label, start, end, res.Articles), nil
}

// sourceGroup keeps one source's relevant headlines with their leaning.
type sourceGroup struct {
	source    string
	bucket    string
	headlines []string
}

func (p *Pipeline) assemble(label string, start, end time.Time, articles []newsapi.Article) *Report {
	r := &Report{
		Window:              label,
		Start:               start.Format("2006-01-02"),
		End:                 end.Format("2006-01-02"),
		SourceDistribution:  make(map[string]int),
		LeaningDistribution: make(map[string]int),
		Leanings:            make(map[string]LeaningSummary),
	}

	// Raw distributions cover every returned article, not just relevant ones.
	groups := make(map[string]*sourceGroup)
	relevantCount := 0
	for _, a := range articles {
		sourceKey := strings.TrimSpace(a.SourceName)
		if sourceKey == "" {
			sourceKey = leaning.KeyOther
		}
		r.SourceDistribution[sourceKey]++
		r.LeaningDistribution[leaning.BucketFor(a.ID, a.SourceName)]++

		assessment := relevance.Evaluate(a.Title)
		if !assessment.Relevant {
			continue
		}
		relevantCount++
		g, ok := groups[sourceKey]
		if !ok {
			g = &sourceGroup{source: sourceKey, bucket: leaning.BucketFor(a.ID, a.SourceName)}
			groups[sourceKey] = g
		}
		g.headlines = append(g.headlines, a.Title)
	}

	r.Filter = FilterStats{Total: len(articles), Relevant: relevantCount}
	if len(articles) > 0 {
		r.Filter.RelevanceRate = scoring.Round2(float64(relevantCount) / float64(len(articles)) * 100)
	}

	// Even per-source sampling: every source with relevant headlines gets the
	// same quota so one prolific source cannot crowd out the rest.
	quota := 0
	if len(groups) > 0 {
		quota = p.settings.MaxHeadlines / len(groups)
		if quota < 1 {
			quota = 1
		}
	}

	ordered := make([]*sourceGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].source < ordered[j].source })

	var sampled []string
	byBucket := make(map[string][]string)
	for _, g := range ordered {
		take := quota
		if take > len(g.headlines) {
			take = len(g.headlines)
		}
		for _, h := range g.headlines[:take] {
			if len(sampled) >= p.settings.MaxHeadlines {
				break
			}
			sampled = append(sampled, h)
			byBucket[g.bucket] = append(byBucket[g.bucket], h)
		}
	}
	r.SampledHeadlines = sampled

	// Scores run on the balanced sample, not the full raw set.
	investor := scoring.InvestorSentiment(sampled)
	r.InvestorTerms = investor.TermCounts
	r.Scores.GeneralSentiment = scoring.GeneralSentiment(sampled, p.compare)
	r.Scores.InvestorSentiment = investor.Score
	r.Scores.Attention = scoring.Attention(sampled)

	perBucketGeneral := make(map[string]float64)
	for _, bucket := range leaning.Buckets() {
		headlines := byBucket[bucket]
		if len(headlines) == 0 {
			continue
		}
		general := scoring.GeneralSentiment(headlines, p.compare)
		perBucketGeneral[bucket] = general

		samples := headlines
		if len(samples) > 5 {
			samples = samples[:5]
		}
		r.Leanings[bucket] = LeaningSummary{
			GeneralSentiment:  general,
			InvestorSentiment: scoring.InvestorSentiment(headlines).Score,
			HeadlineCount:     len(headlines),
			SampleHeadlines:   samples,
		}
	}

	centerScore, hasCenter := perBucketGeneral[string(leaning.Center)]
	if !hasCenter {
		centerScore = r.Scores.GeneralSentiment
	}
	leftScore, hasLeft := perBucketGeneral[string(leaning.Left)]
	rightScore, hasRight := perBucketGeneral[string(leaning.Right)]
	r.Scores.BiasIntensity = scoring.BiasIntensity(leftScore, centerScore, rightScore, hasLeft, hasRight)

	todayTerms := termFrequencies(sampled)
	todaySeries := p.sentimentSeries(sampled)

	p.mu.Lock()
	r.Scores.Novelty = scoring.Novelty(todayTerms, p.baselineTerms)
	r.Scores.VolShock = scoring.VolShock(todaySeries, p.baselineSeries)
	if len(todayTerms) > 0 {
		p.baselineTerms = todayTerms
	}
	if len(todaySeries) > 0 {
		p.baselineSeries = todaySeries
	}
	p.mu.Unlock()

	r.TrendingTerms = topTerms(todayTerms, 5)

	r.Diagnostics = Diagnostics{
		TokenBudget: p.governor.Snapshot(),
		Sampling: SamplingDiagnostics{
			MaxHeadlines:        p.settings.MaxHeadlines,
			PerSourceQuota:      quota,
			SourcesWithRelevant: len(groups),
			SampledHeadlines:    len(sampled),
		},
	}
	if p.rates != nil {
		r.Diagnostics.RequestsToday = p.rates.Today()
	}
	return r
}

func (p *Pipeline) sentimentSeries(headlines []string) []float64 {
	if p.compare == nil {
		return nil
	}
	series := make([]float64, 0, len(headlines))
	for _, h := range headlines {
		series = append(series, p.compare(h))
	}
	return series
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "its": true,
	"as": true, "are": true, "was": true, "be": true, "after": true,
	"over": true, "amid": true, "new": true, "says": true, "say": true,
	"will": true, "could": true, "more": true, "this": true, "that": true,
}

func termFrequencies(headlines []string) map[string]float64 {
	tf := make(map[string]float64)
	for _, h := range headlines {
		for _, word := range strings.Fields(strings.ToLower(h)) {
			word = strings.TrimFunc(word, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if len(word) < 3 || stopWords[word] {
				continue
			}
			tf[word]++
		}
	}
	return tf
}

func topTerms(tf map[string]float64, n int) []string {
	type scored struct {
		term  string
		count float64
	}
	terms := make([]scored, 0, len(tf))
	for term, count := range tf {
		terms = append(terms, scored{term, count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, t.term)
	}
	return out
}
