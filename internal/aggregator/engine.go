package aggregator

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"jobradar/internal/domain/listing"

	"github.com/google/uuid"
)

// RunSummary is the per-adapter outcome of one aggregation run, surfaced to
// the manual trigger endpoint and the websocket feed.
type RunSummary struct {
	Source      string `json:"source"`
	JobsFound   int    `json:"jobsFound"`
	JobsCreated int    `json:"jobsCreated"`
	JobsUpdated int    `json:"jobsUpdated"`
	Error       string `json:"error,omitempty"`
	DurationMS  int64  `json:"duration"`
}

// Store is the write side of listing persistence. Only the engine writes
// listings; the backing table enforces uniqueness on (source, source_id).
type Store interface {
	FindBySource(ctx context.Context, source, sourceID string) (listing.Listing, bool, error)
	Create(ctx context.Context, l listing.Listing) error
	Update(ctx context.Context, l listing.Listing) error
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
	CreateRunLog(ctx context.Context, entry listing.RunLog) error
}

// RunNotifier receives the summaries of every completed run.
type RunNotifier interface {
	NotifyRunCompleted(summaries []RunSummary)
}

// CacheInvalidator drops stale read-side cache entries after a run.
type CacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Engine runs every registered source once per invocation, upserts the
// results, writes one run log per adapter and sweeps expired listings.
type Engine struct {
	store      Store
	sources    []Source
	staleAfter time.Duration
	logger     *log.Logger

	notifier RunNotifier
	cache    CacheInvalidator

	now     func() time.Time
	running atomic.Bool
}

func NewEngine(store Store, sources []Source, staleAfter time.Duration, logger *log.Logger) *Engine {
	if staleAfter <= 0 {
		staleAfter = listing.StaleAfterDefault
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:      store,
		sources:    sources,
		staleAfter: staleAfter,
		logger:     logger,
		now:        time.Now,
	}
}

func (e *Engine) SetNotifier(n RunNotifier) {
	e.notifier = n
}

func (e *Engine) SetCache(c CacheInvalidator) {
	e.cache = c
}

// Sources exposes the registered adapters for the sources endpoint.
func (e *Engine) Sources() []Source {
	return e.sources
}

// RunAll executes one full aggregation run. A second call while a run is in
// flight is a no-op returning an empty slice; the flag is plain in-memory
// state, so a clustered deployment needs an external lock.
func (e *Engine) RunAll(ctx context.Context) []RunSummary {
	if !e.running.CompareAndSwap(false, true) {
		e.logger.Printf("[Aggregator] Run already in progress, skipping")
		return []RunSummary{}
	}
	defer e.running.Store(false)

	e.logger.Printf("[Aggregator] Run started sources=%d", len(e.sources))

	summaries := make([]RunSummary, 0, len(e.sources))
	for _, src := range e.sources {
		summaries = append(summaries, e.runSource(ctx, src))
	}

	// The sweep runs even when every adapter failed, so listings a broken
	// source stopped reporting still age out.
	cutoff := e.now().UTC().Add(-e.staleAfter)
	if n, err := e.store.ExpireStale(ctx, cutoff); err != nil {
		e.logger.Printf("[Aggregator] Expiry sweep error=%v", err)
	} else if n > 0 {
		e.logger.Printf("[Aggregator] Expired %d stale listing(s)", n)
	}

	if e.cache != nil {
		if err := e.cache.DeleteByPattern(ctx, "listings:*"); err != nil {
			e.logger.Printf("[Aggregator] Cache invalidation error=%v", err)
		}
	}
	if e.notifier != nil {
		e.notifier.NotifyRunCompleted(summaries)
	}

	e.logger.Printf("[Aggregator] Run complete sources=%d", len(summaries))
	return summaries
}

func (e *Engine) runSource(ctx context.Context, src Source) RunSummary {
	start := e.now()
	sum := RunSummary{Source: src.Source()}

	res, err := src.Scrape(ctx)
	if err != nil {
		// One adapter failing hard never aborts the run for the others.
		sum.Error = err.Error()
		sum.DurationMS = e.now().Sub(start).Milliseconds()
		e.logger.Printf("[Aggregator] source=%s status=FAILURE error=%v", sum.Source, err)
		e.writeRunLog(ctx, sum, listing.RunFailure)
		return sum
	}

	sum.JobsFound = len(res.Jobs)
	now := e.now().UTC()
	for _, nl := range res.Jobs {
		created, err := e.upsert(ctx, src.Source(), nl, now)
		if err != nil {
			// Per-listing isolation: skip the bad record, keep the batch.
			e.logger.Printf("[Aggregator] source=%s upsert source_id=%s error=%v", sum.Source, nl.SourceID, err)
			continue
		}
		if created {
			sum.JobsCreated++
		} else {
			sum.JobsUpdated++
		}
	}

	status := listing.RunSuccess
	if res.Err != "" {
		sum.Error = res.Err
		status = listing.RunPartial
	}
	sum.DurationMS = e.now().Sub(start).Milliseconds()

	e.logger.Printf("[Aggregator] source=%s status=%s found=%d created=%d updated=%d duration=%dms",
		sum.Source, status, sum.JobsFound, sum.JobsCreated, sum.JobsUpdated, sum.DurationMS)
	e.writeRunLog(ctx, sum, status)
	return sum
}

// upsert reports whether the listing was newly created. Re-reporting an
// expired (source, source_id) flips it back to ACTIVE here.
func (e *Engine) upsert(ctx context.Context, source string, nl NormalizedListing, now time.Time) (bool, error) {
	existing, found, err := e.store.FindBySource(ctx, source, nl.SourceID)
	if err != nil {
		return false, err
	}

	if found {
		existing.Title = nl.Title
		existing.Description = nl.Description
		existing.Company = nl.Company
		existing.Location = nl.Location
		existing.Salary = nl.Salary
		existing.Tags = nl.Tags
		existing.ApplicationURL = nl.ApplicationURL
		existing.SourceURL = nl.SourceURL
		existing.Metadata = nl.Metadata
		existing.Status = listing.StatusActive
		existing.LastSeenAt = now
		return false, e.store.Update(ctx, existing)
	}

	return true, e.store.Create(ctx, listing.Listing{
		ID:             uuid.New(),
		Source:         source,
		SourceID:       nl.SourceID,
		Title:          nl.Title,
		Description:    nl.Description,
		Company:        nl.Company,
		Location:       nl.Location,
		Salary:         nl.Salary,
		Tags:           nl.Tags,
		ApplicationURL: nl.ApplicationURL,
		SourceURL:      nl.SourceURL,
		Metadata:       nl.Metadata,
		Status:         listing.StatusActive,
		ScrapedAt:      now,
		LastSeenAt:     now,
	})
}

func (e *Engine) writeRunLog(ctx context.Context, sum RunSummary, status listing.RunStatus) {
	entry := listing.RunLog{
		ID:          uuid.New(),
		Source:      sum.Source,
		Status:      status,
		JobsFound:   sum.JobsFound,
		JobsCreated: sum.JobsCreated,
		JobsUpdated: sum.JobsUpdated,
		Error:       sum.Error,
		DurationMS:  sum.DurationMS,
		CreatedAt:   e.now().UTC(),
	}
	if err := e.store.CreateRunLog(ctx, entry); err != nil {
		e.logger.Printf("[Aggregator] source=%s run log write error=%v", sum.Source, err)
	}
}
