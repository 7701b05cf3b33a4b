package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"jobradar/internal/aggregator"
	"jobradar/internal/domain/listing"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

type fakeListingRepo struct {
	listings []listing.Listing
	total    int
	byID     map[uuid.UUID]listing.Listing
	logs     []listing.RunLog
	active   int
	expired  int
	bySource []listing.SourceCount

	lastFilter repository.ListingFilter
	listErr    error
}

func (f *fakeListingRepo) FindBySource(context.Context, string, string) (listing.Listing, bool, error) {
	return listing.Listing{}, false, nil
}
func (f *fakeListingRepo) Create(context.Context, listing.Listing) error { return nil }
func (f *fakeListingRepo) Update(context.Context, listing.Listing) error { return nil }
func (f *fakeListingRepo) ExpireStale(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeListingRepo) CreateRunLog(context.Context, listing.RunLog) error { return nil }

func (f *fakeListingRepo) RecentRunLogs(_ context.Context, limit int) ([]listing.RunLog, error) {
	if limit < len(f.logs) {
		return f.logs[:limit], nil
	}
	return f.logs, nil
}

func (f *fakeListingRepo) List(_ context.Context, filter repository.ListingFilter) ([]listing.Listing, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings, nil
}

func (f *fakeListingRepo) Count(context.Context, repository.ListingFilter) (int, error) {
	return f.total, nil
}

func (f *fakeListingRepo) GetByID(_ context.Context, id uuid.UUID) (listing.Listing, bool, error) {
	l, ok := f.byID[id]
	return l, ok, nil
}

func (f *fakeListingRepo) CountByStatus(context.Context) (int, int, error) {
	return f.active, f.expired, nil
}

func (f *fakeListingRepo) ActiveCountBySource(context.Context) ([]listing.SourceCount, error) {
	return f.bySource, nil
}

type fakeSource struct {
	id   string
	name string
}

func (s fakeSource) Source() string      { return s.id }
func (s fakeSource) DisplayName() string { return s.name }
func (s fakeSource) Scrape(context.Context) (aggregator.ScrapeResult, error) {
	return aggregator.ScrapeResult{}, nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestListingQuery_ListValidation(t *testing.T) {
	uc := NewListingUsecase(&fakeListingRepo{}, nil, nil, quietLogger())

	if _, _, err := uc.List(context.Background(), ListParams{Page: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative page: expected ErrInvalidInput, got %v", err)
	}
	if _, _, err := uc.List(context.Background(), ListParams{Limit: -5}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative limit: expected ErrInvalidInput, got %v", err)
	}
}

func TestListingQuery_ListDefaultsAndClamp(t *testing.T) {
	repo := &fakeListingRepo{}
	uc := NewListingUsecase(repo, nil, nil, quietLogger())

	if _, p, err := uc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	} else if p.Page != 1 || p.Limit != defaultPageLimit {
		t.Fatalf("expected defaults page=1 limit=%d, got %+v", defaultPageLimit, p)
	}

	if _, p, err := uc.List(context.Background(), ListParams{Limit: 500}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	} else if p.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, p.Limit)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("clamped limit must reach the repository, got %d", repo.lastFilter.Limit)
	}
}

func TestListingQuery_ListPagination(t *testing.T) {
	repo := &fakeListingRepo{total: 25}
	uc := NewListingUsecase(repo, nil, nil, quietLogger())

	_, p, err := uc.List(context.Background(), ListParams{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Total != 25 || p.TotalPages != 3 {
		t.Fatalf("expected total=25 totalPages=3, got %+v", p)
	}
	if repo.lastFilter.Offset != 20 {
		t.Fatalf("expected offset 20 for page 3, got %d", repo.lastFilter.Offset)
	}
}

func TestListingQuery_ListRepositoryErrorIsOpaque(t *testing.T) {
	repo := &fakeListingRepo{listErr: errors.New("connection refused")}
	uc := NewListingUsecase(repo, nil, nil, quietLogger())

	if _, _, err := uc.List(context.Background(), ListParams{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestListingQuery_GetByID(t *testing.T) {
	id := uuid.New()
	repo := &fakeListingRepo{byID: map[uuid.UUID]listing.Listing{
		id: {ID: id, Title: "Dev"},
	}}
	uc := NewListingUsecase(repo, nil, nil, quietLogger())

	got, err := uc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Title != "Dev" {
		t.Fatalf("expected stored listing, got %+v", got)
	}

	if _, err := uc.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListingQuery_Stats(t *testing.T) {
	repo := &fakeListingRepo{
		active:   10,
		expired:  4,
		bySource: []listing.SourceCount{{Source: "remotive", Count: 7}, {Source: "arbeitnow", Count: 3}},
		logs:     []listing.RunLog{{Source: "remotive", Status: listing.RunSuccess}},
	}
	uc := NewListingUsecase(repo, nil, nil, quietLogger())

	s, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.TotalActive != 10 || s.TotalExpired != 4 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if len(s.BySource) != 2 || len(s.RecentLogs) != 1 {
		t.Fatalf("unexpected stats payload: %+v", s)
	}
}

func TestListingQuery_Sources(t *testing.T) {
	uc := NewListingUsecase(&fakeListingRepo{}, []aggregator.Source{
		fakeSource{id: "remotive", name: "Remotive"},
		fakeSource{id: "arbeitnow", name: "Arbeitnow"},
	}, nil, quietLogger())

	got := uc.Sources()
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(got))
	}
	if got[0].ID != "remotive" || got[0].Name != "Remotive" {
		t.Fatalf("unexpected source info: %+v", got[0])
	}
}

type memCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func TestListingQuery_ListUsesCache(t *testing.T) {
	repo := &fakeListingRepo{
		listings: []listing.Listing{{Title: "Dev"}},
		total:    1,
	}
	cache := newMemCache()
	uc := NewListingUsecase(repo, nil, cache, quietLogger())

	if _, _, err := uc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache population, sets=%d", cache.sets)
	}

	// Second call with identical params must be served from cache.
	repo.listErr = errors.New("db down")
	jobs, p, err := uc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if len(jobs) != 1 || p.Total != 1 {
		t.Fatalf("unexpected cached payload: jobs=%d pagination=%+v", len(jobs), p)
	}
}
