package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"jobradar/internal/aggregator"
	"jobradar/internal/domain/listing"
	"jobradar/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
	recentLogCount   = 20
)

type ListParams struct {
	Search   string
	Location string
	Source   string
	Page     int
	Limit    int
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type SourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Stats struct {
	TotalActive  int
	TotalExpired int
	BySource     []listing.SourceCount
	RecentLogs   []listing.RunLog
}

type ListingUsecase interface {
	List(ctx context.Context, params ListParams) ([]listing.Listing, Pagination, error)
	GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, error)
	Stats(ctx context.Context) (Stats, error)
	Sources() []SourceInfo
}

// ListingCache is the read-side cache surface; a nil cache disables caching.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type ListingQuery struct {
	repo    repository.ListingRepository
	sources []aggregator.Source
	cache   ListingCache
	logger  *log.Logger
}

var _ ListingUsecase = (*ListingQuery)(nil)

func NewListingUsecase(repo repository.ListingRepository, sources []aggregator.Source, cache ListingCache, logger *log.Logger) *ListingQuery {
	if logger == nil {
		logger = log.Default()
	}
	return &ListingQuery{repo: repo, sources: sources, cache: cache, logger: logger}
}

func (u *ListingQuery) List(ctx context.Context, params ListParams) ([]listing.Listing, Pagination, error) {
	page := params.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return nil, Pagination{}, ErrInvalidInput
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 0 {
		return nil, Pagination{}, ErrInvalidInput
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	f := repository.ListingFilter{
		Search:   strings.TrimSpace(params.Search),
		Location: strings.TrimSpace(params.Location),
		Source:   strings.TrimSpace(params.Source),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	type cached struct {
		Jobs       []listing.Listing `json:"jobs"`
		Pagination Pagination        `json:"pagination"`
	}

	key := listCacheKey(f)
	if u.cache != nil {
		var hit cached
		if ok, err := u.cache.GetJSON(ctx, key, &hit); err == nil && ok {
			u.logger.Printf("[Listings] Cache HIT: %s", key)
			return hit.Jobs, hit.Pagination, nil
		}
	}

	rows, err := u.repo.List(ctx, f)
	if err != nil {
		u.logger.Printf("[Listings] List error=%v", err)
		return nil, Pagination{}, ErrInternal
	}
	total, err := u.repo.Count(ctx, f)
	if err != nil {
		u.logger.Printf("[Listings] Count error=%v", err)
		return nil, Pagination{}, ErrInternal
	}

	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, cached{Jobs: rows, Pagination: p}, 0)
	}
	return rows, p, nil
}

func (u *ListingQuery) GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, error) {
	l, found, err := u.repo.GetByID(ctx, id)
	if err != nil {
		u.logger.Printf("[Listings] GetByID id=%s error=%v", id, err)
		return listing.Listing{}, ErrInternal
	}
	if !found {
		return listing.Listing{}, ErrNotFound
	}
	return l, nil
}

func (u *ListingQuery) Stats(ctx context.Context) (Stats, error) {
	key := "listings:stats"
	if u.cache != nil {
		var hit Stats
		if ok, err := u.cache.GetJSON(ctx, key, &hit); err == nil && ok {
			return hit, nil
		}
	}

	active, expired, err := u.repo.CountByStatus(ctx)
	if err != nil {
		u.logger.Printf("[Listings] CountByStatus error=%v", err)
		return Stats{}, ErrInternal
	}
	bySource, err := u.repo.ActiveCountBySource(ctx)
	if err != nil {
		u.logger.Printf("[Listings] ActiveCountBySource error=%v", err)
		return Stats{}, ErrInternal
	}
	logs, err := u.repo.RecentRunLogs(ctx, recentLogCount)
	if err != nil {
		u.logger.Printf("[Listings] RecentRunLogs error=%v", err)
		return Stats{}, ErrInternal
	}

	out := Stats{
		TotalActive:  active,
		TotalExpired: expired,
		BySource:     bySource,
		RecentLogs:   logs,
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, time.Minute)
	}
	return out, nil
}

// Sources reflects the registered adapters, not persisted data, so a source
// with zero listings still appears in the filter UI.
func (u *ListingQuery) Sources() []SourceInfo {
	out := make([]SourceInfo, 0, len(u.sources))
	for _, s := range u.sources {
		out = append(out, SourceInfo{ID: s.Source(), Name: s.DisplayName()})
	}
	return out
}
