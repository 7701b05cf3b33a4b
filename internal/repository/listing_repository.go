package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"jobradar/internal/database"
	"jobradar/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ListingFilter narrows the read side. All fields are optional and
// conjunctive; List and Count always add status = ACTIVE themselves.
type ListingFilter struct {
	Search   string
	Location string
	Source   string
	Limit    int
	Offset   int
}

type ListingRepository interface {
	FindBySource(ctx context.Context, source, sourceID string) (listing.Listing, bool, error)
	Create(ctx context.Context, l listing.Listing) error
	Update(ctx context.Context, l listing.Listing) error
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)

	CreateRunLog(ctx context.Context, entry listing.RunLog) error
	RecentRunLogs(ctx context.Context, limit int) ([]listing.RunLog, error)

	List(ctx context.Context, f ListingFilter) ([]listing.Listing, error)
	Count(ctx context.Context, f ListingFilter) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, bool, error)
	CountByStatus(ctx context.Context) (active int, expired int, err error)
	ActiveCountBySource(ctx context.Context) ([]listing.SourceCount, error)
}

type PostgresListingRepository struct {
	db database.DB
}

var _ ListingRepository = (*PostgresListingRepository)(nil)

func NewPostgresListingRepository(db database.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

const listingColumns = `id, source, source_id, title, description, company, location,
	COALESCE(salary, ''), tags, application_url, COALESCE(source_url, ''), metadata,
	status, scraped_at, last_seen_at`

func (r *PostgresListingRepository) FindBySource(ctx context.Context, source, sourceID string) (listing.Listing, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE source = $1 AND source_id = $2`,
		source, sourceID,
	)
	return scanListing(row)
}

func (r *PostgresListingRepository) GetByID(ctx context.Context, id uuid.UUID) (listing.Listing, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`,
		id,
	)
	return scanListing(row)
}

// Create relies on the (source, source_id) unique constraint: a concurrent
// duplicate insert degrades to an update instead of erroring.
func (r *PostgresListingRepository) Create(ctx context.Context, l listing.Listing) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO listings (
			id, source, source_id, title, description, company, location, salary,
			tags, application_url, source_url, metadata, status, scraped_at, last_seen_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (source, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			salary = EXCLUDED.salary,
			tags = EXCLUDED.tags,
			application_url = EXCLUDED.application_url,
			source_url = EXCLUDED.source_url,
			metadata = EXCLUDED.metadata,
			status = EXCLUDED.status,
			last_seen_at = EXCLUDED.last_seen_at`,
		l.ID, l.Source, l.SourceID, l.Title, l.Description, l.Company, l.Location,
		nullableText(l.Salary), tagsOrEmpty(l.Tags), l.ApplicationURL,
		nullableText(l.SourceURL), metadataOrEmpty(l.Metadata), string(l.Status),
		l.ScrapedAt, l.LastSeenAt,
	)
	return err
}

func (r *PostgresListingRepository) Update(ctx context.Context, l listing.Listing) error {
	_, err := r.db.Exec(ctx,
		`UPDATE listings SET
			title = $2, description = $3, company = $4, location = $5, salary = $6,
			tags = $7, application_url = $8, source_url = $9, metadata = $10,
			status = $11, last_seen_at = $12
		WHERE id = $1`,
		l.ID, l.Title, l.Description, l.Company, l.Location, nullableText(l.Salary),
		tagsOrEmpty(l.Tags), l.ApplicationURL, nullableText(l.SourceURL),
		metadataOrEmpty(l.Metadata), string(l.Status), l.LastSeenAt,
	)
	return err
}

func (r *PostgresListingRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE listings SET status = $1 WHERE status = $2 AND last_seen_at < $3`,
		string(listing.StatusExpired), string(listing.StatusActive), cutoff,
	)
}

func (r *PostgresListingRepository) List(ctx context.Context, f ListingFilter) ([]listing.Listing, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := listingWhere(f)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+listingColumns+` FROM listings `+where+
			` ORDER BY scraped_at DESC LIMIT $`+itoa(len(args)-1)+` OFFSET $`+itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]listing.Listing, 0)
	for rows.Next() {
		var l listing.Listing
		var status string
		if err := rows.Scan(
			&l.ID, &l.Source, &l.SourceID, &l.Title, &l.Description, &l.Company,
			&l.Location, &l.Salary, &l.Tags, &l.ApplicationURL, &l.SourceURL,
			&l.Metadata, &status, &l.ScrapedAt, &l.LastSeenAt,
		); err != nil {
			return nil, err
		}
		l.Status = listing.Status(status)
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresListingRepository) Count(ctx context.Context, f ListingFilter) (int, error) {
	where, args := listingWhere(f)
	row := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM listings `+where, args...)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresListingRepository) CountByStatus(ctx context.Context) (int, int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(1) FROM listings GROUP BY status`)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	var active, expired int
	for rows.Next() {
		var status string
		var c int
		if err := rows.Scan(&status, &c); err != nil {
			return 0, 0, err
		}
		switch listing.Status(status) {
		case listing.StatusActive:
			active = c
		case listing.StatusExpired:
			expired = c
		}
	}
	return active, expired, rows.Err()
}

func (r *PostgresListingRepository) ActiveCountBySource(ctx context.Context) ([]listing.SourceCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT source, COUNT(1) FROM listings WHERE status = $1 GROUP BY source ORDER BY source ASC`,
		string(listing.StatusActive),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]listing.SourceCount, 0)
	for rows.Next() {
		var sc listing.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (r *PostgresListingRepository) CreateRunLog(ctx context.Context, entry listing.RunLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO run_logs (id, source, status, jobs_found, jobs_created, jobs_updated, error, duration_ms, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		entry.ID, entry.Source, string(entry.Status), entry.JobsFound, entry.JobsCreated,
		entry.JobsUpdated, nullableText(entry.Error), entry.DurationMS, entry.CreatedAt,
	)
	return err
}

func (r *PostgresListingRepository) RecentRunLogs(ctx context.Context, limit int) ([]listing.RunLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, source, status, jobs_found, jobs_created, jobs_updated, COALESCE(error, ''), duration_ms, created_at
		 FROM run_logs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]listing.RunLog, 0, limit)
	for rows.Next() {
		var e listing.RunLog
		var status string
		if err := rows.Scan(
			&e.ID, &e.Source, &status, &e.JobsFound, &e.JobsCreated, &e.JobsUpdated,
			&e.Error, &e.DurationMS, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Status = listing.RunStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

// listingWhere builds the conjunctive filter clause shared by List and Count.
// The read side only ever serves ACTIVE listings.
func listingWhere(f ListingFilter) (string, []any) {
	conds := []string{"status = $1"}
	args := []any{string(listing.StatusActive)}

	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := itoa(len(args))
		conds = append(conds, "(title ILIKE $"+n+" OR description ILIKE $"+n+" OR company ILIKE $"+n+")")
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		args = append(args, "%"+loc+"%")
		conds = append(conds, "location ILIKE $"+itoa(len(args)))
	}
	if src := strings.TrimSpace(f.Source); src != "" {
		args = append(args, src)
		conds = append(conds, "source = $"+itoa(len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanListing(row database.Row) (listing.Listing, bool, error) {
	var l listing.Listing
	var status string
	err := row.Scan(
		&l.ID, &l.Source, &l.SourceID, &l.Title, &l.Description, &l.Company,
		&l.Location, &l.Salary, &l.Tags, &l.ApplicationURL, &l.SourceURL,
		&l.Metadata, &status, &l.ScrapedAt, &l.LastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return listing.Listing{}, false, nil
		}
		return listing.Listing{}, false, err
	}
	l.Status = listing.Status(status)
	return l, true, nil
}

func nullableText(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func metadataOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
