package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

const (
	defaultPoolSize         = 10
	defaultObservationLimit = 100
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// pgxExecutor is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresOption configures the PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(n) //nolint:gosec // bounded by config validation
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// UpsertItem inserts or updates an item keyed by its derived ID.
func (s *PostgresStore) UpsertItem(ctx context.Context, item *Item) error {
	return pgUpsertItem(ctx, s.pool, item)
}

func pgUpsertItem(ctx context.Context, q pgxExecutor, item *Item) error {
	prepareItem(item)
	args := pgx.NamedArgs{
		"id":                item.ID,
		"raw_name":          item.RawName,
		"manufacturer_hint": item.ManufacturerHint,
		"barcode":           item.Barcode,
		"condition_raw":     item.Condition,
		"is_reagent":        item.IsReagent,
	}

	if err := q.QueryRow(ctx, queryUpsertItem, args).Scan(
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upserting item: %w", err)
	}
	return nil
}

// ListItems returns stored items oldest first. A limit of zero or less
// returns every item.
func (s *PostgresStore) ListItems(ctx context.Context, limit int) ([]Item, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, queryListItems, limit)
	} else {
		rows, err = s.pool.Query(ctx, queryListAllItems)
	}
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.RawName, &it.ManufacturerHint, &it.Barcode,
			&it.Condition, &it.IsReagent, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// SaveResult records a pricing result. Results are append-only; the
// newest result per product key is the current one.
func (s *PostgresStore) SaveResult(ctx context.Context, r *domain.PricingResult) error {
	return pgInsertResult(ctx, s.pool, r)
}

func pgInsertResult(ctx context.Context, q pgxExecutor, r *domain.PricingResult) error {
	prepareResult(r, time.Now())
	args := pgx.NamedArgs{
		"id":                r.ID,
		"product_key":       r.ProductKey,
		"raw_name":          r.RawName,
		"manufacturer":      r.Manufacturer,
		"part_number":       r.PartNumber,
		"mode":              string(r.Mode),
		"outcome":           string(r.Outcome),
		"base_price":        r.BasePrice,
		"item_condition":    string(r.Condition),
		"multiplier":        r.Multiplier,
		"final_price":       r.FinalPrice,
		"confidence":        r.Confidence,
		"sources":           r.Sources,
		"rejected_outliers": r.Rejected,
		"matched_title":     r.MatchedTitle,
		"matched_source":    r.MatchedSource,
		"priced_at":         r.PricedAt,
	}

	if _, err := q.Exec(ctx, queryInsertResult, args); err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// GetResult returns the newest result for a product key.
func (s *PostgresStore) GetResult(
	ctx context.Context,
	productKey string,
) (*domain.PricingResult, error) {
	r := &domain.PricingResult{}
	err := scanResult(s.pool.QueryRow(ctx, queryGetLatestResult, productKey), r)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("result %q: %w", productKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting result: %w", err)
	}
	return r, nil
}

// ListResults queries results with optional filters, returning the page and
// the total match count.
func (s *PostgresStore) ListResults(
	ctx context.Context,
	q *ResultQuery,
) ([]domain.PricingResult, int, error) {
	if q == nil {
		q = &ResultQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting results: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []domain.PricingResult
	for rows.Next() {
		var r domain.PricingResult
		if err := scanResult(rows, &r); err != nil {
			return nil, 0, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating results: %w", err)
	}

	return results, total, nil
}

// SaveObservations records the observations gathered for a product key in
// one batch.
func (s *PostgresStore) SaveObservations(
	ctx context.Context,
	productKey string,
	obs []domain.SourceObservation,
) error {
	return pgInsertObservations(ctx, s.pool, productKey, obs)
}

func pgInsertObservations(
	ctx context.Context,
	q pgxExecutor,
	productKey string,
	obs []domain.SourceObservation,
) error {
	if len(obs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for i := range obs {
		o := &obs[i]
		batch.Queue(queryInsertObservation, pgx.NamedArgs{
			"product_key":   productKey,
			"source_id":     o.SourceID,
			"title":         o.Title,
			"price":         nullDecimal(o.Price),
			"manufacturer":  o.Manufacturer,
			"part_number":   o.PartNumber,
			"pack_quantity": o.PackQuantity,
			"url":           o.URL,
			"description":   o.Description,
			"observed_at":   now,
		})
	}

	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting observations: %w", err)
	}
	return nil
}

// SavePricing writes the item, its observations and the result of one run
// in a single transaction.
func (s *PostgresStore) SavePricing(
	ctx context.Context,
	item *Item,
	r *domain.PricingResult,
	obs []domain.SourceObservation,
) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := pgUpsertItem(ctx, tx, item); err != nil {
			return err
		}
		if err := pgInsertObservations(ctx, tx, r.ProductKey, obs); err != nil {
			return err
		}
		return pgInsertResult(ctx, tx, r)
	})
}

// ListObservations returns the most recent observations for a product key.
func (s *PostgresStore) ListObservations(
	ctx context.Context,
	productKey string,
	limit int,
) ([]domain.SourceObservation, error) {
	if limit <= 0 {
		limit = defaultObservationLimit
	}

	rows, err := s.pool.Query(ctx, queryListObservations, productKey, limit)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer rows.Close()

	var out []domain.SourceObservation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating observations: %w", err)
	}
	return out, nil
}

// scannable abstracts pgx.Row, pgx.Rows and *sql.Row(s) for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanResult(row scannable, r *domain.PricingResult) error {
	return row.Scan(
		&r.ID, &r.ProductKey, &r.RawName, &r.Manufacturer, &r.PartNumber,
		&r.Mode, &r.Outcome, &r.BasePrice, &r.Condition, &r.Multiplier, &r.FinalPrice,
		&r.Confidence, &r.Sources, &r.Rejected, &r.MatchedTitle, &r.MatchedSource, &r.PricedAt,
	)
}

func scanObservation(row scannable) (domain.SourceObservation, error) {
	var (
		o     domain.SourceObservation
		price decimal.NullDecimal
	)
	if err := row.Scan(
		&o.SourceID, &o.Title, &price, &o.Manufacturer, &o.PartNumber,
		&o.PackQuantity, &o.URL, &o.Description,
	); err != nil {
		return o, err
	}
	if price.Valid {
		o.Price = &price.Decimal
	}
	return o, nil
}

func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}
