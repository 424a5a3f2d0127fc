package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// sqliteTime is a fixed-width UTC layout so stored timestamps sort as text.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

const (
	sqliteUpsertItem = `
		INSERT INTO items (
			id, raw_name, manufacturer_hint, barcode, condition_raw, is_reagent,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			raw_name = excluded.raw_name,
			condition_raw = excluded.condition_raw,
			is_reagent = excluded.is_reagent,
			updated_at = excluded.updated_at
		RETURNING created_at, updated_at`

	sqliteListItems = `
		SELECT id, raw_name, manufacturer_hint, barcode, condition_raw, is_reagent,
			created_at, updated_at
		FROM items
		ORDER BY created_at, id
		LIMIT ?`

	sqliteInsertResult = `
		INSERT INTO pricing_results (` + resultColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqliteGetLatestResult = `
		SELECT ` + resultColumns + `
		FROM pricing_results
		WHERE product_key = ?
		ORDER BY priced_at DESC
		LIMIT 1`

	sqliteInsertObservation = `
		INSERT INTO source_observations (
			product_key, source_id, title, price, manufacturer, part_number,
			pack_quantity, url, description, observed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sqliteListObservations = `
		SELECT source_id, title, price, manufacturer, part_number,
			pack_quantity, url, description
		FROM source_observations
		WHERE product_key = ?
		ORDER BY observed_at DESC, id
		LIMIT ?`
)

// sqlExecutor is satisfied by both *sql.DB and *sql.Tx.
type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store on a local SQLite file using the pure-Go
// modernc driver.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() {
	_ = s.db.Close() //nolint:errcheck // nothing to do on close failure
}

// Ping verifies the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return runSQLiteMigrations(ctx, s.db)
}

// UpsertItem inserts or updates an item keyed by its derived ID.
func (s *SQLiteStore) UpsertItem(ctx context.Context, item *Item) error {
	return s.upsertItem(ctx, s.db, item)
}

func (s *SQLiteStore) upsertItem(ctx context.Context, q sqlExecutor, item *Item) error {
	prepareItem(item)
	now := formatTime(s.now())

	var created, updated string
	if err := q.QueryRowContext(ctx, sqliteUpsertItem,
		item.ID, item.RawName, item.ManufacturerHint, item.Barcode,
		item.Condition, item.IsReagent, now, now,
	).Scan(&created, &updated); err != nil {
		return fmt.Errorf("upserting item: %w", err)
	}

	var err error
	if item.CreatedAt, err = parseTime(created); err != nil {
		return err
	}
	if item.UpdatedAt, err = parseTime(updated); err != nil {
		return err
	}
	return nil
}

// ListItems returns stored items oldest first. A limit of zero or less
// returns every item.
func (s *SQLiteStore) ListItems(ctx context.Context, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, sqliteListItems, limit)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it               Item
			created, updated string
		)
		if err := rows.Scan(
			&it.ID, &it.RawName, &it.ManufacturerHint, &it.Barcode,
			&it.Condition, &it.IsReagent, &created, &updated,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if it.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if it.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// SaveResult records a pricing result.
func (s *SQLiteStore) SaveResult(ctx context.Context, r *domain.PricingResult) error {
	return s.insertResult(ctx, s.db, r)
}

func (s *SQLiteStore) insertResult(ctx context.Context, q sqlExecutor, r *domain.PricingResult) error {
	prepareResult(r, s.now())
	if _, err := q.ExecContext(ctx, sqliteInsertResult,
		r.ID, r.ProductKey, r.RawName, r.Manufacturer, r.PartNumber,
		string(r.Mode), string(r.Outcome), r.BasePrice.StringFixed(2), string(r.Condition),
		r.Multiplier, r.FinalPrice.StringFixed(2),
		r.Confidence, r.Sources, r.Rejected, r.MatchedTitle, r.MatchedSource,
		formatTime(r.PricedAt),
	); err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// GetResult returns the newest result for a product key.
func (s *SQLiteStore) GetResult(
	ctx context.Context,
	productKey string,
) (*domain.PricingResult, error) {
	r, err := scanSQLiteResult(s.db.QueryRowContext(ctx, sqliteGetLatestResult, productKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("result %q: %w", productKey, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting result: %w", err)
	}
	return r, nil
}

// ListResults queries results with optional filters, returning the page and
// the total match count.
func (s *SQLiteStore) ListResults(
	ctx context.Context,
	q *ResultQuery,
) ([]domain.PricingResult, int, error) {
	if q == nil {
		q = &ResultQuery{}
	}
	dataSQL, countSQL, args := q.toSQL(sqliteDialect)

	var total int
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting results: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []domain.PricingResult
	for rows.Next() {
		r, err := scanSQLiteResult(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating results: %w", err)
	}
	return results, total, nil
}

// SaveObservations records the observations gathered for a product key in
// one transaction.
func (s *SQLiteStore) SaveObservations(
	ctx context.Context,
	productKey string,
	obs []domain.SourceObservation,
) error {
	if len(obs) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return s.insertObservations(ctx, tx, productKey, obs)
	})
}

func (s *SQLiteStore) insertObservations(
	ctx context.Context,
	q sqlExecutor,
	productKey string,
	obs []domain.SourceObservation,
) error {
	now := formatTime(s.now())
	for i := range obs {
		o := &obs[i]
		var price any
		if o.Price != nil {
			price = o.Price.String()
		}
		if _, err := q.ExecContext(ctx, sqliteInsertObservation,
			productKey, o.SourceID, o.Title, price, o.Manufacturer, o.PartNumber,
			o.PackQuantity, o.URL, o.Description, now,
		); err != nil {
			return fmt.Errorf("inserting observation: %w", err)
		}
	}
	return nil
}

// SavePricing writes the item, its observations and the result of one run
// in a single transaction.
func (s *SQLiteStore) SavePricing(
	ctx context.Context,
	item *Item,
	r *domain.PricingResult,
	obs []domain.SourceObservation,
) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.upsertItem(ctx, tx, item); err != nil {
			return err
		}
		if err := s.insertObservations(ctx, tx, r.ProductKey, obs); err != nil {
			return err
		}
		return s.insertResult(ctx, tx, r)
	})
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListObservations returns the most recent observations for a product key.
func (s *SQLiteStore) ListObservations(
	ctx context.Context,
	productKey string,
	limit int,
) ([]domain.SourceObservation, error) {
	if limit <= 0 {
		limit = defaultObservationLimit
	}

	rows, err := s.db.QueryContext(ctx, sqliteListObservations, productKey, limit)
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

func scanSQLiteResult(row scannable) (*domain.PricingResult, error) {
	var (
		r                 domain.PricingResult
		base, final, when string
	)
	if err := row.Scan(
		&r.ID, &r.ProductKey, &r.RawName, &r.Manufacturer, &r.PartNumber,
		&r.Mode, &r.Outcome, &base, &r.Condition, &r.Multiplier, &final,
		&r.Confidence, &r.Sources, &r.Rejected, &r.MatchedTitle, &r.MatchedSource, &when,
	); err != nil {
		return nil, err
	}

	var err error
	if r.BasePrice, err = decimal.NewFromString(base); err != nil {
		return nil, fmt.Errorf("parsing base_price %q: %w", base, err)
	}
	if r.FinalPrice, err = decimal.NewFromString(final); err != nil {
		return nil, fmt.Errorf("parsing final_price %q: %w", final, err)
	}
	if r.PricedAt, err = parseTime(when); err != nil {
		return nil, err
	}
	return &r, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTime, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
