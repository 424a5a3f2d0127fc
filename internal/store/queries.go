package store

// SQL query constants organized by entity. PostgresStore methods reference
// these constants; the SQLite equivalents live in sqlite.go.

// Item queries.
const (
	queryUpsertItem = `
		INSERT INTO items (
			id, raw_name, manufacturer_hint, barcode, condition_raw, is_reagent,
			created_at, updated_at
		) VALUES (
			@id, @raw_name, @manufacturer_hint, @barcode, @condition_raw, @is_reagent,
			now(), now()
		)
		ON CONFLICT (id) DO UPDATE SET
			raw_name = EXCLUDED.raw_name,
			condition_raw = EXCLUDED.condition_raw,
			is_reagent = EXCLUDED.is_reagent,
			updated_at = now()
		RETURNING created_at, updated_at`

	queryListItems = `
		SELECT id, raw_name, manufacturer_hint, barcode, condition_raw, is_reagent,
			created_at, updated_at
		FROM items
		ORDER BY created_at, id
		LIMIT $1`

	queryListAllItems = `
		SELECT id, raw_name, manufacturer_hint, barcode, condition_raw, is_reagent,
			created_at, updated_at
		FROM items
		ORDER BY created_at, id`
)

// Result queries.
const (
	queryInsertResult = `
		INSERT INTO pricing_results (
			id, product_key, raw_name, manufacturer, part_number,
			mode, outcome, base_price, item_condition, multiplier, final_price,
			confidence, sources, rejected_outliers, matched_title, matched_source, priced_at
		) VALUES (
			@id, @product_key, @raw_name, @manufacturer, @part_number,
			@mode, @outcome, @base_price, @item_condition, @multiplier, @final_price,
			@confidence, @sources, @rejected_outliers, @matched_title, @matched_source, @priced_at
		)`

	queryGetLatestResult = `
		SELECT ` + resultColumns + `
		FROM pricing_results
		WHERE product_key = $1
		ORDER BY priced_at DESC
		LIMIT 1`
)

// Observation queries.
const (
	queryInsertObservation = `
		INSERT INTO source_observations (
			product_key, source_id, title, price, manufacturer, part_number,
			pack_quantity, url, description, observed_at
		) VALUES (
			@product_key, @source_id, @title, @price, @manufacturer, @part_number,
			@pack_quantity, @url, @description, @observed_at
		)`

	queryListObservations = `
		SELECT source_id, title, price, manufacturer, part_number,
			pack_quantity, url, description
		FROM source_observations
		WHERE product_key = $1
		ORDER BY observed_at DESC, id
		LIMIT $2`
)
