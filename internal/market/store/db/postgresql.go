package storedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xw1nchester/dealscan-backend/internal/logging"
	"github.com/xw1nchester/dealscan-backend/internal/market/store"
	"go.uber.org/zap"
)

const locationColumns = `
	id, retailer, store_number, name, address, city, state, zip_code,
	phone, latitude, longitude, store_hours, is_active
`

type repository struct {
	client *pgxpool.Pool
	logger *zap.Logger
}

func New(client *pgxpool.Pool, logger *zap.Logger) *repository {
	return &repository{
		client: client,
		logger: logger,
	}
}

func scanLocation(row pgx.Row) (*store.Location, error) {
	var (
		l     store.Location
		phone *string
	)

	if err := row.Scan(
		&l.ID,
		&l.Retailer,
		&l.StoreNumber,
		&l.Name,
		&l.Address,
		&l.City,
		&l.State,
		&l.ZipCode,
		&phone,
		&l.Latitude,
		&l.Longitude,
		&l.StoreHours,
		&l.IsActive,
	); err != nil {
		return nil, err
	}

	if phone != nil {
		l.Phone = *phone
	}

	return &l, nil
}

// GetActiveStores returns active stores ordered by id. An empty retailer matches every retailer.
func (r *repository) GetActiveStores(ctx context.Context, retailer string) ([]store.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM store_locations
		WHERE is_active AND ($1 = '' OR lower(retailer) = lower($1))
		ORDER BY id
	`

	logging.LogSQLQuery(r.logger, query)

	rows, err := r.client.Query(ctx, query, retailer)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]store.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		locations = append(locations, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error: %w", err)
	}

	return locations, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*store.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM store_locations
		WHERE id=$1
	`

	logging.LogSQLQuery(r.logger, query)

	l, err := scanLocation(r.client.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	return l, nil
}

// Upsert inserts the locations or overwrites existing rows with the same id.
func (r *repository) Upsert(ctx context.Context, locations []store.Location) (int, error) {
	query := `
		INSERT INTO store_locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			retailer = EXCLUDED.retailer,
			store_number = EXCLUDED.store_number,
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip_code = EXCLUDED.zip_code,
			phone = EXCLUDED.phone,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			store_hours = EXCLUDED.store_hours,
			is_active = EXCLUDED.is_active
	`

	logging.LogSQLQuery(r.logger, query)

	batch := &pgx.Batch{}
	for _, l := range locations {
		var phone *string
		if l.Phone != "" {
			phone = &l.Phone
		}

		batch.Queue(
			query,
			l.ID,
			l.Retailer,
			l.StoreNumber,
			l.Name,
			l.Address,
			l.City,
			l.State,
			l.ZipCode,
			phone,
			l.Latitude,
			l.Longitude,
			l.StoreHours,
			l.IsActive,
		)
	}

	results := r.client.SendBatch(ctx, batch)
	defer results.Close()

	for i := range locations {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("failed to upsert store %d: %w", locations[i].ID, err)
		}
	}

	return len(locations), nil
}

// Deactivate removes a store from every future candidate set.
func (r *repository) Deactivate(ctx context.Context, id int) error {
	query := `UPDATE store_locations SET is_active = false WHERE id=$1`

	logging.LogSQLQuery(r.logger, query)

	tag, err := r.client.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrStoreNotFound
	}

	return nil
}
