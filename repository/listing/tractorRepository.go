package listingrepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"

	"github.com/jackc/pgx/v5"
)

const tractorCols = `id::text, owner_id, title, description, tractor_model, horsepower, year,
	hourly_rate::float8, daily_rate::float8, availability_status, location, image_url, created_at, updated_at`

func scanTractor(row pgx.Row) (model.TractorListing, error) {
	var t model.TractorListing
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.TractorModel, &t.Horsepower, &t.Year,
		&t.HourlyRate, &t.DailyRate, &t.AvailabilityStatus, &t.Location, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repo) InsertTractor(ctx context.Context, t *model.TractorListing) error {
	const q = `
INSERT INTO tractor_listings (owner_id, title, description, tractor_model, horsepower, year,
	hourly_rate, daily_rate, location, image_url)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id::text, availability_status, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, t.OwnerID, t.Title, t.Description, t.TractorModel, t.Horsepower, t.Year,
		t.HourlyRate, t.DailyRate, t.Location, t.ImageURL).Scan(&t.ID, &t.AvailabilityStatus, &t.CreatedAt, &t.UpdatedAt)
	return database.MapErr(err, "tractor listing")
}

func (r *repo) ListAvailableTractors(ctx context.Context) ([]model.TractorListing, error) {
	q := `SELECT ` + tractorCols + `
FROM tractor_listings
WHERE availability_status = 'available'
ORDER BY created_at DESC, id DESC`
	return r.queryTractors(ctx, q)
}

func (r *repo) TractorsByOwner(ctx context.Context, ownerID string) ([]model.TractorListing, error) {
	q := `SELECT ` + tractorCols + `
FROM tractor_listings
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC`
	return r.queryTractors(ctx, q, ownerID)
}

func (r *repo) queryTractors(ctx context.Context, q string, args ...any) ([]model.TractorListing, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TractorListing{}
	for rows.Next() {
		t, err := scanTractor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) TractorByID(ctx context.Context, id string) (*model.TractorListing, error) {
	t, err := scanTractor(r.db.Pool.QueryRow(ctx, `SELECT `+tractorCols+` FROM tractor_listings WHERE id = $1`, id))
	if err != nil {
		return nil, database.MapErr(err, "tractor listing")
	}
	return &t, nil
}

func (r *repo) SetTractorAvailability(ctx context.Context, id string, status model.TractorAvailability) error {
	tag, err := r.db.Pool.Exec(ctx, `
UPDATE tractor_listings
SET availability_status = $2, updated_at = NOW()
WHERE id = $1`, id, status)
	if err != nil {
		return database.MapErr(err, "tractor listing")
	}
	if tag.RowsAffected() == 0 {
		return database.MapErr(pgx.ErrNoRows, "tractor listing")
	}
	return nil
}

func (r *repo) DeleteTractor(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tractor_listings WHERE id = $1`, id)
	if err != nil {
		return database.MapErr(err, "tractor listing")
	}
	if tag.RowsAffected() == 0 {
		return database.MapErr(pgx.ErrNoRows, "tractor listing")
	}
	return nil
}
