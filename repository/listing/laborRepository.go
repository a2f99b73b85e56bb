package listingrepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"

	"github.com/jackc/pgx/v5"
)

const laborCols = `id::text, user_id, title, description, skills, daily_rate::float8, availability_status,
	experience_years, location, created_at, updated_at`

func scanLabor(row pgx.Row) (model.LaborListing, error) {
	var l model.LaborListing
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.Skills, &l.DailyRate,
		&l.AvailabilityStatus, &l.ExperienceYears, &l.Location, &l.CreatedAt, &l.UpdatedAt)
	if l.Skills == nil {
		l.Skills = []string{}
	}
	return l, err
}

func (r *repo) InsertLabor(ctx context.Context, l *model.LaborListing) error {
	const q = `
INSERT INTO labor_listings (user_id, title, description, skills, daily_rate, experience_years, location)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id::text, availability_status, created_at, updated_at`
	err := r.db.Pool.QueryRow(ctx, q, l.UserID, l.Title, l.Description, l.Skills, l.DailyRate,
		l.ExperienceYears, l.Location).Scan(&l.ID, &l.AvailabilityStatus, &l.CreatedAt, &l.UpdatedAt)
	return database.MapErr(err, "labor listing")
}

func (r *repo) ListAvailableLabor(ctx context.Context) ([]model.LaborListing, error) {
	q := `SELECT ` + laborCols + `
FROM labor_listings
WHERE availability_status = 'available'
ORDER BY created_at DESC, id DESC`
	return r.queryLabor(ctx, q)
}

func (r *repo) LaborByOwner(ctx context.Context, ownerID string) ([]model.LaborListing, error) {
	q := `SELECT ` + laborCols + `
FROM labor_listings
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	return r.queryLabor(ctx, q, ownerID)
}

func (r *repo) queryLabor(ctx context.Context, q string, args ...any) ([]model.LaborListing, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.LaborListing{}
	for rows.Next() {
		l, err := scanLabor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repo) LaborByID(ctx context.Context, id string) (*model.LaborListing, error) {
	l, err := scanLabor(r.db.Pool.QueryRow(ctx, `SELECT `+laborCols+` FROM labor_listings WHERE id = $1`, id))
	if err != nil {
		return nil, database.MapErr(err, "labor listing")
	}
	return &l, nil
}

func (r *repo) SetLaborAvailability(ctx context.Context, id string, status model.LaborAvailability) error {
	tag, err := r.db.Pool.Exec(ctx, `
UPDATE labor_listings
SET availability_status = $2, updated_at = NOW()
WHERE id = $1`, id, status)
	if err != nil {
		return database.MapErr(err, "labor listing")
	}
	if tag.RowsAffected() == 0 {
		return database.MapErr(pgx.ErrNoRows, "labor listing")
	}
	return nil
}

func (r *repo) DeleteLabor(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM labor_listings WHERE id = $1`, id)
	if err != nil {
		return database.MapErr(err, "labor listing")
	}
	if tag.RowsAffected() == 0 {
		return database.MapErr(pgx.ErrNoRows, "labor listing")
	}
	return nil
}
