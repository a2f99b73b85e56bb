package bookingrepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"
	"agrimarket/util/errs"
)

func (r *repo) InsertLabor(ctx context.Context, b *model.LaborBooking) (err error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Serialise bookings per listing.
	var status string
	err = tx.QueryRow(ctx, `
		SELECT availability_status
		FROM labor_listings
		WHERE id = $1
		FOR UPDATE`, b.LaborListingID).Scan(&status)
	if err != nil {
		return database.MapErr(err, "labor listing")
	}
	if model.LaborAvailability(status) != model.LaborAvailable {
		return errs.Conflict("labor listing is %s", status)
	}

	var clash bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM labor_bookings
			WHERE labor_listing_id = $1
			AND status IN ('pending', 'confirmed')
			AND start_date <= $3
			AND end_date >= $2
		)`, b.LaborListingID, b.StartDate, b.EndDate).Scan(&clash)
	if err != nil {
		return err
	}
	if clash {
		return errs.Conflict("labor listing already booked for an overlapping period")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO labor_bookings (labor_listing_id, farmer_id, laborer_id, start_date, end_date,
			total_days, total_amount, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id::text, created_at, updated_at`,
		b.LaborListingID, b.FarmerID, b.LaborerID, b.StartDate, b.EndDate,
		b.TotalDays, b.TotalAmount, b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return database.MapErr(err, "labor booking")
	}
	return tx.Commit(ctx)
}

func (r *repo) LaborByID(ctx context.Context, id string) (*model.LaborBooking, error) {
	b := &model.LaborBooking{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id::text, labor_listing_id::text, farmer_id, laborer_id, start_date, end_date,
			total_days, total_amount::float8, status, notes, created_at, updated_at
		FROM labor_bookings
		WHERE id = $1`, id).Scan(
		&b.ID, &b.LaborListingID, &b.FarmerID, &b.LaborerID, &b.StartDate, &b.EndDate,
		&b.TotalDays, &b.TotalAmount, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapErr(err, "labor booking")
	}
	return b, nil
}

func (r *repo) UpdateLaborStatus(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE labor_bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1
		AND status = $2`, id, from, to)
	if err != nil {
		return false, database.MapErr(err, "labor booking")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repo) ListLaborFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error) {
	// requester sees the laborer's name, provider sees the farmer's.
	q := `
		SELECT b.id::text, b.farmer_id, b.laborer_id, b.start_date, b.end_date, b.total_days,
			b.total_amount::float8, b.status, b.notes, b.created_at,
			COALESCE(l.title, 'N/A'), COALESCE(l.location, 'N/A'), COALESCE(p.full_name, 'N/A')
		FROM labor_bookings b
		LEFT JOIN labor_listings l ON l.id = b.labor_listing_id
		LEFT JOIN profiles p ON p.id = b.laborer_id
		WHERE b.farmer_id = $1
		ORDER BY b.created_at DESC, b.id DESC`
	if party == model.PartyProvider {
		q = `
		SELECT b.id::text, b.farmer_id, b.laborer_id, b.start_date, b.end_date, b.total_days,
			b.total_amount::float8, b.status, b.notes, b.created_at,
			COALESCE(l.title, 'N/A'), COALESCE(l.location, 'N/A'), COALESCE(p.full_name, 'N/A')
		FROM labor_bookings b
		LEFT JOIN labor_listings l ON l.id = b.labor_listing_id
		LEFT JOIN profiles p ON p.id = b.farmer_id
		WHERE b.laborer_id = $1
		ORDER BY b.created_at DESC, b.id DESC`
	}
	return r.queryViews(ctx, q, model.KindLabor, party, profileID)
}

func (r *repo) queryViews(ctx context.Context, q string, kind model.ListingKind, party model.BookingParty, args ...any) ([]ViewRow, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ViewRow{}
	for rows.Next() {
		v := ViewRow{Kind: kind, Party: party}
		if err := rows.Scan(
			&v.ID, &v.FarmerID, &v.ProviderID, &v.StartDate, &v.EndDate, &v.Units,
			&v.TotalAmount, &v.Status, &v.Notes, &v.CreatedAt,
			&v.ListingTitle, &v.ListingLocation, &v.OtherPartyName,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
