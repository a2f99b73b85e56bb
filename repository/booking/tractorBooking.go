package bookingrepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"
	"agrimarket/util/errs"
)

func (r *repo) InsertTractor(ctx context.Context, b *model.TractorBooking) (err error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var status string
	err = tx.QueryRow(ctx, `
		SELECT availability_status
		FROM tractor_listings
		WHERE id = $1
		FOR UPDATE`, b.TractorListingID).Scan(&status)
	if err != nil {
		return database.MapErr(err, "tractor listing")
	}
	if model.TractorAvailability(status) != model.TractorAvailable {
		return errs.Conflict("tractor listing is %s", status)
	}

	// Half-open ranges: back-to-back rentals are allowed.
	var clash bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tractor_bookings
			WHERE tractor_listing_id = $1
			AND status IN ('pending', 'confirmed')
			AND start_date < $3
			AND end_date > $2
		)`, b.TractorListingID, b.StartDate, b.EndDate).Scan(&clash)
	if err != nil {
		return err
	}
	if clash {
		return errs.Conflict("tractor listing already booked for an overlapping period")
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tractor_bookings (tractor_listing_id, farmer_id, owner_id, start_date, end_date,
			total_hours, total_amount, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id::text, created_at, updated_at`,
		b.TractorListingID, b.FarmerID, b.OwnerID, b.StartDate, b.EndDate,
		b.TotalHours, b.TotalAmount, b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return database.MapErr(err, "tractor booking")
	}
	return tx.Commit(ctx)
}

func (r *repo) TractorByID(ctx context.Context, id string) (*model.TractorBooking, error) {
	b := &model.TractorBooking{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id::text, tractor_listing_id::text, farmer_id, owner_id, start_date, end_date,
			total_hours, total_amount::float8, status, notes, created_at, updated_at
		FROM tractor_bookings
		WHERE id = $1`, id).Scan(
		&b.ID, &b.TractorListingID, &b.FarmerID, &b.OwnerID, &b.StartDate, &b.EndDate,
		&b.TotalHours, &b.TotalAmount, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapErr(err, "tractor booking")
	}
	return b, nil
}

func (r *repo) UpdateTractorStatus(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE tractor_bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1
		AND status = $2`, id, from, to)
	if err != nil {
		return false, database.MapErr(err, "tractor booking")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repo) ListTractorFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error) {
	q := `
		SELECT b.id::text, b.farmer_id, b.owner_id, b.start_date, b.end_date, b.total_hours,
			b.total_amount::float8, b.status, b.notes, b.created_at,
			COALESCE(l.title, 'N/A'), COALESCE(l.location, 'N/A'), COALESCE(p.full_name, 'N/A')
		FROM tractor_bookings b
		LEFT JOIN tractor_listings l ON l.id = b.tractor_listing_id
		LEFT JOIN profiles p ON p.id = b.owner_id
		WHERE b.farmer_id = $1
		ORDER BY b.created_at DESC, b.id DESC`
	if party == model.PartyProvider {
		q = `
		SELECT b.id::text, b.farmer_id, b.owner_id, b.start_date, b.end_date, b.total_hours,
			b.total_amount::float8, b.status, b.notes, b.created_at,
			COALESCE(l.title, 'N/A'), COALESCE(l.location, 'N/A'), COALESCE(p.full_name, 'N/A')
		FROM tractor_bookings b
		LEFT JOIN tractor_listings l ON l.id = b.tractor_listing_id
		LEFT JOIN profiles p ON p.id = b.farmer_id
		WHERE b.owner_id = $1
		ORDER BY b.created_at DESC, b.id DESC`
	}
	return r.queryViews(ctx, q, model.KindTractor, party, profileID)
}
