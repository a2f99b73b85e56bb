package bookingrepo_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"agrimarket/model"
	bookingrepo "agrimarket/repository/booking"
	listingrepo "agrimarket/repository/listing"
	profilerepo "agrimarket/repository/profile"
	"agrimarket/util/database"
	"agrimarket/util/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Runs against a real Postgres; set DATABASE_URL to enable.
type fixture struct {
	db       *database.DB
	bookings bookingrepo.Repo
	listings listingrepo.Repo
	farmer   *model.Profile
	laborer  *model.Profile
	owner    *model.Profile
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := database.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	profiles := profilerepo.New(db)
	newProfile := func(role model.Role) *model.Profile {
		id := uuid.NewString()
		rc := "RC-" + id[:8]
		p := &model.Profile{ID: id, Email: id + "@test.local", FullName: string(role) + " " + id[:4], Role: role}
		if role == model.RoleTractorOwner {
			p.RCNumber = &rc
		}
		require.NoError(t, profiles.Create(ctx, p))
		return p
	}

	f := &fixture{
		db:       db,
		bookings: bookingrepo.New(db),
		listings: listingrepo.New(db),
		farmer:   newProfile(model.RoleFarmer),
		laborer:  newProfile(model.RoleLaborer),
		owner:    newProfile(model.RoleTractorOwner),
	}
	t.Cleanup(func() {
		ids := []string{f.farmer.ID, f.laborer.ID, f.owner.ID}
		_, _ = db.Pool.Exec(ctx, `DELETE FROM labor_bookings WHERE farmer_id = ANY($1)`, ids)
		_, _ = db.Pool.Exec(ctx, `DELETE FROM tractor_bookings WHERE farmer_id = ANY($1)`, ids)
		_, _ = db.Pool.Exec(ctx, `DELETE FROM labor_listings WHERE user_id = ANY($1)`, ids)
		_, _ = db.Pool.Exec(ctx, `DELETE FROM tractor_listings WHERE owner_id = ANY($1)`, ids)
		_, _ = db.Pool.Exec(ctx, `DELETE FROM profiles WHERE id = ANY($1)`, ids)
	})
	return f
}

func (f *fixture) laborListing(t *testing.T) string {
	l := &model.LaborListing{UserID: f.laborer.ID, Title: "Harvest hand", Description: "d",
		Skills: []string{"harvest"}, DailyRate: 100, Location: "Pune"}
	require.NoError(t, f.listings.InsertLabor(context.Background(), l))
	return l.ID
}

func (f *fixture) tractorListing(t *testing.T) string {
	tr := &model.TractorListing{OwnerID: f.owner.ID, Title: "Tractor Rental", Description: "d",
		TractorModel: "5075E", HourlyRate: 50, DailyRate: 350, Location: "Pune"}
	require.NoError(t, f.listings.InsertTractor(context.Background(), tr))
	return tr.ID
}

func (f *fixture) bookLabor(listingID string, start, end time.Time) (*model.LaborBooking, error) {
	days := int(end.Sub(start).Hours()/24) + 1
	b := &model.LaborBooking{
		LaborListingID: &listingID, FarmerID: f.farmer.ID, LaborerID: f.laborer.ID,
		StartDate: start, EndDate: end, TotalDays: days, TotalAmount: float64(days) * 100,
		Status: model.BookingPending,
	}
	return b, f.bookings.InsertLabor(context.Background(), b)
}

func (f *fixture) bookTractor(listingID string, start, end time.Time) (*model.TractorBooking, error) {
	b := &model.TractorBooking{
		TractorListingID: &listingID, FarmerID: f.farmer.ID, OwnerID: f.owner.ID,
		StartDate: start, EndDate: end, TotalHours: 1, TotalAmount: 50,
		Status: model.BookingPending,
	}
	return b, f.bookings.InsertTractor(context.Background(), b)
}

func day(m time.Month, d int) time.Time { return time.Date(2030, m, d, 0, 0, 0, 0, time.UTC) }

func TestInsertLabor_OverlapIsInclusive(t *testing.T) {
	f := setup(t)
	id := f.laborListing(t)

	first, err := f.bookLabor(id, day(3, 1), day(3, 3))
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = f.bookLabor(id, day(3, 2), day(3, 4))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	// sharing only the last day still clashes
	_, err = f.bookLabor(id, day(3, 3), day(3, 5))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	_, err = f.bookLabor(id, day(2, 27), day(3, 1))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	_, err = f.bookLabor(id, day(3, 4), day(3, 5))
	require.NoError(t, err)
}

func TestInsertLabor_CancelledDoesNotBlock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.laborListing(t)

	first, err := f.bookLabor(id, day(4, 1), day(4, 2))
	require.NoError(t, err)
	ok, err := f.bookings.UpdateLaborStatus(ctx, first.ID, model.BookingPending, model.BookingCancelled)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.bookLabor(id, day(4, 1), day(4, 2))
	require.NoError(t, err)
}

func TestInsertTractor_BackToBackAllowed(t *testing.T) {
	f := setup(t)
	id := f.tractorListing(t)
	at := func(h, m int) time.Time { return time.Date(2030, 5, 1, h, m, 0, 0, time.UTC) }

	_, err := f.bookTractor(id, at(8, 0), at(10, 0))
	require.NoError(t, err)

	_, err = f.bookTractor(id, at(10, 0), at(12, 0))
	require.NoError(t, err)

	_, err = f.bookTractor(id, at(6, 0), at(8, 0))
	require.NoError(t, err)

	_, err = f.bookTractor(id, at(9, 30), at(10, 30))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	_, err = f.bookTractor(id, at(11, 59), at(13, 0))
	require.Equal(t, errs.ErrConflict, errs.Code(err))
}

func TestInsert_ListingNotAvailable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	laborID := f.laborListing(t)
	require.NoError(t, f.listings.SetLaborAvailability(ctx, laborID, model.LaborBusy))
	_, err := f.bookLabor(laborID, day(6, 1), day(6, 1))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	tractorID := f.tractorListing(t)
	require.NoError(t, f.listings.SetTractorAvailability(ctx, tractorID, model.TractorMaintenance))
	_, err = f.bookTractor(tractorID, day(6, 1), day(6, 1).Add(time.Hour))
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	var n int
	require.NoError(t, f.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM labor_bookings WHERE labor_listing_id = $1`, laborID).Scan(&n))
	require.Zero(t, n)
}

func TestInsert_UnknownListing(t *testing.T) {
	f := setup(t)
	_, err := f.bookLabor(uuid.NewString(), day(7, 1), day(7, 1))
	require.Equal(t, errs.ErrNotFound, errs.Code(err))
	_, err = f.bookTractor(uuid.NewString(), day(7, 1), day(7, 1).Add(time.Hour))
	require.Equal(t, errs.ErrNotFound, errs.Code(err))
}

func TestInsertLabor_ConcurrentSameRangeOneWins(t *testing.T) {
	f := setup(t)
	id := f.laborListing(t)

	const n = 5
	results := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.bookLabor(id, day(8, 1), day(8, 3))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range results {
		if err == nil {
			ok++
			continue
		}
		require.Equal(t, errs.ErrConflict, errs.Code(err))
	}
	require.Equal(t, 1, ok)
}

func TestUpdateStatus_ConditionalOnCurrent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	lb, err := f.bookLabor(f.laborListing(t), day(9, 1), day(9, 2))
	require.NoError(t, err)

	ok, err := f.bookings.UpdateLaborStatus(ctx, lb.ID, model.BookingPending, model.BookingConfirmed)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = f.bookings.UpdateLaborStatus(ctx, lb.ID, model.BookingPending, model.BookingCancelled)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := f.bookings.LaborByID(ctx, lb.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookingConfirmed, got.Status)

	tb, err := f.bookTractor(f.tractorListing(t), day(9, 1), day(9, 1).Add(time.Hour))
	require.NoError(t, err)
	ok, err = f.bookings.UpdateTractorStatus(ctx, tb.ID, model.BookingPending, model.BookingConfirmed)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.bookings.UpdateTractorStatus(ctx, tb.ID, model.BookingPending, model.BookingConfirmed)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListFor_JoinsOtherParty(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id := f.laborListing(t)
	_, err := f.bookLabor(id, day(10, 1), day(10, 3))
	require.NoError(t, err)

	mine, err := f.bookings.ListLaborFor(ctx, f.farmer.ID, model.PartyRequester)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Harvest hand", mine[0].ListingTitle)
	require.Equal(t, f.laborer.FullName, mine[0].OtherPartyName)
	require.Equal(t, 3, mine[0].Units)

	theirs, err := f.bookings.ListLaborFor(ctx, f.laborer.ID, model.PartyProvider)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	require.Equal(t, f.farmer.FullName, theirs[0].OtherPartyName)
}
