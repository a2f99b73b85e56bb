package bookingsvc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agrimarket/model"
	bookingrepo "agrimarket/repository/booking"
	"agrimarket/util/errs"
	"agrimarket/util/notify"
)

type Repo = bookingrepo.Repo

// Listings is the slice of the listing store the engine reads from.
type Listings interface {
	LaborByID(ctx context.Context, id string) (*model.LaborListing, error)
	TractorByID(ctx context.Context, id string) (*model.TractorListing, error)
}

// Quote is a price preview; nothing is stored.
type Quote struct {
	ListingID   string            `json:"listing_id"`
	Kind        model.ListingKind `json:"type"`
	Units       int               `json:"units"`
	Unit        string            `json:"unit"`
	Rate        float64           `json:"rate"`
	TotalAmount float64           `json:"total_amount"`
}

type Service interface {
	QuoteLabor(ctx context.Context, listingID string, start, end time.Time) (*Quote, error)
	QuoteTractor(ctx context.Context, listingID string, start, end time.Time) (*Quote, error)

	// Create: priced snapshot, status pending. Listing availability is left alone.
	CreateLaborBooking(ctx context.Context, actor *model.Profile, listingID string, start, end time.Time, notes *string) (*model.LaborBooking, error)
	CreateTractorBooking(ctx context.Context, actor *model.Profile, listingID string, start, end time.Time, notes *string) (*model.TractorBooking, error)

	Transition(ctx context.Context, kind model.ListingKind, id string, actor *model.Profile, target model.BookingStatus) (*Transitioned, error)

	// MyBookings merges both booking kinds for the actor's side, newest first.
	MyBookings(ctx context.Context, actor *model.Profile, status model.BookingStatus) ([]View, error)
}

type service struct {
	r   Repo
	l   Listings
	pub notify.Publisher
	log *slog.Logger
	now func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now, used for the "start in the past" check.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func New(r Repo, l Listings, pub notify.Publisher, log *slog.Logger, opts ...Option) Service {
	s := &service{r: r, l: l, pub: pub, log: log, now: time.Now}
	if s.pub == nil {
		s.pub = notify.Noop{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ----- quotes -----

func (s *service) QuoteLabor(ctx context.Context, listingID string, start, end time.Time) (*Quote, error) {
	l, err := s.l.LaborByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	p, err := PriceLabor(l.DailyRate, start, end)
	if err != nil {
		return nil, err
	}
	return &Quote{ListingID: l.ID, Kind: model.KindLabor, Units: p.Days, Unit: "day", Rate: l.DailyRate, TotalAmount: p.Amount}, nil
}

func (s *service) QuoteTractor(ctx context.Context, listingID string, start, end time.Time) (*Quote, error) {
	t, err := s.l.TractorByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	p, err := PriceTractor(t.HourlyRate, start, end)
	if err != nil {
		return nil, err
	}
	return &Quote{ListingID: t.ID, Kind: model.KindTractor, Units: p.Hours, Unit: "hour", Rate: t.HourlyRate, TotalAmount: p.Amount}, nil
}

// ----- create -----

func (s *service) CreateLaborBooking(ctx context.Context, actor *model.Profile, listingID string, start, end time.Time, notes *string) (*model.LaborBooking, error) {
	if err := requireFarmer(actor); err != nil {
		return nil, err
	}
	l, err := s.l.LaborByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.AvailabilityStatus != model.LaborAvailable {
		return nil, errs.Conflict("labor listing is %s", l.AvailabilityStatus)
	}
	price, err := PriceLabor(l.DailyRate, start, end)
	if err != nil {
		return nil, err
	}
	if err := s.notInPast(start); err != nil {
		return nil, err
	}

	id := l.ID
	b := &model.LaborBooking{
		LaborListingID: &id,
		FarmerID:       actor.ID,
		LaborerID:      l.UserID,
		StartDate:      civilDate(start),
		EndDate:        civilDate(end),
		TotalDays:      price.Days,
		TotalAmount:    price.Amount,
		Status:         model.BookingPending,
		Notes:          cleanNotes(notes),
	}
	if err := s.r.InsertLabor(ctx, b); err != nil {
		return nil, err
	}

	notify.Emit(ctx, s.pub, s.log, notify.Event{
		Type: notify.BookingCreated, Kind: string(model.KindLabor), ID: b.ID,
		Status: string(b.Status), Recipients: []string{b.LaborerID},
	})
	s.log.Info("labor booking created", "id", b.ID, "listing", id, "farmer", actor.ID, "days", b.TotalDays)
	return b, nil
}

func (s *service) CreateTractorBooking(ctx context.Context, actor *model.Profile, listingID string, start, end time.Time, notes *string) (*model.TractorBooking, error) {
	if err := requireFarmer(actor); err != nil {
		return nil, err
	}
	t, err := s.l.TractorByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if t.AvailabilityStatus != model.TractorAvailable {
		return nil, errs.Conflict("tractor listing is %s", t.AvailabilityStatus)
	}
	price, err := PriceTractor(t.HourlyRate, start, end)
	if err != nil {
		return nil, err
	}
	if err := s.notInPast(start); err != nil {
		return nil, err
	}

	id := t.ID
	b := &model.TractorBooking{
		TractorListingID: &id,
		FarmerID:         actor.ID,
		OwnerID:          t.OwnerID,
		StartDate:        start.UTC(),
		EndDate:          end.UTC(),
		TotalHours:       price.Hours,
		TotalAmount:      price.Amount,
		Status:           model.BookingPending,
		Notes:            cleanNotes(notes),
	}
	if err := s.r.InsertTractor(ctx, b); err != nil {
		return nil, err
	}

	notify.Emit(ctx, s.pub, s.log, notify.Event{
		Type: notify.BookingCreated, Kind: string(model.KindTractor), ID: b.ID,
		Status: string(b.Status), Recipients: []string{b.OwnerID},
	})
	s.log.Info("tractor booking created", "id", b.ID, "listing", id, "farmer", actor.ID, "hours", b.TotalHours)
	return b, nil
}

func requireFarmer(actor *model.Profile) error {
	if actor == nil || actor.Role != model.RoleFarmer {
		return errs.Forbidden("only farmers can book")
	}
	return nil
}

// notInPast compares calendar days in the zone the start was given in,
// so a booking starting later today is fine.
func (s *service) notInPast(start time.Time) error {
	if civilDate(start).Before(civilDate(s.now().In(start.Location()))) {
		return errs.Validation("start date cannot be in the past")
	}
	return nil
}

func cleanNotes(n *string) *string {
	if n == nil {
		return nil
	}
	v := strings.TrimSpace(*n)
	if v == "" {
		return nil
	}
	return &v
}
