// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"time"

	"agrimarket/model"
	"agrimarket/util/database"
)

// ViewRow is one booking joined with its listing and the other party, as seen by one profile.
type ViewRow struct {
	ID              string              `json:"id"`
	Kind            model.ListingKind   `json:"type"`
	Party           model.BookingParty  `json:"role"`
	FarmerID        string              `json:"farmer_id"`
	ProviderID      string              `json:"provider_id"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	Units           int                 `json:"-"`
	TotalAmount     float64             `json:"total_amount"`
	Status          model.BookingStatus `json:"status"`
	Notes           *string             `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	ListingTitle    string              `json:"listing_title"`
	ListingLocation string              `json:"listing_location"`
	OtherPartyName  string              `json:"other_party_name"`
}

type Repo interface {
	// Guarded inserts: lock the listing, re-check availability, reject overlaps.
	InsertLabor(ctx context.Context, b *model.LaborBooking) error
	InsertTractor(ctx context.Context, b *model.TractorBooking) error

	LaborByID(ctx context.Context, id string) (*model.LaborBooking, error)
	TractorByID(ctx context.Context, id string) (*model.TractorBooking, error)

	// Status updates only apply while the row still holds `from`; ok is false otherwise.
	UpdateLaborStatus(ctx context.Context, id string, from, to model.BookingStatus) (ok bool, err error)
	UpdateTractorStatus(ctx context.Context, id string, from, to model.BookingStatus) (ok bool, err error)

	// History
	ListLaborFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error)
	ListTractorFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }
