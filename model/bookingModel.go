// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave this status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type ListingKind string

const (
	KindLabor   ListingKind = "labor"
	KindTractor ListingKind = "tractor"
)

func (k ListingKind) Valid() bool { return k == KindLabor || k == KindTractor }

type LaborBooking struct {
	ID             string        `json:"id"`
	LaborListingID *string       `json:"labor_listing_id"`
	FarmerID       string        `json:"farmer_id"`
	LaborerID      string        `json:"laborer_id"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	TotalDays      int           `json:"total_days"`
	TotalAmount    float64       `json:"total_amount"`
	Status         BookingStatus `json:"status"`
	Notes          *string       `json:"notes,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type TractorBooking struct {
	ID               string        `json:"id"`
	TractorListingID *string       `json:"tractor_listing_id"`
	FarmerID         string        `json:"farmer_id"`
	OwnerID          string        `json:"owner_id"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	TotalHours       int           `json:"total_hours"`
	TotalAmount      float64       `json:"total_amount"`
	Status           BookingStatus `json:"status"`
	Notes            *string       `json:"notes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// BookingParty is the side of a booking an actor stands on.
type BookingParty string

const (
	PartyRequester BookingParty = "requester"
	PartyProvider  BookingParty = "provider"
)
