package booking

import (
	"errors"
	"strings"
	"time"
)

type CreateLaborBookingReq struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes     *string `json:"notes" validate:"omitempty,max=1000"`
}

// Tractor bookings carry a time of day.
type CreateTractorBookingReq struct {
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Notes     *string `json:"notes" validate:"omitempty,max=1000"`
}

type StatusReq struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// parseTimestamp reads RFC3339 or a zone-less local form, which is taken as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timestampLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognised timestamp " + s)
}
