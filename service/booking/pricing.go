package bookingsvc

import (
	"math"
	"time"

	"agrimarket/util/errs"
)

type LaborPrice struct {
	Days   int     `json:"total_days"`
	Amount float64 `json:"total_amount"`
}

type TractorPrice struct {
	Hours  int     `json:"total_hours"`
	Amount float64 `json:"total_amount"`
}

// PriceLabor charges one daily rate per calendar day, both ends inclusive.
// Time of day and zone are ignored.
func PriceLabor(dailyRate float64, start, end time.Time) (LaborPrice, error) {
	if dailyRate <= 0 {
		return LaborPrice{}, errs.Validation("daily_rate must be a positive number")
	}
	s, e := civilDate(start), civilDate(end)
	if e.Before(s) {
		return LaborPrice{}, errs.Validation("end before start")
	}
	days := int(e.Sub(s).Hours()/24) + 1
	return LaborPrice{Days: days, Amount: roundCents(float64(days) * dailyRate)}, nil
}

// PriceTractor charges whole hours, rounding any remainder up. An empty range bills one hour.
func PriceTractor(hourlyRate float64, start, end time.Time) (TractorPrice, error) {
	if hourlyRate <= 0 {
		return TractorPrice{}, errs.Validation("hourly_rate must be a positive number")
	}
	if end.Before(start) {
		return TractorPrice{}, errs.Validation("end before start")
	}
	hours := int(math.Ceil(end.Sub(start).Hours()))
	if hours < 1 {
		hours = 1
	}
	return TractorPrice{Hours: hours, Amount: roundCents(float64(hours) * hourlyRate)}, nil
}

// civilDate drops clock and zone, keeping the wall-clock date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func roundCents(v float64) float64 { return math.Round(v*100) / 100 }
