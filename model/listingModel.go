// model/listing.go
package model

import "time"

type LaborAvailability string

const (
	LaborAvailable   LaborAvailability = "available"
	LaborBusy        LaborAvailability = "busy"
	LaborUnavailable LaborAvailability = "unavailable"
)

func (s LaborAvailability) Valid() bool {
	switch s {
	case LaborAvailable, LaborBusy, LaborUnavailable:
		return true
	}
	return false
}

type TractorAvailability string

const (
	TractorAvailable   TractorAvailability = "available"
	TractorRented      TractorAvailability = "rented"
	TractorMaintenance TractorAvailability = "maintenance"
)

func (s TractorAvailability) Valid() bool {
	switch s {
	case TractorAvailable, TractorRented, TractorMaintenance:
		return true
	}
	return false
}

type LaborListing struct {
	ID                 string            `json:"id"`
	UserID             string            `json:"user_id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	Skills             []string          `json:"skills"`
	DailyRate          float64           `json:"daily_rate"`
	AvailabilityStatus LaborAvailability `json:"availability_status"`
	ExperienceYears    int               `json:"experience_years"`
	Location           string            `json:"location"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type TractorListing struct {
	ID                 string              `json:"id"`
	OwnerID            string              `json:"owner_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	TractorModel       string              `json:"tractor_model"`
	Horsepower         *int                `json:"horsepower,omitempty"`
	Year               *int                `json:"year,omitempty"`
	HourlyRate         float64             `json:"hourly_rate"`
	DailyRate          float64             `json:"daily_rate"`
	AvailabilityStatus TractorAvailability `json:"availability_status"`
	Location           string              `json:"location"`
	ImageURL           *string             `json:"image_url,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
