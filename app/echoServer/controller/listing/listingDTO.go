package listing

import (
	"encoding/json"
	"strings"
)

// SkillList accepts either ["a","b"] or "a, b".
type SkillList []string

func (s *SkillList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*s = list
		return nil
	}
	var csv string
	if err := json.Unmarshal(b, &csv); err != nil {
		return err
	}
	*s = strings.Split(csv, ",")
	return nil
}

type CreateLaborReq struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description" validate:"required"`
	Skills          SkillList `json:"skills"`
	DailyRate       float64   `json:"daily_rate" validate:"required,gt=0"`
	ExperienceYears int       `json:"experience_years" validate:"gte=0"`
	Location        string    `json:"location" validate:"required"`
}

type CreateTractorReq struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description" validate:"required"`
	TractorModel string  `json:"tractor_model" validate:"required"`
	Horsepower   *int    `json:"horsepower" validate:"omitempty,gte=0"`
	Year         *int    `json:"year" validate:"omitempty,gte=0"`
	HourlyRate   float64 `json:"hourly_rate" validate:"required,gt=0"`
	DailyRate    float64 `json:"daily_rate" validate:"required,gt=0"`
	Location     string  `json:"location" validate:"required"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url"`
}

type AvailabilityReq struct {
	Status string `json:"availability_status" validate:"required"`
}
