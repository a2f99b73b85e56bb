package listingrepo

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/database"
)

type Repo interface {
	// Labor
	InsertLabor(ctx context.Context, l *model.LaborListing) error
	ListAvailableLabor(ctx context.Context) ([]model.LaborListing, error)
	LaborByOwner(ctx context.Context, ownerID string) ([]model.LaborListing, error)
	LaborByID(ctx context.Context, id string) (*model.LaborListing, error)
	SetLaborAvailability(ctx context.Context, id string, status model.LaborAvailability) error
	DeleteLabor(ctx context.Context, id string) error

	// Tractors
	InsertTractor(ctx context.Context, t *model.TractorListing) error
	ListAvailableTractors(ctx context.Context) ([]model.TractorListing, error)
	TractorsByOwner(ctx context.Context, ownerID string) ([]model.TractorListing, error)
	TractorByID(ctx context.Context, id string) (*model.TractorListing, error)
	SetTractorAvailability(ctx context.Context, id string, status model.TractorAvailability) error
	DeleteTractor(ctx context.Context, id string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }
