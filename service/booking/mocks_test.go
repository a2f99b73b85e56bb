package bookingsvc

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/errs"
	"agrimarket/util/notify"
)

type mockRepo struct {
	insertLaborFn   func(ctx context.Context, b *model.LaborBooking) error
	insertTractorFn func(ctx context.Context, b *model.TractorBooking) error
	laborByIDFn     func(ctx context.Context, id string) (*model.LaborBooking, error)
	tractorByIDFn   func(ctx context.Context, id string) (*model.TractorBooking, error)
	updLaborFn      func(ctx context.Context, id string, from, to model.BookingStatus) (bool, error)
	updTractorFn    func(ctx context.Context, id string, from, to model.BookingStatus) (bool, error)
	listLaborFn     func(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error)
	listTractorFn   func(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) InsertLabor(ctx context.Context, b *model.LaborBooking) error {
	return m.insertLaborFn(ctx, b)
}
func (m *mockRepo) InsertTractor(ctx context.Context, b *model.TractorBooking) error {
	return m.insertTractorFn(ctx, b)
}
func (m *mockRepo) LaborByID(ctx context.Context, id string) (*model.LaborBooking, error) {
	if m.laborByIDFn == nil {
		return nil, errs.NotFound("labor booking")
	}
	return m.laborByIDFn(ctx, id)
}
func (m *mockRepo) TractorByID(ctx context.Context, id string) (*model.TractorBooking, error) {
	if m.tractorByIDFn == nil {
		return nil, errs.NotFound("tractor booking")
	}
	return m.tractorByIDFn(ctx, id)
}
func (m *mockRepo) UpdateLaborStatus(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
	return m.updLaborFn(ctx, id, from, to)
}
func (m *mockRepo) UpdateTractorStatus(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
	return m.updTractorFn(ctx, id, from, to)
}
func (m *mockRepo) ListLaborFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error) {
	if m.listLaborFn == nil {
		return []ViewRow{}, nil
	}
	return m.listLaborFn(ctx, profileID, party)
}
func (m *mockRepo) ListTractorFor(ctx context.Context, profileID string, party model.BookingParty) ([]ViewRow, error) {
	if m.listTractorFn == nil {
		return []ViewRow{}, nil
	}
	return m.listTractorFn(ctx, profileID, party)
}

type mockListings struct {
	labor   map[string]*model.LaborListing
	tractor map[string]*model.TractorListing
}

func (m *mockListings) LaborByID(_ context.Context, id string) (*model.LaborListing, error) {
	if l, ok := m.labor[id]; ok {
		return l, nil
	}
	return nil, errs.NotFound("labor listing")
}

func (m *mockListings) TractorByID(_ context.Context, id string) (*model.TractorListing, error) {
	if t, ok := m.tractor[id]; ok {
		return t, nil
	}
	return nil, errs.NotFound("tractor listing")
}

type pubMock struct{ events []notify.Event }

func (p *pubMock) Publish(_ context.Context, ev notify.Event) error {
	p.events = append(p.events, ev)
	return nil
}

var (
	farmer  = &model.Profile{ID: "farmer-1", FullName: "Asha", Role: model.RoleFarmer}
	laborer = &model.Profile{ID: "laborer-1", FullName: "Bala", Role: model.RoleLaborer}
	owner   = &model.Profile{ID: "owner-1", FullName: "Chandra", Role: model.RoleTractorOwner}
	outside = &model.Profile{ID: "farmer-2", FullName: "Devi", Role: model.RoleFarmer}
)
