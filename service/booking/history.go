package bookingsvc

import (
	"context"
	"fmt"
	"sort"

	"agrimarket/model"
	bookingrepo "agrimarket/repository/booking"
	"agrimarket/util/errs"
)

type ViewRow = bookingrepo.ViewRow

// View is a dashboard row: the booking, a readable duration and what the viewer may do next.
type View struct {
	ViewRow
	Duration string `json:"duration"`
	Actions
}

func (s *service) MyBookings(ctx context.Context, actor *model.Profile, status model.BookingStatus) ([]View, error) {
	if actor == nil {
		return nil, errs.Forbidden("profile required")
	}
	if status != "" && !status.Valid() {
		return nil, errs.Validation("invalid status %q", status)
	}

	var rows []ViewRow
	switch actor.Role {
	case model.RoleFarmer:
		labor, err := s.r.ListLaborFor(ctx, actor.ID, model.PartyRequester)
		if err != nil {
			return nil, err
		}
		tractor, err := s.r.ListTractorFor(ctx, actor.ID, model.PartyRequester)
		if err != nil {
			return nil, err
		}
		rows = append(labor, tractor...)
	case model.RoleLaborer:
		labor, err := s.r.ListLaborFor(ctx, actor.ID, model.PartyProvider)
		if err != nil {
			return nil, err
		}
		rows = labor
	case model.RoleTractorOwner:
		tractor, err := s.r.ListTractorFor(ctx, actor.ID, model.PartyProvider)
		if err != nil {
			return nil, err
		}
		rows = tractor
	}

	out := make([]View, 0, len(rows))
	for _, r := range rows {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, View{
			ViewRow:  r,
			Duration: durationText(r.Kind, r.Units),
			Actions:  actionsFor(r.Status, r.Party),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func durationText(kind model.ListingKind, n int) string {
	unit := "day"
	if kind == model.KindTractor {
		unit = "hour"
	}
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
