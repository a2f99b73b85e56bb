package bookingsvc

import (
	"context"

	"agrimarket/model"
	"agrimarket/util/errs"
	"agrimarket/util/notify"
)

// transitions lists every legal edge and the party allowed to take it.
var transitions = map[model.BookingStatus]map[model.BookingStatus]model.BookingParty{
	model.BookingPending: {
		model.BookingConfirmed: model.PartyProvider,
		model.BookingCancelled: model.PartyProvider,
	},
	model.BookingConfirmed: {
		model.BookingCompleted: model.PartyRequester,
	},
}

// Transitioned reports an applied status change.
type Transitioned struct {
	ID     string              `json:"id"`
	Kind   model.ListingKind   `json:"type"`
	From   model.BookingStatus `json:"from"`
	Status model.BookingStatus `json:"status"`
}

// PartyOf derives which side of a booking the actor is on; ok is false for outsiders.
func PartyOf(actorID, farmerID, providerID string) (model.BookingParty, bool) {
	switch {
	case actorID == "":
		return "", false
	case actorID == farmerID:
		return model.PartyRequester, true
	case actorID == providerID:
		return model.PartyProvider, true
	}
	return "", false
}

// CheckTransition validates from -> to for the given party.
func CheckTransition(from, to model.BookingStatus, party model.BookingParty) error {
	allowed, ok := transitions[from][to]
	if !ok {
		return errs.InvalidTransition(string(from), string(to))
	}
	if allowed != party {
		return errs.Forbidden("only the %s may move a booking from %s to %s", allowed, from, to)
	}
	return nil
}

// Actions are the UI flags for one booking as seen by one party.
type Actions struct {
	CanConfirm  bool `json:"can_confirm"`
	CanCancel   bool `json:"can_cancel"`
	CanComplete bool `json:"can_complete"`
}

func actionsFor(status model.BookingStatus, party model.BookingParty) Actions {
	can := func(to model.BookingStatus) bool { return CheckTransition(status, to, party) == nil }
	return Actions{
		CanConfirm:  can(model.BookingConfirmed),
		CanCancel:   can(model.BookingCancelled),
		CanComplete: can(model.BookingCompleted),
	}
}

func (s *service) Transition(ctx context.Context, kind model.ListingKind, id string, actor *model.Profile, target model.BookingStatus) (*Transitioned, error) {
	if actor == nil {
		return nil, errs.Forbidden("profile required")
	}
	if !target.Valid() {
		return nil, errs.Validation("invalid status %q", target)
	}

	var (
		from               model.BookingStatus
		farmerID, provider string
	)
	switch kind {
	case model.KindLabor:
		b, err := s.r.LaborByID(ctx, id)
		if err != nil {
			return nil, err
		}
		from, farmerID, provider = b.Status, b.FarmerID, b.LaborerID
	case model.KindTractor:
		b, err := s.r.TractorByID(ctx, id)
		if err != nil {
			return nil, err
		}
		from, farmerID, provider = b.Status, b.FarmerID, b.OwnerID
	default:
		return nil, errs.Validation("invalid booking type %q", kind)
	}

	party, ok := PartyOf(actor.ID, farmerID, provider)
	if !ok {
		return nil, errs.Forbidden("not a party to this booking")
	}
	if err := CheckTransition(from, target, party); err != nil {
		return nil, err
	}

	var (
		applied bool
		err     error
	)
	if kind == model.KindLabor {
		applied, err = s.r.UpdateLaborStatus(ctx, id, from, target)
	} else {
		applied, err = s.r.UpdateTractorStatus(ctx, id, from, target)
	}
	if err != nil {
		return nil, err
	}
	if !applied {
		// someone else moved it first
		return nil, errs.InvalidTransition(string(from), string(target))
	}

	other := farmerID
	if party == model.PartyRequester {
		other = provider
	}
	notify.Emit(ctx, s.pub, s.log, notify.Event{
		Type: notify.BookingStatusChanged, Kind: string(kind), ID: id,
		Status: string(target), Recipients: []string{other},
	})
	s.log.Info("booking status changed", "kind", kind, "id", id, "from", from, "to", target, "actor", actor.ID)
	return &Transitioned{ID: id, Kind: kind, From: from, Status: target}, nil
}
