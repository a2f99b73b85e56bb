package bookingsvc

import (
	"context"
	"testing"

	"agrimarket/model"
	"agrimarket/util/errs"
	"agrimarket/util/notify"

	"github.com/stretchr/testify/require"
)

func TestCheckTransition_Matrix(t *testing.T) {
	statuses := []model.BookingStatus{model.BookingPending, model.BookingConfirmed, model.BookingCompleted, model.BookingCancelled}
	parties := []model.BookingParty{model.PartyRequester, model.PartyProvider}

	type edge struct {
		from, to model.BookingStatus
	}
	legal := map[edge]model.BookingParty{
		{model.BookingPending, model.BookingConfirmed}:   model.PartyProvider,
		{model.BookingPending, model.BookingCancelled}:   model.PartyProvider,
		{model.BookingConfirmed, model.BookingCompleted}: model.PartyRequester,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			for _, p := range parties {
				err := CheckTransition(from, to, p)
				want, ok := legal[edge{from, to}]
				switch {
				case !ok:
					require.Equal(t, errs.ErrInvalidTransition, errs.Code(err), "%s->%s by %s", from, to, p)
				case want == p:
					require.NoError(t, err, "%s->%s by %s", from, to, p)
				default:
					require.Equal(t, errs.ErrForbidden, errs.Code(err), "%s->%s by %s", from, to, p)
				}
			}
		}
	}
}

func TestCheckTransition_TerminalStates(t *testing.T) {
	for _, from := range []model.BookingStatus{model.BookingCompleted, model.BookingCancelled} {
		require.True(t, from.Terminal())
		for _, to := range []model.BookingStatus{model.BookingPending, model.BookingConfirmed, model.BookingCompleted, model.BookingCancelled} {
			err := CheckTransition(from, to, model.PartyProvider)
			require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))
			require.Contains(t, err.Error(), string(from))
			require.Contains(t, err.Error(), string(to))
		}
	}
}

func TestPartyOf(t *testing.T) {
	p, ok := PartyOf("f", "f", "p")
	require.True(t, ok)
	require.Equal(t, model.PartyRequester, p)

	p, ok = PartyOf("p", "f", "p")
	require.True(t, ok)
	require.Equal(t, model.PartyProvider, p)

	_, ok = PartyOf("x", "f", "p")
	require.False(t, ok)
	_, ok = PartyOf("", "", "p")
	require.False(t, ok)
}

func laborBookingIn(status model.BookingStatus) *mockRepo {
	current := status
	return &mockRepo{
		laborByIDFn: func(ctx context.Context, id string) (*model.LaborBooking, error) {
			if id != "bk-1" {
				return nil, errs.NotFound("labor booking")
			}
			return &model.LaborBooking{ID: id, FarmerID: farmer.ID, LaborerID: laborer.ID, Status: current}, nil
		},
		updLaborFn: func(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
			if current != from {
				return false, nil
			}
			current = to
			return true, nil
		},
	}
}

func TestTransition_ProviderConfirms(t *testing.T) {
	pub := &pubMock{}
	svc := newEngine(laborBookingIn(model.BookingPending), pub)

	res, err := svc.Transition(context.Background(), model.KindLabor, "bk-1", laborer, model.BookingConfirmed)
	require.NoError(t, err)
	require.Equal(t, &Transitioned{ID: "bk-1", Kind: model.KindLabor, From: model.BookingPending, Status: model.BookingConfirmed}, res)

	require.Len(t, pub.events, 1)
	require.Equal(t, notify.BookingStatusChanged, pub.events[0].Type)
	require.Equal(t, []string{farmer.ID}, pub.events[0].Recipients)
}

func TestTransition_RequesterCannotConfirmOrCancel(t *testing.T) {
	svc := newEngine(laborBookingIn(model.BookingPending), &pubMock{})
	ctx := context.Background()

	_, err := svc.Transition(ctx, model.KindLabor, "bk-1", farmer, model.BookingConfirmed)
	require.Equal(t, errs.ErrForbidden, errs.Code(err))
	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", farmer, model.BookingCancelled)
	require.Equal(t, errs.ErrForbidden, errs.Code(err))
}

func TestTransition_FullLifecycle(t *testing.T) {
	svc := newEngine(laborBookingIn(model.BookingPending), &pubMock{})
	ctx := context.Background()

	_, err := svc.Transition(ctx, model.KindLabor, "bk-1", laborer, model.BookingConfirmed)
	require.NoError(t, err)

	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", laborer, model.BookingCompleted)
	require.Equal(t, errs.ErrForbidden, errs.Code(err))
	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", laborer, model.BookingCancelled)
	require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))

	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", farmer, model.BookingCompleted)
	require.NoError(t, err)

	for _, to := range []model.BookingStatus{model.BookingPending, model.BookingConfirmed, model.BookingCancelled, model.BookingCompleted} {
		_, err = svc.Transition(ctx, model.KindLabor, "bk-1", farmer, to)
		require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))
		_, err = svc.Transition(ctx, model.KindLabor, "bk-1", laborer, to)
		require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))
	}
}

func TestTransition_CancelledIsFinal(t *testing.T) {
	svc := newEngine(laborBookingIn(model.BookingPending), &pubMock{})
	ctx := context.Background()

	_, err := svc.Transition(ctx, model.KindLabor, "bk-1", laborer, model.BookingCancelled)
	require.NoError(t, err)
	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", laborer, model.BookingConfirmed)
	require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))
}

func TestTransition_OutsiderForbidden(t *testing.T) {
	svc := newEngine(laborBookingIn(model.BookingPending), &pubMock{})
	_, err := svc.Transition(context.Background(), model.KindLabor, "bk-1", outside, model.BookingCancelled)
	require.Equal(t, errs.ErrForbidden, errs.Code(err))
	_, err = svc.Transition(context.Background(), model.KindLabor, "bk-1", nil, model.BookingCancelled)
	require.Equal(t, errs.ErrForbidden, errs.Code(err))
}

func TestTransition_BadInput(t *testing.T) {
	svc := newEngine(laborBookingIn(model.BookingPending), &pubMock{})
	ctx := context.Background()

	_, err := svc.Transition(ctx, model.KindLabor, "missing", laborer, model.BookingConfirmed)
	require.Equal(t, errs.ErrNotFound, errs.Code(err))
	_, err = svc.Transition(ctx, model.KindLabor, "bk-1", laborer, "archived")
	require.Equal(t, errs.ErrValidation, errs.Code(err))
	_, err = svc.Transition(ctx, "combine", "bk-1", laborer, model.BookingConfirmed)
	require.Equal(t, errs.ErrValidation, errs.Code(err))
}

func TestTransition_LostRace(t *testing.T) {
	pub := &pubMock{}
	svc := newEngine(&mockRepo{
		tractorByIDFn: func(ctx context.Context, id string) (*model.TractorBooking, error) {
			return &model.TractorBooking{ID: id, FarmerID: farmer.ID, OwnerID: owner.ID, Status: model.BookingPending}, nil
		},
		updTractorFn: func(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
			return false, nil
		},
	}, pub)

	_, err := svc.Transition(context.Background(), model.KindTractor, "bk-9", owner, model.BookingConfirmed)
	require.Equal(t, errs.ErrInvalidTransition, errs.Code(err))
	require.Empty(t, pub.events)
}
