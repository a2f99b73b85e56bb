package database

import (
	"errors"
	"fmt"
	"testing"

	"agrimarket/util/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	require.NoError(t, MapErr(nil, "listing"))

	err := MapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows), "listing")
	require.Equal(t, errs.ErrNotFound, errs.Code(err))
	require.Equal(t, "listing not found", err.Error())

	err = MapErr(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "profiles_email_key"}, "profile")
	require.Equal(t, errs.ErrConflict, errs.Code(err))

	err = MapErr(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "labor_listings_daily_rate_check"}, "listing")
	require.Equal(t, errs.ErrValidation, errs.Code(err))

	err = MapErr(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "profile")
	require.Equal(t, errs.ErrNotFound, errs.Code(err))

	plain := errors.New("connection reset")
	require.Same(t, plain, MapErr(plain, "listing"))
}

func TestSchemaEmbedded(t *testing.T) {
	require.Contains(t, schema, "CREATE TABLE IF NOT EXISTS labor_bookings")
	require.Contains(t, schema, "CREATE TABLE IF NOT EXISTS tractor_bookings")
}
