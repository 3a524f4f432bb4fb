package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

var userCols = []string{"id", "login_id", "password_hash", "mobile_number", "role_type",
	"state_id", "district_id", "agency_id", "fcm_token", "device_type", "img_url",
	"is_active", "last_login_at", "created_at", "updated_at"}

func ptr(v int64) *int64 { return &v }

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO user_accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "user_accounts_login_id_key"})

	repo := auth.NewRepository(mock)
	user := &models.UserAccount{
		LoginID:      "duplicate",
		PasswordHash: "hash",
		MobileNumber: "9900000000",
		RoleType:     models.RoleAgency,
		AgencyID:     ptr(40),
	}
	err = repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByLoginIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM user_accounts WHERE login_id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := auth.NewRepository(mock)
	_, err = repo.GetByLoginID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveActorResolvesAgencyDistrict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM user_accounts WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			int64(8), "agency-user", "hash", "9911111111", "AGENCY",
			(*int64)(nil), (*int64)(nil), ptr(40), (*string)(nil), (*string)(nil), (*string)(nil),
			true, (*time.Time)(nil), now, now))
	mock.ExpectQuery(`SELECT district_id FROM agency_members WHERE id = \$1`).
		WithArgs(int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"district_id"}).AddRow(int64(5)))

	repo := auth.NewRepository(mock)
	actor, err := repo.ResolveActor(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgency, actor.Role)
	require.NotNil(t, actor.AgencyID)
	assert.Equal(t, int64(40), *actor.AgencyID)
	require.NotNil(t, actor.DistrictID)
	assert.Equal(t, int64(5), *actor.DistrictID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateImageURLNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE user_accounts SET img_url`).
		WithArgs("https://example.com/img.png", int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := auth.NewRepository(mock)
	err = repo.UpdateImageURL(context.Background(), 99, "https://example.com/img.png")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}
