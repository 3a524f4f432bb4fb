package states_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/internal/states"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

func TestCreateDuplicateCodeConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO state_committees`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "state_committees_state_code_key"})

	repo := states.NewRepository(mock)
	err = repo.Create(context.Background(), &models.StateCommittee{
		StateCode: "KL",
		StateName: "Kerala",
		Status:    models.OrgActive,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsGeneratedFields(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO state_committees`).
		WithArgs("KL", "Kerala", (*string)(nil), (*string)(nil), (*string)(nil), models.OrgActive).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), now, now))

	repo := states.NewRepository(mock)
	s := &models.StateCommittee{StateCode: "KL", StateName: "Kerala", Status: models.OrgActive}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.Equal(t, int64(1), s.ID)
	assert.Equal(t, now, s.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}
