package chitty_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/chitty"
)

var userCols = []string{"id", "login_id", "password_hash", "mobile_number", "role_type",
	"state_id", "district_id", "agency_id", "fcm_token", "device_type", "img_url",
	"is_active", "last_login_at", "created_at", "updated_at"}

var schemeCols = []string{"id", "chitty_code", "chitty_name", "level", "state_id", "district_id",
	"status", "chitty_amount", "duration_months", "lot_time", "created_at", "updated_at"}

func testContext(t *testing.T, mock pgxmock.PgxPoolIface, userID int64) (*gin.Context, *httptest.ResponseRecorder, *chitty.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(auth.ContextUserID, userID)

	handler := chitty.NewHandler(chitty.NewRepository(mock), auth.NewRepository(mock), zap.NewNop())
	return c, w, handler
}

func TestGetByIDForbiddenOutsideDistrict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	// DISTRICT actor from district 5.
	mock.ExpectQuery(`SELECT .+ FROM user_accounts WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			int64(3), "district-admin", "hash", "9900000000", "DISTRICT",
			(*int64)(nil), ptr(5), (*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			true, (*time.Time)(nil), now, now))
	// DISTRICT-level scheme owned by district 9.
	mock.ExpectQuery(`SELECT .+ FROM chitty_schemes WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(schemeCols).AddRow(
			int64(7), "CHT-9-01", "District Gold", "DISTRICT", (*int64)(nil), ptr(9),
			"OPEN", int64(100000), 20, now, now, now))

	c, w, handler := testContext(t, mock, 3)
	c.Request = httptest.NewRequest(http.MethodGet, "/chitty/7", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollRequiresLinkedAgency(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	// AGENCY role account with no agency reference.
	mock.ExpectQuery(`SELECT .+ FROM user_accounts WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(
			int64(8), "agency-user", "hash", "9911111111", "AGENCY",
			(*int64)(nil), (*int64)(nil), (*int64)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
			true, (*time.Time)(nil), now, now))

	c, w, handler := testContext(t, mock, 8)
	c.Request = httptest.NewRequest(http.MethodPost, "/chitty/enroll",
		strings.NewReader(`{"chitty_id": 7, "number_of_req": 2}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Enroll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
