package chitty_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/chitty"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/apperr"
)

var bidCols = []string{"id", "auction_id", "chitty_id", "cycle_id", "month_index", "member_id",
	"bid_amount", "bid_time", "is_winning_bid"}

func TestEnrollAllocatesSequentialNumbers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM chitty_schemes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COALESCE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(10))
	mock.ExpectExec(`INSERT INTO chitty_members`).
		WithArgs(int64(7), int64(40), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), 11, 13).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectCommit()

	repo := chitty.NewRepository(mock)
	result, err := repo.Enroll(context.Background(), 7, 40, 3, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 11, result.StartNo)
	assert.Equal(t, 13, result.EndNo)
	assert.Equal(t, 3, result.Inserted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollFirstMemberStartsAtOne(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM chitty_schemes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery(`SELECT COALESCE`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO chitty_members`).
		WithArgs(int64(7), int64(40), (*string)(nil), (*time.Time)(nil), (*time.Time)(nil), 1, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := chitty.NewRepository(mock)
	result, err := repo.Enroll(context.Background(), 7, 40, 1, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StartNo)
	assert.Equal(t, 1, result.EndNo)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollRejectsNonPositiveCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := chitty.NewRepository(mock)
	for _, count := range []int{0, -2} {
		_, err := repo.Enroll(context.Background(), 7, 40, count, nil, nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	}
}

func TestEnrollMissingScheme(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM chitty_schemes WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	repo := chitty.NewRepository(mock)
	_, err = repo.Enroll(context.Background(), 99, 40, 2, nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadingBidsTieBreakByTime(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	earlier := time.Date(2026, 2, 5, 14, 1, 0, 0, time.UTC)
	later := time.Date(2026, 2, 5, 14, 3, 0, 0, time.UTC)

	rows := pgxmock.NewRows(bidCols).
		AddRow(int64(1), int64(100), int64(7), (*int64)(nil), 2, int64(12), int64(5000), earlier, false).
		AddRow(int64(2), int64(100), int64(7), (*int64)(nil), 2, int64(15), int64(5000), later, false)
	mock.ExpectQuery(`SELECT .+ FROM auction_bids`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := chitty.NewRepository(mock)
	amount, bids, err := repo.LeadingBids(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, amount)
	assert.Equal(t, int64(5000), *amount)
	require.Len(t, bids, 2)
	assert.Equal(t, int64(12), bids[0].MemberID)
	assert.Equal(t, int64(15), bids[1].MemberID)
	assert.True(t, bids[0].BidTime.Before(bids[1].BidTime))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadingBidsNoBids(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM auction_bids`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(bidCols))

	repo := chitty.NewRepository(mock)
	amount, bids, err := repo.LeadingBids(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, amount)
	assert.NotNil(t, bids)
	assert.Empty(t, bids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadingBidForCycleNone(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM auction_bids`).
		WithArgs(int64(7), int64(3)).
		WillReturnError(pgx.ErrNoRows)

	repo := chitty.NewRepository(mock)
	bid, err := repo.LeadingBidForCycle(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Nil(t, bid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByStatusAgencyRunningBucket(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "chitty_code", "chitty_name", "level", "state_id", "district_id",
		"status", "chitty_amount", "duration_months", "lot_time", "created_at", "updated_at"}).
		AddRow(int64(7), "CHT-01", "Gold 1L", "STATE", ptr(1), (*int64)(nil),
			"RUNNING", int64(100000), 20, now, now, now)

	// Status, then district, then the approved-membership agency filter.
	mock.ExpectQuery(`SELECT .+ FROM chitty_schemes c WHERE c.status = \$1 AND .+ EXISTS`).
		WithArgs(models.ChittyRunning, int64(5), int64(40)).
		WillReturnRows(rows)

	filter := chitty.SchemeFilter{AllStateLevel: true, DistrictID: ptr(5), MemberAgencyID: ptr(40)}
	repo := chitty.NewRepository(mock)
	list, err := repo.ListByStatus(context.Background(), models.ChittyRunning, filter)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByStatusOpenSkipsMembershipFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// OPEN bucket stays browsable: only status and district args, no agency.
	mock.ExpectQuery(`SELECT .+ FROM chitty_schemes c WHERE c.status = \$1`).
		WithArgs(models.ChittyOpen, int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "chitty_code", "chitty_name", "level", "state_id", "district_id",
			"status", "chitty_amount", "duration_months", "lot_time", "created_at", "updated_at"}))

	filter := chitty.SchemeFilter{AllStateLevel: true, DistrictID: ptr(5), MemberAgencyID: ptr(40)}
	repo := chitty.NewRepository(mock)
	list, err := repo.ListByStatus(context.Background(), models.ChittyOpen, filter)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	bidTime := time.Date(2026, 2, 5, 14, 2, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO auction_bids`).
		WithArgs(int64(100), int64(7), (*int64)(nil), 2, int64(12), int64(4500)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "bid_time", "is_winning_bid"}).
			AddRow(int64(55), bidTime, false))

	repo := chitty.NewRepository(mock)
	bid := &models.AuctionBid{AuctionID: 100, ChittyID: 7, MonthIndex: 2, MemberID: 12, BidAmount: 4500}
	require.NoError(t, repo.InsertBid(context.Background(), bid))
	assert.Equal(t, int64(55), bid.ID)
	assert.Equal(t, bidTime, bid.BidTime)

	assert.NoError(t, mock.ExpectationsWereMet())
}
