package chitty_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jishnuMgit/hoardlinks-backend/internal/chitty"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
)

func TestAuctionStartAt(t *testing.T) {
	startDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	lotTime := time.Date(2000, 1, 1, 15, 30, 0, 0, time.UTC)

	got := chitty.AuctionStartAt(startDate, lotTime)
	assert.Equal(t, time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC), got)
}

func TestBuildSchedule(t *testing.T) {
	lotTime := time.Date(2000, 1, 1, 14, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	cycles := []models.ChittyCycle{
		{ID: 11, ChittyID: 5, CycleNo: 1, Status: models.CycleClosed, StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 12, ChittyID: 5, CycleNo: 2, Status: models.CycleOpen, StartDate: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)},
		{ID: 13, ChittyID: 5, CycleNo: 3, Status: models.CycleOpen, StartDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	views, countdown := chitty.BuildSchedule(cycles, lotTime, now)
	require.Len(t, views, 3)
	assert.Equal(t, time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC), views[0].AuctionStartAt)
	assert.Equal(t, time.Date(2026, 2, 5, 14, 0, 0, 0, time.UTC), views[1].AuctionStartAt)

	// The first OPEN cycle drives the countdown, not the later one.
	require.NotNil(t, countdown)
	assert.Equal(t, int64(12), countdown.CycleID)
	assert.Equal(t, 2, countdown.CycleNo)
	assert.Equal(t, time.Date(2026, 2, 5, 14, 0, 0, 0, time.UTC), countdown.TargetTime)
	assert.Equal(t, int64(4*24*3600+2*3600), countdown.RemainingSeconds)
}

func TestBuildScheduleDeterministic(t *testing.T) {
	lotTime := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 8, 59, 0, 0, time.UTC)
	cycles := []models.ChittyCycle{
		{ID: 1, CycleNo: 1, Status: models.CycleOpen, StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	_, first := chitty.BuildSchedule(cycles, lotTime, now)
	_, second := chitty.BuildSchedule(cycles, lotTime, now)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(60), first.RemainingSeconds)
}

func TestBuildScheduleNoOpenCycle(t *testing.T) {
	lotTime := time.Date(2000, 1, 1, 14, 0, 0, 0, time.UTC)
	cycles := []models.ChittyCycle{
		{ID: 1, CycleNo: 1, Status: models.CycleClosed, StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
	}

	views, countdown := chitty.BuildSchedule(cycles, lotTime, time.Now())
	assert.Len(t, views, 1)
	assert.Nil(t, countdown)
}

func TestBuildScheduleEmpty(t *testing.T) {
	views, countdown := chitty.BuildSchedule(nil, time.Now(), time.Now())
	assert.Empty(t, views)
	assert.Nil(t, countdown)
}
