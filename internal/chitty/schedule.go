package chitty

import (
	"time"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
)

// CycleView couples a cycle with its precise auction start instant: date from
// the cycle's start_date, time of day from the scheme's lot_time.
type CycleView struct {
	models.ChittyCycle
	AuctionStartAt time.Time `json:"auction_start_at"`
}

// Countdown points at the next open auction of a scheme.
type Countdown struct {
	CycleID          int64     `json:"cycle_id"`
	CycleNo          int       `json:"cycle_no"`
	TargetTime       time.Time `json:"target_time"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

// AuctionStartAt combines the cycle start date with the scheme lot time of day.
func AuctionStartAt(startDate, lotTime time.Time) time.Time {
	y, m, d := startDate.Date()
	return time.Date(y, m, d, lotTime.Hour(), lotTime.Minute(), lotTime.Second(), 0, startDate.Location())
}

// BuildSchedule computes cycle views and the scheme countdown. Cycles must be
// ordered by cycle_no ascending; the first OPEN cycle determines the countdown
// target, nil when no cycle is open. Deterministic for a fixed now.
func BuildSchedule(cycles []models.ChittyCycle, lotTime, now time.Time) ([]CycleView, *Countdown) {
	views := make([]CycleView, 0, len(cycles))
	var countdown *Countdown
	for _, cy := range cycles {
		v := CycleView{ChittyCycle: cy, AuctionStartAt: AuctionStartAt(cy.StartDate, lotTime)}
		views = append(views, v)
		if countdown == nil && cy.Status == models.CycleOpen {
			countdown = &Countdown{
				CycleID:          cy.ID,
				CycleNo:          cy.CycleNo,
				TargetTime:       v.AuctionStartAt,
				RemainingSeconds: int64(v.AuctionStartAt.Sub(now) / time.Second),
			}
		}
	}
	return views, countdown
}
