package models

import "time"

// MeetingSchedule is a level-scoped committee meeting.
type MeetingSchedule struct {
	ID              int64     `json:"id"`
	Level           Level     `json:"level"`
	StateID         *int64    `json:"state_id,omitempty"`
	DistrictID      *int64    `json:"district_id,omitempty"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	MeetingDatetime time.Time `json:"meeting_datetime"`
	Venue           *string   `json:"venue,omitempty"`
	CreatedByUser   int64     `json:"created_by_user"`
	UpdatedByUser   *int64    `json:"updated_by_user,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
