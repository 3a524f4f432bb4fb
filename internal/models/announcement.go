package models

import "time"

// Announcement is a level-scoped notice shown to member agencies.
type Announcement struct {
	ID            int64      `json:"id"`
	Level         Level      `json:"level"`
	StateID       *int64     `json:"state_id,omitempty"`
	DistrictID    *int64     `json:"district_id,omitempty"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	ValidFrom     time.Time  `json:"valid_from"`
	ValidTo       *time.Time `json:"valid_to,omitempty"`
	CreatedByUser int64      `json:"created_by_user"`
	UpdatedByUser *int64     `json:"updated_by_user,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
