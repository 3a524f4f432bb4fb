package models

import "time"

// Level scopes a scheme, announcement or meeting to a visibility tier.
type Level string

const (
	LevelState    Level = "STATE"
	LevelDistrict Level = "DISTRICT"
)

// ChittyStatus is the scheme lifecycle. Transitions are monotonic:
// OPEN -> RUNNING -> CLOSED, never reversed.
type ChittyStatus string

const (
	ChittyOpen    ChittyStatus = "OPEN"
	ChittyRunning ChittyStatus = "RUNNING"
	ChittyClosed  ChittyStatus = "CLOSED"
)

// CycleStatus is the lifecycle of one auction round. At most one cycle of a
// scheme is OPEN at a time.
type CycleStatus string

const (
	CycleOpen   CycleStatus = "OPEN"
	CycleClosed CycleStatus = "CLOSED"
)

// JoinStatus is the approval state of an enrollment slot.
type JoinStatus string

const (
	JoinRequested JoinStatus = "REQUESTED"
	JoinApproved  JoinStatus = "APPROVED"
	JoinRejected  JoinStatus = "REJECTED"
)

// ChittyScheme is one rotating-savings scheme instance, owned by a state or
// district depending on its level. LotTime carries the auction time of day;
// only its time component is meaningful.
type ChittyScheme struct {
	ID             int64        `json:"id"`
	ChittyCode     string       `json:"chitty_code"`
	ChittyName     string       `json:"chitty_name"`
	Level          Level        `json:"level"`
	StateID        *int64       `json:"state_id,omitempty"`
	DistrictID     *int64       `json:"district_id,omitempty"`
	Status         ChittyStatus `json:"status"`
	ChittyAmount   int64        `json:"chitty_amount"`
	DurationMonths int          `json:"duration_months"`
	LotTime        time.Time    `json:"lot_time"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ChittyCycle is one auction round within a scheme. CycleNo is unique and
// strictly increasing per scheme.
type ChittyCycle struct {
	ID        int64       `json:"id"`
	ChittyID  int64       `json:"chitty_id"`
	CycleNo   int         `json:"cycle_no"`
	Status    CycleStatus `json:"status"`
	StartDate time.Time   `json:"start_date"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ChittyMember is an agency's enrollment slot in a scheme. MemberNo is
// sequential, gapless and never reused within a scheme.
type ChittyMember struct {
	ID         int64      `json:"id"`
	ChittyID   int64      `json:"chitty_id"`
	AgencyID   int64      `json:"agency_id"`
	MemberNo   int        `json:"member_no"`
	JoinStatus JoinStatus `json:"join_status"`
	Remarks    *string    `json:"remarks,omitempty"`
	JoinDate   *time.Time `json:"join_date,omitempty"`
	ExitDate   *time.Time `json:"exit_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AuctionBid is one append-only bid row. The leading bid for a scheme is the
// maximum amount, ties broken by earliest BidTime.
type AuctionBid struct {
	ID           int64     `json:"id"`
	AuctionID    int64     `json:"auction_id"`
	ChittyID     int64     `json:"chitty_id"`
	CycleID      *int64    `json:"cycle_id,omitempty"`
	MonthIndex   int       `json:"month_index"`
	MemberID     int64     `json:"member_no"`
	BidAmount    int64     `json:"bid_amount"`
	BidTime      time.Time `json:"bid_time"`
	IsWinningBid bool      `json:"is_winning_bid"`
}

// ChittyPayment is a member's payment record; URL points at the uploaded
// payment proof image.
type ChittyPayment struct {
	ID        int64     `json:"id"`
	ChittyID  int64     `json:"chitty_id"`
	MemberID  int64     `json:"member_id"`
	Amount    int64     `json:"amount"`
	URL       *string   `json:"url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
