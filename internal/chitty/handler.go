package chitty

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

const dateLayout = "2006-01-02"

// EnrollRequest is the body for POST /chitty/enroll.
type EnrollRequest struct {
	ChittyID    int64   `json:"chitty_id" binding:"required"`
	NumberOfReq int     `json:"number_of_req" binding:"required"`
	Remarks     *string `json:"remarks"`
	JoinDate    *string `json:"join_date"`
	ExitDate    *string `json:"exit_date"`
}

// BidRequest is the body for POST /chitty/bid.
type BidRequest struct {
	AuctionID  int64  `json:"auction_id" binding:"required"`
	ChittyID   int64  `json:"chitty_id" binding:"required"`
	CycleID    *int64 `json:"cycle_id"`
	MonthIndex int    `json:"month_index"`
	BidAmount  int64  `json:"bid_amount" binding:"required"`
	MemberID   int64  `json:"member_no" binding:"required"`
}

// Handler handles chitty HTTP endpoints. Every operation resolves the actor
// descriptor explicitly and passes it into the core functions.
type Handler struct {
	repo     *Repository
	authRepo *auth.Repository
	logger   *zap.Logger
}

// NewHandler creates a chitty handler.
func NewHandler(repo *Repository, authRepo *auth.Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, authRepo: authRepo, logger: logger}
}

func (h *Handler) actor(c *gin.Context) (models.Actor, bool) {
	userID := c.MustGet(auth.ContextUserID).(int64)
	actor, err := h.authRepo.ResolveActor(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return models.Actor{}, false
	}
	return actor, true
}

// List handles GET /chitty: status buckets filtered by actor visibility.
func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	filter, err := ResolveVisibility(actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	open, err := h.repo.ListByStatus(ctx, models.ChittyOpen, filter)
	if err != nil {
		h.logger.Error("list open chittys", zap.Error(err))
		response.Internal(c, "failed to fetch chittys")
		return
	}
	running, err := h.repo.ListByStatus(ctx, models.ChittyRunning, filter)
	if err != nil {
		h.logger.Error("list running chittys", zap.Error(err))
		response.Internal(c, "failed to fetch chittys")
		return
	}
	closed, err := h.repo.ListByStatus(ctx, models.ChittyClosed, filter)
	if err != nil {
		h.logger.Error("list closed chittys", zap.Error(err))
		response.Internal(c, "failed to fetch chittys")
		return
	}

	response.OK(c, gin.H{"open": open, "running": running, "closed": closed})
}

// GetByID handles GET /chitty/:id: scheme detail with cycles, countdown and
// the actor's member slot.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chitty id")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	scheme, err := h.repo.GetScheme(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// District schemes are visible only inside their own district.
	if scheme.Level == models.LevelDistrict && actor.Role != models.RoleAdmin {
		if scheme.DistrictID == nil || actor.DistrictID == nil || *scheme.DistrictID != *actor.DistrictID {
			response.Forbidden(c, "you are not allowed to view this district chitty")
			return
		}
	}

	cycles, err := h.repo.ListCycles(ctx, id)
	if err != nil {
		h.logger.Error("list cycles", zap.Int64("chitty_id", id), zap.Error(err))
		response.Internal(c, "failed to fetch chitty cycles")
		return
	}
	views, countdown := BuildSchedule(cycles, scheme.LotTime, time.Now())

	var member *models.ChittyMember
	if (scheme.Status == models.ChittyOpen || scheme.Status == models.ChittyRunning) && actor.AgencyID != nil {
		member, err = h.repo.GetMemberForAgency(ctx, id, *actor.AgencyID)
		if err != nil {
			h.logger.Error("member lookup", zap.Int64("chitty_id", id), zap.Error(err))
			response.Internal(c, "failed to fetch chitty member")
			return
		}
	}

	response.OK(c, gin.H{
		"chitty":           scheme,
		"chitty_cycle":     views,
		"chitty_member":    member,
		"chitty_countdown": countdown,
	})
}

// Enroll handles POST /chitty/enroll: batch allocation of sequential member
// numbers for the actor's agency.
func (h *Handler) Enroll(c *gin.Context) {
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	if actor.AgencyID == nil {
		response.BadRequest(c, "agency not linked to this user")
		return
	}

	joinDate, err := parseDate(req.JoinDate)
	if err != nil {
		response.BadRequest(c, "invalid join_date format, use YYYY-MM-DD")
		return
	}
	exitDate, err := parseDate(req.ExitDate)
	if err != nil {
		response.BadRequest(c, "invalid exit_date format, use YYYY-MM-DD")
		return
	}

	result, err := h.repo.Enroll(c.Request.Context(), req.ChittyID, *actor.AgencyID, req.NumberOfReq, req.Remarks, joinDate, exitDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// PlaceBid handles POST /chitty/bid: append-only bid insert.
func (h *Handler) PlaceBid(c *gin.Context) {
	var req BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.BidAmount <= 0 {
		response.BadRequest(c, "bid_amount must be a positive amount")
		return
	}
	if _, ok := h.actor(c); !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.GetScheme(ctx, req.ChittyID); err != nil {
		response.Error(c, err)
		return
	}

	bid := &models.AuctionBid{
		AuctionID:  req.AuctionID,
		ChittyID:   req.ChittyID,
		CycleID:    req.CycleID,
		MonthIndex: req.MonthIndex,
		MemberID:   req.MemberID,
		BidAmount:  req.BidAmount,
	}
	if err := h.repo.InsertBid(ctx, bid); err != nil {
		h.logger.Error("insert bid", zap.Int64("chitty_id", req.ChittyID), zap.Error(err))
		response.Internal(c, "failed to place bid")
		return
	}
	response.Created(c, bid)
}

// LeadingBids handles GET /chitty/bids/:id: all bids at the scheme's maximum
// amount, earliest first.
func (h *Handler) LeadingBids(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chitty id")
		return
	}
	if _, ok := h.actor(c); !ok {
		return
	}

	amount, bids, err := h.repo.LeadingBids(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("leading bids", zap.Int64("chitty_id", id), zap.Error(err))
		response.Internal(c, "failed to fetch bids")
		return
	}
	response.OK(c, gin.H{"highest_bid_amount": amount, "highest_bids": bids})
}

// CycleBid handles GET /chitty/auction/:chitty_id/:cycle_id: the leading bid
// of one cycle.
func (h *Handler) CycleBid(c *gin.Context) {
	chittyID, err := strconv.ParseInt(c.Param("chitty_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid chitty id")
		return
	}
	cycleID, err := strconv.ParseInt(c.Param("cycle_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid cycle id")
		return
	}
	if _, ok := h.actor(c); !ok {
		return
	}

	bid, err := h.repo.LeadingBidForCycle(c.Request.Context(), chittyID, cycleID)
	if err != nil {
		h.logger.Error("cycle bid", zap.Int64("chitty_id", chittyID), zap.Error(err))
		response.Internal(c, "failed to fetch bid")
		return
	}
	response.OK(c, gin.H{"bid": bid})
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
