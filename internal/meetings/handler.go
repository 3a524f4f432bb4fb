package meetings

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

// CreateRequest is the body for POST /meeting.
type CreateRequest struct {
	Level           models.Level `json:"level" binding:"required"`
	StateID         *int64       `json:"state_id"`
	DistrictID      *int64       `json:"district_id"`
	Title           string       `json:"title" binding:"required"`
	Description     *string      `json:"description"`
	MeetingDatetime string       `json:"meeting_datetime" binding:"required"`
	Venue           *string      `json:"venue"`
}

// UpdateRequest is the body for PATCH /meeting/:id.
type UpdateRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	MeetingDatetime *string `json:"meeting_datetime"`
	Venue           *string `json:"venue"`
}

// Handler handles meeting schedule HTTP endpoints.
type Handler struct {
	repo     *Repository
	authRepo *auth.Repository
	logger   *zap.Logger
}

// NewHandler creates a meetings handler.
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

// ScopeFor maps an actor to its meeting visibility scope.
func ScopeFor(actor models.Actor) Scope {
	if actor.Role == models.RoleAdmin {
		return Scope{All: true}
	}
	return Scope{StateID: actor.StateID, DistrictID: actor.DistrictID}
}

// Create handles POST /meeting.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "level, title and meeting_datetime are required")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	meetingAt, err := time.Parse(time.RFC3339, req.MeetingDatetime)
	if err != nil {
		response.BadRequest(c, "invalid meeting_datetime, use RFC3339")
		return
	}

	stateID, districtID := req.StateID, req.DistrictID
	if actor.Role != models.RoleAdmin {
		stateID, districtID = actor.StateID, actor.DistrictID
	}
	switch req.Level {
	case models.LevelState:
		if stateID == nil {
			response.BadRequest(c, "state_id is required for STATE level meetings")
			return
		}
		districtID = nil
	case models.LevelDistrict:
		if districtID == nil {
			response.BadRequest(c, "district_id is required for DISTRICT level meetings")
			return
		}
		stateID = nil
	default:
		response.BadRequest(c, "level must be STATE or DISTRICT")
		return
	}

	m := &models.MeetingSchedule{
		Level:           req.Level,
		StateID:         stateID,
		DistrictID:      districtID,
		Title:           req.Title,
		Description:     req.Description,
		MeetingDatetime: meetingAt,
		Venue:           req.Venue,
		CreatedByUser:   actor.ID,
	}
	if err := h.repo.Create(c.Request.Context(), m); err != nil {
		h.logger.Error("create meeting", zap.Error(err))
		response.Internal(c, "failed to create meeting")
		return
	}
	response.Created(c, m)
}

// List handles GET /meeting, scoped to the actor's org tree. The
// ?upcoming=true filter drops past meetings.
func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	upcomingOnly := c.Query("upcoming") == "true"
	list, err := h.repo.List(c.Request.Context(), ScopeFor(actor), upcomingOnly, time.Now())
	if err != nil {
		h.logger.Error("list meetings", zap.Error(err))
		response.Internal(c, "failed to fetch meetings")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /meeting/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}
	m, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

// Update handles PATCH /meeting/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var meetingAt *time.Time
	if req.MeetingDatetime != nil && *req.MeetingDatetime != "" {
		t, err := time.Parse(time.RFC3339, *req.MeetingDatetime)
		if err != nil {
			response.BadRequest(c, "invalid meeting_datetime, use RFC3339")
			return
		}
		meetingAt = &t
	}

	m, err := h.repo.Update(c.Request.Context(), id, actor.ID, req.Title, req.Description, req.Venue, meetingAt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, m)
}

// Delete handles DELETE /meeting/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid meeting id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
