package announcements

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

const dateTimeLayout = time.RFC3339

// CreateRequest is the body for POST /announcement.
type CreateRequest struct {
	Level      models.Level `json:"level" binding:"required"`
	StateID    *int64       `json:"state_id"`
	DistrictID *int64       `json:"district_id"`
	Title      string       `json:"title" binding:"required"`
	Message    string       `json:"message" binding:"required"`
	ValidFrom  *string      `json:"valid_from"`
	ValidTo    *string      `json:"valid_to"`
}

// UpdateRequest is the body for PATCH /announcement/:id.
type UpdateRequest struct {
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	ValidFrom *string `json:"valid_from"`
	ValidTo   *string `json:"valid_to"`
}

// Handler handles announcement HTTP endpoints.
type Handler struct {
	repo     *Repository
	authRepo *auth.Repository
	logger   *zap.Logger
}

// NewHandler creates an announcements handler.
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

// ScopeFor maps an actor to its announcement visibility scope.
func ScopeFor(actor models.Actor) Scope {
	if actor.Role == models.RoleAdmin {
		return Scope{All: true}
	}
	return Scope{StateID: actor.StateID, DistrictID: actor.DistrictID}
}

// Create handles POST /announcement. STATE-level notices need a state_id,
// DISTRICT-level a district_id; non-admin creators publish into their own org.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "level, title and message are required")
		return
	}
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	stateID, districtID := req.StateID, req.DistrictID
	if actor.Role != models.RoleAdmin {
		stateID, districtID = actor.StateID, actor.DistrictID
	}
	switch req.Level {
	case models.LevelState:
		if stateID == nil {
			response.BadRequest(c, "state_id is required for STATE level announcements")
			return
		}
		districtID = nil
	case models.LevelDistrict:
		if districtID == nil {
			response.BadRequest(c, "district_id is required for DISTRICT level announcements")
			return
		}
		stateID = nil
	default:
		response.BadRequest(c, "level must be STATE or DISTRICT")
		return
	}

	validFrom, err := parseDateTime(req.ValidFrom)
	if err != nil {
		response.BadRequest(c, "invalid valid_from, use RFC3339")
		return
	}
	validTo, err := parseDateTime(req.ValidTo)
	if err != nil {
		response.BadRequest(c, "invalid valid_to, use RFC3339")
		return
	}

	a := &models.Announcement{
		Level:         req.Level,
		StateID:       stateID,
		DistrictID:    districtID,
		Title:         req.Title,
		Message:       req.Message,
		ValidFrom:     time.Now(),
		ValidTo:       validTo,
		CreatedByUser: actor.ID,
	}
	if validFrom != nil {
		a.ValidFrom = *validFrom
	}
	if err := h.repo.Create(c.Request.Context(), a); err != nil {
		h.logger.Error("create announcement", zap.Error(err))
		response.Internal(c, "failed to create announcement")
		return
	}
	response.Created(c, a)
}

// List handles GET /announcement, scoped to the actor's org tree. The
// ?active=true filter keeps only notices inside their validity window.
func (h *Handler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	activeOnly := c.Query("active") == "true"
	list, err := h.repo.List(c.Request.Context(), ScopeFor(actor), activeOnly, time.Now())
	if err != nil {
		h.logger.Error("list announcements", zap.Error(err))
		response.Internal(c, "failed to fetch announcements")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /announcement/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
		return
	}
	a, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// Update handles PATCH /announcement/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
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

	validFrom, err := parseDateTime(req.ValidFrom)
	if err != nil {
		response.BadRequest(c, "invalid valid_from, use RFC3339")
		return
	}
	validTo, err := parseDateTime(req.ValidTo)
	if err != nil {
		response.BadRequest(c, "invalid valid_to, use RFC3339")
		return
	}

	a, err := h.repo.Update(c.Request.Context(), id, actor.ID, req.Title, req.Message, validFrom, validTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// Delete handles DELETE /announcement/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid announcement id")
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func parseDateTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateTimeLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
