package districts

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

// CreateRequest is the body for POST /district.
type CreateRequest struct {
	StateID       int64   `json:"state_id" binding:"required"`
	DistrictCode  string  `json:"district_code" binding:"required"`
	DistrictName  string  `json:"district_name" binding:"required"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`
}

// UpdateRequest is the body for PATCH /district/:id.
type UpdateRequest struct {
	DistrictCode  *string `json:"district_code"`
	DistrictName  *string `json:"district_name"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`
	Status        *string `json:"status"`
}

// Handler handles district committee HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a districts handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /district.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "state_id, district_code and district_name are required")
		return
	}

	ctx := c.Request.Context()
	exists, err := h.repo.StateExists(ctx, req.StateID)
	if err != nil {
		response.Internal(c, "failed to verify state")
		return
	}
	if !exists {
		response.NotFound(c, "state not found")
		return
	}

	d := &models.DistrictCommittee{
		StateID:       req.StateID,
		DistrictCode:  req.DistrictCode,
		DistrictName:  req.DistrictName,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		Status:        models.OrgActive,
	}
	if err := h.repo.Create(ctx, d); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, d)
}

// List handles GET /district with optional ?state_id filter.
func (h *Handler) List(c *gin.Context) {
	var stateID *int64
	if raw := c.Query("state_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid state_id")
			return
		}
		stateID = &id
	}
	list, err := h.repo.List(c.Request.Context(), stateID)
	if err != nil {
		response.Internal(c, "failed to fetch districts")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /district/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid district id")
		return
	}
	d, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, d)
}

// Update handles PATCH /district/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid district id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	d, err := h.repo.Update(c.Request.Context(), id, req.DistrictCode, req.DistrictName, req.ContactPerson, req.ContactPhone, req.ContactEmail, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, d)
}
