package states

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

// CreateRequest is the body for POST /state.
type CreateRequest struct {
	StateCode     string  `json:"state_code" binding:"required"`
	StateName     string  `json:"state_name" binding:"required"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`
}

// UpdateRequest is the body for PATCH /state/:id.
type UpdateRequest struct {
	StateCode     *string `json:"state_code"`
	StateName     *string `json:"state_name"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	ContactEmail  *string `json:"contact_email"`
	Status        *string `json:"status"`
}

// Handler handles state committee HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a states handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /state.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "state_code and state_name are required")
		return
	}
	s := &models.StateCommittee{
		StateCode:     req.StateCode,
		StateName:     req.StateName,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		Status:        models.OrgActive,
	}
	if err := h.repo.Create(c.Request.Context(), s); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, s)
}

// List handles GET /state.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Internal(c, "failed to fetch states")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /state/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid state id")
		return
	}
	s, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, s)
}

// Update handles PATCH /state/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid state id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	s, err := h.repo.Update(c.Request.Context(), id, req.StateCode, req.StateName, req.ContactPerson, req.ContactPhone, req.ContactEmail, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, s)
}
