package agencies

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
)

// CreateRequest is the body for POST /agency.
type CreateRequest struct {
	DistrictID    int64   `json:"district_id" binding:"required"`
	AgencyCode    string  `json:"agency_code" binding:"required"`
	LegalName     string  `json:"legal_name" binding:"required"`
	TradeName     *string `json:"trade_name"`
	ContactPerson string  `json:"contact_person" binding:"required"`
	ContactPhone  string  `json:"contact_phone" binding:"required"`
	ContactEmail  *string `json:"contact_email"`
	AddressLine1  *string `json:"address_line1"`
	AddressLine2  *string `json:"address_line2"`
	City          *string `json:"city"`
	Pincode       *string `json:"pincode"`
	GSTNumber     *string `json:"gst_number"`
}

// UpdateRequest is the body for PATCH /agency/:id.
type UpdateRequest struct {
	AgencyCode       *string `json:"agency_code"`
	LegalName        *string `json:"legal_name"`
	TradeName        *string `json:"trade_name"`
	ContactPerson    *string `json:"contact_person"`
	ContactPhone     *string `json:"contact_phone"`
	ContactEmail     *string `json:"contact_email"`
	AddressLine1     *string `json:"address_line1"`
	AddressLine2     *string `json:"address_line2"`
	City             *string `json:"city"`
	Pincode          *string `json:"pincode"`
	GSTNumber        *string `json:"gst_number"`
	MembershipStatus *string `json:"membership_status"`
}

// Handler handles agency member HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates an agencies handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /agency.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "district_id, agency_code, legal_name, contact_person and contact_phone are required")
		return
	}

	ctx := c.Request.Context()
	exists, err := h.repo.DistrictExists(ctx, req.DistrictID)
	if err != nil {
		response.Internal(c, "failed to verify district")
		return
	}
	if !exists {
		response.NotFound(c, "district not found")
		return
	}

	a := &models.AgencyMember{
		DistrictID:       req.DistrictID,
		AgencyCode:       req.AgencyCode,
		LegalName:        req.LegalName,
		TradeName:        req.TradeName,
		ContactPerson:    req.ContactPerson,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		Pincode:          req.Pincode,
		GSTNumber:        req.GSTNumber,
		MembershipStatus: models.MembershipPending,
	}
	if err := h.repo.Create(ctx, a); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, a)
}

// List handles GET /agency with optional ?district_id filter.
func (h *Handler) List(c *gin.Context) {
	var districtID *int64
	if raw := c.Query("district_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid district_id")
			return
		}
		districtID = &id
	}
	list, err := h.repo.List(c.Request.Context(), districtID)
	if err != nil {
		response.Internal(c, "failed to fetch agencies")
		return
	}
	response.OK(c, list)
}

// GetByID handles GET /agency/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid agency id")
		return
	}
	a, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}

// Update handles PATCH /agency/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid agency id")
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request")
		return
	}
	a, err := h.repo.Update(c.Request.Context(), id, UpdateFields{
		AgencyCode:       req.AgencyCode,
		LegalName:        req.LegalName,
		TradeName:        req.TradeName,
		ContactPerson:    req.ContactPerson,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		Pincode:          req.Pincode,
		GSTNumber:        req.GSTNumber,
		MembershipStatus: req.MembershipStatus,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, a)
}
