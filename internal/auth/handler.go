package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/queue"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	LoginID    string `json:"login_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
	DeviceType string `json:"device_type" binding:"required"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	LoginID      string  `json:"login_id" binding:"required"`
	Password     string  `json:"password" binding:"required,min=6"`
	MobileNumber string  `json:"mobile_number" binding:"required"`
	RoleType     string  `json:"role_type" binding:"required"`
	StateID      *int64  `json:"state_id"`
	DistrictID   *int64  `json:"district_id"`
	AgencyID     *int64  `json:"agency_id"`
	FCMToken     *string `json:"fcm_token"`
	DeviceType   *string `json:"device_type"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	AccessToken string              `json:"access_token"`
	RoleType    models.RoleType     `json:"role_type"`
	User        *models.UserAccount `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, q *queue.Queue, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, queue: q, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByLoginID(c.Request.Context(), req.LoginID)
	if err != nil {
		response.Unauthorized(c, "invalid login_id or password")
		return
	}
	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		response.Unauthorized(c, "invalid login_id or password")
		return
	}

	deviceType := req.DeviceType
	if deviceType == "" {
		deviceType = utils.DeviceTypeFromUserAgent(c.GetHeader("User-Agent"))
	}
	if err := h.repo.TouchLogin(c.Request.Context(), user.ID, deviceType, time.Now()); err != nil {
		h.logger.Warn("touch login", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	token, err := h.jwt.Generate(user.ID, user.RoleType)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{AccessToken: token, RoleType: user.RoleType, User: user})
}

// Register handles POST /auth/register. The creator's role gates which
// role_type it may create, per the capability matrix.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	role := models.RoleType(req.RoleType)
	if !role.Valid() {
		response.BadRequest(c, "invalid role_type")
		return
	}

	creatorRole := c.MustGet(ContextUserRole).(models.RoleType)
	if !CanCreateRole(creatorRole, role) {
		response.Forbidden(c, "you are not allowed to create a user with role_type "+req.RoleType)
		return
	}

	if msg := validateRoleOrgRefs(role, req.StateID, req.DistrictID, req.AgencyID); msg != "" {
		response.BadRequest(c, msg)
		return
	}

	exists, err := h.repo.MobileNumberExists(c.Request.Context(), req.MobileNumber)
	if err != nil {
		response.Internal(c, "failed to check mobile number")
		return
	}
	if exists {
		response.Conflict(c, "mobile number already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	deviceType := req.DeviceType
	if deviceType == nil && req.FCMToken != nil {
		dt := utils.DeviceTypeFromUserAgent(c.GetHeader("User-Agent"))
		deviceType = &dt
	}

	user := &models.UserAccount{
		LoginID:      req.LoginID,
		PasswordHash: hash,
		MobileNumber: req.MobileNumber,
		RoleType:     role,
		StateID:      req.StateID,
		DistrictID:   req.DistrictID,
		AgencyID:     req.AgencyID,
		FCMToken:     req.FCMToken,
		DeviceType:   deviceType,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		response.Error(c, err)
		return
	}

	// Welcome push is fire-and-forget; a queue failure never undoes the insert.
	if user.FCMToken != nil && *user.FCMToken != "" {
		if err := h.queue.EnqueuePush(c.Request.Context(), queue.PushPayload{
			UserID:   user.ID,
			FCMToken: *user.FCMToken,
			Title:    "Welcome",
			Body:     "Your account has been created successfully",
		}); err != nil {
			h.logger.Warn("enqueue welcome push", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	response.Created(c, user)
}

// Profile handles GET /profile for the authenticated account.
func (h *Handler) Profile(c *gin.Context) {
	userID := c.MustGet(ContextUserID).(int64)
	profile, err := h.repo.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// ValidateToken handles GET /token/check: the JWT middleware has already
// validated the token, so reaching here means it is good.
func (h *Handler) ValidateToken(c *gin.Context) {
	userID := c.MustGet(ContextUserID).(int64)
	role := c.MustGet(ContextUserRole).(models.RoleType)
	response.OK(c, gin.H{"valid": true, "user_id": userID, "role_type": role})
}

// validateRoleOrgRefs enforces that exactly the org reference matching the
// role is set. Returns an error message, or empty when valid.
func validateRoleOrgRefs(role models.RoleType, stateID, districtID, agencyID *int64) string {
	switch role {
	case models.RoleAdmin:
		if stateID != nil || districtID != nil || agencyID != nil {
			return "ADMIN role cannot have state_id, district_id or agency_id"
		}
	case models.RoleState:
		if stateID == nil {
			return "state_id is required for STATE role"
		}
		if districtID != nil || agencyID != nil {
			return "STATE role cannot have district_id or agency_id"
		}
	case models.RoleDistrict:
		if districtID == nil {
			return "district_id is required for DISTRICT role"
		}
		if stateID != nil || agencyID != nil {
			return "DISTRICT role cannot have state_id or agency_id"
		}
	case models.RoleAgency:
		if agencyID == nil {
			return "agency_id is required for AGENCY role"
		}
		if stateID != nil || districtID != nil {
			return "AGENCY role cannot have state_id or district_id"
		}
	}
	return ""
}
