package uploads

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/storage"
)

// Handler handles image upload endpoints backed by S3.
type Handler struct {
	s3       *storage.S3
	repo     *Repository
	authRepo *auth.Repository
	logger   *zap.Logger
}

// NewHandler creates an uploads handler.
func NewHandler(s3 *storage.S3, repo *Repository, authRepo *auth.Repository, logger *zap.Logger) *Handler {
	return &Handler{s3: s3, repo: repo, authRepo: authRepo, logger: logger}
}

// UploadProfileImage handles POST /img/profile: multipart field "img" is
// validated, stored under the user's prefix and the URL persisted on the
// account.
func (h *Handler) UploadProfileImage(c *gin.Context) {
	userID := c.MustGet(auth.ContextUserID).(int64)

	file, err := c.FormFile("img")
	if err != nil {
		response.BadRequest(c, "img file is required")
		return
	}
	if file.Size > storage.MaxImageSize {
		response.BadRequest(c, "image exceeds the 5MB size limit")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.ValidateImageType(contentType, file.Filename) {
		response.BadRequest(c, "only jpeg, png and webp images are allowed")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	key := storage.UserImageKey(strconv.FormatInt(userID, 10), uniqueName(file.Filename))
	url, err := h.s3.Upload(c.Request.Context(), key, contentType, src, file.Size)
	if err != nil {
		h.logger.Error("profile image upload", zap.Int64("user_id", userID), zap.Error(err))
		response.Internal(c, "failed to upload image")
		return
	}

	if err := h.authRepo.UpdateImageURL(c.Request.Context(), userID, url); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"img_url": url})
}

// PaymentImageRequest carries the multipart form fields besides the file.
type PaymentImageRequest struct {
	ChittyID int64 `form:"chitty_id" binding:"required"`
	MemberID int64 `form:"member_id" binding:"required"`
	Amount   int64 `form:"amount"`
}

// UploadPaymentImage handles POST /img/payment: stores a payment proof image
// and records a payment row pointing at it.
func (h *Handler) UploadPaymentImage(c *gin.Context) {
	var req PaymentImageRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "chitty_id and member_id are required")
		return
	}

	file, err := c.FormFile("img")
	if err != nil {
		response.BadRequest(c, "img file is required")
		return
	}
	if file.Size > storage.MaxImageSize {
		response.BadRequest(c, "image exceeds the 5MB size limit")
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !storage.ValidateImageType(contentType, file.Filename) {
		response.BadRequest(c, "only jpeg, png and webp images are allowed")
		return
	}
	if contentType == "" {
		contentType = storage.ContentTypeForFilename(file.Filename)
	}

	ctx := c.Request.Context()
	exists, err := h.repo.MemberExists(ctx, req.ChittyID, req.MemberID)
	if err != nil {
		response.Internal(c, "failed to verify member")
		return
	}
	if !exists {
		response.NotFound(c, "chitty member not found")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Internal(c, "failed to read uploaded file")
		return
	}
	defer src.Close()

	key := storage.PaymentImageKey(strconv.FormatInt(req.MemberID, 10), uniqueName(file.Filename))
	url, err := h.s3.Upload(ctx, key, contentType, src, file.Size)
	if err != nil {
		h.logger.Error("payment image upload", zap.Int64("member_id", req.MemberID), zap.Error(err))
		response.Internal(c, "failed to upload image")
		return
	}

	payment := &models.ChittyPayment{
		ChittyID: req.ChittyID,
		MemberID: req.MemberID,
		Amount:   req.Amount,
		URL:      &url,
		Status:   "PENDING",
	}
	if err := h.repo.CreatePayment(ctx, payment); err != nil {
		h.logger.Error("record payment", zap.Int64("member_id", req.MemberID), zap.Error(err))
		response.Internal(c, "failed to record payment")
		return
	}
	response.Created(c, payment)
}

// PaymentImageURL handles GET /img/payment/:id: a short-lived pre-signed URL
// for the stored proof image.
func (h *Handler) PaymentImageURL(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}
	payment, err := h.repo.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if payment.URL == nil {
		response.NotFound(c, "payment has no image")
		return
	}

	key, err := objectKeyFromURL(*payment.URL)
	if err != nil {
		response.Internal(c, "stored image url is malformed")
		return
	}
	signed, err := h.s3.GeneratePresignedDownloadURL(c.Request.Context(), key, h.s3.PresignExpire())
	if err != nil {
		h.logger.Error("presign payment image", zap.Int64("payment_id", id), zap.Error(err))
		response.Internal(c, "failed to sign image url")
		return
	}
	response.OK(c, gin.H{"url": signed})
}

func uniqueName(filename string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), uuid.NewString()[:8], filename)
}

func objectKeyFromURL(rawURL string) (string, error) {
	// Public URLs are https://<bucket>.s3.<region>.amazonaws.com/<key>.
	const marker = ".amazonaws.com/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", fmt.Errorf("unrecognized object url %q", rawURL)
	}
	return rawURL[idx+len(marker):], nil
}
