package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const defaultBucket = "uploads"

// StorageHandler issues signed upload URLs so browsers upload files directly
// to the storage service.
type StorageHandler struct {
	signer ports.StorageSigner
	log    zerolog.Logger
}

func NewStorageHandler(signer ports.StorageSigner, log zerolog.Logger) *StorageHandler {
	return &StorageHandler{signer: signer, log: log}
}

type signUploadRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType"`
	Bucket      string `json:"bucket"`
}

type signUploadResponse struct {
	SignedURL string `json:"signedUrl"`
	FilePath  string `json:"filePath"`
	Bucket    string `json:"bucket"`
}

// Sign handles POST /api/storage/sign.
//
// @Summary      Create a signed upload URL
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        body  body      signUploadRequest  true  "Upload details"
// @Success      200   {object}  signUploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/storage/sign [post]
func (h *StorageHandler) Sign(c echo.Context) error {
	if actorID(c) == "" {
		return domain.ErrUnauthorized
	}

	var req signUploadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}

	// Unique object key prevents upload collisions between users.
	objectKey := uuid.NewString()
	if idx := strings.LastIndex(req.FileName, "."); idx >= 0 && idx < len(req.FileName)-1 {
		objectKey += req.FileName[idx:]
	}

	signedURL, err := h.signer.CreateSignedUploadURL(c.Request().Context(), bucket, objectKey)
	if err != nil {
		h.log.Error().Err(err).Str("bucket", bucket).Msg("failed to create signed upload url")
		return err
	}

	return c.JSON(http.StatusOK, signUploadResponse{
		SignedURL: signedURL,
		FilePath:  objectKey,
		Bucket:    bucket,
	})
}
