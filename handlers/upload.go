package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAwait bounds GET /api/uploads/:id?wait=true.
const maxAwait = 2 * time.Minute

type UploadHandler struct {
	Service *upload.Service
	// StageDir receives a copy of each accepted file when Stage is set. The
	// simulated backend never reads file contents, so it leaves Stage off.
	StageDir string
	Stage    bool
}

func NewUploadHandler(svc *upload.Service, stage bool) *UploadHandler {
	return &UploadHandler{Service: svc, StageDir: os.TempDir(), Stage: stage}
}

type rejectedFile struct {
	FileName string `json:"fileName"`
	Error    string `json:"error"`
}

func writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrUploadNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, upload.ErrNotRetryable), errors.Is(err, upload.ErrUploadInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("upload request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
	}
}

func (h *UploadHandler) stage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	f, err := os.CreateTemp(h.StageDir, "medibook-upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	if err := c.SaveUploadedFile(fh, path); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// UploadFilesHandler handles POST /api/uploads with one or more "file" parts.
// Each file is gated and started independently.
func (h *UploadHandler) UploadFilesHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["file"]) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided"})
		return
	}
	owner := middleware.CurrentUserID(c)

	accepted := make([]models.Upload, 0, len(form.File["file"]))
	rejected := make([]rejectedFile, 0)
	for _, fh := range form.File["file"] {
		meta := upload.FileMeta{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
		}
		if err := upload.Validate(meta, h.Service.MaxBytes); err != nil {
			rejected = append(rejected, rejectedFile{FileName: fh.Filename, Error: err.Error()})
			continue
		}
		if h.Stage {
			path, err := h.stage(c, fh)
			if err != nil {
				getLogger(c).Error("failed to stage upload", zap.String("file", fh.Filename), zap.Error(err))
				rejected = append(rejected, rejectedFile{FileName: fh.Filename, Error: "failed to save file"})
				continue
			}
			meta.Path = path
		}
		u, err := h.Service.Start(c.Request.Context(), owner, meta)
		if err != nil {
			rejected = append(rejected, rejectedFile{FileName: fh.Filename, Error: err.Error()})
			continue
		}
		accepted = append(accepted, u)
	}

	code := http.StatusAccepted
	if len(accepted) == 0 {
		code = http.StatusBadRequest
	}
	c.JSON(code, gin.H{"uploads": accepted, "rejected": rejected})
}

// ListUploadsHandler handles GET /api/uploads.
func (h *UploadHandler) ListUploadsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"uploads": h.Service.List(middleware.CurrentUserID(c))})
}

// GetUploadHandler handles GET /api/uploads/:id. With wait=true it blocks
// until the upload is terminal.
func (h *UploadHandler) GetUploadHandler(c *gin.Context) {
	owner, id := middleware.CurrentUserID(c), c.Param("id")
	if c.Query("wait") != "true" {
		u, err := h.Service.Get(owner, id)
		if err != nil {
			writeUploadError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), maxAwait)
	defer cancel()
	u, err := h.Service.Await(ctx, owner, id)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		current, getErr := h.Service.Get(owner, id)
		if getErr != nil {
			writeUploadError(c, getErr)
			return
		}
		c.JSON(http.StatusAccepted, current)
	case clientGone(err):
		c.Abort()
	case err != nil:
		writeUploadError(c, err)
	default:
		c.JSON(http.StatusOK, u)
	}
}

// RetryUploadHandler handles POST /api/uploads/:id/retry.
func (h *UploadHandler) RetryUploadHandler(c *gin.Context) {
	u, err := h.Service.Retry(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeUploadError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, u)
}

// RemoveUploadHandler handles DELETE /api/uploads/:id.
func (h *UploadHandler) RemoveUploadHandler(c *gin.Context) {
	if err := h.Service.Remove(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		writeUploadError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
