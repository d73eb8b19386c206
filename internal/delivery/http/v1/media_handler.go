package v1

import (
	"bytes"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/pkg/apperror"
	"go-cookmate-backend/pkg/media"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

type MediaHandler struct {
	store media.Store
}

func NewMediaHandler(public *gin.RouterGroup, protected *gin.RouterGroup, store media.Store) {
	handler := &MediaHandler{store: store}

	public.GET("/media/:key", handler.Get)

	protectedMedia := protected.Group("/media")
	{
		protectedMedia.POST("", handler.Upload)
		protectedMedia.DELETE("/:key", handler.Delete)
	}
}

// Upload accepts a multipart file, re-encodes images to bounded JPEG, and
// stores the object under a fresh uuid key. The returned reference is what
// posts and profiles carry in their media fields.
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("File is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds maximum size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "image/") {
		compressed, err := media.CompressImage(data)
		if err != nil {
			c.Error(apperror.BadRequest("File is not a valid image"))
			return
		}
		data = compressed
		contentType = "image/jpeg"
	}

	key := uuid.NewString()
	if err := h.store.Put(c.Request.Context(), key, contentType, bytes.NewReader(data)); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusCreated, "File uploaded", gin.H{
		"key": key,
		"url": "/v1/media/" + key,
	})
}

func (h *MediaHandler) Get(c *gin.Context) {
	data, contentType, err := h.store.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.Error(apperror.NotFound("Media not found"))
		return
	}
	c.Data(http.StatusOK, contentType, data)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("key")); err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusOK, "Media deleted", nil)
}
