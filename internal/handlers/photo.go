package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Ajayrajc1998/wedding/internal/services"
	"github.com/Ajayrajc1998/wedding/internal/ws"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photoService *services.PhotoService
	hub          *ws.Hub
}

func NewPhotoHandler(photoService *services.PhotoService, hub *ws.Hub) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, hub: hub}
}

// UploadPhoto godoc
// @Summary      Upload a photo
// @Description  At most 5 photos per first/last name; uploads must be enabled by the admin
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        first_name formData string true "First name"
// @Param        last_name formData string true "Last name"
// @Param        phone_number formData string true "Phone number"
// @Param        file formData file true "Image file"
// @Success      200 {object} services.UploadResult
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /upload_photo [post]
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	firstName := formOrQuery(c, "first_name")
	lastName := formOrQuery(c, "last_name")
	phone := formOrQuery(c, "phone_number")
	if firstName == "" || lastName == "" || phone == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "first_name, last_name and phone_number are required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no file provided"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read file"})
		return
	}
	defer f.Close()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, h.photoService.MaxBytes()+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read file"})
		return
	}

	result, err := h.photoService.Upload(c.Request.Context(), services.PhotoInput{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
		Filename:    file.Filename,
		Data:        data,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: ws.EventPhotoUploaded, Data: gin.H{
		"id":         result.ID,
		"filename":   result.Filename,
		"first_name": firstName,
		"last_name":  lastName,
	}})
	c.JSON(http.StatusOK, result)
}

// ListPhotos godoc
// @Summary      List photo metadata
// @Tags         photos
// @Produce      json
// @Success      200 {array} UploadedPhoto
// @Failure      403 {object} ErrorResponse
// @Router       /photos [get]
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	photos, err := h.photoService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// GetPhoto godoc
// @Summary      Download a photo
// @Tags         photos
// @Produce      image/jpeg
// @Produce      image/png
// @Param        id path int true "Photo ID"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Router       /photos/{id} [get]
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	id, ok := parseID(c, "photo")
	if !ok {
		return
	}

	photo, err := h.photoService.Download(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", photo.Filename))
	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// DeletePhoto godoc
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Photo ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /upload_photo/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	id, ok := parseID(c, "photo")
	if !ok {
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: ws.EventPhotoDeleted, Data: gin.H{"id": id}})
	c.JSON(http.StatusOK, MessageResponse{Message: "Photo deleted successfully"})
}

func formOrQuery(c *gin.Context, key string) string {
	if v := strings.TrimSpace(c.PostForm(key)); v != "" {
		return v
	}
	return strings.TrimSpace(c.Query(key))
}
