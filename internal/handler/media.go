package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photodrop/internal/imagekit"
)

// UploadAuth mints one set of browser-direct upload credentials together with
// the target folder for the given student. The browser sends the bytes to the
// hosting service itself; this server never relays them.
func (h *Handler) UploadAuth(c *gin.Context) {
	var req struct {
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}
	reference, err := h.students.NormalizeReference(req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := h.media.UploadAuth(h.cfg.UploadAuthTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":     params.Token,
		"expire":    params.Expire,
		"signature": params.Signature,
		"folder":    imagekit.Folder(reference) + "/",
	})
}

// DeleteImage removes one hosted object. Delete is idempotent: a missing or
// already-deleted object still reports success, and other hosted-service
// failures are logged but not surfaced, matching the admin UI's fire-and-forget
// batch deletes.
func (h *Handler) DeleteImage(c *gin.Context) {
	imageID := c.Param("imageId")
	if imageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image id required"})
		return
	}

	if err := h.media.DeleteFile(c.Request.Context(), imageID); err != nil {
		log.Printf("image delete %s failed: %v", imageID, err)
	}
	if ref := c.Query("reference"); ref != "" {
		if norm, err := h.students.NormalizeReference(ref); err == nil {
			h.gallery.Invalidate(c.Request.Context(), norm)
		}
	}
	imageDeletesTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
