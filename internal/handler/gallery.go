package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"photodrop/internal/auth"
	"photodrop/internal/student"
)

// Gallery lists the logged-in student's photos with short-lived signed URLs.
// The reference comes from the session token only. When photos are not Ready
// the response carries a status message and no listing.
func (h *Handler) Gallery(c *gin.Context) {
	s, ok := h.sessionStudent(c)
	if !ok {
		return
	}
	if s.PhotoStatus != student.PhotoReady {
		c.JSON(http.StatusOK, gin.H{
			"message": "Your photos are being processed! Please check back soon.",
			"status":  s.PhotoStatus,
		})
		return
	}

	photos, err := h.gallery.Photos(c.Request.Context(), s.Reference, studentURLTTL)
	if err != nil {
		log.Printf("gallery listing failed for %s: %v", s.Reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo listing unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// DownloadAll streams every Ready photo as one zip archive. Fetches are
// sequential; a failed photo is skipped and the archive continues.
func (h *Handler) DownloadAll(c *gin.Context) {
	s, ok := h.sessionStudent(c)
	if !ok {
		return
	}
	if s.PhotoStatus != student.PhotoReady {
		c.JSON(http.StatusConflict, gin.H{
			"message": "Your photos are being processed! Please check back soon.",
			"status":  s.PhotoStatus,
		})
		return
	}

	photos, err := h.gallery.Photos(c.Request.Context(), s.Reference, studentURLTTL)
	if err != nil {
		log.Printf("gallery listing failed for %s: %v", s.Reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo listing unavailable"})
		return
	}

	c.Header("Content-Type", "application/zip")
	c.Header("Content-Disposition", `attachment; filename="photos.zip"`)
	c.Status(http.StatusOK)

	added, err := h.bundler.WriteZip(c.Request.Context(), c.Writer, photos)
	if err != nil {
		// Headers are long gone; all we can do is log and cut the stream.
		log.Printf("zip stream failed for %s after %d photos: %v", s.Reference, added, err)
		return
	}
	zipDownloadsTotal.Inc()
	log.Printf("zip download for %s: %d/%d photos", s.Reference, added, len(photos))
}

// AdminGallery lists any student's photos for the dashboard, with longer-lived
// signed URLs and file ids so entries can be deleted.
func (h *Handler) AdminGallery(c *gin.Context) {
	reference, err := h.students.NormalizeReference(c.Param("reference"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.students.GetByReference(c.Request.Context(), reference)
	if err != nil {
		h.serviceError(c, "admin gallery lookup", err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}

	photos, err := h.gallery.Photos(c.Request.Context(), reference, adminURLTTL)
	if err != nil {
		log.Printf("admin gallery listing failed for %s: %v", reference, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "photo listing unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos, "photo_status": s.PhotoStatus})
}

// sessionStudent resolves the student bound to the current session cookie.
func (h *Handler) sessionStudent(c *gin.Context) (*student.Student, bool) {
	claims, ok := auth.FromContext(c)
	if !ok || claims.Subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	s, err := h.students.GetByReference(c.Request.Context(), claims.Subject)
	if err != nil {
		h.serviceError(c, "session lookup", err)
		return nil, false
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return nil, false
	}
	return s, true
}
