package handler

import (
	"github.com/gin-gonic/gin"

	"photodrop/internal/auth"
)

// RegisterRoutes mounts the REST API. Registration and the existence probe
// are open (the public sign-up form posts to them); everything that mutates
// state or reveals records sits behind the admin session, and the gallery
// behind the student session.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/student", h.Register)
	api.POST("/student/check", h.Check)

	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.POST("/admin/login", h.AdminLogin)

	studentSession := api.Group("", auth.StudentAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	studentSession.GET("/gallery", h.Gallery)
	studentSession.GET("/gallery/download", h.DownloadAll)

	admin := api.Group("", auth.AdminAuth(h.cfg.JWTSigningKey, h.cfg.JWTIssuer))
	admin.GET("/student/:id", h.Get)
	admin.GET("/students", h.List)
	admin.POST("/student/status", h.Status)
	admin.POST("/payment", h.Payment)
	admin.POST("/imagekit-auth", h.UploadAuth)
	admin.GET("/admin/gallery/:reference", h.AdminGallery)
	admin.DELETE("/image/:imageId", h.DeleteImage)
}
