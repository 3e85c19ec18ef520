// Package handler exposes the REST surface: admin registration, payment and
// status routes, student login, and the gallery endpoints.
package handler

import (
	"context"
	"time"

	"photodrop/internal/config"
	"photodrop/internal/gallery"
	"photodrop/internal/imagekit"
	"photodrop/internal/student"
)

// Signed-URL lifetimes: short for the student gallery, longer for the admin
// review screen where uploads and deletes happen in the same sitting.
const (
	studentURLTTL = 10 * time.Minute
	adminURLTTL   = time.Hour
)

// Media is the slice of the hosted-service client the handlers call directly.
type Media interface {
	UploadAuth(ttl time.Duration) imagekit.AuthParams
	DeleteFile(ctx context.Context, fileID string) error
}

// Handler holds the wired services behind the REST routes.
type Handler struct {
	cfg      config.App
	students *student.Service
	gallery  *gallery.Service
	media    Media
	bundler  *gallery.Bundler
}

// New creates a handler.
func New(cfg config.App, students *student.Service, g *gallery.Service, media Media, bundler *gallery.Bundler) *Handler {
	return &Handler{
		cfg:      cfg,
		students: students,
		gallery:  g,
		media:    media,
		bundler:  bundler,
	}
}

func (h *Handler) secureCookies() bool {
	return h.cfg.Env == "production" || h.cfg.Env == "prod"
}
