// Package gallery assembles per-student photo listings and bundles them into
// downloadable archives. Image bytes live on the hosted file service; this
// package only handles listings, signed URLs and the zip stream.
package gallery

import (
	"context"
	"encoding/json"
	"time"

	"photodrop/internal/cache"
	"photodrop/internal/imagekit"
)

// Lister is the slice of the hosted-service client the gallery needs.
type Lister interface {
	ListFiles(ctx context.Context, folder string) ([]imagekit.File, error)
	SignedURL(path string, ttl time.Duration) string
}

// Photo is one gallery entry handed to clients.
type Photo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Service lists a student's photos with short-lived signed URLs. Listings are
// cached briefly to absorb gallery polling; URLs are signed fresh per call so
// their expiry is never eaten by cache age.
type Service struct {
	media    Lister
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewService creates a gallery service.
func NewService(media Lister, c cache.Cache, cacheTTL time.Duration) *Service {
	return &Service{media: media, cache: c, cacheTTL: cacheTTL}
}

// Photos returns signed gallery entries for a student reference.
func (s *Service) Photos(ctx context.Context, reference string, urlTTL time.Duration) ([]Photo, error) {
	folder := imagekit.Folder(reference)

	files, ok := s.cachedListing(ctx, folder)
	if !ok {
		var err error
		files, err = s.media.ListFiles(ctx, folder)
		if err != nil {
			return nil, err
		}
		s.storeListing(ctx, folder, files)
	}

	photos := make([]Photo, 0, len(files))
	for _, f := range files {
		photos = append(photos, Photo{
			ID:   f.ID,
			Name: f.Name,
			URL:  s.media.SignedURL(f.Path, urlTTL),
		})
	}
	return photos, nil
}

// Invalidate drops the cached listing for a reference, used after deletes.
func (s *Service) Invalidate(ctx context.Context, reference string) {
	if s.cache != nil {
		s.cache.Delete(ctx, imagekit.Folder(reference))
	}
}

func (s *Service) cachedListing(ctx context.Context, folder string) ([]imagekit.File, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, folder)
	if !ok {
		return nil, false
	}
	var files []imagekit.File
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, false
	}
	return files, true
}

func (s *Service) storeListing(ctx context.Context, folder string, files []imagekit.File) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(files)
	if err != nil {
		return
	}
	s.cache.Set(ctx, folder, raw, s.cacheTTL)
}
