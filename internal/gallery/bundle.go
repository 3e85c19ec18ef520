package gallery

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Bundler streams a set of photos into a single zip archive. Fetches run
// sequentially with a per-photo timeout; a failed fetch is logged and skipped
// and the archive continues with the remainder.
type Bundler struct {
	HTTP         *http.Client
	FetchTimeout time.Duration
}

// NewBundler creates a bundler with a per-photo fetch timeout.
func NewBundler(fetchTimeout time.Duration) *Bundler {
	return &Bundler{
		HTTP:         &http.Client{Timeout: fetchTimeout},
		FetchTimeout: fetchTimeout,
	}
}

// WriteZip writes each photo under a photos/ directory in the archive and
// returns how many made it in. The writer is typically the HTTP response;
// once bytes have gone out there is no way back, so errors past the first
// entry only end the stream early.
func (b *Bundler) WriteZip(ctx context.Context, w io.Writer, photos []Photo) (int, error) {
	zw := zip.NewWriter(w)
	added := 0
	seen := make(map[string]int)

	for _, photo := range photos {
		if ctx.Err() != nil {
			break
		}
		name := photo.Name
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%d-%s", n, name)
		}
		seen[photo.Name]++

		if err := b.addPhoto(ctx, zw, name, photo.URL); err != nil {
			log.Printf("bundle: skipping %s: %v", photo.Name, err)
			continue
		}
		added++
	}

	if err := zw.Close(); err != nil {
		return added, err
	}
	return added, nil
}

func (b *Bundler) addPhoto(ctx context.Context, zw *zip.Writer, name, url string) error {
	fetchCtx, cancel := context.WithTimeout(ctx, b.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := b.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fetch failed (%d)", resp.StatusCode)
	}

	entry, err := zw.Create("photos/" + name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, resp.Body)
	return err
}
