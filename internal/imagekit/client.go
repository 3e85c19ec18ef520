// Package imagekit is a thin client for the ImageKit REST API. The service
// holds the actual image bytes; this side only lists folders, mints signed
// URLs and upload credentials, and deletes objects.
package imagekit

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client calls the ImageKit management and delivery APIs.
type Client struct {
	Endpoint   string // delivery endpoint, e.g. https://ik.imagekit.io/acme
	APIURL     string // management API, normally https://api.imagekit.io
	PublicKey  string
	PrivateKey string
	HTTP       *http.Client

	now func() time.Time
}

// New creates a client with a request timeout.
func New(endpoint, apiURL, publicKey, privateKey string) *Client {
	return &Client{
		Endpoint:   strings.TrimRight(endpoint, "/"),
		APIURL:     strings.TrimRight(apiURL, "/"),
		PublicKey:  publicKey,
		PrivateKey: privateKey,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// File is one stored object.
type File struct {
	ID   string `json:"fileId"`
	Name string `json:"name"`
	Path string `json:"filePath"`
	Type string `json:"type"`
}

// Folder returns the storage folder for a student reference. Non-alphanumeric
// characters are stripped because the hosting service rejects them in paths.
func Folder(reference string) string {
	var b strings.Builder
	for _, c := range reference {
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			b.WriteRune(c)
		}
	}
	return "photos/" + b.String()
}

// ListFiles lists objects under a folder, oldest first. Sub-folders in the
// response are filtered out.
func (c *Client) ListFiles(ctx context.Context, folder string) ([]File, error) {
	q := url.Values{}
	q.Set("path", "/"+strings.Trim(folder, "/"))
	q.Set("sort", "ASC_CREATED")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+"/v1/files?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.PrivateKey, "")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagekit: list request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("imagekit: list failed (%d): %s", resp.StatusCode, string(body))
	}

	var all []File
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, fmt.Errorf("imagekit: decode response failed: %w", err)
	}
	files := all[:0]
	for _, f := range all {
		if f.Type == "" || f.Type == "file" {
			files = append(files, f)
		}
	}
	return files, nil
}

// DeleteFile removes an object by id. A missing object counts as success so
// the operation is idempotent.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.APIURL+"/v1/files/"+url.PathEscape(fileID), nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.PrivateKey, "")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("imagekit: delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("imagekit: delete failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// SignedURL returns a time-limited delivery URL for a stored file path.
func (c *Client) SignedURL(path string, ttl time.Duration) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	expire := c.now().Add(ttl).Unix()
	full := c.Endpoint + path
	sig := c.sign(strings.TrimPrefix(full, c.Endpoint+"/") + strconv.FormatInt(expire, 10))
	return full + "?ik-t=" + strconv.FormatInt(expire, 10) + "&ik-s=" + sig
}

// AuthParams holds one-shot credentials for a browser-direct upload. One set
// is minted per file so long batches do not outlive the expiry.
type AuthParams struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// UploadAuth mints upload credentials valid for ttl.
func (c *Client) UploadAuth(ttl time.Duration) AuthParams {
	token := uuid.NewString()
	expire := c.now().Add(ttl).Unix()
	return AuthParams{
		Token:     token,
		Expire:    expire,
		Signature: c.sign(token + strconv.FormatInt(expire, 10)),
	}
}

// sign computes the hex HMAC-SHA1 of payload under the private key, the
// scheme ImageKit verifies for both uploads and signed delivery URLs.
func (c *Client) sign(payload string) string {
	h := hmac.New(sha1.New, []byte(c.PrivateKey))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
