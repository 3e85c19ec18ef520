package imagekit

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testClient(apiURL string) *Client {
	c := New("https://ik.example.com/acme", apiURL, "public_key", "private_key")
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func TestFolder(t *testing.T) {
	cases := map[string]string{
		"9998887776":     "photos/9998887776",
		"+91 999 888 77": "photos/9199988877",
		"210-041-234":    "photos/210041234",
	}
	for ref, want := range cases {
		if got := Folder(ref); got != want {
			t.Errorf("Folder(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestListFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/files" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("path"); got != "/photos/9998887776" {
			t.Errorf("path param = %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "ASC_CREATED" {
			t.Errorf("sort param = %q", got)
		}
		user, _, ok := r.BasicAuth()
		if !ok || user != "private_key" {
			t.Errorf("basic auth user = %q", user)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"fileId":"f1","name":"a.jpg","filePath":"/photos/9998887776/a.jpg","type":"file"},
			{"fileId":"d1","name":"sub","filePath":"/photos/9998887776/sub","type":"folder"},
			{"fileId":"f2","name":"b.jpg","filePath":"/photos/9998887776/b.jpg","type":"file"}
		]`))
	}))
	defer srv.Close()

	files, err := testClient(srv.URL).ListFiles(context.Background(), "photos/9998887776")
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2 (folders filtered)", len(files))
	}
	if files[0].ID != "f1" || files[1].Name != "b.jpg" {
		t.Fatalf("unexpected files: %+v", files)
	}
}

func TestListFilesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ListFiles(context.Background(), "photos/x"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestDeleteFileIdempotent(t *testing.T) {
	var status int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/v1/files/file-123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	for _, status = range []int{http.StatusNoContent, http.StatusNotFound} {
		if err := c.DeleteFile(context.Background(), "file-123"); err != nil {
			t.Errorf("DeleteFile with %d: %v", status, err)
		}
	}
	status = http.StatusForbidden
	if err := c.DeleteFile(context.Background(), "file-123"); err == nil {
		t.Error("DeleteFile with 403 succeeded, want error")
	}
}

func TestSignedURL(t *testing.T) {
	c := testClient("https://api.imagekit.io")
	signed := c.SignedURL("/photos/9998887776/a.jpg", 10*time.Minute)

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	if !strings.HasPrefix(signed, "https://ik.example.com/acme/photos/9998887776/a.jpg?") {
		t.Fatalf("unexpected url: %s", signed)
	}

	expire := u.Query().Get("ik-t")
	wantExpire := strconv.FormatInt(time.Unix(1700000000, 0).Add(10*time.Minute).Unix(), 10)
	if expire != wantExpire {
		t.Fatalf("ik-t = %s, want %s", expire, wantExpire)
	}

	mac := hmac.New(sha1.New, []byte("private_key"))
	mac.Write([]byte("photos/9998887776/a.jpg" + expire))
	if want := hex.EncodeToString(mac.Sum(nil)); u.Query().Get("ik-s") != want {
		t.Fatalf("ik-s = %s, want %s", u.Query().Get("ik-s"), want)
	}
}

func TestUploadAuth(t *testing.T) {
	c := testClient("https://api.imagekit.io")
	params := c.UploadAuth(30 * time.Minute)

	if params.Token == "" {
		t.Fatal("empty token")
	}
	if want := time.Unix(1700000000, 0).Add(30 * time.Minute).Unix(); params.Expire != want {
		t.Fatalf("expire = %d, want %d", params.Expire, want)
	}

	mac := hmac.New(sha1.New, []byte("private_key"))
	mac.Write([]byte(params.Token + strconv.FormatInt(params.Expire, 10)))
	if want := hex.EncodeToString(mac.Sum(nil)); params.Signature != want {
		t.Fatalf("signature = %s, want %s", params.Signature, want)
	}

	// One set per file: tokens must differ between mints.
	if other := c.UploadAuth(30 * time.Minute); other.Token == params.Token {
		t.Fatal("tokens repeated across mints")
	}
}
