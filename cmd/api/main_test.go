package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"photodrop/internal/store"
)

func probeHealthz(t *testing.T, dbPing func(context.Context) error, redisClient *store.Redis) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", healthzHandler(dbPing, redisClient))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode healthz body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestHealthzMemoryBackendIgnoresRedis(t *testing.T) {
	okPing := func(context.Context) error { return nil }

	w, body := probeHealthz(t, okPing, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz without redis = %d, want 200", w.Code)
	}
	if _, ok := body["redis"]; ok {
		t.Fatalf("redis reported despite memory backend: %v", body)
	}
	if body["db"] != true {
		t.Fatalf("db = %v", body["db"])
	}
}

func TestHealthzReportsRedisOutage(t *testing.T) {
	okPing := func(context.Context) error { return nil }
	// Port 1 is never listening; the ping fails immediately.
	dead := store.NewRedis("127.0.0.1:1")

	w, body := probeHealthz(t, okPing, dead)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("healthz with dead redis = %d, want 503", w.Code)
	}
	if body["redis"] != false || body["status"] != "degraded" {
		t.Fatalf("body = %v", body)
	}
}

func TestHealthzReportsDBOutage(t *testing.T) {
	badPing := func(context.Context) error { return errors.New("no database") }

	w, body := probeHealthz(t, badPing, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("healthz with dead db = %d, want 503", w.Code)
	}
	if body["db"] != false {
		t.Fatalf("body = %v", body)
	}
}
