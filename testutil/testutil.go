// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/baraza/cliparse"
	"github.com/danielhkuo/baraza/gate"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/portal"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  cliparse.StorageMemory,
		SessionSecret: "test-session-secret",
		SessionTTL:    time.Hour,
		NoticeTTL:     time.Minute,
		SubmitTimeout: 5 * time.Second,
		WorkspaceTTL:  time.Hour,
	}
}

// PortalConfig maps a server configuration onto the workspace settings
func PortalConfig(cfg cliparse.Config) portal.Config {
	return portal.Config{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		NoticeTTL:     cfg.NoticeTTL,
		SubmitTimeout: cfg.SubmitTimeout,
		IdleTTL:       cfg.WorkspaceTTL,
	}
}

// SetupTestRegistry builds a registry over an in-memory store with the
// built-in route table and a backend that answers immediately
func SetupTestRegistry(t *testing.T) (*portal.Registry, *portal.SimulatedBackend) {
	t.Helper()
	return SetupTestRegistryWithStore(t, kvstore.NewMemory())
}

// SetupTestRegistryWithStore is SetupTestRegistry over the given store,
// for tests that restart the server on the same storage
func SetupTestRegistryWithStore(t *testing.T, kv kvstore.Store) (*portal.Registry, *portal.SimulatedBackend) {
	t.Helper()

	backend, err := portal.NewSimulatedBackend(0)
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	return portal.NewRegistry(kv, gate.Default(), backend, PortalConfig(GetTestConfig())), backend
}

// NewClientID returns a client ID suitable for the client cookie
func NewClientID() string {
	return uuid.NewString()
}

// MakeRequest creates an HTTP test request carrying the client cookie
func MakeRequest(method, path string, body interface{}, clientID string) *http.Request {
	var req *http.Request
	if body != nil {
		var data []byte
		if raw, ok := body.(string); ok {
			data = []byte(raw)
		} else {
			data, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if clientID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: clientID})
	}
	return req
}

// Serve runs a handler behind the client middleware and records the response
func Serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	middleware.WithClient(h).ServeHTTP(w, req)
	return w
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
