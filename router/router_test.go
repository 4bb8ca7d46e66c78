// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/baraza/db"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	mux := NewRouter(reg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	mux := NewRouter(reg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "baraza API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	mux := NewRouter(reg)

	// 400, 401, 404 and 422 are all valid depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/session"},
		{"POST", "/session/login"},
		{"POST", "/session/demo-login"},
		{"POST", "/session/logout"},
		{"GET", "/navigate?path=/about"},

		{"GET", "/forms"},
		{"GET", "/forms/contact"},
		{"PUT", "/forms/contact"},
		{"POST", "/forms/contact/submit"},
		{"POST", "/forms/contact/reset"},
		{"DELETE", "/forms/contact/error"},

		{"GET", "/register"},
		{"PUT", "/register"},
		{"POST", "/register/next"},
		{"POST", "/register/back"},
		{"POST", "/register/submit"},
		{"POST", "/register/reset"},

		{"GET", "/notifications"},
		{"DELETE", "/notifications/some-id"},

		{"GET", "/geo/constituencies"},
		{"GET", "/geo/wards/Tetu"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	mux := NewRouter(reg)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to submit endpoint", "PUT", "/forms/login/submit", http.StatusMethodNotAllowed},
		{"POST to notifications", "POST", "/notifications", http.StatusMethodNotAllowed},
		{"escaped constituency", "GET", "/geo/wards/Nyeri%20Town", http.StatusOK},
		{"unknown form", "GET", "/forms/survey", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

// client drives a test server with a cookie jar, like a browser tab
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()

	var payload string
	if body != nil {
		data, _ := json.Marshal(body)
		payload = string(data)
	}
	req, err := http.NewRequest(method, c.base+path, strings.NewReader(payload))
	if err != nil {
		c.t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// TestCitizenWorkflow walks a visitor through the portal:
// 1. Anonymous visitor is refused the issue form
// 2. Signs in with credentials
// 3. Reports an issue
// 4. Reads and dismisses the notices
// 5. Signs out and is refused again
func TestCitizenWorkflow(t *testing.T) {
	reg, backend := testutil.SetupTestRegistry(t)
	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	c := newClient(t, srv)

	// Step 1: Gate refuses the anonymous visitor
	var denied models.DeniedResponse
	if code := c.do("GET", "/forms/issue-report", nil, &denied); code != http.StatusUnauthorized {
		t.Fatalf("Step 1 - expected 401, got %d", code)
	}
	if denied.Redirect != "/login" {
		t.Errorf("Step 1 - expected redirect to /login, got %q", denied.Redirect)
	}

	// Step 2: Sign in
	var login models.SubmitResponse
	creds := models.LoginFields{Email: "kamau@example.com", Password: "any-password"}
	if code := c.do("POST", "/session/login", creds, &login); code != http.StatusOK {
		t.Fatalf("Step 2 - login failed: %d", code)
	}
	if login.Redirect != "/citizen/dashboard" {
		t.Errorf("Step 2 - expected redirect to /citizen/dashboard, got %q", login.Redirect)
	}

	// Step 3: Report an issue
	report := models.IssueReportFields{
		Category:    models.CategoryLighting,
		Title:       "Street light out",
		Description: "The light at the Kamakwa junction has been off for days",
		Location:    "Kamakwa",
		Priority:    models.PriorityMedium,
	}
	if code := c.do("PUT", "/forms/issue-report", report, nil); code != http.StatusOK {
		t.Fatalf("Step 3 - PUT failed: %d", code)
	}
	if code := c.do("POST", "/forms/issue-report/submit", nil, nil); code != http.StatusOK {
		t.Fatalf("Step 3 - submit failed: %d", code)
	}
	if len(backend.Records("issue")) != 1 {
		t.Error("Step 3 - issue not stored")
	}

	// Step 4: Notices for the login and the report
	var notices []models.NoticeResponse
	c.do("GET", "/notifications", nil, &notices)
	if len(notices) != 2 {
		t.Fatalf("Step 4 - expected 2 notices, got %d", len(notices))
	}
	if code := c.do("DELETE", "/notifications/"+notices[0].ID, nil, nil); code != http.StatusNoContent {
		t.Errorf("Step 4 - dismiss returned %d", code)
	}

	// Step 5: Sign out
	var session models.SessionResponse
	c.do("POST", "/session/logout", nil, &session)
	if session.Session.Authenticated || session.Home != "/" {
		t.Errorf("Step 5 - expected logged out session, got %+v", session)
	}
	if code := c.do("GET", "/forms/issue-report", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("Step 5 - expected 401 after logout, got %d", code)
	}
	notices = nil
	c.do("GET", "/notifications", nil, &notices)
	if len(notices) != 0 {
		t.Errorf("Step 5 - expected notices cleared on logout, got %d", len(notices))
	}
}

func TestClientsAreIsolated(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	srv := httptest.NewServer(NewRouter(reg))
	defer srv.Close()

	admin := newClient(t, srv)
	visitor := newClient(t, srv)

	admin.do("POST", "/session/demo-login", models.DemoLoginRequest{Role: models.RoleAdmin}, nil)

	var s models.SessionResponse
	visitor.do("GET", "/session", nil, &s)
	if s.Session.Authenticated {
		t.Error("Expected the second client to stay anonymous")
	}
	admin.do("GET", "/session", nil, &s)
	if !s.Session.Authenticated || s.Home != "/admin/dashboard" {
		t.Errorf("Expected admin session, got %+v", s)
	}
}

// TestSessionSurvivesRestart signs in, then serves the same client from a
// fresh registry over the same SQLite file
func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baraza.db")
	ctx := context.Background()

	open := func() kvstore.Store {
		conn, err := db.Open(ctx, db.DriverSQLite, "file:"+path)
		if err != nil {
			t.Fatalf("Failed to open sqlite: %v", err)
		}
		t.Cleanup(func() { conn.Close() })
		if err := db.CreateSchema(conn); err != nil {
			t.Fatal(err)
		}
		return kvstore.NewSQL(conn, db.DriverSQLite)
	}

	clientID := testutil.NewClientID()
	cookie := &http.Cookie{Name: middleware.ClientCookie, Value: clientID}

	first, _ := testutil.SetupTestRegistryWithStore(t, open())
	req := testutil.MakeRequest("POST", "/session/demo-login", models.DemoLoginRequest{Role: models.RoleAdmin}, clientID)
	w := httptest.NewRecorder()
	NewRouter(first).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("demo login failed: %d", w.Code)
	}

	second, _ := testutil.SetupTestRegistryWithStore(t, open())
	req = httptest.NewRequest("GET", "/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	NewRouter(second).ServeHTTP(w, req)

	var s models.SessionResponse
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	if !s.Session.Authenticated || s.Session.Role != models.RoleAdmin {
		t.Errorf("Expected admin session after restart, got %+v", s.Session)
	}
}
