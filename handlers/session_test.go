// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/baraza/gate"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/testutil"
)

func TestGetSession_NewClient(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	req := testutil.MakeRequest("GET", "/session", nil, "")
	w := testutil.Serve(handler.Get, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.ClientCookie {
		t.Errorf("Expected a %s cookie, got %v", middleware.ClientCookie, cookies)
	}

	var resp models.SessionResponse
	testutil.AssertJSON(t, w, &resp)
	want := models.SessionResponse{Session: models.LoggedOut(), Home: "/"}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSession_MissingClient(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	// Without WithClient there is no workspace to resolve
	req := testutil.MakeRequest("GET", "/session", nil, "")
	w := httptest.NewRecorder()
	handler.Get(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestGetSession_CookielessClientsAreSwept(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	for i := 0; i < 500; i++ {
		w := testutil.Serve(handler.Get, testutil.MakeRequest("GET", "/session", nil, ""))
		testutil.AssertStatus(t, w, http.StatusOK)
	}
	if reg.Len() != 500 {
		t.Fatalf("Expected 500 workspaces before the sweep, got %d", reg.Len())
	}

	reg.Sweep(time.Now().Add(2 * testutil.GetTestConfig().WorkspaceTTL))
	if reg.Len() != 0 {
		t.Errorf("Expected idle workspaces to be evicted, %d left", reg.Len())
	}
}

func TestDemoLogin(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedHome   string
	}{
		{
			name:           "admin",
			requestBody:    models.DemoLoginRequest{Role: models.RoleAdmin},
			expectedStatus: http.StatusOK,
			expectedHome:   "/admin/dashboard",
		},
		{
			name:           "citizen",
			requestBody:    models.DemoLoginRequest{Role: models.RoleCitizen},
			expectedStatus: http.StatusOK,
			expectedHome:   "/citizen/dashboard",
		},
		{
			name:           "any is not a session role",
			requestBody:    models.DemoLoginRequest{Role: models.RoleAny},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown role",
			requestBody:    `{"role":"superuser"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    `{bad`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientID := testutil.NewClientID()
			req := testutil.MakeRequest("POST", "/session/demo-login", tt.requestBody, clientID)
			w := testutil.Serve(handler.DemoLogin, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				ws := reg.Workspace(req.Context(), clientID)
				if ws.Session.Current().Authenticated {
					t.Error("Expected session to stay logged out")
				}
				return
			}

			var resp models.SessionResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Session.Authenticated {
				t.Error("Expected authenticated session")
			}
			if resp.Home != tt.expectedHome {
				t.Errorf("Expected home %s, got %s", tt.expectedHome, resp.Home)
			}
		})
	}
}

func TestLogout(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)
	clientID := testutil.NewClientID()

	demoLogin(t, reg, clientID, models.RoleAdmin)

	// Logging out twice is the same as once
	for i := 0; i < 2; i++ {
		req := testutil.MakeRequest("POST", "/session/logout", nil, clientID)
		w := testutil.Serve(handler.Logout, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Session != models.LoggedOut() || resp.Home != "/" {
			t.Errorf("logout %d: got %+v", i+1, resp)
		}
	}
}

func TestNavigate(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	citizen := testutil.NewClientID()
	demoLogin(t, reg, citizen, models.RoleCitizen)
	admin := testutil.NewClientID()
	demoLogin(t, reg, admin, models.RoleAdmin)

	tests := []struct {
		name     string
		clientID string
		path     string
		want     gate.Decision
	}{
		{"anonymous public page", testutil.NewClientID(), "/about", gate.Decision{View: "about"}},
		{"anonymous protected page", testutil.NewClientID(), "/citizen/dashboard", gate.Decision{Redirect: "/login"}},
		{"anonymous unknown page", testutil.NewClientID(), "/nowhere", gate.Decision{Redirect: "/"}},
		{"citizen on admin page", citizen, "/admin/users", gate.Decision{Redirect: "/login"}},
		{"citizen on login", citizen, "/login", gate.Decision{Redirect: "/citizen/dashboard"}},
		{"admin in citizen area", admin, "/citizen/forum", gate.Decision{View: "forum-discussion"}},
		{"admin trailing slash", admin, "/admin/analytics/", gate.Decision{View: "analytics-dashboard"}},
		{"admin unknown page", admin, "/nowhere", gate.Decision{Redirect: "/admin/dashboard"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/navigate?path="+tt.path, nil, tt.clientID)
			w := testutil.Serve(handler.Navigate, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var got gate.Decision
			testutil.AssertJSON(t, w, &got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decision mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("missing path", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/navigate", nil, testutil.NewClientID())
		w := testutil.Serve(handler.Navigate, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)

	tests := []struct {
		name             string
		requestBody      interface{}
		expectedStatus   int
		expectedRedirect string
		expectedRole     models.Role
	}{
		{
			name:             "citizen",
			requestBody:      models.LoginFields{Email: "wanjiru@example.com", Password: "secret"},
			expectedStatus:   http.StatusOK,
			expectedRedirect: "/citizen/dashboard",
			expectedRole:     models.RoleCitizen,
		},
		{
			name:             "admin",
			requestBody:      models.LoginFields{Email: "admin@nyeri.gov.ke", Password: "admin123"},
			expectedStatus:   http.StatusOK,
			expectedRedirect: "/admin/dashboard",
			expectedRole:     models.RoleAdmin,
		},
		{
			name:             "admin email with wrong password",
			requestBody:      models.LoginFields{Email: "admin@nyeri.gov.ke", Password: "guess"},
			expectedStatus:   http.StatusOK,
			expectedRedirect: "/citizen/dashboard",
			expectedRole:     models.RoleCitizen,
		},
		{
			name:           "missing password",
			requestBody:    models.LoginFields{Email: "wanjiru@example.com"},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "empty body",
			requestBody:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{bad",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientID := testutil.NewClientID()
			req := testutil.MakeRequest("POST", "/session/login", tt.requestBody, clientID)
			w := testutil.Serve(handler.Login, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp submitResponse[formState]
			testutil.AssertJSON(t, w, &resp)
			if resp.Redirect != tt.expectedRedirect {
				t.Errorf("Expected redirect %q, got %q", tt.expectedRedirect, resp.Redirect)
			}

			w = testutil.Serve(handler.Get, testutil.MakeRequest("GET", "/session", nil, clientID))
			var session models.SessionResponse
			testutil.AssertJSON(t, w, &session)
			if session.Session.Role != tt.expectedRole {
				t.Errorf("Expected role %s, got %s", tt.expectedRole, session.Session.Role)
			}
		})
	}
}

func TestLogin_AlreadySignedIn(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)
	clientID := testutil.NewClientID()
	demoLogin(t, reg, clientID, models.RoleCitizen)

	body := models.LoginFields{Email: "admin@nyeri.gov.ke", Password: "admin123"}
	w := testutil.Serve(handler.Login, testutil.MakeRequest("POST", "/session/login", body, clientID))

	testutil.AssertStatus(t, w, http.StatusConflict)
	var resp models.DeniedResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Redirect != "/citizen/dashboard" {
		t.Errorf("Expected redirect to /citizen/dashboard, got %q", resp.Redirect)
	}
}

func TestDemoLogin_AlreadySignedIn(t *testing.T) {
	reg, _ := testutil.SetupTestRegistry(t)
	handler := NewSessionHandler(reg)
	clientID := testutil.NewClientID()
	demoLogin(t, reg, clientID, models.RoleCitizen)

	req := testutil.MakeRequest("POST", "/session/demo-login", models.DemoLoginRequest{Role: models.RoleAdmin}, clientID)
	w := testutil.Serve(handler.DemoLogin, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
	var resp models.DeniedResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Redirect != "/citizen/dashboard" {
		t.Errorf("Expected redirect to /citizen/dashboard, got %q", resp.Redirect)
	}

	w = testutil.Serve(handler.Get, testutil.MakeRequest("GET", "/session", nil, clientID))
	var session models.SessionResponse
	testutil.AssertJSON(t, w, &session)
	if session.Session.Role != models.RoleCitizen {
		t.Errorf("Expected role to stay citizen, got %s", session.Session.Role)
	}
}
