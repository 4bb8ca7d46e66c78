// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/portal"
)

type SessionHandler struct {
	reg *portal.Registry
}

func NewSessionHandler(reg *portal.Registry) *SessionHandler {
	return &SessionHandler{reg: reg}
}

// Get handles GET /session
// Returns the current session and where it lands
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Session: ws.Session.Current(),
		Home:    ws.Home(),
	})
}

// Login handles POST /session/login
// Loads the credentials into the login form and submits it
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	f, err := ws.Form(portal.FormLogin)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !allow(h.reg, ws, w, f.Path()) {
		return
	}
	if !loadBody(w, r, f, true) {
		return
	}

	res, err := ws.SubmitForm(r.Context(), portal.FormLogin)
	if err != nil {
		slog.Info("login rejected", "client", ws.ID, "outcome", res.Outcome, "error", err)
	}
	submitted(w, res, f.State())
}

// DemoLogin handles POST /session/demo-login
// Signs in with the requested role and no credentials. Like Login it is
// only open to anonymous sessions.
func (h *SessionHandler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}
	if !allow(h.reg, ws, w, h.reg.Table().Login) {
		return
	}

	var req models.DemoLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !req.Role.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "role must be one of: citizen, admin")
		return
	}

	home, err := ws.DemoLogin(r.Context(), req.Role)
	if err != nil {
		slog.Error("demo login failed", "client", ws.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Session: ws.Session.Current(),
		Home:    home,
	})
}

// Logout handles POST /session/logout
// Ends the session and discards every draft; safe to repeat
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	if err := ws.Logout(r.Context()); err != nil {
		slog.Error("logout failed", "client", ws.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		Session: ws.Session.Current(),
		Home:    ws.Home(),
	})
}

// Navigate handles GET /navigate?path=/citizen/dashboard
// Returns the view to render or the path to redirect to
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "path query parameter required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ws.Navigate(path))
}
