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

type FormHandler struct {
	reg *portal.Registry
}

func NewFormHandler(reg *portal.Registry) *FormHandler {
	return &FormHandler{reg: reg}
}

// lookup resolves the {form} path value and checks the gate for it
func (h *FormHandler) lookup(w http.ResponseWriter, r *http.Request) (*portal.Workspace, portal.Form, bool) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return nil, nil, false
	}

	f, err := ws.Form(r.PathValue("form"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return nil, nil, false
	}
	if !allow(h.reg, ws, w, f.Path()) {
		return nil, nil, false
	}
	return ws, f, true
}

// List handles GET /forms
// Lists every form and whether the current session may use it
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return
	}

	names := ws.FormNames()
	infos := make([]models.FormInfo, 0, len(names))
	for _, name := range names {
		f, _ := ws.Form(name)
		d := ws.Navigate(f.Path())
		infos = append(infos, models.FormInfo{
			Name:     name,
			Path:     f.Path(),
			Allowed:  d.Redirect == "",
			Redirect: d.Redirect,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, infos)
}

// Get handles GET /forms/{form}
// Returns the working copy, errors and status
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// Put handles PUT /forms/{form}
// Replaces the working copy with the request body. On edit-in-place forms
// this opens the form for editing.
func (h *FormHandler) Put(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if !loadBody(w, r, f, true) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// Submit handles POST /forms/{form}/submit
// Validates and submits the working copy, replaced first by the body when
// one is sent. The status reflects the outcome: 200 succeeded, 422
// invalid, 409 ignored, 502 failed.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ws, f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if !loadBody(w, r, f, false) {
		return
	}

	res, err := ws.SubmitForm(r.Context(), f.Name())
	if err != nil {
		slog.Debug("form submit rejected", "client", ws.ID, "form", f.Name(), "outcome", res.Outcome, "error", err)
	}
	submitted(w, res, f.State())
}

// Reset handles POST /forms/{form}/reset
// Discards edits, errors and messages
func (h *FormHandler) Reset(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	f.Reset()
	middleware.JSONResponse(w, http.StatusOK, f.State())
}

// DismissError handles DELETE /forms/{form}/error
// Hides the failure banner; fields and field errors stay
func (h *FormHandler) DismissError(w http.ResponseWriter, r *http.Request) {
	_, f, ok := h.lookup(w, r)
	if !ok {
		return
	}
	f.DismissError()
	middleware.JSONResponse(w, http.StatusOK, f.State())
}
