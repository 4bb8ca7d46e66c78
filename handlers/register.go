// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/portal"
	"github.com/danielhkuo/baraza/wizard"
)

// registerPath is the route that guards the sign-up wizard
const registerPath = "/register"

// registrationState is the wizard state plus the live password meter
type registrationState struct {
	wizard.State[models.RegistrationFields]
	PasswordStrength portal.PasswordStrength `json:"passwordStrength"`
}

type RegisterHandler struct {
	reg *portal.Registry
}

func NewRegisterHandler(reg *portal.Registry) *RegisterHandler {
	return &RegisterHandler{reg: reg}
}

func (h *RegisterHandler) guard(w http.ResponseWriter, r *http.Request) (*portal.Workspace, bool) {
	ws, ok := workspace(h.reg, w, r)
	if !ok {
		return nil, false
	}
	if !allow(h.reg, ws, w, registerPath) {
		return nil, false
	}
	return ws, true
}

func stateOf(ws *portal.Workspace) registrationState {
	st := ws.Registration.State()
	strength := portal.ScorePassword(st.Fields.Password)
	st.Fields = st.Fields.Redacted()
	return registrationState{
		State:            st,
		PasswordStrength: strength,
	}
}

// Get handles GET /register
func (h *RegisterHandler) Get(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stateOf(ws))
}

// Put handles PUT /register
// Replaces the registration fields. Changing the constituency clears a
// ward that no longer belongs to it.
func (h *RegisterHandler) Put(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}

	var fields models.RegistrationFields
	if err := middleware.ParseJSONBody(r, &fields); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ws.Registration.Draft().Replace(fields)
	middleware.JSONResponse(w, http.StatusOK, stateOf(ws))
}

// Next handles POST /register/next
// Validates the current step and advances; 422 when the step is invalid
func (h *RegisterHandler) Next(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}

	code := http.StatusOK
	if errs := ws.Registration.Next(); len(errs) > 0 {
		code = http.StatusUnprocessableEntity
	}
	middleware.JSONResponse(w, code, stateOf(ws))
}

// Back handles POST /register/back
func (h *RegisterHandler) Back(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}
	ws.Registration.Back()
	middleware.JSONResponse(w, http.StatusOK, stateOf(ws))
}

// Submit handles POST /register/submit
// Only available on the final step. Success signs the new citizen in.
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}

	res, err := ws.SubmitRegistration(r.Context())
	if errors.Is(err, wizard.ErrNotFinalStep) {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	submitted(w, res, stateOf(ws))
}

// Reset handles POST /register/reset
func (h *RegisterHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.guard(w, r)
	if !ok {
		return
	}
	ws.Registration.Reset()
	middleware.JSONResponse(w, http.StatusOK, stateOf(ws))
}
