// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/danielhkuo/baraza/form"
	"github.com/danielhkuo/baraza/gate"
	"github.com/danielhkuo/baraza/middleware"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/portal"
)

// workspace resolves the caller's workspace from the client cookie.
// Handlers must run behind middleware.WithClient.
func workspace(reg *portal.Registry, w http.ResponseWriter, r *http.Request) (*portal.Workspace, bool) {
	id := middleware.ClientID(r.Context())
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "client cookie required")
		return nil, false
	}
	return reg.Workspace(r.Context(), id), true
}

// allow evaluates the gate for path and writes the refusal when the
// session may not use it.
func allow(reg *portal.Registry, ws *portal.Workspace, w http.ResponseWriter, path string) bool {
	d := ws.Navigate(path)
	if d.Redirect == "" {
		return true
	}
	denied(w, reg.Table(), ws.Session.Current(), d)
	return false
}

// denied maps a refused decision onto a status: 401 for anonymous users
// sent to login, 403 for a signed-in user with the wrong role and 409 for
// everything else (e.g. a signed-in user opening the login form).
func denied(w http.ResponseWriter, table *gate.Table, s models.Session, d gate.Decision) {
	code := http.StatusConflict
	if d.Redirect == table.Login {
		code = http.StatusUnauthorized
		if s.Authenticated {
			code = http.StatusForbidden
		}
	}
	middleware.JSONResponse(w, code, models.DeniedResponse{
		Error:    http.StatusText(code),
		Redirect: d.Redirect,
	})
}

// maxFormBody bounds form bodies; attachments travel as metadata only
const maxFormBody = 1 << 20

// loadBody replaces the form's working copy with the request body. An
// empty body is accepted unless required, and leaves the draft as it is.
func loadBody(w http.ResponseWriter, r *http.Request, f portal.Form, required bool) bool {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 && !required {
		return true
	}
	if err := f.Load(data); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// submitted writes the outcome of a submit attempt with the form state
func submitted(w http.ResponseWriter, res portal.Result, state any) {
	middleware.JSONResponse(w, outcomeStatus(res.Outcome), models.SubmitResponse{
		Outcome:  string(res.Outcome),
		Redirect: res.Redirect,
		Form:     state,
	})
}

// outcomeStatus is the HTTP status reported for a submit attempt
func outcomeStatus(o form.Outcome) int {
	switch o {
	case form.OutcomeSucceeded:
		return http.StatusOK
	case form.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case form.OutcomeIgnored:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
