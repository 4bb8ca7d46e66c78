// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/portal"
	"github.com/danielhkuo/baraza/testutil"
)

// formState mirrors the JSON of form.State for any field type
type formState struct {
	Fields         json.RawMessage   `json:"fields"`
	Errors         map[string]string `json:"errors"`
	Status         string            `json:"status"`
	Submitting     bool              `json:"submitting"`
	Closed         bool              `json:"closed"`
	SuccessMessage string            `json:"successMessage"`
	ErrorMessage   string            `json:"errorMessage"`
}

type wizardState struct {
	formState
	CurrentStep      int                     `json:"currentStep"`
	TotalSteps       int                     `json:"totalSteps"`
	StepName         string                  `json:"stepName"`
	PasswordStrength portal.PasswordStrength `json:"passwordStrength"`
}

type submitResponse[S any] struct {
	Outcome  string `json:"outcome"`
	Redirect string `json:"redirect"`
	Form     S      `json:"form"`
}

// demoLogin signs the client in through the session handler
func demoLogin(t *testing.T, reg *portal.Registry, clientID string, role models.Role) {
	t.Helper()

	h := NewSessionHandler(reg)
	req := testutil.MakeRequest("POST", "/session/demo-login", models.DemoLoginRequest{Role: role}, clientID)
	w := testutil.Serve(h.DemoLogin, req)
	if w.Code != http.StatusOK {
		t.Fatalf("demo login as %s failed: %d - %s", role, w.Code, w.Body.String())
	}
}
