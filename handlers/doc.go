// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Baraza API.

# Handler Types

Each handler is a struct holding the workspace registry:

  - SessionHandler: Session state, sign-in, logout and navigation
  - FormHandler: Single-page forms (login, issue report, profile, ...)
  - RegisterHandler: The three-step registration wizard
  - NotificationHandler: Transient status notices
  - GeoHandler: Constituency and ward lists

Handlers are created via constructor functions:

	formHandler := handlers.NewFormHandler(reg)

# Clients

Every handler except GeoHandler must run behind middleware.WithClient.
The baraza_client cookie selects the caller's workspace: its session,
notices and one draft per form.

# Gate

Form and wizard handlers evaluate the route table for the form's path
before touching the draft. Refusals carry the redirect target:

	401 Unauthorized  anonymous user, redirect to /login
	403 Forbidden     signed-in user with the wrong role, redirect to /login
	409 Conflict      any other redirect (e.g. a signed-in user on /login)

# Submissions

	POST /session/login       → SessionHandler.Login
	POST /forms/{form}/submit → FormHandler.Submit
	POST /register/submit     → RegisterHandler.Submit

The status reflects the outcome: 200 succeeded, 422 invalid, 409 ignored
(already submitting, or a closed edit-in-place form) and 502 failed. The
body always carries the form state after the attempt.
*/
package handlers
