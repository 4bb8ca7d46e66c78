// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Baraza API.

# Route Registration

NewRouter wraps a configured http.ServeMux in middleware.WithClient, so
every request carries a client ID:

	handler := router.NewRouter(reg)

# Endpoints

Health:

	GET /health

Session and navigation:

	GET  /session             - Current session and home path
	POST /session/login       - Sign in with email and password
	POST /session/demo-login  - Sign in with a role, no credentials
	POST /session/logout      - Sign out and discard drafts
	GET  /navigate?path=...   - Gate decision for a path

Forms (gated by the route table):

	GET    /forms               - List forms and access
	GET    /forms/{form}        - Draft state
	PUT    /forms/{form}        - Replace the working copy
	POST   /forms/{form}/submit - Validate and submit, optionally replacing the fields
	POST   /forms/{form}/reset  - Discard edits
	DELETE /forms/{form}/error  - Dismiss the failure banner

Registration wizard:

	GET  /register         - Wizard state and password strength
	PUT  /register         - Replace the fields
	POST /register/next    - Validate the step and advance
	POST /register/back    - Previous step
	POST /register/submit  - Submit (final step only)
	POST /register/reset   - Start over

Notifications:

	GET    /notifications      - Active notices
	DELETE /notifications/{id} - Dismiss a notice

Location lists (public):

	GET /geo/constituencies
	GET /geo/wards/{constituency}
*/
package router
