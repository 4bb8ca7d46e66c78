// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package portal wires the portal's forms to the session, the gate and the
notification center.

Each client gets a Workspace:

	ws := registry.Workspace(ctx, clientID)
	ws.Session        // session.Store namespaced "client:<id>:"
	ws.Notices        // notify.Center
	ws.Registration   // three-step sign-up wizard
	ws.Form("issue-report")

Forms and the routes that guard them:

	login            /login
	issue-report     /citizen/report-issue
	consultation     /admin/consultations
	profile          /citizen/profile
	password         /citizen/profile
	user             /admin/users (edit-in-place)
	forum-topic      /citizen/forum
	forgot-password  /forgot-password
	contact          /contact

Submissions go to a Backend. SimulatedBackend answers after a fixed delay,
accepts admin@nyeri.gov.ke / admin123 as the administrator and any other
non-empty credentials as a citizen, except for accounts registered through
the wizard, whose password is checked.
*/
package portal
