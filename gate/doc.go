// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gate decides whether a navigation renders its view or redirects.

The route table is YAML (routes.yaml is embedded as the default; a file can
replace it at startup):

	landing: /
	login: /login
	homes: {citizen: /citizen/dashboard, admin: /admin/dashboard}
	routes:
	  - {path: /login, view: login, entry_point: true}
	  - {path: /admin/users, view: user-management, requires_auth: true, role: admin}

Decide is evaluated in order:

 1. Public route: render, except an entry point for a signed-in user, which
    redirects to the role's home.
 2. Protected route, anonymous session: redirect to login.
 3. Protected route, wrong role: redirect to login.
 4. Unknown path: the role's home when signed in, the landing page otherwise.
*/
package gate
