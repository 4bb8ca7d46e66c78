// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the signed-in state of one portal client.

	store := session.NewStore(kv, session.Options{
		Namespace: "client:" + clientID + ":",
		Secret:    cfg.SessionSecret,
		TTL:       cfg.SessionTTL,
	})
	s := store.Load(ctx)             // {Authenticated, Role}
	err := store.Login(ctx, models.RoleAdmin)
	err = store.Logout(ctx)

Two keys are written per namespace: authToken (a signed session token, see
package auth) and userRole. Their presence means signed in. Load treats a
missing, expired, forged or inconsistent record as logged out and never
returns an error. Login and Logout change both keys together and persist
before returning; Logout is idempotent and leaves no keys behind.

The store is the only place the session changes. Pass it explicitly to
whatever needs it.
*/
package session
