// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Baraza API server.

Baraza is a civic participation portal for Nyeri County: citizens report
issues, join consultations and forum discussions; administrators manage
issues, consultations and users. This server holds the portal's client
state (sessions, route gating, form drafts, the registration wizard and
notifications) and forwards submissions to a simulated backend.

# Starting the Server

	SESSION_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d file:baraza.db --session-secret ...

# Configuration

Settings come from flags, then the environment, then a .env file:

  - SESSION_SECRET (--session-secret): Signs session tokens (required)
  - DATABASE_TYPE (-t): memory, sqlite (default), postgres or redis
  - DATABASE_URL (-d): DSN for the session store
  - ROUTES_FILE (--routes): YAML route table replacing the built-in one
  - PORT (-p): Server port (default: 3318)
  - CORS_ORIGINS (--origins): Frontends allowed credentialed calls
  - SESSION_TTL, NOTICE_TTL, SUBMIT_TIMEOUT, WORKSPACE_TTL, SIMULATED_LATENCY

# Architecture

  - handlers: HTTP request handlers (session, forms, wizard, notices, geo)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Client cookie, CORS, logging, JSON helpers
  - portal: Per-client workspaces, validators and the simulated backend
  - session: Persistent authentication state
  - gate: Route table and access decisions
  - form: Draft lifecycle and validation rules
  - wizard: Multi-step sequencing over a draft
  - notify: Transient notices
  - kvstore: Memory, SQL and Redis key-value stores
  - auth: Session tokens and password hashing
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
