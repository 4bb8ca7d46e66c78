// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: memory, sqlite, postgres or redis (default: sqlite)
  - DatabaseURL: DSN for the session store (default for sqlite: file:baraza.db)
  - SessionSecret: HMAC secret for session tokens (required)
  - RoutesFile: YAML route table replacing the built-in one (optional)
  - SessionTTL: session token lifetime (default: 24h)
  - NoticeTTL: notification lifetime (default: 3s)
  - SubmitTimeout: form submission timeout (default: 10s)
  - SimulatedLatency: simulated backend delay (default: 1.5s)

# CLI Flags

	-p               Server port
	-t               Storage type
	-d               Database URL
	-routes          Route table file
	-env             dotenv file (default: .env)
	-session-secret  Session secret
	-session-ttl, -notice-ttl, -submit-timeout, -latency

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_TYPE     → -t
	DATABASE_URL      → -d
	ROUTES_FILE       → -routes
	SESSION_SECRET    → -session-secret
	SESSION_TTL       → -session-ttl
	NOTICE_TTL        → -notice-ttl
	SUBMIT_TIMEOUT    → -submit-timeout
	SIMULATED_LATENCY → -latency

CLI flags take precedence over environment variables. Before the fallback,
the dotenv file is loaded with godotenv; it never overrides variables that
are already set. A missing dotenv file is not an error.

# Validation

ParseFlags returns an error if:

  - SESSION_SECRET is missing
  - DATABASE_URL is missing for postgres or redis
  - a port, storage type or duration does not parse
*/
package cliparse
