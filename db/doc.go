// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL session store and creates its schema.

# Connecting

	conn, err := db.Open(ctx, db.DriverSQLite, "file:baraza.db")
	conn, err := db.Open(ctx, db.DriverPostgres, "postgres://...")

Open pings the database before returning. SQLite connections are limited to
one open connection so writes never contend.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - kv_record: one row per durable key (record_key, record_value, updated_at)

The session store writes two keys per client, authToken and userRole,
through kvstore.SQL.
*/
package db
