// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kvstore is the durable key-value storage behind the session store.

Implementations:

  - Memory: in-process map, for tests and -t memory
  - SQL: kv_record table on SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq)
  - Redis: plain string keys under a prefix (go-redis)

Get returns ErrNotFound for a missing key. Delete of a missing key succeeds.
*/
package kvstore
