// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package notify keeps short-lived status messages ("Profile updated
// successfully!") for one client. Notices expire after a fixed lifetime,
// three seconds by default, or when dismissed.
package notify
