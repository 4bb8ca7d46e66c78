// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package wizard sequences a form.Draft across ordered steps. Next checks
// only the current step; Back never validates; Submit is reachable only
// from the last step and re-checks every step.
package wizard
