// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// DefaultTTL is how long a notice stays visible unless dismissed
const DefaultTTL = 3 * time.Second

// Notice is one status message
type Notice struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	PostedAt  time.Time `json:"postedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center holds the active notices of one client. Posting never blocks
// and expired notices disappear on the next read.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	notices []Notice
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Post(level Level, message string) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := Notice{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		PostedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.notices = append(c.notices, n)
	return n
}

// Active returns the unexpired notices, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.notices = slices.DeleteFunc(c.notices, func(n Notice) bool {
		return !now.Before(n.ExpiresAt)
	})
	return slices.Clone(c.notices)
}

// Dismiss removes a notice early. It reports whether the notice was present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.notices)
	c.notices = slices.DeleteFunc(c.notices, func(n Notice) bool { return n.ID == id })
	return len(c.notices) != before
}

func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = nil
}
