// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/baraza/models"
)

var ErrInvalidTable = errors.New("invalid route table")

//go:embed routes.yaml
var defaultRoutes []byte

// Route describes one navigable view
type Route struct {
	Path         string      `yaml:"path" json:"path"`
	View         string      `yaml:"view" json:"view"`
	RequiresAuth bool        `yaml:"requires_auth" json:"requiresAuth"`
	Role         models.Role `yaml:"role" json:"role"`
	// EntryPoint routes (login, register) send signed-in users home.
	EntryPoint bool `yaml:"entry_point" json:"entryPoint"`
}

// Decision is either a view to render or a path to redirect to, never both.
type Decision struct {
	View     string `json:"view,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// Table is an immutable route table.
type Table struct {
	Landing string                 `yaml:"landing"`
	Login   string                 `yaml:"login"`
	Homes   map[models.Role]string `yaml:"homes"`
	Routes  []Route                `yaml:"routes"`

	index map[string]Route
}

// Load parses and validates a YAML route table.
func Load(data []byte) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a route table from disk.
func LoadFile(name string) (*Table, error) {
	data, err := os.ReadFile(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read route table: %w", err)
	}
	return Load(data)
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Load(defaultRoutes)
	if err != nil {
		panic(fmt.Sprintf("embedded route table: %v", err))
	}
	return t
})

// Default returns the portal's built-in route table.
func Default() *Table {
	return defaultTable()
}

func (t *Table) build() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...))
	}

	t.index = make(map[string]Route, len(t.Routes))
	for i, r := range t.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return invalid("route %d: path %q must start with /", i, r.Path)
		}
		if r.View == "" {
			return invalid("route %s: missing view", r.Path)
		}
		if r.Role == "" {
			r.Role = models.RoleAny
		}
		if r.Role != models.RoleAny && !r.Role.Valid() {
			return invalid("route %s: unknown role %q", r.Path, r.Role)
		}
		if r.Role != models.RoleAny && !r.RequiresAuth {
			return invalid("route %s: role %s requires requires_auth", r.Path, r.Role)
		}
		if r.EntryPoint && r.RequiresAuth {
			return invalid("route %s: an entry point cannot require auth", r.Path)
		}

		key := Clean(r.Path)
		if _, dup := t.index[key]; dup {
			return invalid("duplicate route %s", key)
		}
		r.Path = key
		t.Routes[i] = r
		t.index[key] = r
	}

	for name, p := range map[string]string{
		"landing":      t.Landing,
		"login":        t.Login,
		"citizen home": t.Homes[models.RoleCitizen],
		"admin home":   t.Homes[models.RoleAdmin],
	} {
		if _, ok := t.index[Clean(p)]; p == "" || !ok {
			return invalid("%s %q is not a route", name, p)
		}
	}
	return nil
}

// Clean normalizes a navigation target: query and fragment are dropped,
// trailing slashes removed, and an empty path becomes /.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Home is where a signed-in user with role lands.
func (t *Table) Home(role models.Role) string {
	if role == models.RoleAdmin {
		return t.Homes[models.RoleAdmin]
	}
	return t.Homes[models.RoleCitizen]
}

// Lookup finds the route for a path.
func (t *Table) Lookup(p string) (Route, bool) {
	r, ok := t.index[Clean(p)]
	return r, ok
}

// Decide resolves a navigation to p for session s. It has no side effects.
//
// A signed-in user with the wrong role is sent to login, the same as an
// anonymous one.
func (t *Table) Decide(s models.Session, p string) Decision {
	r, ok := t.Lookup(p)
	if !ok {
		if s.Authenticated {
			return Decision{Redirect: t.Home(s.Role)}
		}
		return Decision{Redirect: t.Landing}
	}

	if !r.RequiresAuth {
		if r.EntryPoint && s.Authenticated {
			return Decision{Redirect: t.Home(s.Role)}
		}
		return Decision{View: r.View}
	}

	if !s.Authenticated {
		return Decision{Redirect: t.Login}
	}
	if r.Role != models.RoleAny && r.Role != s.Role {
		return Decision{Redirect: t.Login}
	}
	return Decision{View: r.View}
}
