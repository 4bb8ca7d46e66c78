// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package portal

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/baraza/form"
	"github.com/danielhkuo/baraza/gate"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/notify"
	"github.com/danielhkuo/baraza/session"
	"github.com/danielhkuo/baraza/wizard"
)

type Config struct {
	SessionSecret string
	SessionTTL    time.Duration
	NoticeTTL     time.Duration
	SubmitTimeout time.Duration
	// IdleTTL is how long an unused workspace is kept; defaults to
	// DefaultIdleTTL.
	IdleTTL time.Duration
	Logger  *slog.Logger
}

// DefaultIdleTTL is the idle lifetime of a workspace when Config leaves it unset
const DefaultIdleTTL = 30 * time.Minute

// Result is the outcome of a submission as the presentation layer needs it
type Result struct {
	Outcome form.Outcome
	// Redirect is set when a successful submission changed the session.
	Redirect string
}

// Workspace is everything one client owns: its session, notices, one draft
// per form and the registration wizard.
type Workspace struct {
	ID           string
	Session      *session.Store
	Notices      *notify.Center
	Registration *wizard.Wizard[models.RegistrationFields]

	forms   map[string]Form
	table   *gate.Table
	backend Backend

	// lastUsed is guarded by the registry's mutex
	lastUsed time.Time
}

func newWorkspace(id string, kv kvstore.Store, table *gate.Table, backend Backend, cfg Config) *Workspace {
	w := &Workspace{
		ID: id,
		Session: session.NewStore(kv, session.Options{
			Namespace: "client:" + id + ":",
			Secret:    cfg.SessionSecret,
			TTL:       cfg.SessionTTL,
			Logger:    cfg.Logger,
		}),
		Notices: notify.NewCenter(cfg.NoticeTTL),
		table:   table,
		backend: backend,
	}

	opts := func(name, success string) form.Options {
		return form.Options{
			Name:           name,
			SuccessMessage: success,
			Timeout:        cfg.SubmitTimeout,
			Notifier:       w.Notices,
			Logger:         cfg.Logger,
		}
	}
	w.forms = w.buildForms(opts)

	steps := RegistrationSteps()
	regOpts := opts("register", "Registration successful!")
	regOpts.FailureMessage = registrationFailedMessage
	reg := form.New(models.RegistrationFields{SubscribeToUpdates: true}, wizard.Combine(steps...),
		form.SubmitFunc[models.RegistrationFields](w.register), regOpts)
	reg.SetReconciler(reconcileRegistration)
	w.Registration = wizard.New(reg, steps...)

	return w
}

// Form looks up a draft by name.
func (w *Workspace) Form(name string) (Form, error) {
	f, ok := w.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}
	return f, nil
}

// FormNames lists the workspace's forms in sorted order.
func (w *Workspace) FormNames() []string {
	names := make([]string, 0, len(w.forms))
	for name := range w.forms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Navigate evaluates the gate for the current session.
func (w *Workspace) Navigate(path string) gate.Decision {
	return w.table.Decide(w.Session.Current(), path)
}

// Home is the landing page for the current session.
func (w *Workspace) Home() string {
	s := w.Session.Current()
	if !s.Authenticated {
		return w.table.Landing
	}
	return w.table.Home(s.Role)
}

// SubmitForm submits the named form. A successful login redirects home.
func (w *Workspace) SubmitForm(ctx context.Context, name string) (Result, error) {
	f, err := w.Form(name)
	if err != nil {
		return Result{}, err
	}

	outcome, err := f.Submit(ctx)
	res := Result{Outcome: outcome}
	if outcome == form.OutcomeSucceeded && name == FormLogin {
		res.Redirect = w.Home()
	}
	return res, err
}

// SubmitRegistration submits the wizard. Success signs the new citizen in.
func (w *Workspace) SubmitRegistration(ctx context.Context) (Result, error) {
	outcome, err := w.Registration.Submit(ctx)
	res := Result{Outcome: outcome}
	if outcome == form.OutcomeSucceeded {
		res.Redirect = w.Home()
	}
	return res, err
}

// DemoLogin signs in with a role and no credentials.
func (w *Workspace) DemoLogin(ctx context.Context, role models.Role) (string, error) {
	if err := w.backend.DemoLogin(ctx, role); err != nil {
		return "", err
	}
	if err := w.Session.Login(ctx, role); err != nil {
		return "", err
	}
	w.Notices.Post(notify.LevelSuccess, fmt.Sprintf("Signed in as %s (demo)", role))
	return w.Home(), nil
}

// Logout ends the session and discards every draft.
func (w *Workspace) Logout(ctx context.Context) error {
	if err := w.Session.Logout(ctx); err != nil {
		return err
	}
	for _, f := range w.forms {
		f.Reset()
	}
	w.Registration.Reset()
	w.Notices.Clear()
	return nil
}

// Registry hands out workspaces by client ID.
type Registry struct {
	mu      sync.Mutex
	kv      kvstore.Store
	table   *gate.Table
	backend Backend
	cfg     Config
	clients map[string]*Workspace
}

func NewRegistry(kv kvstore.Store, table *gate.Table, backend Backend, cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	return &Registry{
		kv:      kv,
		table:   table,
		backend: backend,
		cfg:     cfg,
		clients: make(map[string]*Workspace),
	}
}

// NewClientID returns a fresh opaque client identifier.
func NewClientID() string {
	return uuid.NewString()
}

// Workspace returns the client's workspace, creating it and loading its
// session from storage on first use.
func (r *Registry) Workspace(ctx context.Context, clientID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.clients[clientID]; ok {
		w.lastUsed = time.Now()
		return w
	}
	w := newWorkspace(clientID, r.kv, r.table, r.backend, r.cfg)
	s := w.Session.Load(ctx)
	w.lastUsed = time.Now()
	r.clients[clientID] = w
	r.cfg.Logger.Info("workspace created", "client", clientID, "authenticated", s.Authenticated)
	return w
}

// Sweep drops workspaces unused for longer than the idle TTL as of now and
// returns how many it removed. Sessions stay in storage, so a returning
// client signs back in on its next request; its drafts and notices are gone.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, w := range r.clients {
		if now.Sub(w.lastUsed) > r.cfg.IdleTTL {
			delete(r.clients, id)
			removed++
		}
	}
	if removed > 0 {
		r.cfg.Logger.Info("idle workspaces evicted", "count", removed, "remaining", len(r.clients))
	}
	return removed
}

// StartSweeper runs Sweep every half idle TTL until ctx is cancelled
func (r *Registry) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.IdleTTL / 2)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				r.Sweep(now)
			}
		}
	}()
}

func (r *Registry) Table() *gate.Table {
	return r.table
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
