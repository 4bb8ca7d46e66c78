// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/baraza/auth"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/models"
)

const testSecret = "test-session-secret"

func newStore(kv kvstore.Store) *Store {
	return NewStore(kv, Options{Secret: testSecret, TTL: time.Hour})
}

func TestLoad_Empty(t *testing.T) {
	s := newStore(kvstore.NewMemory())

	got := s.Load(context.Background())
	if got != models.LoggedOut() {
		t.Errorf("Load() on empty storage = %+v, want logged out", got)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	kv := kvstore.NewMemory()
	ctx := context.Background()

	if err := newStore(kv).Login(ctx, models.RoleAdmin); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// A fresh store simulates a new process reading the same storage
	got := newStore(kv).Load(ctx)
	want := models.Session{Authenticated: true, Role: models.RoleAdmin}
	if got != want {
		t.Errorf("Load() after Login(admin) = %+v, want %+v", got, want)
	}
}

func TestLogin_UpdatesCurrent(t *testing.T) {
	s := newStore(kvstore.NewMemory())

	if err := s.Login(context.Background(), models.RoleCitizen); err != nil {
		t.Fatal(err)
	}
	if got := s.Current(); !got.Authenticated || got.Role != models.RoleCitizen {
		t.Errorf("Current() = %+v, want authenticated citizen", got)
	}
}

func TestLogin_InvalidRole(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newStore(kv)

	if err := s.Login(context.Background(), models.RoleAny); err == nil {
		t.Error("expected error for role any")
	}
	if kv.Len() != 0 {
		t.Errorf("storage written on invalid login: %d keys", kv.Len())
	}
	if s.Current().Authenticated {
		t.Error("session changed on invalid login")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	kv := kvstore.NewMemory()
	s := newStore(kv)
	ctx := context.Background()

	if err := s.Login(ctx, models.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Logout(ctx); err != nil {
			t.Fatalf("Logout() #%d error = %v", i+1, err)
		}
		if got := s.Current(); got != models.LoggedOut() {
			t.Errorf("Current() after Logout #%d = %+v, want logged out", i+1, got)
		}
		if kv.Len() != 0 {
			t.Errorf("residual keys after Logout #%d: %d", i+1, kv.Len())
		}
	}

	if got := newStore(kv).Load(ctx); got != models.LoggedOut() {
		t.Errorf("Load() after Logout = %+v, want logged out", got)
	}
}

func TestLoad_Malformed(t *testing.T) {
	ctx := context.Background()
	expired, _ := auth.IssueSessionToken(testSecret, models.RoleAdmin, -time.Minute)
	foreign, _ := auth.IssueSessionToken("another-secret", models.RoleAdmin, time.Hour)
	citizen, _ := auth.IssueSessionToken(testSecret, models.RoleCitizen, time.Hour)

	tests := []struct {
		name  string
		token string
		role  string
	}{
		{"placeholder token", "dummy-token", "admin"},
		{"expired token", expired, "admin"},
		{"foreign secret", foreign, "admin"},
		{"role escalated in storage", citizen, "admin"},
		{"unknown role", citizen, "superuser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemory()
			kv.Set(ctx, KeyToken, tt.token)
			kv.Set(ctx, KeyRole, tt.role)

			if got := newStore(kv).Load(ctx); got != models.LoggedOut() {
				t.Errorf("Load() = %+v, want logged out", got)
			}
		})
	}
}

func TestLoad_MissingRoleDefaultsToCitizen(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemory()
	token, _ := auth.IssueSessionToken(testSecret, models.RoleCitizen, time.Hour)
	kv.Set(ctx, KeyToken, token)

	got := newStore(kv).Load(ctx)
	if !got.Authenticated || got.Role != models.RoleCitizen {
		t.Errorf("Load() = %+v, want authenticated citizen", got)
	}
}

func TestNamespaces_AreIndependent(t *testing.T) {
	kv := kvstore.NewMemory()
	ctx := context.Background()

	a := NewStore(kv, Options{Namespace: "client:a:", Secret: testSecret})
	b := NewStore(kv, Options{Namespace: "client:b:", Secret: testSecret})

	if err := a.Login(ctx, models.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if got := b.Load(ctx); got.Authenticated {
		t.Errorf("namespace b sees namespace a's session: %+v", got)
	}
	if _, err := kv.Get(ctx, "client:a:"+KeyToken); err != nil {
		t.Errorf("expected namespaced token key: %v", err)
	}
}

// failingKV fails every write
type failingKV struct{ kvstore.Store }

func (failingKV) Set(context.Context, string, string) error { return errors.New("disk full") }

func TestLogin_StorageFailureLeavesSession(t *testing.T) {
	s := newStore(failingKV{kvstore.NewMemory()})

	if err := s.Login(context.Background(), models.RoleAdmin); err == nil {
		t.Fatal("expected error when storage fails")
	}
	if got := s.Current(); got != models.LoggedOut() {
		t.Errorf("Current() = %+v, want unchanged logged out session", got)
	}
}

// tokenWriteFails rejects writes to the token key only
type tokenWriteFails struct{ kvstore.Store }

func (k tokenWriteFails) Set(ctx context.Context, key, value string) error {
	if key == KeyToken {
		return errors.New("disk full")
	}
	return k.Store.Set(ctx, key, value)
}

func TestLogin_TokenFailureRestoresRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		prior    models.Role
		wantRole string
	}{
		{"previous session kept", models.RoleCitizen, string(models.RoleCitizen)},
		{"no previous session", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := kvstore.NewMemory()
			if tt.prior != "" {
				if err := newStore(kv).Login(ctx, tt.prior); err != nil {
					t.Fatal(err)
				}
			}

			if err := newStore(tokenWriteFails{kv}).Login(ctx, models.RoleAdmin); err == nil {
				t.Fatal("expected error when the token write fails")
			}

			got, err := kv.Get(ctx, KeyRole)
			if tt.wantRole == "" {
				if !errors.Is(err, kvstore.ErrNotFound) {
					t.Errorf("role key = %q, %v; want removed", got, err)
				}
				return
			}
			if got != tt.wantRole {
				t.Errorf("role key = %q, want %q", got, tt.wantRole)
			}

			// The earlier session still loads intact
			want := models.Session{Authenticated: true, Role: tt.prior}
			if s := newStore(kv).Load(ctx); s != want {
				t.Errorf("Load() = %+v, want %+v", s, want)
			}
		})
	}
}
