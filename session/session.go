// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/baraza/auth"
	"github.com/danielhkuo/baraza/kvstore"
	"github.com/danielhkuo/baraza/models"
)

// Storage keys, relative to the store's namespace
const (
	KeyToken = "authToken"
	KeyRole  = "userRole"
)

type Options struct {
	// Namespace prefixes both keys, e.g. "client:<id>:".
	Namespace string
	// Secret signs session tokens. Required.
	Secret string
	// TTL is the token lifetime; zero means no expiry.
	TTL    time.Duration
	Logger *slog.Logger
}

// Store is the single source of truth for who is using the portal.
// Login and Logout persist before returning.
type Store struct {
	mu      sync.Mutex
	kv      kvstore.Store
	opts    Options
	logger  *slog.Logger
	current models.Session
}

func NewStore(kv kvstore.Store, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, opts: opts, logger: logger, current: models.LoggedOut()}
}

func (s *Store) key(name string) string {
	return s.opts.Namespace + name
}

// Load reads durable storage and makes the result current.
// A missing, expired or inconsistent record loads as logged out; Load
// never fails.
func (s *Store) Load(ctx context.Context) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.read(ctx)
	return s.current
}

func (s *Store) read(ctx context.Context) models.Session {
	token, err := s.kv.Get(ctx, s.key(KeyToken))
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.Error("session read failed", "namespace", s.opts.Namespace, "error", err)
		}
		return models.LoggedOut()
	}

	claims, err := auth.ParseSessionToken(s.opts.Secret, token)
	if err != nil {
		s.logger.Info("discarding session token", "namespace", s.opts.Namespace, "error", err)
		return models.LoggedOut()
	}

	// Missing role defaults to citizen; a present role must agree with the token
	role := models.RoleCitizen
	stored, err := s.kv.Get(ctx, s.key(KeyRole))
	switch {
	case err == nil:
		role = models.Role(stored)
	case !errors.Is(err, kvstore.ErrNotFound):
		s.logger.Error("session read failed", "namespace", s.opts.Namespace, "error", err)
		return models.LoggedOut()
	}
	if role != claims.Role {
		s.logger.Info("discarding session with mismatched role",
			"namespace", s.opts.Namespace, "stored", role, "token", claims.Role)
		return models.LoggedOut()
	}

	return models.Session{Authenticated: true, Role: role}
}

// Current returns the in-memory session without touching storage
func (s *Store) Current() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login signs the user in with role. On a storage error the current
// session is left unchanged.
func (s *Store) Login(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("cannot log in with role %q", role)
	}

	token, err := auth.IssueSessionToken(s.opts.Secret, role, s.opts.TTL)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := s.kv.Get(ctx, s.key(KeyRole))
	hadRole := err == nil
	if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return fmt.Errorf("failed to read session: %w", err)
	}

	// Role first: a token without its role would load as a citizen
	if err := s.kv.Set(ctx, s.key(KeyRole), string(role)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.kv.Set(ctx, s.key(KeyToken), token); err != nil {
		s.restoreRole(ctx, prev, hadRole)
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.current = models.Session{Authenticated: true, Role: role}
	s.logger.Info("session started", "namespace", s.opts.Namespace, "role", role)
	return nil
}

// restoreRole puts back the role stored before a failed Login so the
// previous record stays whole.
func (s *Store) restoreRole(ctx context.Context, prev string, hadRole bool) {
	var err error
	if hadRole {
		err = s.kv.Set(ctx, s.key(KeyRole), prev)
	} else {
		err = s.kv.Delete(ctx, s.key(KeyRole))
	}
	if err != nil {
		s.logger.Error("session rollback failed", "namespace", s.opts.Namespace, "error", err)
	}
}

// Logout clears the session and removes both keys. Calling it again is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.LoggedOut()

	// Token first: without it the record already reads as logged out
	if err := s.kv.Delete(ctx, s.key(KeyToken)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, s.key(KeyRole)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info("session ended", "namespace", s.opts.Namespace)
	return nil
}
