// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/baraza/auth"
	"github.com/danielhkuo/baraza/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("an account with this email already exists")
)

// Demo administrator credentials
const (
	AdminEmail    = "admin@nyeri.gov.ke"
	adminPassword = "admin123"
)

// Backend is the portal API the forms submit to.
type Backend interface {
	Authenticate(ctx context.Context, email, password string) (models.Role, error)
	DemoLogin(ctx context.Context, role models.Role) error
	Register(ctx context.Context, f models.RegistrationFields) error
	ReportIssue(ctx context.Context, f models.IssueReportFields) (string, error)
	CreateConsultation(ctx context.Context, f models.ConsultationFields) (string, error)
	UpdateProfile(ctx context.Context, f models.ProfileFields) error
	ChangePassword(ctx context.Context, f models.PasswordChangeFields) error
	SaveUser(ctx context.Context, f models.UserFields) (string, error)
	CreateTopic(ctx context.Context, f models.ForumTopicFields) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	SendMessage(ctx context.Context, f models.ContactFields) error
}

// Record is a submission kept by SimulatedBackend
type Record struct {
	ID        string
	Kind      string
	Data      any
	CreatedAt time.Time
}

// SimulatedBackend answers every call after a fixed delay and keeps what it
// receives in memory.
type SimulatedBackend struct {
	latency time.Duration

	mu        sync.Mutex
	adminHash string
	accounts  map[string]string // email -> bcrypt hash
	records   map[string]Record
}

func NewSimulatedBackend(latency time.Duration) (*SimulatedBackend, error) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &SimulatedBackend{
		latency:   latency,
		adminHash: hash,
		accounts:  make(map[string]string),
		records:   make(map[string]Record),
	}, nil
}

func (b *SimulatedBackend) wait(ctx context.Context) error {
	if b.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(b.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate accepts the demo administrator, registered accounts with
// their password, and any other non-empty pair as a citizen.
func (b *SimulatedBackend) Authenticate(ctx context.Context, email, password string) (models.Role, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	email = normalizeEmail(email)
	if email == AdminEmail {
		if auth.CheckPassword(b.adminHash, password) != nil {
			// Wrong admin password falls through to a citizen sign-in
			return models.RoleCitizen, nil
		}
		return models.RoleAdmin, nil
	}

	b.mu.Lock()
	hash, registered := b.accounts[email]
	b.mu.Unlock()
	if registered && auth.CheckPassword(hash, password) != nil {
		return "", ErrInvalidCredentials
	}
	return models.RoleCitizen, nil
}

func (b *SimulatedBackend) DemoLogin(ctx context.Context, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", role)
	}
	return b.wait(ctx)
}

func (b *SimulatedBackend) Register(ctx context.Context, f models.RegistrationFields) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		return err
	}

	email := normalizeEmail(f.Email)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[email]; ok || email == AdminEmail {
		return ErrAccountExists
	}
	b.accounts[email] = hash

	f.Password, f.ConfirmPassword = "", ""
	b.storeLocked("registration", f)
	slog.Info("account registered", "constituency", f.Constituency, "ward", f.Ward)
	return nil
}

func (b *SimulatedBackend) ReportIssue(ctx context.Context, f models.IssueReportFields) (string, error) {
	return b.store(ctx, "issue", f)
}

func (b *SimulatedBackend) CreateConsultation(ctx context.Context, f models.ConsultationFields) (string, error) {
	return b.store(ctx, "consultation", f)
}

func (b *SimulatedBackend) UpdateProfile(ctx context.Context, f models.ProfileFields) error {
	_, err := b.store(ctx, "profile", f)
	return err
}

func (b *SimulatedBackend) ChangePassword(ctx context.Context, f models.PasswordChangeFields) error {
	return b.wait(ctx)
}

func (b *SimulatedBackend) SaveUser(ctx context.Context, f models.UserFields) (string, error) {
	if f.ID == "" {
		return b.store(ctx, "user", f)
	}
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[f.ID] = Record{ID: f.ID, Kind: "user", Data: f, CreatedAt: time.Now()}
	return f.ID, nil
}

func (b *SimulatedBackend) CreateTopic(ctx context.Context, f models.ForumTopicFields) (string, error) {
	return b.store(ctx, "forum-topic", f)
}

func (b *SimulatedBackend) RequestPasswordReset(ctx context.Context, email string) error {
	return b.wait(ctx)
}

func (b *SimulatedBackend) SendMessage(ctx context.Context, f models.ContactFields) error {
	_, err := b.store(ctx, "contact", f)
	return err
}

func (b *SimulatedBackend) store(ctx context.Context, kind string, data any) (string, error) {
	if err := b.wait(ctx); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.storeLocked(kind, data), nil
}

func (b *SimulatedBackend) storeLocked(kind string, data any) string {
	id := uuid.NewString()
	b.records[id] = Record{ID: id, Kind: kind, Data: data, CreatedAt: time.Now()}
	return id
}

// Records returns the stored submissions of one kind.
func (b *SimulatedBackend) Records(kind string) []Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Record
	for _, r := range b.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
