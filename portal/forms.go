// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/baraza/form"
	"github.com/danielhkuo/baraza/models"
)

var ErrUnknownForm = errors.New("unknown form")

// Form names
const (
	FormLogin          = "login"
	FormIssueReport    = "issue-report"
	FormConsultation   = "consultation"
	FormProfile        = "profile"
	FormPassword       = "password"
	FormUser           = "user"
	FormForumTopic     = "forum-topic"
	FormForgotPassword = "forgot-password"
	FormContact        = "contact"
)

const (
	loginFailedMessage        = "Invalid email or password. Please try again."
	registrationFailedMessage = "Registration failed. Please try again."
)

// Form is a draft of any field type, addressed by name.
type Form interface {
	Name() string
	// Path is the route whose gate decision guards the form.
	Path() string
	State() any
	// Load replaces the working copy with JSON-encoded fields.
	Load(data []byte) error
	Submit(ctx context.Context) (form.Outcome, error)
	Reset()
	DismissError()
}

type entry[T any] struct {
	name        string
	path        string
	editInPlace bool
	draft       *form.Draft[T]
}

func (e *entry[T]) Name() string { return e.name }
func (e *entry[T]) Path() string { return e.path }
// State is the draft state as shown to clients, with secrets blanked
func (e *entry[T]) State() any {
	st := e.draft.State()
	if r, ok := any(st.Fields).(interface{ Redacted() T }); ok {
		st.Fields = r.Redacted()
	}
	return st
}
func (e *entry[T]) Reset() { e.draft.Reset() }
func (e *entry[T]) DismissError() { e.draft.DismissError() }

func (e *entry[T]) Load(data []byte) error {
	var fields T
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("invalid %s fields: %w", e.name, err)
	}
	if e.editInPlace {
		e.draft.Open(fields)
	} else {
		e.draft.Replace(fields)
	}
	return nil
}

func (e *entry[T]) Submit(ctx context.Context) (form.Outcome, error) {
	return e.draft.Submit(ctx)
}

func newEntry[T any](name, path string, d *form.Draft[T], editInPlace bool) *entry[T] {
	return &entry[T]{name: name, path: path, draft: d, editInPlace: editInPlace}
}

// buildForms creates one draft per form for a workspace.
func (w *Workspace) buildForms(opts func(name, success string) form.Options) map[string]Form {
	b := w.backend

	login := form.New(models.LoginFields{}, nil,
		form.SubmitFunc[models.LoginFields](w.login), withFailure(opts(FormLogin, "Welcome back!"), loginFailedMessage))

	issue := form.New(models.IssueReportFields{Priority: models.PriorityMedium}, validateIssueReport,
		form.SubmitFunc[models.IssueReportFields](func(ctx context.Context, f models.IssueReportFields) (string, error) {
			id, err := b.ReportIssue(ctx, f)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Issue reported successfully! Reference %s.", id[:8]), nil
		}), opts(FormIssueReport, "Issue reported successfully!"))

	consultation := form.New(models.ConsultationFields{}, validateConsultation,
		form.SubmitFunc[models.ConsultationFields](func(ctx context.Context, f models.ConsultationFields) (string, error) {
			_, err := b.CreateConsultation(ctx, f)
			return "", err
		}), opts(FormConsultation, "Consultation created successfully!"))

	profile := form.New(models.ProfileFields{}, validateProfile,
		form.SubmitFunc[models.ProfileFields](func(ctx context.Context, f models.ProfileFields) (string, error) {
			return "", b.UpdateProfile(ctx, f)
		}), opts(FormProfile, "Profile updated successfully!"))
	profile.SetReconciler(reconcileProfile)

	password := form.New(models.PasswordChangeFields{}, validatePasswordChange,
		form.SubmitFunc[models.PasswordChangeFields](func(ctx context.Context, f models.PasswordChangeFields) (string, error) {
			return "", b.ChangePassword(ctx, f)
		}), opts(FormPassword, "Password changed successfully!"))

	userOpts := opts(FormUser, "User saved successfully!")
	userOpts.EditInPlace = true
	user := form.New(models.UserFields{}, validateUser,
		form.SubmitFunc[models.UserFields](func(ctx context.Context, f models.UserFields) (string, error) {
			_, err := b.SaveUser(ctx, f)
			return "", err
		}), userOpts)
	user.SetReconciler(reconcileUser)

	topic := form.New(models.ForumTopicFields{}, validateForumTopic,
		form.SubmitFunc[models.ForumTopicFields](func(ctx context.Context, f models.ForumTopicFields) (string, error) {
			_, err := b.CreateTopic(ctx, f)
			return "", err
		}), opts(FormForumTopic, "Discussion topic posted!"))

	forgot := form.New(models.ForgotPasswordFields{}, validateForgotPassword,
		form.SubmitFunc[models.ForgotPasswordFields](func(ctx context.Context, f models.ForgotPasswordFields) (string, error) {
			return "", b.RequestPasswordReset(ctx, f.Email)
		}), withFailure(opts(FormForgotPassword, "Password reset instructions have been sent to your email."),
		"Failed to send reset email. Please try again."))

	contact := form.New(models.ContactFields{}, validateContact,
		form.SubmitFunc[models.ContactFields](func(ctx context.Context, f models.ContactFields) (string, error) {
			return "", b.SendMessage(ctx, f)
		}), opts(FormContact, "Thank you for your message! We will get back to you soon."))

	forms := []Form{
		newEntry(FormLogin, "/login", login, false),
		newEntry(FormIssueReport, "/citizen/report-issue", issue, false),
		newEntry(FormConsultation, "/admin/consultations", consultation, false),
		newEntry(FormProfile, "/citizen/profile", profile, false),
		newEntry(FormPassword, "/citizen/profile", password, false),
		newEntry(FormUser, "/admin/users", user, true),
		newEntry(FormForumTopic, "/citizen/forum", topic, false),
		newEntry(FormForgotPassword, "/forgot-password", forgot, false),
		newEntry(FormContact, "/contact", contact, false),
	}
	out := make(map[string]Form, len(forms))
	for _, f := range forms {
		out[f.Name()] = f
	}
	return out
}

func withFailure(o form.Options, msg string) form.Options {
	o.FailureMessage = msg
	return o
}

// login signs the workspace in on valid credentials.
func (w *Workspace) login(ctx context.Context, f models.LoginFields) (string, error) {
	role, err := w.backend.Authenticate(ctx, f.Email, f.Password)
	if err != nil {
		return "", &form.SubmissionError{Message: loginFailedMessage, Err: err}
	}
	if err := w.Session.Login(ctx, role); err != nil {
		return "", err
	}
	return "", nil
}

// register creates the account and signs the new citizen in.
func (w *Workspace) register(ctx context.Context, f models.RegistrationFields) (string, error) {
	if err := w.backend.Register(ctx, f); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return "", &form.SubmissionError{Message: "An account with this email already exists.", Err: err}
		}
		return "", err
	}
	if err := w.Session.Login(ctx, models.RoleCitizen); err != nil {
		return "", err
	}
	return "Registration successful! Welcome to Baraza.", nil
}
