// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/danielhkuo/baraza/notify"
)

// Status is where a draft is in its lifecycle. Success and failure are
// idle states that remember how the last submission ended.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusFailure    Status = "failure"
)

// Outcome is the result of one Submit call
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

const (
	DefaultSuccessMessage = "Saved successfully!"
	DefaultFailureMessage = "Something went wrong. Please try again."
)

// Validator checks a whole record and reports every invalid field.
type Validator[T any] func(T) Errors

// Submitter performs the asynchronous operation behind a form. The returned
// string, when not empty, replaces the draft's success message.
type Submitter[T any] interface {
	Submit(ctx context.Context, fields T) (string, error)
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc[T any] func(ctx context.Context, fields T) (string, error)

func (f SubmitFunc[T]) Submit(ctx context.Context, fields T) (string, error) {
	return f(ctx, fields)
}

// Reconciler runs after every edit with the previous and edited record. It
// may reset fields in next that the edit made stale and reports them.
type Reconciler[T any] func(prev T, next *T) Errors

// Notifier receives the notices a draft posts.
type Notifier interface {
	Post(level notify.Level, message string) notify.Notice
}

type Options struct {
	// Name identifies the form in logs.
	Name           string
	SuccessMessage string
	// FailureMessage is shown for errors that are not a *SubmissionError.
	FailureMessage string
	// EditInPlace drafts close instead of clearing on success.
	EditInPlace bool
	// Timeout bounds each submission; zero means no limit.
	Timeout  time.Duration
	Notifier Notifier
	Logger   *slog.Logger
}

// State is a point-in-time copy of a draft.
type State[T any] struct {
	Fields         T      `json:"fields"`
	Errors         Errors `json:"errors"`
	Status         Status `json:"status"`
	Submitting     bool   `json:"submitting"`
	Closed         bool   `json:"closed,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// Draft is the working copy of one form. All methods are safe for
// concurrent use; at most one submission runs at a time.
type Draft[T any] struct {
	mu         sync.Mutex
	initial    T
	fields     T
	errors     Errors
	status     Status
	submitting bool
	closed     bool
	success    string
	failure    string

	validate  Validator[T]
	submitter Submitter[T]
	reconcile Reconciler[T]
	opts      Options
	logger    *slog.Logger
}

// New creates a draft whose fields start as initial. A nil validate accepts
// every record. EditInPlace drafts start closed; see Open.
// New panics when submitter is nil.
func New[T any](initial T, validate Validator[T], submitter Submitter[T], opts Options) *Draft[T] {
	if submitter == nil {
		panic("form: a submitter is required")
	}
	if fn, ok := submitter.(SubmitFunc[T]); ok && fn == nil {
		panic("form: a submitter is required")
	}
	if validate == nil {
		validate = func(T) Errors { return Errors{} }
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = DefaultSuccessMessage
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = DefaultFailureMessage
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Draft[T]{
		initial:   initial,
		fields:    initial,
		errors:    Errors{},
		status:    StatusIdle,
		closed:    opts.EditInPlace,
		validate:  validate,
		submitter: submitter,
		opts:      opts,
		logger:    logger,
	}
}

// SetReconciler installs the hook run after every edit.
func (d *Draft[T]) SetReconciler(r Reconciler[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reconcile = r
}

func (d *Draft[T]) Fields() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fields
}

// Update edits the working copy. Edits are allowed while a submission is
// in flight. Existing errors stay until the next validation, except those
// reported by the reconciler.
func (d *Draft[T]) Update(edit func(*T)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.fields
	next := d.fields
	edit(&next)
	if d.reconcile != nil {
		for field, msg := range d.reconcile(prev, &next) {
			d.errors[field] = msg
		}
	}
	d.fields = next
}

// Replace swaps the whole working copy.
func (d *Draft[T]) Replace(fields T) {
	d.Update(func(f *T) { *f = fields })
}

// Validate checks the whole record and replaces the draft's errors.
func (d *Draft[T]) Validate() Errors {
	return d.Check(d.validate)
}

// Check validates with v instead of the draft's own validator and replaces
// the draft's errors with the result.
func (d *Draft[T]) Check(v Validator[T]) Errors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return maps.Clone(d.check(v))
}

func (d *Draft[T]) check(v Validator[T]) Errors {
	prev := d.status
	d.status = StatusValidating
	errs := v(d.fields)
	if errs == nil {
		errs = Errors{}
	}
	d.errors = errs
	d.status = prev
	return errs
}

// Submit validates the record and, when valid, runs the submitter with the
// draft unlocked. A call made while another submission is in flight, or on
// a closed draft, returns OutcomeIgnored and changes nothing.
//
// The error is the Errors for OutcomeInvalid and a *SubmissionError for
// OutcomeFailed.
func (d *Draft[T]) Submit(ctx context.Context) (Outcome, error) {
	d.mu.Lock()
	if d.submitting || d.closed {
		d.mu.Unlock()
		return OutcomeIgnored, nil
	}

	if errs := d.check(d.validate); len(errs) > 0 {
		d.status = StatusIdle
		d.mu.Unlock()
		return OutcomeInvalid, maps.Clone(errs)
	}

	d.submitting = true
	d.status = StatusSubmitting
	d.success = ""
	d.failure = ""
	fields := d.fields
	d.mu.Unlock()

	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := d.submitter.Submit(ctx, fields)
	duration := time.Since(start)

	if err != nil {
		return OutcomeFailed, d.fail(err, duration)
	}
	d.succeed(msg, duration)
	return OutcomeSucceeded, nil
}

func (d *Draft[T]) fail(err error, duration time.Duration) error {
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		subErr = &SubmissionError{Message: d.opts.FailureMessage, Err: err}
	}

	d.mu.Lock()
	d.submitting = false
	d.status = StatusFailure
	d.failure = subErr.Message
	d.mu.Unlock()

	d.logger.Info("form submission failed",
		"form", d.opts.Name,
		"duration_ms", duration.Milliseconds(),
		"error", err)
	if d.opts.Notifier != nil {
		d.opts.Notifier.Post(notify.LevelError, subErr.Message)
	}
	return subErr
}

func (d *Draft[T]) succeed(msg string, duration time.Duration) {
	if msg == "" {
		msg = d.opts.SuccessMessage
	}

	d.mu.Lock()
	d.submitting = false
	d.status = StatusSuccess
	d.fields = d.initial
	d.errors = Errors{}
	d.success = msg
	if d.opts.EditInPlace {
		d.closed = true
	}
	d.mu.Unlock()

	d.logger.Info("form submitted",
		"form", d.opts.Name,
		"duration_ms", duration.Milliseconds())
	if d.opts.Notifier != nil {
		d.opts.Notifier.Post(notify.LevelSuccess, msg)
	}
}

// Reset returns the draft to its initial shape, as on cancel. It does not
// interrupt a submission in flight.
func (d *Draft[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fields = d.initial
	d.errors = Errors{}
	d.success = ""
	d.failure = ""
	if d.opts.EditInPlace {
		d.closed = true
	}
	if !d.submitting {
		d.status = StatusIdle
	}
}

// Open starts editing an existing record in an edit-in-place draft.
func (d *Draft[T]) Open(fields T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.fields = fields
	d.errors = Errors{}
	d.success = ""
	d.failure = ""
	d.closed = false
	if !d.submitting {
		d.status = StatusIdle
	}
}

// DismissError clears the error banner, keeping fields and field errors.
func (d *Draft[T]) DismissError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failure = ""
}

func (d *Draft[T]) State() State[T] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State[T]{
		Fields:         d.fields,
		Errors:         maps.Clone(d.errors),
		Status:         d.status,
		Submitting:     d.submitting,
		Closed:         d.closed,
		SuccessMessage: d.success,
		ErrorMessage:   d.failure,
	}
}
