// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"context"
	"errors"
	"sync"

	"github.com/danielhkuo/baraza/form"
)

var ErrNotFinalStep = errors.New("submit is only available on the final step")

// Step is one page of a wizard. Validate checks only the step's Fields.
type Step[T any] struct {
	Name     string
	Fields   []string
	Validate form.Validator[T]
}

// Combine validates every step and merges the results, for use as the
// draft's full-record validator.
func Combine[T any](steps ...Step[T]) form.Validator[T] {
	return func(fields T) form.Errors {
		errs := form.Errors{}
		for _, s := range steps {
			for field, msg := range s.Validate(fields) {
				errs.Add(field, msg)
			}
		}
		return errs
	}
}

// State is a draft's state plus its position in the wizard.
type State[T any] struct {
	form.State[T]
	CurrentStep int    `json:"currentStep"`
	TotalSteps  int    `json:"totalSteps"`
	StepName    string `json:"stepName"`
}

// Wizard sequences a draft across fixed steps. The current step is always
// within [0, Total()).
type Wizard[T any] struct {
	mu      sync.Mutex
	draft   *form.Draft[T]
	steps   []Step[T]
	current int
}

// New panics when steps is empty.
func New[T any](draft *form.Draft[T], steps ...Step[T]) *Wizard[T] {
	if len(steps) == 0 {
		panic("wizard: at least one step is required")
	}
	return &Wizard[T]{draft: draft, steps: steps}
}

func (w *Wizard[T]) Draft() *form.Draft[T] {
	return w.draft
}

func (w *Wizard[T]) Total() int {
	return len(w.steps)
}

func (w *Wizard[T]) Current() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Next validates the current step and advances when it is valid. It
// returns that step's errors; the draft's errors are replaced by them.
func (w *Wizard[T]) Next() form.Errors {
	w.mu.Lock()
	defer w.mu.Unlock()

	errs := w.draft.Check(w.steps[w.current].Validate)
	if len(errs) == 0 && w.current < len(w.steps)-1 {
		w.current++
	}
	return errs
}

// Back moves to the previous step without validating or discarding values.
func (w *Wizard[T]) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current > 0 {
		w.current--
	}
}

// Submit validates every step and submits the draft. When validation fails
// the wizard moves to the first step holding an error.
func (w *Wizard[T]) Submit(ctx context.Context) (form.Outcome, error) {
	w.mu.Lock()
	if w.current != len(w.steps)-1 {
		w.mu.Unlock()
		return form.OutcomeIgnored, ErrNotFinalStep
	}
	if w.draft.State().Submitting {
		w.mu.Unlock()
		return form.OutcomeIgnored, nil
	}
	if errs := w.draft.Validate(); len(errs) > 0 {
		w.current = w.firstInvalid(errs)
		w.mu.Unlock()
		return form.OutcomeInvalid, errs
	}
	w.mu.Unlock()

	outcome, err := w.draft.Submit(ctx)
	if outcome == form.OutcomeSucceeded {
		w.mu.Lock()
		w.current = 0
		w.mu.Unlock()
	}
	return outcome, err
}

func (w *Wizard[T]) firstInvalid(errs form.Errors) int {
	for i, s := range w.steps {
		if len(errs.Only(s.Fields...)) > 0 {
			return i
		}
	}
	return w.current
}

// Reset clears the draft and returns to the first step.
func (w *Wizard[T]) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Reset()
	w.current = 0
}

func (w *Wizard[T]) State() State[T] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return State[T]{
		State:       w.draft.State(),
		CurrentStep: w.current,
		TotalSteps:  len(w.steps),
		StepName:    w.steps[w.current].Name,
	}
}
