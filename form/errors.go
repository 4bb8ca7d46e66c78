// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"maps"
	"slices"
	"strings"
)

// Errors maps a field name to its message. An empty Errors means valid.
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Check runs rules against value in order and records the first failure.
func (e Errors) Check(field, value string, rules ...Rule) {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			e.Add(field, msg)
			return
		}
	}
}

// Assert records msg for field when ok is false.
func (e Errors) Assert(field string, ok bool, msg string) {
	if !ok {
		e.Add(field, msg)
	}
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Only returns the subset of e for the given fields.
func (e Errors) Only(fields ...string) Errors {
	out := Errors{}
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Fields lists the invalid fields in sorted order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

func (e Errors) Error() string {
	return "invalid fields: " + strings.Join(e.Fields(), ", ")
}

// SubmissionError is a failure whose Message is safe to show the user.
type SubmissionError struct {
	Message string
	Err     error
}

// Fail returns a SubmissionError with msg and no underlying cause.
func Fail(msg string) error {
	return &SubmissionError{Message: msg}
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
