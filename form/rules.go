// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Rule returns a message when value is invalid, "" otherwise.
// Format rules accept the empty string; pair them with Required.
type Rule func(value string) string

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	// Kenyan mobile numbers: +2547XXXXXXXX, 2547XXXXXXXX or 07XXXXXXXX (01 likewise)
	phonePattern = regexp.MustCompile(`^(\+?254|0)[17]\d{8}$`)
	idPattern    = regexp.MustCompile(`^\d{7,8}$`)
)

func Required(msg string) Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

func Email(msg string) Rule {
	return pattern(emailPattern, msg)
}

func Phone(msg string) Rule {
	return func(v string) string {
		v = strings.NewReplacer(" ", "", "-", "").Replace(v)
		if v != "" && !phonePattern.MatchString(v) {
			return msg
		}
		return ""
	}
}

func IDNumber(msg string) Rule {
	return pattern(idPattern, msg)
}

func MinLength(n int, msg string) Rule {
	return func(v string) string {
		if v != "" && utf8.RuneCountInString(strings.TrimSpace(v)) < n {
			return msg
		}
		return ""
	}
}

func MaxLength(n int, msg string) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(v) > n {
			return msg
		}
		return ""
	}
}

// MaxBytes limits the encoded length of value, for inputs bound by a byte
// budget such as bcrypt's 72 bytes.
func MaxBytes(n int, msg string) Rule {
	return func(v string) string {
		if len(v) > n {
			return msg
		}
		return ""
	}
}

// Matches requires value to equal other, as for a password confirmation.
func Matches(other, msg string) Rule {
	return func(v string) string {
		if v != other {
			return msg
		}
		return ""
	}
}

// Differs requires value to differ from other.
func Differs(other, msg string) Rule {
	return func(v string) string {
		if v != "" && v == other {
			return msg
		}
		return ""
	}
}

func OneOf(options []string, msg string) Rule {
	return func(v string) string {
		if v != "" && !slices.Contains(options, v) {
			return msg
		}
		return ""
	}
}

// After reports whether end is strictly later than start. Zero times are
// left to a required check and pass.
func After(end, start time.Time) bool {
	if end.IsZero() || start.IsZero() {
		return true
	}
	return end.After(start)
}

func pattern(re *regexp.Regexp, msg string) Rule {
	return func(v string) string {
		if v != "" && !re.MatchString(strings.TrimSpace(v)) {
			return msg
		}
		return ""
	}
}
