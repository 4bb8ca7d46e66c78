// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Role values. RoleAny only appears in route requirements.
type Role string

const (
	RoleAny     Role = "any"
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a role a session can hold.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// Session is who is using the portal. Role is meaningful only when
// Authenticated is true.
type Session struct {
	Authenticated bool `json:"authenticated"`
	Role          Role `json:"role"`
}

// LoggedOut is the session of an anonymous visitor.
func LoggedOut() Session {
	return Session{Authenticated: false, Role: RoleCitizen}
}

// Issue categories
const (
	CategoryRoads       = "roads"
	CategoryLighting    = "lighting"
	CategoryWater       = "water"
	CategoryWaste       = "waste"
	CategorySecurity    = "security"
	CategoryMaintenance = "maintenance"
	CategoryHealth      = "health"
	CategoryEducation   = "education"
	CategoryEnvironment = "environment"
)

var IssueCategories = []string{
	CategoryRoads, CategoryLighting, CategoryWater, CategoryWaste, CategorySecurity,
	CategoryMaintenance, CategoryHealth, CategoryEducation, CategoryEnvironment,
}

// Issue priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var IssuePriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// User account status constants
const (
	UserActive    = "active"
	UserPending   = "pending"
	UserSuspended = "suspended"
	UserInactive  = "inactive"
)

var UserStatuses = []string{UserActive, UserPending, UserSuspended, UserInactive}

var ForumCategories = []string{
	"budget", "infrastructure", "health", "education", "environment", "governance", "general",
}

// Consultation question types
const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionSingleChoice   = "single-choice"
	QuestionText           = "text"
	QuestionRating         = "rating"
	QuestionYesNo          = "yes-no"
)

var QuestionTypes = []string{
	QuestionMultipleChoice, QuestionSingleChoice, QuestionText, QuestionRating, QuestionYesNo,
}

// Form field records. Field names in validation errors use the JSON names.

type LoginFields struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Redacted blanks the password. Secrets are write-only over the API.
func (f LoginFields) Redacted() LoginFields {
	f.Password = ""
	return f
}

type RegistrationFields struct {
	// Personal information
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IDNumber  string `json:"idNumber"`

	// Location
	Constituency string `json:"constituency"`
	Ward         string `json:"ward"`
	Address      string `json:"address"`

	// Account security
	Password           string `json:"password"`
	ConfirmPassword    string `json:"confirmPassword"`
	AgreeToTerms       bool   `json:"agreeToTerms"`
	SubscribeToUpdates bool   `json:"subscribeToUpdates"`
}

func (f RegistrationFields) Redacted() RegistrationFields {
	f.Password, f.ConfirmPassword = "", ""
	return f
}

type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        uint64 `json:"size"`
}

type IssueReportFields struct {
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Priority    string       `json:"priority"`
	Coordinates Coordinates  `json:"coordinates"`
	Attachments []Attachment `json:"attachments"`
}

type Question struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

type ConsultationFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Questions   []Question `json:"questions"`
}

type ProfileFields struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Constituency string `json:"constituency"`
	Ward         string `json:"ward"`
	Bio          string `json:"bio"`
}

type PasswordChangeFields struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f PasswordChangeFields) Redacted() PasswordChangeFields {
	f.CurrentPassword, f.NewPassword, f.ConfirmPassword = "", "", ""
	return f
}

type UserFields struct {
	ID           string `json:"id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         Role   `json:"role"`
	Constituency string `json:"constituency"`
	Ward         string `json:"ward"`
	Status       string `json:"status"`
}

type ForumTopicFields struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

type ForgotPasswordFields struct {
	Email string `json:"email"`
}

type ContactFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Request types

type DemoLoginRequest struct {
	Role Role `json:"role"`
}

// Response types

type SessionResponse struct {
	Session Session `json:"session"`
	Home    string  `json:"home"`
}

// FormInfo describes a form and whether the current session may use it.
type FormInfo struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// SubmitResponse wraps the state of a form after a submit attempt.
type SubmitResponse struct {
	Outcome  string `json:"outcome"`
	Redirect string `json:"redirect,omitempty"`
	Form     any    `json:"form"`
}

type NoticeResponse struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	PostedAt  time.Time `json:"postedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Posted    string    `json:"posted"` // e.g. "2 seconds ago"
}

// DeniedResponse is returned when the gate refuses a form or view.
type DeniedResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
