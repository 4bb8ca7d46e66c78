// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, form and response types for the portal API.

# Session

	type Session struct {
		Authenticated bool
		Role          Role // "citizen" or "admin"
	}

LoggedOut returns the anonymous session ({false, citizen}). Role is only
meaningful while Authenticated is true.

# Form Field Records

One record per data-entry view. JSON names double as the keys of
validation error maps:

  - LoginFields: email, password
  - RegistrationFields: three wizard steps (personal, location, security)
  - IssueReportFields: category, title, description, location, priority,
    coordinates, attachments
  - ConsultationFields: title, description, category, dates, questions
  - ProfileFields, PasswordChangeFields: profile settings
  - UserFields: user management (edit-in-place)
  - ForumTopicFields, ForgotPasswordFields, ContactFields

# Response Types

  - SessionResponse: session and role home
  - SubmitResponse: outcome, optional redirect, form state
  - NoticeResponse: one notification with humanized age
  - DeniedResponse: gate redirect for a refused request
  - ErrorResponse: error, message

# Reference Data

Constituencies and Wards hold Nyeri County's geography. WardInConstituency
is the check behind every constituency/ward pair in the forms.

Categories, priorities and statuses:

	IssueCategories, IssuePriorities, UserStatuses, ForumCategories, QuestionTypes
*/
package models
