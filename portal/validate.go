// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package portal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/baraza/auth"
	"github.com/danielhkuo/baraza/form"
	"github.com/danielhkuo/baraza/models"
	"github.com/danielhkuo/baraza/wizard"
)

// MaxAttachmentSize is the largest image an issue report accepts
const MaxAttachmentSize = 5 << 20

const (
	minPasswordLength    = 8
	minTopicDescription  = 20
	wardResetMessage     = "Select a ward in the chosen constituency"
	invalidEmailMessage  = "Please enter a valid email address"
	invalidPhoneMessage  = "Enter a valid phone number, e.g. 0712345678"
	passwordMatchMessage = "Passwords do not match"
	passwordLongMessage  = "Password must be at most 72 bytes"
)

var roleOptions = []string{string(models.RoleCitizen), string(models.RoleAdmin)}

// Registration wizard steps

func validatePersonal(f models.RegistrationFields) form.Errors {
	errs := form.Errors{}
	errs.Check("firstName", f.FirstName, form.Required("First name is required"))
	errs.Check("lastName", f.LastName, form.Required("Last name is required"))
	errs.Check("email", f.Email, form.Required("Email is required"), form.Email("Email is invalid"))
	errs.Check("phone", f.Phone, form.Required("Phone number is required"), form.Phone(invalidPhoneMessage))
	errs.Check("idNumber", f.IDNumber, form.Required("ID number is required"), form.IDNumber("ID number must be 7 or 8 digits"))
	return errs
}

func validateLocation(f models.RegistrationFields) form.Errors {
	errs := form.Errors{}
	checkLocation(errs, f.Constituency, f.Ward, true)
	errs.Check("address", f.Address, form.Required("Address is required"))
	return errs
}

func validateSecurity(f models.RegistrationFields) form.Errors {
	errs := form.Errors{}
	errs.Check("password", f.Password,
		form.Required("Password is required"),
		form.MinLength(minPasswordLength, "Password must be at least 8 characters"),
		form.MaxBytes(auth.MaxPasswordBytes, passwordLongMessage))
	errs.Check("confirmPassword", f.ConfirmPassword,
		form.Required("Please confirm your password"),
		form.Matches(f.Password, passwordMatchMessage))
	errs.Assert("agreeToTerms", f.AgreeToTerms, "You must agree to the terms and conditions")
	return errs
}

// RegistrationSteps are the three pages of the sign-up wizard.
func RegistrationSteps() []wizard.Step[models.RegistrationFields] {
	return []wizard.Step[models.RegistrationFields]{
		{
			Name:     "personal",
			Fields:   []string{"firstName", "lastName", "email", "phone", "idNumber"},
			Validate: validatePersonal,
		},
		{
			Name:     "location",
			Fields:   []string{"constituency", "ward", "address"},
			Validate: validateLocation,
		},
		{
			Name:     "security",
			Fields:   []string{"password", "confirmPassword", "agreeToTerms"},
			Validate: validateSecurity,
		},
	}
}

// checkLocation validates a constituency and its dependent ward.
func checkLocation(errs form.Errors, constituency, ward string, required bool) {
	if required {
		errs.Check("constituency", constituency, form.Required("Constituency is required"))
		errs.Check("ward", ward, form.Required("Ward is required"))
	}
	errs.Check("constituency", constituency, form.OneOf(models.Constituencies, "Select a constituency from the list"))
	if ward != "" && !errs.Has("constituency") {
		errs.Assert("ward", models.WardInConstituency(constituency, ward), wardResetMessage)
	}
}

// reconcileWard clears a ward left stale by a constituency change.
func reconcileWard(prevConstituency, constituency string, ward *string) form.Errors {
	if prevConstituency == constituency || *ward == "" {
		return nil
	}
	if models.WardInConstituency(constituency, *ward) {
		return nil
	}
	*ward = ""
	return form.Errors{"ward": wardResetMessage}
}

func reconcileRegistration(prev models.RegistrationFields, next *models.RegistrationFields) form.Errors {
	return reconcileWard(prev.Constituency, next.Constituency, &next.Ward)
}

func reconcileProfile(prev models.ProfileFields, next *models.ProfileFields) form.Errors {
	return reconcileWard(prev.Constituency, next.Constituency, &next.Ward)
}

func reconcileUser(prev models.UserFields, next *models.UserFields) form.Errors {
	return reconcileWard(prev.Constituency, next.Constituency, &next.Ward)
}

// Other forms

func validateIssueReport(f models.IssueReportFields) form.Errors {
	errs := form.Errors{}
	errs.Check("category", f.Category,
		form.Required("Please select a category"),
		form.OneOf(models.IssueCategories, "Please select a category"))
	errs.Check("title", f.Title, form.Required("Title is required"), form.MaxLength(120, "Title must be at most 120 characters"))
	errs.Check("description", f.Description, form.Required("Description is required"))
	errs.Check("location", f.Location, form.Required("Location is required"))
	errs.Check("priority", f.Priority, form.OneOf(models.IssuePriorities, "Select a priority from the list"))
	if (f.Coordinates.Lat == nil) != (f.Coordinates.Lng == nil) {
		errs.Add("coordinates", "Both latitude and longitude are required")
	}

	for _, a := range f.Attachments {
		if !strings.HasPrefix(a.ContentType, "image/") {
			errs.Add("attachments", fmt.Sprintf("%s is not an image", a.Name))
			break
		}
		if a.Size > MaxAttachmentSize {
			errs.Add("attachments", fmt.Sprintf("%s is %s; images must be at most %s",
				a.Name, humanize.IBytes(a.Size), humanize.IBytes(MaxAttachmentSize)))
			break
		}
	}
	return errs
}

func validateConsultation(f models.ConsultationFields) form.Errors {
	errs := form.Errors{}
	errs.Check("title", f.Title, form.Required("Title is required"))
	errs.Check("description", f.Description, form.Required("Description is required"))
	errs.Assert("startDate", !f.StartDate.IsZero(), "Start date is required")
	errs.Assert("endDate", !f.EndDate.IsZero(), "End date is required")
	errs.Assert("endDate", form.After(f.EndDate, f.StartDate), "End date must be after start date")

	errs.Assert("questions", len(f.Questions) > 0, "Add at least one question")
	for i, q := range f.Questions {
		field := fmt.Sprintf("questions.%d", i)
		errs.Check(field, q.Text, form.Required("Question text is required"))
		errs.Check(field, q.Type, form.Required("Question type is required"), form.OneOf(models.QuestionTypes, "Unknown question type"))
		choice := q.Type == models.QuestionMultipleChoice || q.Type == models.QuestionSingleChoice
		errs.Assert(field, !choice || len(q.Options) >= 2, "Choice questions need at least two options")
	}
	return errs
}

func validateProfile(f models.ProfileFields) form.Errors {
	errs := form.Errors{}
	errs.Check("firstName", f.FirstName, form.Required("First name is required"))
	errs.Check("lastName", f.LastName, form.Required("Last name is required"))
	errs.Check("email", f.Email, form.Required("Email is required"), form.Email(invalidEmailMessage))
	errs.Check("phone", f.Phone, form.Phone(invalidPhoneMessage))
	checkLocation(errs, f.Constituency, f.Ward, false)
	errs.Check("bio", f.Bio, form.MaxLength(500, "Bio must be at most 500 characters"))
	return errs
}

func validatePasswordChange(f models.PasswordChangeFields) form.Errors {
	errs := form.Errors{}
	errs.Check("currentPassword", f.CurrentPassword, form.Required("Current password is required"))
	errs.Check("newPassword", f.NewPassword,
		form.Required("New password is required"),
		form.MinLength(minPasswordLength, "Password must be at least 8 characters"),
		form.MaxBytes(auth.MaxPasswordBytes, passwordLongMessage),
		form.Differs(f.CurrentPassword, "New password must differ from the current one"))
	errs.Check("confirmPassword", f.ConfirmPassword,
		form.Required("Please confirm your password"),
		form.Matches(f.NewPassword, passwordMatchMessage))
	return errs
}

func validateUser(f models.UserFields) form.Errors {
	errs := form.Errors{}
	errs.Check("firstName", f.FirstName, form.Required("First name is required"))
	errs.Check("lastName", f.LastName, form.Required("Last name is required"))
	errs.Check("email", f.Email, form.Required("Email is required"), form.Email(invalidEmailMessage))
	errs.Check("phone", f.Phone, form.Phone(invalidPhoneMessage))
	errs.Check("role", string(f.Role), form.Required("Role is required"), form.OneOf(roleOptions, "Role must be citizen or admin"))
	errs.Check("status", f.Status, form.Required("Status is required"), form.OneOf(models.UserStatuses, "Unknown status"))
	checkLocation(errs, f.Constituency, f.Ward, false)
	return errs
}

func validateForumTopic(f models.ForumTopicFields) form.Errors {
	errs := form.Errors{}
	errs.Check("title", f.Title, form.Required("Title is required"))
	errs.Check("category", f.Category,
		form.Required("Category is required"),
		form.OneOf(models.ForumCategories, "Select a category from the list"))
	errs.Check("description", f.Description,
		form.Required("Description is required"),
		form.MinLength(minTopicDescription, "Description must be at least 20 characters"))
	return errs
}

func validateForgotPassword(f models.ForgotPasswordFields) form.Errors {
	errs := form.Errors{}
	errs.Check("email", f.Email, form.Required("Email address is required"), form.Email(invalidEmailMessage))
	return errs
}

func validateContact(f models.ContactFields) form.Errors {
	errs := form.Errors{}
	errs.Check("name", f.Name, form.Required("Name is required"))
	errs.Check("email", f.Email, form.Required("Email is required"), form.Email(invalidEmailMessage))
	errs.Check("subject", f.Subject, form.Required("Subject is required"))
	errs.Check("message", f.Message, form.Required("Message is required"))
	return errs
}

var (
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	lowerPattern  = regexp.MustCompile(`[a-z]`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	symbolPattern = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// PasswordStrength scores a password from 0 to 5, one point each for
// length, upper case, lower case, digits and symbols.
type PasswordStrength struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

func ScorePassword(pw string) PasswordStrength {
	score := 0
	if len(pw) >= minPasswordLength {
		score++
	}
	for _, re := range []*regexp.Regexp{upperPattern, lowerPattern, digitPattern, symbolPattern} {
		if re.MatchString(pw) {
			score++
		}
	}

	label := "Strong"
	switch {
	case score <= 2:
		label = "Weak"
	case score == 3:
		label = "Fair"
	case score == 4:
		label = "Good"
	}
	return PasswordStrength{Score: score, Label: label}
}
