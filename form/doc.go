// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package form implements the lifecycle shared by every data-entry view.

A Draft[T] holds a typed working copy and moves through

	idle -> validating -> invalid -> idle
	                   -> submitting -> success -> idle
	                                 -> failure -> idle

Validation reports every invalid field at once. A valid draft is handed to
its Submitter with the lock released; a second Submit during that time is
ignored. Success clears the draft (or closes an edit-in-place draft) and
posts a notice. Failure keeps every entered value and sets ErrorMessage.

Validators are built from Rules collected into Errors:

	errs := form.Errors{}
	errs.Check("email", f.Email, form.Required("Email is required"), form.Email("Email is invalid"))
	errs.Assert("endDate", form.After(f.EndDate, f.StartDate), "End date must be after start date")
*/
package form
