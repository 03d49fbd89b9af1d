// Package signupform implements the sign-up form component: its state, the
// keystroke filters bound to each input, submit-time validation and the
// navigation that follows a successful submit.
//
// # Overview
//
// The form is a value. FormState holds the last accepted value of every
// field and is never mutated in place; every accepted input event returns a
// new FormState. Handlers are resolved per field through Bind, so an input
// is wired to its filter when it is rendered rather than looked up by name
// when the event arrives.
//
// # Basic Usage
//
//	form := signupform.New()
//
//	// keystrokes
//	form, err := form.Change(signupform.FieldName, signupform.Event{Value: "Jane"})
//	form, err = form.Change(signupform.FieldPhone, signupform.Event{Value: "9876543210"})
//	form, err = form.Change(signupform.FieldTermsAccepted, signupform.Event{Checked: true})
//
//	// submit; nav.GoTo("/login") runs only when the form is valid
//	form = form.Submit(nav)
//	if !form.Errors.Valid() {
//		for field, msg := range form.Errors {
//			fmt.Println(field, msg)
//		}
//	}
//
// # Validation
//
//	errs := signupform.Validate(state)
//	if errs.Has(signupform.FieldEmail) {
//		// only gmail.com and yahoo.com addresses pass
//	}
//
// Name has no submit-time rule; it is only constrained by its keystroke
// filter.
//
// # Submit gating
//
// SubmitDisabled reports whether the submit control is disabled. It looks only
// at userType and termsAccepted; other invalid fields surface as errors after
// submit instead.
package signupform
