package signupform

import "log/slog"

// LoginPath is where a successful submit navigates to. The form also links
// to it unconditionally.
const LoginPath = "/login"

// Navigator moves the user to another view.
type Navigator interface {
	GoTo(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) GoTo(path string) {
	f(path)
}

// Form is the whole component: field state, the errors currently displayed,
// and the password visibility toggles.
type Form struct {
	State  FormState
	Errors ErrorMap
	View   View
}

// New returns a freshly mounted form.
func New() Form {
	return Form{
		State:  Empty(),
		Errors: ErrorMap{},
	}
}

// Change applies one input event. Displayed errors are left alone; they are
// only replaced on submit.
func (f Form) Change(field Field, ev Event) (Form, error) {
	next, _, err := Apply(f.State, field, ev)
	if err != nil {
		return f, err
	}
	f.State = next
	return f, nil
}

// Submit validates the state and replaces the displayed errors. When the
// form is valid it navigates to LoginPath.
func (f Form) Submit(nav Navigator) Form {
	f.Errors = Validate(f.State)
	if !f.Errors.Valid() {
		slog.Info("Signup form rejected", "fields", len(f.Errors))
		return f
	}
	slog.Info("Signup form accepted", "user_type", f.State.UserType)
	nav.GoTo(LoginPath)
	return f
}

// SubmitDisabled reports whether the submit control is disabled for the
// current state.
func (f Form) SubmitDisabled() bool {
	return SubmitDisabled(f.State)
}

// TogglePassword flips the password visibility.
func (f Form) TogglePassword() Form {
	f.View = f.View.TogglePassword()
	return f
}

// ToggleConfirmPassword flips the confirm password visibility.
func (f Form) ToggleConfirmPassword() Form {
	f.View = f.View.ToggleConfirmPassword()
	return f
}
