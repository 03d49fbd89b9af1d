package signupform

import (
	"fmt"
	"log/slog"

	apperrors "github.com/tendant/simple-signup/pkg/errors"
)

// ErrUnknownField is returned when an event names a field the form does not have.
var ErrUnknownField = apperrors.New(apperrors.ErrCodeUnknownField, "unknown form field")

// FormState is the last accepted value of every field. It is a plain value:
// handlers return a new FormState and never modify the one they receive.
type FormState struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Phone           string   `json:"phone"`
	UserType        UserType `json:"userType"`
	TermsAccepted   bool     `json:"termsAccepted"`
}

// Empty returns the state of a freshly mounted form.
func Empty() FormState {
	return FormState{}
}

// Event is one input change. Value carries text, select and tel inputs;
// Checked carries checkbox inputs.
type Event struct {
	Value   string
	Checked bool
}

// Handler applies an input event to a state. It returns the next state and
// whether the event was accepted. A rejected event returns the state unchanged.
type Handler func(s FormState, ev Event) (FormState, bool)

var handlers = map[Field]Handler{
	FieldName:            changeName,
	FieldEmail:           changeEmail,
	FieldPassword:        changePassword,
	FieldConfirmPassword: changeConfirmPassword,
	FieldPhone:           changePhone,
	FieldUserType:        changeUserType,
	FieldTermsAccepted:   changeTermsAccepted,
}

// Bind resolves the handler for a field. Renderers call it once per input.
func Bind(f Field) (Handler, error) {
	h, ok := handlers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return h, nil
}

// Apply binds the field's handler and runs it against s.
func Apply(s FormState, f Field, ev Event) (FormState, bool, error) {
	h, err := Bind(f)
	if err != nil {
		return s, false, err
	}
	next, accepted := h(s, ev)
	if !accepted {
		slog.Debug("Input rejected", "field", f)
	}
	return next, accepted, nil
}

// Replay feeds one event per field into an empty state in render order,
// skipping fields absent from events. It is how a fully posted form is
// turned into a FormState: each posted value goes through the same filter a
// keystroke would.
func Replay(events map[Field]Event) FormState {
	s := Empty()
	for _, f := range Fields() {
		ev, ok := events[f]
		if !ok {
			continue
		}
		s, _ = handlers[f](s, ev)
	}
	return s
}

// Events returns the event that would set each field of s to its current
// value.
func Events(s FormState) map[Field]Event {
	return map[Field]Event{
		FieldName:            {Value: s.Name},
		FieldEmail:           {Value: s.Email},
		FieldPassword:        {Value: s.Password},
		FieldConfirmPassword: {Value: s.ConfirmPassword},
		FieldPhone:           {Value: s.Phone},
		FieldUserType:        {Value: string(s.UserType)},
		FieldTermsAccepted:   {Checked: s.TermsAccepted},
	}
}

// Rejected lists, in render order, the fields of s holding a value their
// handler would not have produced. A state built only from accepted events
// has none.
func Rejected(s FormState) []Field {
	want := Events(s)
	got := Events(Replay(want))
	var rejected []Field
	for _, f := range Fields() {
		if got[f] != want[f] {
			rejected = append(rejected, f)
		}
	}
	return rejected
}

func changeName(s FormState, ev Event) (FormState, bool) {
	v, ok := FilterName(ev.Value)
	if !ok {
		return s, false
	}
	s.Name = v
	return s, true
}

func changeEmail(s FormState, ev Event) (FormState, bool) {
	s.Email = ev.Value
	return s, true
}

func changePassword(s FormState, ev Event) (FormState, bool) {
	s.Password = ev.Value
	return s, true
}

func changeConfirmPassword(s FormState, ev Event) (FormState, bool) {
	s.ConfirmPassword = ev.Value
	return s, true
}

func changePhone(s FormState, ev Event) (FormState, bool) {
	v, ok := FilterPhone(ev.Value)
	if !ok {
		return s, false
	}
	s.Phone = v
	return s, true
}

func changeUserType(s FormState, ev Event) (FormState, bool) {
	u, ok := ParseUserType(ev.Value)
	if !ok {
		return s, false
	}
	s.UserType = u
	return s, true
}

func changeTermsAccepted(s FormState, ev Event) (FormState, bool) {
	s.TermsAccepted = ev.Checked
	return s, true
}
