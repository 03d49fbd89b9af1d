package handler

import "github.com/tendant/simple-signup/pkg/signupform"

// StatePayload is the wire form of signupform.FormState
type StatePayload struct {
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Password        string              `json:"password"`
	ConfirmPassword string              `json:"confirmPassword"`
	Phone           string              `json:"phone"`
	UserType        signupform.UserType `json:"userType" validate:"omitempty,oneof=Customer Host Driver"`
	TermsAccepted   bool                `json:"termsAccepted"`
}

// ChangeRequest is one keystroke against the last accepted state
type ChangeRequest struct {
	State   StatePayload `json:"state"`
	Field   string       `json:"field" validate:"required"`
	Value   string       `json:"value"`
	Checked bool         `json:"checked"`
}

// ChangeResponse carries the next state and whether the keystroke was kept
type ChangeResponse struct {
	State          StatePayload `json:"state"`
	Accepted       bool         `json:"accepted"`
	SubmitDisabled bool         `json:"submit_disabled"`
}

// ValidateResponse reports the errors a submit would display
type ValidateResponse struct {
	Valid          bool              `json:"valid"`
	Errors         map[string]string `json:"errors"`
	SubmitDisabled bool              `json:"submit_disabled"`
}

// SubmitResponse is returned when a JSON submit passes validation
type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	Redirect     string `json:"redirect"`
	Message      string `json:"message"`
}

// SubmitForm is the form-encoded body of the rendered HTML form
type SubmitForm struct {
	Name                string `form:"name"`
	Email               string `form:"email"`
	Password            string `form:"password"`
	ConfirmPassword     string `form:"confirmPassword"`
	Phone               string `form:"phone"`
	UserType            string `form:"userType"`
	TermsAccepted       bool   `form:"termsAccepted"`
	ShowPassword        bool   `form:"showPassword"`
	ShowConfirmPassword bool   `form:"showConfirmPassword"`
	Action              string `form:"action"`

	// Fields whose errors were on display when the form was posted
	Errors []string `form:"errors"`
}

// Form actions posted by the buttons of the HTML form
const (
	ActionSubmit                = "submit"
	ActionTogglePassword        = "toggle_password"
	ActionToggleConfirmPassword = "toggle_confirm_password"
)

func (f SubmitForm) events() map[signupform.Field]signupform.Event {
	return map[signupform.Field]signupform.Event{
		signupform.FieldName:            {Value: f.Name},
		signupform.FieldEmail:           {Value: f.Email},
		signupform.FieldPassword:        {Value: f.Password},
		signupform.FieldConfirmPassword: {Value: f.ConfirmPassword},
		signupform.FieldPhone:           {Value: f.Phone},
		signupform.FieldUserType:        {Value: f.UserType},
		signupform.FieldTermsAccepted:   {Checked: f.TermsAccepted},
	}
}

func (f SubmitForm) displayed() []signupform.Field {
	fields := make([]signupform.Field, 0, len(f.Errors))
	for _, name := range f.Errors {
		if field, err := signupform.ParseField(name); err == nil {
			fields = append(fields, field)
		}
	}
	return fields
}

func errorStrings(m signupform.ErrorMap) map[string]string {
	out := make(map[string]string, len(m))
	for f, msg := range m {
		out[string(f)] = msg
	}
	return out
}
