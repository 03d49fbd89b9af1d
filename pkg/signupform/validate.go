package signupform

// Messages shown next to a field that fails validation.
const (
	MsgEmail           = "Please enter a valid email (only gmail.com or yahoo.com allowed)"
	MsgPassword        = "Password must be at least 6 characters long, contain at least one uppercase letter and one special character"
	MsgConfirmPassword = "Passwords do not match"
	MsgPhone           = "Phone number must start with 6, 7, 8, or 9 and be 10 digits long"
	MsgUserType        = "Please select who you are"
	MsgTermsAccepted   = "You must accept the terms and conditions"
)

// ErrorMap maps a field to its current validation message. A field without an
// entry is valid.
type ErrorMap map[Field]string

// Valid reports whether no field has an error.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Has reports whether f has an error.
func (m ErrorMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

// Get returns the message for f, or the empty string.
func (m ErrorMap) Get(f Field) string {
	return m[f]
}

// Details converts the map into the string-keyed form used in error bodies.
func (m ErrorMap) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(m))
	for f, msg := range m {
		details[string(f)] = msg
	}
	return details
}

var messages = map[Field]string{
	FieldEmail:           MsgEmail,
	FieldPassword:        MsgPassword,
	FieldConfirmPassword: MsgConfirmPassword,
	FieldPhone:           MsgPhone,
	FieldUserType:        MsgUserType,
	FieldTermsAccepted:   MsgTermsAccepted,
}

// ErrorsFor rebuilds a displayed ErrorMap from the fields it names. Every
// rule has a single message, so the field is enough. Fields without a rule
// are skipped.
func ErrorsFor(fields []Field) ErrorMap {
	errs := ErrorMap{}
	for _, f := range fields {
		if msg, ok := messages[f]; ok {
			errs[f] = msg
		}
	}
	return errs
}

// Validate checks every submit-time rule and returns a fresh ErrorMap.
func Validate(s FormState) ErrorMap {
	errs := ErrorMap{}

	if !emailPattern.MatchString(s.Email) {
		errs[FieldEmail] = MsgEmail
	}
	if !matchPassword(s.Password) {
		errs[FieldPassword] = MsgPassword
	}
	if s.Password != s.ConfirmPassword {
		errs[FieldConfirmPassword] = MsgConfirmPassword
	}
	if !phonePattern.MatchString(s.Phone) {
		errs[FieldPhone] = MsgPhone
	}
	if !s.UserType.IsSet() {
		errs[FieldUserType] = MsgUserType
	}
	if !s.TermsAccepted {
		errs[FieldTermsAccepted] = MsgTermsAccepted
	}

	return errs
}

// SubmitDisabled reports whether the submit control is disabled. Only the
// user type and the terms checkbox gate it.
func SubmitDisabled(s FormState) bool {
	return !s.UserType.IsSet() || !s.TermsAccepted
}
