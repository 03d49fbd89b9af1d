package signupform

import "fmt"

// Field identifies one input of the form. The string value is the input name
// used by the rendered form and the JSON API.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldPhone           Field = "phone"
	FieldUserType        Field = "userType"
	FieldTermsAccepted   Field = "termsAccepted"
)

// Fields lists every form field in render order.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldEmail,
		FieldPassword,
		FieldConfirmPassword,
		FieldPhone,
		FieldUserType,
		FieldTermsAccepted,
	}
}

// ParseField converts an input name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := handlers[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

func (f Field) String() string {
	return string(f)
}

// UserType is the "who you are" selection. The zero value means unset.
type UserType string

const (
	UserTypeUnset    UserType = ""
	UserTypeCustomer UserType = "Customer"
	UserTypeHost     UserType = "Host"
	UserTypeDriver   UserType = "Driver"
)

// UserTypes returns the selectable user types in the order they are offered.
func UserTypes() []UserType {
	return []UserType{UserTypeCustomer, UserTypeHost, UserTypeDriver}
}

// ParseUserType accepts the empty string (unset) and the known user types.
func ParseUserType(s string) (UserType, bool) {
	switch UserType(s) {
	case UserTypeUnset, UserTypeCustomer, UserTypeHost, UserTypeDriver:
		return UserType(s), true
	}
	return UserTypeUnset, false
}

// IsSet reports whether a user type has been selected.
func (u UserType) IsSet() bool {
	return u != UserTypeUnset
}
