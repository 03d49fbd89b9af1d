package signupform

const (
	inputTypePassword = "password"
	inputTypeText     = "text"
)

// View holds the visibility toggles of the two password inputs. It never
// influences FormState or validation.
type View struct {
	ShowPassword        bool `json:"showPassword"`
	ShowConfirmPassword bool `json:"showConfirmPassword"`
}

// TogglePassword flips the password visibility.
func (v View) TogglePassword() View {
	v.ShowPassword = !v.ShowPassword
	return v
}

// ToggleConfirmPassword flips the confirm password visibility.
func (v View) ToggleConfirmPassword() View {
	v.ShowConfirmPassword = !v.ShowConfirmPassword
	return v
}

// InputType returns the HTML input type for a password field.
func (v View) InputType(f Field) string {
	switch f {
	case FieldPassword:
		if v.ShowPassword {
			return inputTypeText
		}
		return inputTypePassword
	case FieldConfirmPassword:
		if v.ShowConfirmPassword {
			return inputTypeText
		}
		return inputTypePassword
	}
	return inputTypeText
}
