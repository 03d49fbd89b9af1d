package signupform

// FilterName returns v and true when v contains only letters and whitespace.
// Any other value is rejected and the caller keeps its previous name.
func FilterName(v string) (string, bool) {
	if !namePattern.MatchString(v) {
		return "", false
	}
	return v, true
}

// FilterPhone strips every non-digit from v. The result is rejected when its
// first digit is outside 6-9 or when it is longer than ten digits. An empty
// result is accepted so the field can be cleared.
func FilterPhone(v string) (string, bool) {
	digits := nonDigitPattern.ReplaceAllString(v, "")
	if digits == "" {
		return "", true
	}
	if first := digits[0]; first < '6' || first > '9' {
		return "", false
	}
	if len(digits) > maxPhoneDigits {
		return "", false
	}
	return digits, true
}
