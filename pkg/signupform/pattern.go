package signupform

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/dlclark/regexp2"
)

// Patterns are written so they accept exactly what the browser-side
// expressions of the form accept.
//
// RE2 (package regexp) expresses name, email and phone exactly: with no
// flags, ^ and $ anchor at the text boundaries, and \d, \D are ASCII only,
// as in ECMAScript. ECMAScript \s is wider than RE2 \s, so the name class
// spells the whole ECMAScript whitespace set out.
//
// The password rule needs lookahead, which RE2 lacks. It runs on regexp2 in
// ECMAScript mode. regexp2 lets . match \r and lets $ match before a final
// \n; ECMAScript does neither, so passwords containing a line terminator are
// rejected before matching. ECMAScript also matches UTF-16 code units, not
// code points, so the password is matched as code units: an emoji counts as
// two characters toward the minimum length.
var (
	// letters and ECMAScript whitespace only
	namePattern = regexp.MustCompile(`^[A-Za-z\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]*$`)

	nonDigitPattern = regexp.MustCompile(`\D`)

	// local part of [a-zA-Z0-9._%+-], domain gmail.com or yahoo.com
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(gmail\.com|yahoo\.com)$`)

	// first digit 6-9, exactly ten digits
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

	// at least one uppercase, at least one of !@#$%^&*(),.?":{}|<>, six or more characters
	passwordPattern = compileECMAScript(`^(?=.*[A-Z])(?=.*[!@#$%^&*(),.?":{}|<>]).{6,}$`)
)

const (
	maxPhoneDigits = 10

	ecmaLineTerminators = "\n\r\u2028\u2029"
)

func compileECMAScript(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.ECMAScript)
	re.MatchTimeout = 100 * time.Millisecond
	return re
}

func matchPassword(s string) bool {
	if strings.ContainsAny(s, ecmaLineTerminators) {
		return false
	}
	ok, err := passwordPattern.MatchRunes(codeUnits(s))
	if err != nil {
		slog.Warn("Password pattern match failed", "error", err)
		return false
	}
	return ok
}

// codeUnits returns s as ECMAScript sees it, one element per UTF-16 code unit.
func codeUnits(s string) []rune {
	units := utf16.Encode([]rune(s))
	out := make([]rune, len(units))
	for i, u := range units {
		out[i] = rune(u)
	}
	return out
}
