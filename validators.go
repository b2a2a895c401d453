package blog

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// emailPattern follows the W3C HTML5 email input pattern. It willfully
// violates RFC 5322, which is too strict before the domain and too
// tolerant on the domain itself.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// usernamePattern: 3 to 15 characters, starts with a letter, then
// letters, digits or ._- and no whitespace.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z][\w.-]{2,14}$`)

// passwordCharsetPattern: 8 to 32 characters drawn from letters, digits
// or ~!@#$%^&*()_-+={[}]|\:;"'<,>.?/ with no whitespace. The policy also
// wants at least one uppercase, lowercase, digit and symbol, which the
// original expressed with lookaheads. RE2 has none, so IsValidPassword
// performs those checks by scanning.
var passwordCharsetPattern = regexp.MustCompile(`^[\w~!@#$%^&*()+\-={[}\]|\\:;"'<,>.?/]{8,32}$`)

var passwordSymbolPattern = regexp.MustCompile(`[~!@#$%^&*()_+\-={[}\]|\\:;"'<,>.?/]`)

// IsValidEmail reports whether email matches the accepted address format
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidUsername reports whether username matches the accepted handle format
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// IsValidPassword reports whether password satisfies the password policy
func IsValidPassword(password string) bool {
	if !passwordCharsetPattern.MatchString(password) {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit && passwordSymbolPattern.MatchString(password)
}

// Reusable ozzo rules for payload Validate methods
var (
	EmailRule    = validation.NewStringRule(IsValidEmail, "must be a valid email address")
	UsernameRule = validation.NewStringRule(IsValidUsername, "must be a valid username")
	PasswordRule = validation.NewStringRule(IsValidPassword, "must satisfy the password policy")
)
