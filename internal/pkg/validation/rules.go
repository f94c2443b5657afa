package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Nickname pattern - letters, digits, dots, underscores, dashes
	NicknamePattern = `^[a-zA-Z0-9._\-]{3,30}$`

	// Password min length
	PasswordMinLength = 8

	// Post/comment content max length
	ContentMaxLength = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Nickname *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Nickname: regexp.MustCompile(NicknamePattern),
}

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidNickname reports whether the nickname matches the nickname pattern.
func IsValidNickname(nickname string) bool {
	return CompiledPatterns.Nickname.MatchString(nickname)
}
