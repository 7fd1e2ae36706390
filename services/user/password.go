package user

import (
	"fmt"
	"regexp"
)

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !hasUpper.MatchString(pw) {
		return fmt.Errorf("password must include at least one uppercase letter")
	}
	if !hasLower.MatchString(pw) {
		return fmt.Errorf("password must include at least one lowercase letter")
	}
	if !hasNumber.MatchString(pw) {
		return fmt.Errorf("password must include at least one number")
	}
	return nil
}
