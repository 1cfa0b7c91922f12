package util

import (
	"regexp"

	"github.com/pkg/errors"
)

var (
	upperCase = regexp.MustCompile(`[A-Z]`)
	lowerCase = regexp.MustCompile(`[a-z]`)
	digit     = regexp.MustCompile(`\d`)
)

func ValidStrongPassword(password string) error {
	if len(password) < 6 {
		return errors.New("password field must be at least 6 characters long")
	}

	if !upperCase.MatchString(password) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !lowerCase.MatchString(password) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !digit.MatchString(password) {
		return errors.New("password must contain at least one digit")
	}

	return nil
}
