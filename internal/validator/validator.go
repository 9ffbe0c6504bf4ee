package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidOtpCode       = errors.New("invalid otp code")
	ErrDescriptionTooLong   = errors.New("description too long")
)

var (
	identifierRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	accountNumberRegex = regexp.MustCompile(`^[0-9]{6,12}$`)
	otpCodeRegex       = regexp.MustCompile(`^[0-9]{6}$`)
)

const maxDescriptionLength = 140

// ValidateIdentifier accepts either a username or an account number,
// the two namespaces a login may arrive through.
func ValidateIdentifier(identifier string) error {
	if identifierRegex.MatchString(identifier) || accountNumberRegex.MatchString(identifier) {
		return nil
	}
	return ErrInvalidIdentifier
}

func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return ErrInvalidAccountNumber
	}
	return nil
}

func ValidateOtpCode(code string) error {
	if !otpCodeRegex.MatchString(code) {
		return ErrInvalidOtpCode
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
