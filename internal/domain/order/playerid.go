package order

import (
	"regexp"
	"strings"

	"github.com/topupbd/topup-api/internal/domain/catalog"
)

var (
	mobileNumberRe = regexp.MustCompile(`^\d{11}$`)
	emailRe        = regexp.MustCompile(`^[a-z0-9]+@[a-z0-9]+\.com$`)
	whitespaceRe   = regexp.MustCompile(`\s`)
	alphaRe        = regexp.MustCompile(`[a-zA-Z]`)
)

// ValidatePlayerID checks a buyer-supplied identifier against the input type
// a game declares. It is a pure function of (inputType, value): the same pair
// always yields the same verdict.
//
//   - mobile_number: exactly 11 digits, no whitespace
//   - userid: no whitespace and no alphabetic characters
//   - email: lowercase local@domain.com shape only
//   - anything else: accepted unchanged
func ValidatePlayerID(inputType catalog.InputType, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return ErrPlayerIDRequired
	}

	switch inputType {
	case catalog.InputTypeMobileNumber:
		if !mobileNumberRe.MatchString(value) {
			return ErrPlayerIDInvalid
		}
	case catalog.InputTypeUserID:
		if whitespaceRe.MatchString(value) || alphaRe.MatchString(value) {
			return ErrPlayerIDInvalid
		}
	case catalog.InputTypeEmail:
		if !emailRe.MatchString(value) {
			return ErrPlayerIDInvalid
		}
	}

	return nil
}

// InputTypeLabel names the identifier field the way it is shown on order
// history cards.
func InputTypeLabel(inputType catalog.InputType) string {
	switch inputType {
	case catalog.InputTypeEmail:
		return "Email"
	case catalog.InputTypeMobileNumber:
		return "Mobile Number"
	default:
		return "Player ID"
	}
}
