package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

// SubscriberEmail is an address that passed ParseSubscriberEmail.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail trims raw and accepts it only if it is a plausible address.
// It fails with a *ValidationError for FieldEmail.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if !utf8.ValidString(raw) {
		return SubscriberEmail{}, newValidationError(FieldEmail, ErrEmailInvalidEncoding,
			"subscriber email must be valid UTF-8")
	}

	email := strings.TrimSpace(raw)

	if email == "" {
		return SubscriberEmail{}, newValidationError(FieldEmail, ErrEmptyEmail,
			"subscriber email must not be empty")
	}

	if reason := checkEmailShape(email); reason != "" {
		return SubscriberEmail{}, newValidationError(FieldEmail, ErrInvalidEmail,
			fmt.Sprintf("%s is not a valid subscriber email: %s", email, reason))
	}

	return SubscriberEmail{value: email}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}

// checkEmailShape returns the first rule the address breaks, or "" when it is acceptable.
func checkEmailShape(email string) string {
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 {
		return "it contains whitespace"
	}
	if strings.Count(email, "@") != 1 {
		return "it must contain exactly one @"
	}

	local, domain, _ := strings.Cut(email, "@")
	switch {
	case local == "":
		return "the local part is empty"
	case domain == "":
		return "the domain is empty"
	case !strings.Contains(domain, "."):
		return "the domain has no dot"
	case !govalidator.IsEmail(email):
		return "it is not a well-formed address"
	}
	return ""
}
