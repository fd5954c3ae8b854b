package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const MaxSubscriberNameLength = 256

const forbiddenNameCharacters = `/()"<>\{}`

// SubscriberName is a trimmed, non-empty name that passed ParseSubscriberName.
type SubscriberName struct {
	value string
}

// ParseSubscriberName trims raw and checks it against the subscriber name rules.
// It fails with a *ValidationError for FieldName.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if !utf8.ValidString(raw) {
		return SubscriberName{}, newValidationError(FieldName, ErrNameInvalidEncoding,
			"subscriber name must be valid UTF-8")
	}

	name := strings.TrimSpace(raw)

	if name == "" {
		return SubscriberName{}, newValidationError(FieldName, ErrEmptyName,
			"subscriber name must not be empty")
	}

	// Length is counted in user-perceived characters, not bytes.
	if uniseg.GraphemeClusterCount(name) > MaxSubscriberNameLength {
		return SubscriberName{}, newValidationError(FieldName, ErrNameTooLong,
			fmt.Sprintf("subscriber name must not be longer than %d characters", MaxSubscriberNameLength))
	}

	if strings.ContainsAny(name, forbiddenNameCharacters) {
		return SubscriberName{}, newValidationError(FieldName, ErrNameForbiddenCharacters,
			fmt.Sprintf("%s is not a valid subscriber name: it contains one of %s", name, forbiddenNameCharacters))
	}

	return SubscriberName{value: name}, nil
}

func (n SubscriberName) String() string {
	return n.value
}
