package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberName_RejectsBlankNames(t *testing.T) {
	for _, raw := range []string{"", " ", "   ", "\t", "\n \t ", " "} {
		_, err := ParseSubscriberName(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
		assert.True(t, errors.Is(err, ErrEmptyName))
	}
}

func TestParseSubscriberName_AcceptsNameAtMaxLength(t *testing.T) {
	raw := strings.Repeat("ё", MaxSubscriberNameLength)

	name, err := ParseSubscriberName(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, name.String())
}

func TestParseSubscriberName_RejectsNameLongerThanMax(t *testing.T) {
	raw := strings.Repeat("a", MaxSubscriberNameLength+1)

	_, err := ParseSubscriberName(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameTooLong))
}

func TestParseSubscriberName_LengthIsMeasuredAfterTrimming(t *testing.T) {
	raw := "  " + strings.Repeat("a", MaxSubscriberNameLength) + "  "

	name, err := ParseSubscriberName(raw)
	require.NoError(t, err)
	assert.Len(t, name.String(), MaxSubscriberNameLength)
}

func TestParseSubscriberName_CountsGraphemeClusters(t *testing.T) {
	// "e" followed by a combining acute accent is a single grapheme.
	raw := strings.Repeat("e\u0301", MaxSubscriberNameLength)

	_, err := ParseSubscriberName(raw)
	assert.NoError(t, err)
}

func TestParseSubscriberName_RejectsForbiddenCharacters(t *testing.T) {
	for _, c := range []string{"/", "(", ")", `"`, "<", ">", `\`, "{", "}"} {
		_, err := ParseSubscriberName("le" + c + "guin")
		require.Error(t, err, "expected name containing %q to be rejected", c)
		assert.True(t, errors.Is(err, ErrNameForbiddenCharacters))
	}
}

func TestParseSubscriberName_RejectsInvalidUTF8(t *testing.T) {
	for _, raw := range []string{"le\xff\xfeguin", "\xff", "  ursula\xc3  "} {
		_, err := ParseSubscriberName(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
		assert.True(t, errors.Is(err, ErrNameInvalidEncoding))

		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, FieldName, validationErr.Field)
	}
}

func TestParseSubscriberName_EmptinessWinsOverOtherRules(t *testing.T) {
	_, err := ParseSubscriberName("    ")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, FieldName, validationErr.Field)
	assert.True(t, errors.Is(err, ErrEmptyName))
}

func TestParseSubscriberName_LengthWinsOverForbiddenCharacters(t *testing.T) {
	_, err := ParseSubscriberName(strings.Repeat("<", MaxSubscriberNameLength+1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameTooLong))
	assert.False(t, errors.Is(err, ErrNameForbiddenCharacters))
}

func TestParseSubscriberName_ReturnsTrimmedValue(t *testing.T) {
	cases := map[string]string{
		"le guin":              "le guin",
		"  Ursula K. Le Guin ": "Ursula K. Le Guin",
		"O'Brien-Smith":        "O'Brien-Smith",
		"山田 太郎":                "山田 太郎",
	}

	for raw, want := range cases {
		name, err := ParseSubscriberName(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, name.String())
	}
}
