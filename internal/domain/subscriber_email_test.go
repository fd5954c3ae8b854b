package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberEmail_AcceptsValidAddress(t *testing.T) {
	email, err := ParseSubscriberEmail("ursula_le_guin@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "ursula_le_guin@gmail.com", email.String())
}

func TestParseSubscriberEmail_RejectsEmptyAddress(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		_, err := ParseSubscriberEmail(raw)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyEmail))
	}
}

func TestParseSubscriberEmail_RejectsMalformedAddresses(t *testing.T) {
	cases := map[string]string{
		"missing at":           "ursuladomain.com",
		"two ats":              "ursula@le@guin.com",
		"empty local part":     "@domain.com",
		"empty domain":         "ursula@",
		"domain without dot":   "ursula@localhost",
		"inner whitespace":     "ursula le@guin.com",
		"whitespace in domain": "ursula@gmail .com",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSubscriberEmail(raw)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, FieldEmail, validationErr.Field)
			assert.True(t, errors.Is(err, ErrInvalidEmail))
			assert.NotEmpty(t, validationErr.Reason)
		})
	}
}

func TestParseSubscriberEmail_RejectsInvalidUTF8(t *testing.T) {
	_, err := ParseSubscriberEmail("ursula\xff@gmail.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailInvalidEncoding))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, FieldEmail, validationErr.Field)
}
