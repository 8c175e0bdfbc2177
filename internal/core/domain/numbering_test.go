package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var may1 = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func TestGenerateNumber_FirstInScope(t *testing.T) {
	got, err := GenerateNumber("INV", may1, func(string) (string, error) { return "", nil })
	require.NoError(t, err)
	assert.Equal(t, "INV-20240501-0001", got)
}

func TestGenerateNumber_IncrementsLast(t *testing.T) {
	var scope string
	got, err := GenerateNumber("INV", may1, func(s string) (string, error) {
		scope = s
		return "INV-20240501-0007", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-20240501", scope)
	assert.Equal(t, "INV-20240501-0008", got)
}

func TestGenerateNumber_WidensPastFourDigits(t *testing.T) {
	got, err := GenerateNumber("PI", may1, func(string) (string, error) { return "PI-20240501-9999", nil })
	require.NoError(t, err)
	assert.Equal(t, "PI-20240501-10000", got)

	seq, err := ParseSequence("PI-20240501", got)
	require.NoError(t, err)
	assert.EqualValues(t, 10000, seq)
}

func TestGenerateNumber_LookupError(t *testing.T) {
	boom := errors.New("store down")
	_, err := GenerateNumber("INV", may1, func(string) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}

func TestGenerateNumber_EmptyPrefix(t *testing.T) {
	_, err := GenerateNumber("", may1, func(string) (string, error) { return "", nil })
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseSequence_Malformed(t *testing.T) {
	for _, n := range []string{"INV-20240502-0001", "INV-20240501-", "INV-20240501-abc", "INV-20240501-0000"} {
		_, err := ParseSequence("INV-20240501", n)
		assert.Error(t, err, n)
	}
}
