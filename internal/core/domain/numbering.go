package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	numberDateLayout = "20060102"
	// sequenceWidth is the minimum suffix width. Wider sequences are printed
	// in full rather than truncated.
	sequenceWidth = 4
)

// LastNumberLookup returns the most recent number issued within scope, or
// "" when the scope is still empty.
type LastNumberLookup func(scope string) (string, error)

// NumberScope returns the "{prefix}-{YYYYMMDD}" scope numbers are unique in.
func NumberScope(prefix string, date time.Time) string {
	return prefix + "-" + date.Format(numberDateLayout)
}

// FormatNumber renders "{prefix}-{YYYYMMDD}-{NNNN}".
func FormatNumber(prefix string, date time.Time, seq int64) string {
	return fmt.Sprintf("%s-%0*d", NumberScope(prefix, date), sequenceWidth, seq)
}

// ParseSequence extracts the numeric suffix of number within scope.
func ParseSequence(scope, number string) (int64, error) {
	suffix, ok := strings.CutPrefix(number, scope+"-")
	if !ok || suffix == "" {
		return 0, fmt.Errorf("number %q is outside scope %q", number, scope)
	}
	seq, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || seq < 1 {
		return 0, fmt.Errorf("number %q has a malformed sequence suffix", number)
	}
	return seq, nil
}

// GenerateNumber derives the next number of a scope from the last issued one.
// The lookup and the eventual insert are not atomic; concurrent writers must
// go through an atomic SequenceStore instead.
func GenerateNumber(prefix string, date time.Time, lookup LastNumberLookup) (string, error) {
	if prefix == "" {
		return "", NewValidationError("prefix", "must not be empty")
	}
	scope := NumberScope(prefix, date)

	last, err := lookup(scope)
	if err != nil {
		return "", fmt.Errorf("lookup last number: %w", err)
	}

	next := int64(1)
	if last != "" {
		seq, err := ParseSequence(scope, last)
		if err != nil {
			return "", err
		}
		next = seq + 1
	}
	return FormatNumber(prefix, date, next), nil
}
