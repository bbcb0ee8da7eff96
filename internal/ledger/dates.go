package ledger

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/Yns1000/haybank/internal/errors"
)

const dateLayout = "2006-01-02"

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate accepts a calendar date (YYYY-MM-DD) and returns midnight UTC.
// The shape is checked first so that "2024-1-5" is rejected even though a
// lenient parser might accept it.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if !isoDate.MatchString(raw) {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidDate, "date is not a valid calendar day")
	}
	return t, nil
}

// ParseFlexibleDate also accepts an RFC3339 timestamp, keeping only its
// calendar day.
func ParseFlexibleDate(raw string) (time.Time, error) {
	if t, err := ParseDate(raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
