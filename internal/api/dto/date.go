package dto

import (
	"strings"
	"time"

	ierr "github.com/financeflow/financeflow/internal/errors"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp. An empty
// value resolves to fallback.
func parseDate(field, value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ierr.NewErrorf("invalid %s %q", field, value).
		WithHintf("%s must be a date like 2006-01-02", field).
		WithReportableDetails(map[string]any{
			field: value,
		}).
		Mark(ierr.ErrValidation)
}
