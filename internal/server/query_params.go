package server

import (
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// parseDateRange reads optional from/to filters. Bare dates cover the whole
// UTC day, so to=2026-03-31 includes everything filed on the 31st.
func parseDateRange(fromRaw, toRaw string) (*time.Time, *time.Time, error) {
	from, ok := parseBound(fromRaw, false)
	if !ok {
		return nil, nil, newValidationError("from", "invalid_from", "from must be RFC3339 or YYYY-MM-DD")
	}
	to, ok := parseBound(toRaw, true)
	if !ok {
		return nil, nil, newValidationError("to", "invalid_to", "to must be RFC3339 or YYYY-MM-DD")
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, newValidationError("from", "invalid_range", "from must not be after to")
	}
	return from, to, nil
}

func parseBound(raw string, endOfDay bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts, true
	}
	day, err := time.ParseInLocation(dateOnlyLayout, raw, time.UTC)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		day = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &day, true
}
