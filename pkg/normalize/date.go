package normalize

import (
	"strconv"
	"strings"
	"time"
)

// acceptedDateLayouts are tried in order; the first to parse wins.
var acceptedDateLayouts = []string{
	"2006-01-02", // %Y-%m-%d
	"01/02/2006", // %m/%d/%Y
	"01-02-2006", // %m-%d-%Y
	"02/01/2006", // %d/%m/%Y
}

// RegistrationDate parses a raw registration-date string per the
// fixed-order format list; on failure, a bare 4-digit year in [1000, 9999]
// is widened to YYYY-01-01. Returns absent if nothing matches.
func RegistrationDate(raw string) (value string, present bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	if year, err := strconv.Atoi(trimmed); err == nil && year >= 1000 && year <= 9999 {
		return strconv.Itoa(year) + "-01-01", true
	}

	return "", false
}
