package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// minEpochMillisDigits rejects compact dates such as 20250201; epoch
// milliseconds after 1973 have at least 12 digits.
const minEpochMillisDigits = 12

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// parseRecordDate accepts the date spellings found in the bills exports.
// Bare integers of at least 12 digits are epoch milliseconds, which is what
// pandas writes.
func parseRecordDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if len(strings.TrimPrefix(value, "-")) < minEpochMillisDigits {
			return time.Time{}, fmt.Errorf("integer date %q is not epoch milliseconds", value)
		}
		return time.UnixMilli(ms).UTC(), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
