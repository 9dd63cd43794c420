package service

import (
	"regexp"
	"strconv"
)

// Handles offsets like "+05:30", "-08:00", "+5", "UTC+5". Minutes are
// optional; the colon is optional.
var timezonePattern = regexp.MustCompile(`([+-])(\d{1,2}):?(\d{2})?`)

// ParseTimezoneOffset converts a signed "±HH[:MM]" offset into
// milliseconds. Malformed input parses to 0 (UTC), never an error.
func ParseTimezoneOffset(timezone string) int64 {
	match := timezonePattern.FindStringSubmatch(timezone)
	if match == nil {
		return 0
	}

	sign := int64(1)
	if match[1] == "-" {
		sign = -1
	}
	hours, _ := strconv.ParseInt(match[2], 10, 64)
	minutes := int64(0)
	if match[3] != "" {
		minutes, _ = strconv.ParseInt(match[3], 10, 64)
	}

	return sign * (hours*60 + minutes) * 60 * 1000
}
