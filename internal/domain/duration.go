package domain

import (
	"math"
	"strings"
)

const (
	durationDesignator = "P"
	timeDesignator     = "T"
)

// timeUnitSeconds maps the time-segment unit markers to their length in seconds.
var timeUnitSeconds = map[rune]int{
	'H': 3600,
	'M': 60,
	'S': 1,
}

// ParseISODuration converts an ISO 8601 duration such as "PT1H2M3S" into seconds.
//
// Only the time segment (after "T") is interpreted; the date segment is ignored.
// Digits accumulate into a number that is flushed by the next unit marker. Any other
// character discards the pending number. Input without the "P" designator yields 0,
// and malformed input degrades to a partial total instead of an error.
// Values too large for an int saturate at math.MaxInt.
func ParseISODuration(s string) int {
	if !strings.HasPrefix(s, durationDesignator) {
		return 0
	}

	_, timePart, ok := strings.Cut(strings.TrimPrefix(s, durationDesignator), timeDesignator)
	if !ok {
		return 0
	}

	total := 0
	num := 0
	pending := false

	for _, r := range timePart {
		if r >= '0' && r <= '9' {
			num = appendDigit(num, int(r-'0'))
			pending = true

			continue
		}

		if unit, known := timeUnitSeconds[r]; known && pending {
			total = addSeconds(total, num, unit)
		}
		num = 0
		pending = false
	}

	return total
}

func appendDigit(num, digit int) int {
	if num > (math.MaxInt-digit)/10 {
		return math.MaxInt
	}
	return num*10 + digit
}

func addSeconds(total, num, unit int) int {
	if num > math.MaxInt/unit {
		return math.MaxInt
	}
	if total > math.MaxInt-num*unit {
		return math.MaxInt
	}
	return total + num*unit
}
