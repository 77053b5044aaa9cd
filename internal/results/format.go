package results

import (
	"fmt"
	"math"
	"strconv"
)

// FormatTime renders a duration in seconds the way finishing times are
// printed on race sheets: m'ss" under an hour, h:mm'ss" above, with a
// .mmm suffix only when the millisecond part is non-zero.
func FormatTime(totalSeconds float64) string {
	totalMs := int64(math.Round(totalSeconds * 1000))
	if totalMs < 0 {
		totalMs = 0
	}
	hours := totalMs / 3_600_000
	minutes := (totalMs % 3_600_000) / 60_000
	seconds := (totalMs % 60_000) / 1000
	millis := totalMs % 1000

	var base string
	if hours > 0 {
		base = fmt.Sprintf("%d:%02d'%02d\"", hours, minutes, seconds)
	} else {
		base = fmt.Sprintf("%d'%02d\"", minutes, seconds)
	}
	if millis == 0 {
		return base
	}
	return fmt.Sprintf("%s.%03d", base, millis)
}

// FormatGap renders the gap to the leader; non-zero gaps carry a + prefix.
func FormatGap(gapSeconds float64) string {
	if gapSeconds == 0 {
		return FormatTime(0)
	}
	return "+" + FormatTime(gapSeconds)
}

// FormatPace renders minutes per kilometre as given by the API.
func FormatPace(paceMinKm float64) string {
	return strconv.FormatFloat(paceMinKm, 'f', -1, 64)
}
