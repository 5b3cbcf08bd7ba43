package hebcal

import "time"

// Epoch days count days since 1970-01-01 (the ISO epoch day number), so
// conversion to and from wall-clock time is plain integer division.

const secondsPerDay = 86400

// floorDiv is integer division rounding toward negative infinity, so
// that calendar offsets behave the same on either side of the epoch.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv: always in [0, b) for b > 0.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// timeOf returns midnight UTC of the given epoch day.
func timeOf(day int64) time.Time {
	return time.Unix(day*secondsPerDay, 0).UTC()
}
