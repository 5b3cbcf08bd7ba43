package hebcal

import (
	"errors"
	"fmt"
)

// A Unit names a calendar unit for Between.
type Unit int

const (
	Days Unit = iota
	Weeks
	Months
	Years
)

// String returns the unit name in lowercase, matching the API's query
// parameter values.
func (u Unit) String() string {
	switch u {
	case Days:
		return "days"
	case Weeks:
		return "weeks"
	case Months:
		return "months"
	case Years:
		return "years"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit converts a unit name as used in queries ("days", "weeks",
// "months", "years") to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "days":
		return Days, nil
	case "weeks":
		return Weeks, nil
	case "months":
		return Months, nil
	case "years":
		return Years, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// maxShiftDays bounds the day shift of AddDays and AddWeeks. The whole
// supported year range spans fewer days than this, so larger amounts
// are out of range no matter the start date, and rejecting them up
// front keeps the epoch arithmetic from wrapping. Without the guard a
// wrapped product can land back inside the valid range and come out as
// a wrong but well-formed date.
const maxShiftDays = int64(MaxYear+1) * 385

// AddDays returns the date n days after d (before, for negative n).
// Amounts that cannot stay within the supported years are
// ErrOutOfRange.
func (d Date) AddDays(n int) (Date, error) {
	if int64(n) < -maxShiftDays || int64(n) > maxShiftDays {
		return Date{}, fmt.Errorf("%w: %d days", ErrOutOfRange, n)
	}
	return FromEpochDay(d.EpochDay() + int64(n))
}

// AddWeeks returns the date n weeks after d.
func (d Date) AddWeeks(n int) (Date, error) {
	if int64(n) < -maxShiftDays/7 || int64(n) > maxShiftDays/7 {
		return Date{}, fmt.Errorf("%w: %d weeks", ErrOutOfRange, n)
	}
	return FromEpochDay(d.EpochDay() + 7*int64(n))
}

// AddMonths returns the date n months after d, stepping through the
// civil month sequence and skipping Adar I in common years. When the
// destination month is shorter than d's day-of-month, the day is
// clamped to the month's last day.
func (d Date) AddMonths(n int) (Date, error) {
	year, month := d.year, d.month
	for ; n > 0; n-- {
		y, m, err := nextMonth(year, month)
		if err != nil {
			return Date{}, err
		}
		year, month = y, m
	}
	for ; n < 0; n++ {
		y, m, err := prevMonth(year, month)
		if err != nil {
			return Date{}, err
		}
		year, month = y, m
	}
	return clampDay(year, month, d.day)
}

// AddYears returns the date n years after d. If d falls in Adar I and
// the destination year is not a leap year, the preceding month stands
// in; the day is clamped to the destination month's length.
func (d Date) AddYears(n int) (Date, error) {
	year := d.year + n
	if year < MinYear || year > MaxYear {
		return Date{}, errYear(year)
	}
	month := d.month
	if month == AdarI && !IsLeapYear(year) {
		month--
	}
	return clampDay(year, month, d.day)
}

// Between counts whole elapsed units from start to end. The result is
// negative when end precedes start; incomplete trailing units are
// dropped (rounding toward zero), so a span of 29 days is 4 weeks and a
// span ending one day short of a month boundary does not count that
// month.
func Between(unit Unit, start, end Date) (int64, error) {
	switch unit {
	case Days:
		return end.EpochDay() - start.EpochDay(), nil
	case Weeks:
		return (end.EpochDay() - start.EpochDay()) / 7, nil
	case Months:
		return monthsBetween(start, end), nil
	case Years:
		return yearsBetween(start, end), nil
	}
	return 0, fmt.Errorf("%w: unit %d", errors.ErrUnsupported, int(unit))
}

// yearsBetween is the naive year difference corrected for whether a
// whole year has elapsed, by comparing the (month, day) positions
// within the year cycle. Month positions compare directly even across
// leap and common years because the numbering is fixed.
func yearsBetween(start, end Date) int64 {
	n := int64(end.year - start.year)
	switch {
	case n > 0 && cycleBefore(end, start):
		n--
	case n < 0 && cycleBefore(start, end):
		n++
	}
	return n
}

// cycleBefore reports whether a's (month, day) position in the year
// cycle is strictly before b's.
func cycleBefore(a, b Date) bool {
	if a.month != b.month {
		return a.month < b.month
	}
	return a.day < b.day
}

// monthsBetween walks from the earlier date to the later one month at a
// time, applying the same Adar I skip as the transforms, then negates
// if the pair was swapped. The trailing month only counts when the
// later day-of-month has reached the earlier one.
func monthsBetween(start, end Date) int64 {
	a, b := start, end
	neg := false
	if b.year < a.year || (b.year == a.year && cycleBefore(b, a)) {
		a, b = b, a
		neg = true
	}
	var n int64
	year, month := a.year, a.month
	for year != b.year || month != b.month {
		// Year range cannot be exceeded: b is a valid date ahead of us.
		year, month, _ = nextMonth(year, month)
		n++
	}
	if b.day < a.day {
		n--
	}
	if neg {
		return -n
	}
	return n
}

// nextMonth advances one position in the civil month sequence,
// crossing into the next year after Elul and skipping Adar I in common
// years.
func nextMonth(year int, month Month) (int, Month, error) {
	month++
	if month > Elul {
		month = Tishri
		year++
		if year > MaxYear {
			return 0, 0, errYear(year)
		}
	}
	if month == AdarI && !IsLeapYear(year) {
		month++
	}
	return year, month, nil
}

// prevMonth is the inverse of nextMonth.
func prevMonth(year int, month Month) (int, Month, error) {
	month--
	if month < Tishri {
		month = Elul
		year--
		if year < MinYear {
			return 0, 0, errYear(year)
		}
	}
	if month == AdarI && !IsLeapYear(year) {
		month--
	}
	return year, month, nil
}

// clampDay builds a date in the given year and month, clamping the day
// to the month's length. The month must exist in the year.
func clampDay(year int, month Month, day int) (Date, error) {
	n, err := DaysInMonth(year, month)
	if err != nil {
		return Date{}, err
	}
	if day > n {
		day = n
	}
	return Date{year: year, month: month, day: day}, nil
}
