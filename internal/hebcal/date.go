package hebcal

import (
	"fmt"
	"time"
)

// A Date is a day of the Hebrew calendar. The zero value is not a valid
// date; construct one with New, FromEpochDay or FromTime. Dates are
// immutable values and can be compared with ==.
type Date struct {
	year  int
	month Month
	day   int
}

// New returns the date for the given year, month and day-of-month. The
// triple must be well formed: year within MinYear..MaxYear, the month
// present in that year, and the day within the month's length. Unlike
// time.Date there is no normalization; out-of-range components are an
// error, not a carry.
func New(year int, month Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, errYear(year)
	}
	n, err := DaysInMonth(year, month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > n {
		return Date{}, fmt.Errorf("%w: day %d outside 1..%d for %s %d",
			ErrInvalidDate, day, n, month, year)
	}
	return Date{year: year, month: month, day: day}, nil
}

// Year returns the Hebrew year.
func (d Date) Year() int { return d.year }

// Month returns the month position within the civil year.
func (d Date) Month() Month { return d.month }

// Day returns the day of the month, 1-based.
func (d Date) Day() int { return d.day }

// String formats the date for debugging, e.g. "15 Nisan 5784".
func (d Date) String() string {
	return fmt.Sprintf("%d %s %d", d.day, d.month, d.year)
}

// EpochDay returns the epoch day (days since 1970-01-01) on which d
// falls: the year's new-year day, plus the lengths of the preceding
// months of the year, plus the day offset. Months are walked in civil
// order with Adar I present only in leap years.
func (d Date) EpochDay() int64 {
	day := newYear(d.year) + int64(d.day-1)
	for _, m := range MonthsInYear(d.year) {
		if m == d.month {
			break
		}
		n, _ := DaysInMonth(d.year, m) // cannot fail for months of the year
		day += int64(n)
	}
	return day
}

// FromEpochDay converts an epoch day to the Hebrew date containing it.
// Days before 1 Tishri of MinYear or after the end of MaxYear return
// ErrOutOfRange.
func FromEpochDay(day int64) (Date, error) {
	if day < newYear(MinYear) || day >= newYear(MaxYear+1) {
		return Date{}, fmt.Errorf("%w: epoch day %d", ErrOutOfRange, day)
	}

	// Estimate the year from the mean year length, then correct by
	// scanning. newYear is strictly increasing, so both loops terminate,
	// and the estimate is close enough that they run at most a couple of
	// iterations.
	year := int((day-hebrewEpoch)*meanYearDenominator/meanYearNumerator) + 1
	if year < MinYear {
		year = MinYear
	}
	for newYear(year+1) <= day {
		year++
	}
	for newYear(year) > day {
		year--
	}

	offset := int(day - newYear(year))
	for _, m := range MonthsInYear(year) {
		n, _ := DaysInMonth(year, m)
		if offset < n {
			return Date{year: year, month: m, day: offset + 1}, nil
		}
		offset -= n
	}
	// Unreachable: the offsets above sum to DaysInYear(year).
	return Date{}, fmt.Errorf("%w: epoch day %d", ErrOutOfRange, day)
}

// FromTime returns the Hebrew date containing the instant t. The civil
// day boundary is midnight in t's location; the Hebrew convention of
// starting days at sunset is out of scope here.
func FromTime(t time.Time) (Date, error) {
	year, month, dom := t.Date()
	return FromEpochDay(civilEpochDay(year, int(month), dom))
}

// Time returns midnight UTC of the day d falls on.
func (d Date) Time() time.Time {
	return timeOf(d.EpochDay())
}

// Gregorian returns the Gregorian calendar day that d falls on.
func (d Date) Gregorian() (year int, month time.Month, day int) {
	return d.Time().Date()
}

// civilEpochDay converts a Gregorian (year, month, day) to an epoch
// day. Standard Gregorian cycle arithmetic; March-based year so the
// leap day lands at the end.
func civilEpochDay(year, month, day int) int64 {
	y := int64(year)
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	doy := (153*floorMod(m+9, 12)+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}
