// Package hebcal implements the arithmetic Hebrew (lunisolar) calendar:
// conversion between epoch days and Hebrew dates, and date arithmetic
// that accounts for the leap month and the variable year lengths.
//
// The calendar is the fixed, rule-based one in universal use since the
// fourth century: months alternate around a mean lunation of 29 days,
// 12 hours and 793 halakic parts (1080 parts per hour), a thirteenth
// month (Adar I) is inserted in 7 of every 19 years, and the new year
// is deferred off certain weekdays, which makes two of the months vary
// in length. Everything in this package is a pure function of integers;
// all functions are safe for concurrent use.
package hebcal

const (
	// Supported year range of the exposed API.
	MinYear = 1
	MaxYear = 9999

	partsPerDay = 24 * 1080

	// A mean lunation exceeds 29 days by 12h 793p.
	monthRemainderParts = 12*1080 + 793

	// Molad of Tishri of year 1 (molad tohu), in parts after the start
	// of the reckoning's day zero.
	firstMoladParts = 11*1080 + 204

	// 1 Tishri of year 1 as an epoch day (1970-01-01 based); the
	// proleptic Julian date 7 October 3761 BCE. The constant is pinned
	// by tests against known new years such as 1 Tishri 5785 =
	// 2024-10-03.
	hebrewEpoch = -2092590

	// The mean calendar year is 235/19 lunations, i.e. 35975351/98496
	// days. Used only for the initial year estimate when converting an
	// epoch day back to a date.
	meanYearNumerator   = 35975351
	meanYearDenominator = 98496
)

// IsLeapYear reports whether the given year has the extra month Adar I.
// Exactly 7 of every 19 consecutive years are leap years (years 3, 6,
// 8, 11, 14, 17 and 19 of the Metonic cycle).
func IsLeapYear(year int) bool {
	return floorMod(7*int64(year)+1, 19) < 7
}

// monthsBeforeYear counts whole lunar months from the calendar epoch to
// Tishri of the given year, encoding the 235-months-per-19-years
// Metonic relationship in a single division.
func monthsBeforeYear(year int) int64 {
	return floorDiv(235*int64(year)-234, 19)
}

// moladDay returns the day, counted from the reckoning's day zero, on
// which the mean conjunction of Tishri of the given year falls.
func moladDay(year int) int64 {
	months := monthsBeforeYear(year)
	parts := firstMoladParts + months*monthRemainderParts
	return 29*months + floorDiv(parts, partsPerDay)
}

// newYearCandidate applies the weekday deferral to the molad day: the
// new year may not begin on a Sunday, Wednesday or Friday, which in
// this day numbering is the residue test below.
func newYearCandidate(year int) int64 {
	day := moladDay(year)
	if floorMod(3*(day+1), 7) < 3 {
		day++
	}
	return day
}

// newYearDay returns the day, from the reckoning's day zero, on which
// the given year begins. On top of the weekday deferral it applies the
// gap rule: year lengths of 356 and 382 days are impossible, and the
// boundary is shifted when the candidate days of the adjacent years
// would produce one.
func newYearDay(year int) int64 {
	day := newYearCandidate(year)
	switch {
	case newYearCandidate(year+1)-day == 356:
		return day + 2
	case day-newYearCandidate(year-1) == 382:
		return day + 1
	}
	return day
}

// newYear returns the epoch day of 1 Tishri of the given year. It is
// strictly increasing in year, which bounds the correction scan in
// FromEpochDay.
func newYear(year int) int64 {
	return hebrewEpoch + newYearDay(year)
}

// DaysInYear returns the total length of the given year in days: one of
// 353, 354 or 355 for common years, or 383, 384 or 385 for leap years.
func DaysInYear(year int) int {
	return int(newYear(year+1) - newYear(year))
}

// DaysInMonth returns the length of a month in the given year. Heshvan
// and Kislev vary with the year length; Adar I is a fixed 30 days and
// exists only in leap years. Requesting a month position that does not
// occur in the year is an ErrInvalidDate.
func DaysInMonth(year int, month Month) (int, error) {
	if !month.existsIn(year) {
		return 0, errMonth(year, month)
	}
	switch month {
	case Tishri, Shevat, AdarI, Nisan, Sivan, Av:
		return 30, nil
	case Tevet, AdarII, Iyar, Tammuz, Elul:
		return 29, nil
	case Heshvan:
		switch DaysInYear(year) {
		case 355, 385: // complete year
			return 30, nil
		}
		return 29, nil
	case Kislev:
		switch DaysInYear(year) {
		case 353, 383: // deficient year
			return 29, nil
		}
		return 30, nil
	}
	return 0, errMonth(year, month)
}
