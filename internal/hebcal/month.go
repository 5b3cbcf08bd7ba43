package hebcal

import "fmt"

// Month identifies a month of the Hebrew year in civil order, starting
// at Tishri. The numbering always includes Adar I at position 6, but
// that position only exists in leap years; in a common year the months
// run 1-5 then 7-13, and month 7 is simply called Adar.
type Month int

const (
	Tishri Month = 1 + iota
	Heshvan
	Kislev
	Tevet
	Shevat
	AdarI // leap years only
	AdarII
	Nisan
	Iyar
	Sivan
	Tammuz
	Av
	Elul
)

var monthNames = [...]string{
	Tishri:  "Tishri",
	Heshvan: "Heshvan",
	Kislev:  "Kislev",
	Tevet:   "Tevet",
	Shevat:  "Shevat",
	AdarI:   "Adar I",
	AdarII:  "Adar II",
	Nisan:   "Nisan",
	Iyar:    "Iyar",
	Sivan:   "Sivan",
	Tammuz:  "Tammuz",
	Av:      "Av",
	Elul:    "Elul",
}

// String returns the conventional English name of the month. Month 7 is
// always rendered "Adar II" even though common years call it Adar; the
// string is meant for debugging, not display.
func (m Month) String() string {
	if !m.valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// valid reports whether m is one of the thirteen month positions. It
// says nothing about whether the position exists in a particular year;
// that depends on IsLeapYear.
func (m Month) valid() bool {
	return m >= Tishri && m <= Elul
}

// existsIn reports whether the month position occurs in the given year.
// Only Adar I is conditional.
func (m Month) existsIn(year int) bool {
	return m.valid() && (m != AdarI || IsLeapYear(year))
}

// MonthsInYear returns the months of the given year in civil order:
// thirteen months for a leap year, twelve (without Adar I) otherwise.
func MonthsInYear(year int) []Month {
	leap := IsLeapYear(year)
	months := make([]Month, 0, 13)
	for m := Tishri; m <= Elul; m++ {
		if m == AdarI && !leap {
			continue
		}
		months = append(months, m)
	}
	return months
}
