package hebcal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a (year, month, day) triple is not
	// well formed: an unknown month position, a day outside the month,
	// or Adar I in a common year.
	ErrInvalidDate = errors.New("invalid hebrew date")

	// ErrOutOfRange is returned when a year falls outside MinYear..MaxYear
	// or an epoch day outside the corresponding day range.
	ErrOutOfRange = errors.New("date out of range")
)

// IsInvalidDate reports whether err is an ErrInvalidDate.
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidDate)
}

// IsOutOfRange reports whether err is an ErrOutOfRange.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

func errMonth(year int, month Month) error {
	if month.valid() {
		return fmt.Errorf("%w: no %s in year %d", ErrInvalidDate, month, year)
	}
	return fmt.Errorf("%w: month %d outside 1..13", ErrInvalidDate, int(month))
}

func errYear(year int) error {
	return fmt.Errorf("%w: year %d outside %d..%d", ErrOutOfRange, year, MinYear, MaxYear)
}
