package hebcal

import "testing"

func TestIsLeapYear_Cycle(t *testing.T) {
	// Within a 19-year cycle starting at year 1, the leap years are
	// positions 3, 6, 8, 11, 14, 17 and 19.
	leapPositions := map[int]bool{3: true, 6: true, 8: true, 11: true, 14: true, 17: true, 19: true}

	for year := 1; year <= 19; year++ {
		want := leapPositions[year]
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestIsLeapYear_SevenPerNineteen(t *testing.T) {
	// Every window of 19 consecutive years contains exactly 7 leap years.
	for start := 1; start <= 400; start++ {
		count := 0
		for year := start; year < start+19; year++ {
			if IsLeapYear(year) {
				count++
			}
		}
		if count != 7 {
			t.Fatalf("years %d..%d: %d leap years, want 7", start, start+18, count)
		}
	}
}

func TestDaysInYear_Closure(t *testing.T) {
	common := map[int]bool{353: true, 354: true, 355: true}
	leap := map[int]bool{383: true, 384: true, 385: true}

	for year := 1; year <= 1000; year++ {
		n := DaysInYear(year)
		if IsLeapYear(year) {
			if !leap[n] {
				t.Errorf("DaysInYear(%d) = %d, want one of 383/384/385 (leap year)", year, n)
			}
		} else if !common[n] {
			t.Errorf("DaysInYear(%d) = %d, want one of 353/354/355", year, n)
		}
		// The deferral rules exist to forbid these two lengths.
		if n == 356 || n == 382 {
			t.Errorf("DaysInYear(%d) = %d, forbidden length", year, n)
		}
	}
}

func TestDaysInYear_Known(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{5783, 355},
		{5784, 383}, // leap, deficient
		{5785, 355},
	}
	for _, tt := range tests {
		if got := DaysInYear(tt.year); got != tt.want {
			t.Errorf("DaysInYear(%d) = %d, want %d", tt.year, got, tt.want)
		}
	}
}

func TestDaysInMonth_SumsToYear(t *testing.T) {
	for year := 5700; year <= 5800; year++ {
		sum := 0
		for _, m := range MonthsInYear(year) {
			n, err := DaysInMonth(year, m)
			if err != nil {
				t.Fatalf("DaysInMonth(%d, %s): %v", year, m, err)
			}
			sum += n
		}
		if sum != DaysInYear(year) {
			t.Errorf("year %d: month lengths sum to %d, DaysInYear = %d",
				year, sum, DaysInYear(year))
		}
	}
}

func TestDaysInMonth_Variable(t *testing.T) {
	// 5784 is a deficient leap year (383 days): Heshvan 29, Kislev 29.
	// 5785 is a complete common year (355 days): Heshvan 30, Kislev 30.
	tests := []struct {
		year  int
		month Month
		want  int
	}{
		{5784, Heshvan, 29},
		{5784, Kislev, 29},
		{5784, AdarI, 30},
		{5784, AdarII, 29},
		{5785, Heshvan, 30},
		{5785, Kislev, 30},
		{5785, Tishri, 30},
		{5785, Elul, 29},
	}
	for _, tt := range tests {
		got, err := DaysInMonth(tt.year, tt.month)
		if err != nil {
			t.Errorf("DaysInMonth(%d, %s): %v", tt.year, tt.month, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestDaysInMonth_AdarIInCommonYear(t *testing.T) {
	// 5785 is not a leap year, so Adar I does not exist in it.
	if _, err := DaysInMonth(5785, AdarI); !IsInvalidDate(err) {
		t.Errorf("DaysInMonth(5785, AdarI) error = %v, want ErrInvalidDate", err)
	}
	if _, err := DaysInMonth(5785, Month(14)); !IsInvalidDate(err) {
		t.Errorf("DaysInMonth(5785, 14) error = %v, want ErrInvalidDate", err)
	}
}

func TestMonthsInYear(t *testing.T) {
	if got := len(MonthsInYear(5784)); got != 13 {
		t.Errorf("MonthsInYear(5784) has %d months, want 13", got)
	}
	if got := len(MonthsInYear(5785)); got != 12 {
		t.Errorf("MonthsInYear(5785) has %d months, want 12", got)
	}
	for _, m := range MonthsInYear(5785) {
		if m == AdarI {
			t.Error("MonthsInYear(5785) contains Adar I in a common year")
		}
	}
}

func TestNewYear_Increasing(t *testing.T) {
	prev := newYear(1)
	for year := 2; year <= 1000; year++ {
		ny := newYear(year)
		if ny <= prev {
			t.Fatalf("newYear(%d) = %d not after newYear(%d) = %d", year, ny, year-1, prev)
		}
		prev = ny
	}
}
