package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/noamsilver/luach-api/internal/hebcal"
)

// hdate converts dates between the civil and Hebrew calendars and
// prints year tables. Handy for eyeballing the engine's output against
// a printed luach.
//
// Usage:
//
//	hdate                      today's Hebrew date
//	hdate -date 2024-04-23     convert a civil date
//	hdate -year 5784           print the month table for a Hebrew year
func main() {
	dateStr := flag.String("date", "", "Civil date to convert (YYYY-MM-DD, default today)")
	year := flag.Int("year", 0, "Hebrew year to print a month table for")
	flag.Parse()

	if *year != 0 {
		if err := printYear(*year); err != nil {
			fmt.Fprintln(os.Stderr, "hdate:", err)
			os.Exit(1)
		}
		return
	}

	t := time.Now()
	if *dateStr != "" {
		var err error
		t, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hdate: invalid date %q, use YYYY-MM-DD\n", *dateStr)
			os.Exit(1)
		}
	}

	d, err := hebcal.FromTime(t)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hdate:", err)
		os.Exit(1)
	}

	fmt.Printf("%s = %v\n", t.Format("2006-01-02"), d)
}

func printYear(year int) error {
	newYear, err := hebcal.New(year, hebcal.Tishri, 1)
	if err != nil {
		return err
	}

	kind := "common"
	if hebcal.IsLeapYear(year) {
		kind = "leap"
	}
	fmt.Printf("=== Hebrew year %d (%s, %d days) ===\n", year, kind, hebcal.DaysInYear(year))
	fmt.Printf("New year: %s\n\n", newYear.Time().Format("2006-01-02"))

	for _, m := range hebcal.MonthsInYear(year) {
		n, err := hebcal.DaysInMonth(year, m)
		if err != nil {
			return err
		}
		first, err := hebcal.New(year, m, 1)
		if err != nil {
			return err
		}
		fmt.Printf("  %-8s %2d days  begins %s\n", m, n, first.Time().Format("2006-01-02"))
	}

	return nil
}
