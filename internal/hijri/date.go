// Package hijri holds the Islamic calendar view: month names, the simplified
// month grid and navigation.
//
// Day counts use a fixed heuristic rather than a real Hijri conversion:
// Ramadan has 30 days, other even months 29 and odd months 30. The first
// weekday of every month is a constant. Both are placeholders that keep the
// grid stable from one render to the next.
package hijri

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MonthNames lists the Islamic months, Muharram first.
var MonthNames = []string{
	"Muharram",
	"Safar",
	"Rabi' al-Awwal",
	"Rabi' al-Thani",
	"Jumada al-Awwal",
	"Jumada al-Thani",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

var ErrInvalidDate = errors.New("invalid islamic date")

// Date is a parsed “<day> <monthName> <year>” string.
type Date struct {
	Day       int
	MonthName string
	Year      int
}

// Parse splits s on single spaces, the same way the display compares cells:
// the first token is the day, the second the month name and the third the
// year. Month names containing spaces therefore never match a cell; that is
// intentional and mirrors the tokenized comparison.
func Parse(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) < 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: day in %q", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("%w: year in %q", ErrInvalidDate, s)
	}
	if day < 1 || day > 30 {
		return Date{}, fmt.Errorf("%w: day %d out of range", ErrInvalidDate, day)
	}
	return Date{Day: day, MonthName: parts[1], Year: year}, nil
}

// Month returns the 1-based month number, or 0 when the name is unknown.
func (d Date) Month() int {
	return MonthNumber(d.MonthName)
}

func (d Date) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.MonthName, d.Year)
}

// MonthName returns the name of month m (1-12), or "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > len(MonthNames) {
		return ""
	}
	return MonthNames[m-1]
}

// MonthNumber is the inverse of MonthName.
func MonthNumber(name string) int {
	for i, n := range MonthNames {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// Format renders a date with the canonical month name for month m.
func Format(day, m, year int) string {
	return fmt.Sprintf("%d %s %d", day, MonthName(m), year)
}

// FormatDayMonth renders “<day> <monthName>” without a year.
func FormatDayMonth(day, m int) string {
	return fmt.Sprintf("%d %s", day, MonthName(m))
}
