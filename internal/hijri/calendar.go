package hijri

import "fmt"

// FirstWeekdayOffset is the number of empty cells before day 1 (Wednesday,
// with Sunday as the first column).
const FirstWeekdayOffset = 3

// Default view: Sha'ban 1445.
const (
	DefaultMonth = 8
	DefaultYear  = 1445
)

// WeekdayLabels are the column headers, Sunday first.
var WeekdayLabels = []string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// ImportantDate is a fixed notable day shown under the grid.
type ImportantDate struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

var ImportantDates = []ImportantDate{
	{Day: 1, Month: 9, Label: "Début du Ramadan"},
	{Day: 27, Month: 9, Label: "Laylat al-Qadr (estimé)"},
	{Day: 1, Month: 10, Label: "Aïd al-Fitr"},
	{Day: 10, Month: 12, Label: "Aïd al-Adha"},
}

// DaysInMonth applies the fixed heuristic; the year plays no part.
func DaysInMonth(m int) int {
	if m == 9 {
		return 30
	}
	if m%2 == 0 {
		return 29
	}
	return 30
}

// Cell is one square of the grid. Day is 0 for leading blanks.
type Cell struct {
	Day     int  `json:"day"`
	Empty   bool `json:"empty"`
	Current bool `json:"current"`
}

// Calendar is a navigable month cursor.
type Calendar struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func New(month, year int) Calendar {
	if month < 1 || month > 12 {
		month = DefaultMonth
	}
	return Calendar{Month: month, Year: year}
}

// Prev moves one month back, wrapping to Dhu al-Hijjah of the previous year.
func (c *Calendar) Prev() {
	if c.Month == 1 {
		c.Month = 12
		c.Year--
		return
	}
	c.Month--
}

// Next moves one month forward, wrapping to Muharram of the next year.
func (c *Calendar) Next() {
	if c.Month == 12 {
		c.Month = 1
		c.Year++
		return
	}
	c.Month++
}

func (c Calendar) MonthName() string {
	return MonthName(c.Month)
}

// Title is the header shown above the grid, e.g. “Sha'ban 1445”.
func (c Calendar) Title() string {
	return fmt.Sprintf("%s %d", c.MonthName(), c.Year)
}

// IsCurrentDay reports whether day in this month matches ref.
func (c Calendar) IsCurrentDay(day int, ref string) bool {
	d, err := Parse(ref)
	if err != nil {
		return false
	}
	return day == d.Day && c.MonthName() == d.MonthName && c.Year == d.Year
}

// Grid lays out FirstWeekdayOffset blanks followed by the month's days, with
// the day matching ref marked current.
func (c Calendar) Grid(ref string) []Cell {
	n := DaysInMonth(c.Month)
	cells := make([]Cell, 0, FirstWeekdayOffset+n)
	for i := 0; i < FirstWeekdayOffset; i++ {
		cells = append(cells, Cell{Empty: true})
	}
	for day := 1; day <= n; day++ {
		cells = append(cells, Cell{Day: day, Current: c.IsCurrentDay(day, ref)})
	}
	return cells
}
