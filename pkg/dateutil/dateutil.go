package dateutil

import "fmt"

// MonthsPerYear is the number of simulated months in one projection year
const MonthsPerYear = 12

// AbsoluteMonth returns the 1-indexed month counted from the projection start
// for a 1-indexed year and a month within that year.
func AbsoluteMonth(year, month int) int {
	return (year-1)*MonthsPerYear + month
}

// YearOf returns the 1-indexed projection year containing an absolute month
func YearOf(absoluteMonth int) int {
	return (absoluteMonth-1)/MonthsPerYear + 1
}

// MonthOfYear maps an absolute month onto 1..12. A remainder of zero is the
// twelfth month of the year.
func MonthOfYear(absoluteMonth int) int {
	m := absoluteMonth % MonthsPerYear
	if m == 0 {
		return MonthsPerYear
	}
	return m
}

// IsFirstMonthOfYear reports whether the absolute month opens a projection year
func IsFirstMonthOfYear(absoluteMonth int) bool {
	return MonthOfYear(absoluteMonth) == 1
}

// Label renders the human readable chart label, e.g. "Year 2 Month 3"
func Label(year, absoluteMonth int) string {
	return fmt.Sprintf("Year %d Month %d", year, MonthOfYear(absoluteMonth))
}

// TotalMonths returns the number of months in a horizon of whole years
func TotalMonths(years int) int {
	return years * MonthsPerYear
}
