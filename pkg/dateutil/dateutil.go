// Package dateutil converts between fractional calendar years and months.
package dateutil

// MonthOfYearFraction returns the calendar month (1-12) reached after the
// given fraction of a year has elapsed. Fractions outside [0,1] are clamped.
func MonthOfYearFraction(fraction float64) int {
	month := int(fraction * 12)
	if month < 1 {
		return 1
	}
	if month > 12 {
		return 12
	}
	return month
}

// FractionalYear returns year plus the elapsed fraction, e.g. 2031.5 for the
// middle of 2031.
func FractionalYear(year int, fraction float64) float64 {
	return float64(year) + fraction
}

// MonthsBetween counts the whole months from (fromYear, fromMonth) to
// (toYear, toMonth); negative when the target lies before the origin.
func MonthsBetween(fromYear, fromMonth, toYear, toMonth int) int {
	return (toYear-fromYear)*12 + (toMonth - fromMonth)
}
