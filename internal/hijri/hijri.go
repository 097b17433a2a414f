// Package hijri converts between Gregorian dates and the tabular (arithmetic)
// Islamic calendar, the civil variant with leap years in years
// 2, 5, 7, 10, 13, 16, 18, 21, 24, 26 and 29 of the 30-year cycle.
//
// Tabular dates can differ by a day from moon-sighting announcements; the
// application treats them as a consistent bookkeeping calendar, not a
// religious authority.
package hijri

import (
	"fmt"
	"time"
)

// epochJDN is the Julian day number of 1 Muharram AH 1 (19 July 622 in the
// proleptic Gregorian calendar).
const epochJDN = 1948440

// Date is a date in the tabular Islamic calendar.
type Date struct {
	Year  int
	Month int // 1..12, Muharram = 1
	Day   int // 1..30
}

// String formats the date as YYYY-MM-DD (e.g. "1445-01-01").
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsLeapYear reports whether the Hijri year has 355 days.
func IsLeapYear(year int) bool {
	return (11*year+14)%30 < 11
}

// YearDays returns the number of days in the Hijri year.
func YearDays(year int) int {
	if IsLeapYear(year) {
		return 355
	}
	return 354
}

// MonthDays returns the number of days in a Hijri month.
// Odd months have 30 days, even months 29, except month 12 in a leap year.
func MonthDays(year, month int) int {
	if month%2 == 1 {
		return 30
	}
	if month == 12 && IsLeapYear(year) {
		return 30
	}
	return 29
}

// toJDN converts a Hijri date to a Julian day number.
func toJDN(d Date) int {
	daysBeforeMonth := (d.Month-1)*29 + d.Month/2
	return epochJDN + (d.Year-1)*354 + (11*d.Year+3)/30 + daysBeforeMonth + d.Day - 1
}

// fromJDN converts a Julian day number to a Hijri date.
func fromJDN(jdn int) Date {
	year := (30*(jdn-epochJDN) + 10646) / 10631
	month := 1
	for month < 12 && jdn >= toJDN(Date{Year: year, Month: month + 1, Day: 1}) {
		month++
	}
	day := jdn - toJDN(Date{Year: year, Month: month, Day: 1}) + 1
	return Date{Year: year, Month: month, Day: day}
}

// gregorianToJDN uses the Fliegel–Van Flandern formula.
func gregorianToJDN(y, m, d int) int {
	a := (m - 14) / 12
	jdn := (1461*(y+4800+a))/4 +
		(367*(m-2-12*a))/12 -
		(3*((y+4900+a)/100))/4 +
		d - 32075
	return jdn
}

// jdnToGregorian is the inverse Fliegel–Van Flandern formula.
func jdnToGregorian(jdn int) (y, m, d int) {
	l := jdn + 68569
	n := (4 * l) / 146097
	l = l - (146097*n+3)/4
	i := (4000 * (l + 1)) / 1461001
	l = l - (1461*i)/4 + 31
	j := (80 * l) / 2447
	d = l - (2447*j)/80
	l = j / 11
	m = j + 2 - 12*l
	y = 100*(n-49) + i + l
	return y, m, d
}

// FromTime converts a Gregorian time (its calendar date in its own location)
// to a Hijri date.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return fromJDN(gregorianToJDN(y, int(m), d))
}

// ToTime converts a Hijri date to a Gregorian time at midnight UTC.
func ToTime(d Date) time.Time {
	y, m, day := jdnToGregorian(toJDN(d))
	return time.Date(y, time.Month(m), day, 0, 0, 0, 0, time.UTC)
}

// Valid reports whether the date exists in the tabular calendar.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= MonthDays(d.Year, d.Month)
}
