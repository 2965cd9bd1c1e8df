// Package dates holds the calendar-date type shared by every record and the
// cell parser that turns spreadsheet values into dates
package dates

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// Order says how an ambiguous numeric date like 05/01/2024 is read
type Order uint8

const (
	// MonthFirst reads 05/01/2024 as 1 May
	MonthFirst Order = iota
	// DayFirst reads 05/01/2024 as 5 January
	DayFirst
)

// Date is a calendar date with no time of day. The zero value is invalid
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of drops the time of day from t, keeping t's own calendar fields
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// New builds a Date, normalizing out-of-range fields the way time.Date does
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// IsZero reports whether d is the invalid zero date
func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC on d
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// Compare returns -1, 0 or 1, suitable for slices.SortFunc
func (d Date) Compare(o Date) int {
	switch {
	case d.Before(o):
		return -1
	case o.Before(d):
		return 1
	default:
		return 0
	}
}

// String renders the ISO form, used in logs and cache keys
func (d Date) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day) }

// Format renders DD/MM/YYYY, the display form
func (d Date) Format() string { return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year) }

// MarshalText renders the display form
func (d Date) MarshalText() ([]byte, error) { return []byte(d.Format()), nil }

// UnmarshalText accepts the display form
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDMY(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDMY parses a strict DD/MM/YYYY value such as a user-supplied filter
func ParseDMY(s string) (Date, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not DD/MM/YYYY", s)
	}
	return Of(t), nil
}

// ParseCell turns a raw spreadsheet cell into a Date
// Numeric cells are Excel serial dates in the workbook's date system, anything
// else is parsed as free text in the given order. ok is false for blank or
// unparseable cells; callers drop those rows rather than failing
func ParseCell(raw string, order Order, date1904 bool) (Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, false
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial, date1904)
	}
	s = dashedDate.ReplaceAllString(s, "$1/$2/$3")
	t, err := dateparse.ParseIn(s, time.UTC,
		dateparse.PreferMonthFirst(order == MonthFirst),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return Date{}, false
	}
	return Of(t), true
}

// dashedDate matches DD-MM-YYYY and DD.MM.YYYY (or the month first forms),
// which dateparse only reads in a fixed order; they are rewritten with slashes
var dashedDate = regexp.MustCompile(`^(\d{1,2})[-.](\d{1,2})[-.](\d{4})\b`)

// maxSerial is 9999-12-31 in the 1900 date system, the last day Excel shows
const maxSerial = 2958465

// serials1904 is the offset between the 1900 and 1904 date systems
const serials1904 = 1462

// fromSerial converts an Excel serial. Day 0, negatives, non-finite values and
// anything past 9999-12-31 are not dates
func fromSerial(serial float64, date1904 bool) (Date, bool) {
	last := float64(maxSerial)
	if date1904 {
		last -= serials1904
	}
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial >= last+1 {
		return Date{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return Date{}, false
	}
	return Of(t), true
}
