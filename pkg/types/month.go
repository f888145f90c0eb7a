package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// wageMonthNames are the abbreviated month names used by the portal's
// "Mon-YYYY" wage month column, in calendar order.
var wageMonthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthIndex maps an abbreviated month name to its calendar month.
// Matching is case-insensitive ("FEB", "feb" and "Feb" all resolve).
// Unrecognized names return 0, the invalid sentinel.
func MonthIndex(name string) time.Month {
	title := strings.Title(strings.ToLower(strings.TrimSpace(name))) //nolint:staticcheck // ASCII month names only
	for i, m := range wageMonthNames {
		if m == title {
			return time.Month(i + 1)
		}
	}
	return 0
}

// YearMonth identifies a calendar month, the granularity at which the
// portal reports wage periods.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseWageMonth parses the portal's "Mon-YYYY" wage month format.
// The month name is normalized before matching; an unrecognized month
// or malformed string returns an error so the caller can skip the row.
func ParseWageMonth(s string) (YearMonth, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return YearMonth{}, fmt.Errorf("malformed wage month %q", s)
	}

	month := MonthIndex(parts[0])
	if month == 0 {
		return YearMonth{}, fmt.Errorf("unrecognized month name %q", parts[0])
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return YearMonth{}, fmt.Errorf("malformed wage year %q", parts[1])
	}

	return YearMonth{Year: year, Month: month}, nil
}

// IsZero returns true for the invalid sentinel value.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Compare orders two months chronologically: -1 if ym is earlier than
// other, 0 if equal, 1 if later.
func (ym YearMonth) Compare(other YearMonth) int {
	switch {
	case ym.Year != other.Year:
		if ym.Year < other.Year {
			return -1
		}
		return 1
	case ym.Month != other.Month:
		if ym.Month < other.Month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// In reports whether ym falls within the inclusive range [start, end].
func (ym YearMonth) In(start, end YearMonth) bool {
	return ym.Compare(start) >= 0 && ym.Compare(end) <= 0
}

// String renders the month in the portal's "Mon-YYYY" format.
func (ym YearMonth) String() string {
	if ym.Month < 1 || ym.Month > 12 {
		return fmt.Sprintf("???-%d", ym.Year)
	}
	return fmt.Sprintf("%s-%d", wageMonthNames[ym.Month-1], ym.Year)
}

// Compact renders the month as "YYYYMM", used in archive file names.
func (ym YearMonth) Compact() string {
	return fmt.Sprintf("%04d%02d", ym.Year, int(ym.Month))
}
