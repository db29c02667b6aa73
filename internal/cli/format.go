// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with thousands separators and two decimal
// places, e.g. 1234.5 -> "$1,234.50". A negative amount keeps its sign
// ahead of the symbol.
func FormatMoney(amount decimal.Decimal, symbol string) string {
	s := amount.Abs().StringFixed(2)
	dot := strings.IndexByte(s, '.')
	out := symbol + groupDigits(s[:dot]) + s[dot:]
	if amount.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDate renders a day as "Tue Apr 07".
func FormatDate(t time.Time) string {
	return t.Format("Mon Jan 02")
}

// FormatWeekRange renders a window span as "Apr 05 - Apr 11".
func FormatWeekRange(start, end time.Time) string {
	return start.Format("Jan 02") + " - " + end.Format("Jan 02")
}
