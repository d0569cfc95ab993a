package util

import (
	"fmt"
	"strconv"
)

// FormatNumber renders large counts compactly (1.2K, 3.4M).
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatCount renders n with comma thousand separators.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	if len(s) > 3 {
		out := make([]byte, 0, len(s)+len(s)/3)
		lead := len(s) % 3
		if lead > 0 {
			out = append(out, s[:lead]...)
		}
		for i := lead; i < len(s); i += 3 {
			if len(out) > 0 {
				out = append(out, ',')
			}
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatHours renders an hour offset such as "2h" or "-1.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatSignedHours is FormatHours with an explicit plus sign.
func FormatSignedHours(h float64) string {
	if h > 0 {
		return "+" + FormatHours(h)
	}
	return FormatHours(h)
}
