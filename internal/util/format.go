package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatComma renders an integer with thousands separators (12345 → "12,345").
// Report text is pasted into chat verbatim, so the grouping must match the
// original output exactly.
func FormatComma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPercent renders a percentage with the given number of decimals.
func FormatPercent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f", decimals, v)
}
