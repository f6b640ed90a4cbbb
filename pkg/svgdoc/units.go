package svgdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// pxPerUnit holds the size of each CSS absolute unit in px (96 px per inch).
var pxPerUnit = map[string]float64{
	"":   1,
	"px": 1,
	"in": 96,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"mm": 96.0 / 25.4,
	"cm": 96.0 / 2.54,
	"Q":  96.0 / 25.4 / 4,
}

// ConvertUnit converts value from one CSS absolute unit to another.
func ConvertUnit(value float64, from, to string) (float64, error) {
	f, ok := pxPerUnit[from]
	if !ok {
		return 0, fmt.Errorf("svgdoc: unknown unit %q", from)
	}
	t, ok := pxPerUnit[to]
	if !ok {
		return 0, fmt.Errorf("svgdoc: unknown unit %q", to)
	}
	return value * f / t, nil
}

// ParseLength parses an SVG length such as "12", "12px" or "4.2mm" and
// returns its value in px. Percentages are not supported.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("svgdoc: empty length")
	}

	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '%' {
			end--
			continue
		}
		break
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(s[:end]), 64)
	if err != nil {
		return 0, fmt.Errorf("svgdoc: invalid length %q: %w", s, err)
	}
	return ConvertUnit(value, s[end:], "px")
}
