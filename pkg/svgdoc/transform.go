package svgdoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
)

// ParseTransform parses the value of an SVG transform attribute into an
// affine matrix. An empty string yields the identity.
func ParseTransform(s string) (canvas.Matrix, error) {
	m := canvas.Identity
	rest := strings.TrimSpace(s)

	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return canvas.Identity, fmt.Errorf("svgdoc: invalid transform %q", s)
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return canvas.Identity, fmt.Errorf("svgdoc: unterminated transform %q", s)
		}
		closing += open

		name := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : closing])
		if err != nil {
			return canvas.Identity, fmt.Errorf("svgdoc: transform %q: %w", s, err)
		}

		op, err := transformOp(name, args)
		if err != nil {
			return canvas.Identity, fmt.Errorf("svgdoc: transform %q: %w", s, err)
		}
		m = m.Mul(op)

		rest = strings.TrimLeft(rest[closing+1:], " \t\r\n,")
	}

	return m, nil
}

func transformOp(name string, args []float64) (canvas.Matrix, error) {
	argc := len(args)
	switch name {
	case "matrix":
		if argc != 6 {
			break
		}
		return canvas.Matrix{
			{args[0], args[2], args[4]},
			{args[1], args[3], args[5]},
		}, nil
	case "translate":
		if argc == 1 {
			return canvas.Identity.Translate(args[0], 0), nil
		}
		if argc == 2 {
			return canvas.Identity.Translate(args[0], args[1]), nil
		}
	case "scale":
		if argc == 1 {
			return canvas.Identity.Scale(args[0], args[0]), nil
		}
		if argc == 2 {
			return canvas.Identity.Scale(args[0], args[1]), nil
		}
	case "rotate":
		if argc == 1 {
			return canvas.Identity.Rotate(args[0]), nil
		}
		if argc == 3 {
			return canvas.Identity.RotateAbout(args[0], args[1], args[2]), nil
		}
	case "skewX":
		if argc == 1 {
			return canvas.Identity.Shear(math.Tan(args[0]*math.Pi/180), 0), nil
		}
	case "skewY":
		if argc == 1 {
			return canvas.Identity.Shear(0, math.Tan(args[0]*math.Pi/180)), nil
		}
	default:
		return canvas.Identity, fmt.Errorf("unknown function %q", name)
	}
	return canvas.Identity, fmt.Errorf("%s takes a different number of arguments than %d", name, argc)
}

// parseNumbers reads a list of numbers separated by commas and/or
// whitespace. The separator may be left out where the next number starts
// with a sign or a second decimal point, as in "1-2" or ".5.5".
func parseNumbers(s string) ([]float64, error) {
	var nums []float64
	for i := 0; ; {
		for i < len(s) && isSeparator(s[i]) {
			i++
		}
		if i == len(s) {
			return nums, nil
		}

		n := scanNumber(s[i:])
		if n == 0 {
			return nil, fmt.Errorf("invalid number at %q", s[i:])
		}
		v, err := strconv.ParseFloat(s[i:i+n], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s[i:i+n], err)
		}
		nums = append(nums, v)
		i += n
	}
}

// scanNumber returns the length of the number at the start of s, 0 if there
// is none.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSeparator(c byte) bool {
	return c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// FormatTransform writes m in SVG notation, using translate or scale when the
// matrix is a pure translation or a pure scale. The identity formats as "".
func FormatTransform(m canvas.Matrix) string {
	a, b, c, d, e, f := m[0][0], m[1][0], m[0][1], m[1][1], m[0][2], m[1][2]

	switch {
	case m.Equals(canvas.Identity):
		return ""
	case canvas.Equal(a, 1) && canvas.Equal(b, 0) && canvas.Equal(c, 0) && canvas.Equal(d, 1):
		return fmt.Sprintf("translate(%s, %s)", formatNumber(e), formatNumber(f))
	case canvas.Equal(b, 0) && canvas.Equal(c, 0) && canvas.Equal(e, 0) && canvas.Equal(f, 0):
		if canvas.Equal(a, d) {
			return fmt.Sprintf("scale(%s)", formatNumber(a))
		}
		return fmt.Sprintf("scale(%s, %s)", formatNumber(a), formatNumber(d))
	}

	return fmt.Sprintf("matrix(%s, %s, %s, %s, %s, %s)",
		formatNumber(a), formatNumber(b), formatNumber(c),
		formatNumber(d), formatNumber(e), formatNumber(f))
}

func formatNumber(v float64) string {
	if canvas.Equal(v, 0) {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
