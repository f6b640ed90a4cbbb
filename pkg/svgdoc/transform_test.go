package svgdoc

import (
	"math"
	"testing"

	"github.com/tdewolff/canvas"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    canvas.Matrix
		wantErr bool
	}{
		{name: "empty", in: "", want: canvas.Identity},
		{name: "translate", in: "translate(5, 3)", want: canvas.Identity.Translate(5, 3)},
		{name: "translate x only", in: "translate(5)", want: canvas.Identity.Translate(5, 0)},
		{name: "scale uniform", in: "scale(2)", want: canvas.Identity.Scale(2, 2)},
		{name: "scale xy", in: "scale(2 -1)", want: canvas.Identity.Scale(2, -1)},
		{
			name: "matrix",
			in:   "matrix(1 0 0 -1 0 20.5)",
			want: canvas.Matrix{{1, 0, 0}, {0, -1, 20.5}},
		},
		{
			name: "list applies left to right",
			in:   "translate(10,0) scale(2)",
			want: canvas.Matrix{{2, 0, 10}, {0, 2, 0}},
		},
		{
			name: "comma separated list",
			in:   "scale(2),translate(1 1)",
			want: canvas.Matrix{{2, 0, 2}, {0, 2, 2}},
		},
		{name: "rotate", in: "rotate(90)", want: canvas.Matrix{{0, -1, 0}, {1, 0, 0}}},
		{name: "rotate about", in: "rotate(180 1 1)", want: canvas.Matrix{{-1, 0, 2}, {0, -1, 2}}},
		{name: "skewX", in: "skewX(45)", want: canvas.Matrix{{1, 1, 0}, {0, 1, 0}}},
		{name: "skewY", in: "skewY(45)", want: canvas.Matrix{{1, 0, 0}, {1, 1, 0}}},
		{name: "sign separates numbers", in: "translate(1-2)", want: canvas.Identity.Translate(1, -2)},
		{name: "decimal point separates numbers", in: "scale(.5.5)", want: canvas.Identity.Scale(0.5, 0.5)},
		{name: "exponent", in: "translate(1e1-2.5E-1)", want: canvas.Identity.Translate(10, -0.25)},
		{name: "explicit plus sign", in: "translate(+3+4)", want: canvas.Identity.Translate(3, 4)},
		{name: "unit suffix", in: "translate(5px)", wantErr: true},
		{name: "lone sign", in: "scale(-)", wantErr: true},
		{name: "unknown function", in: "spin(3)", wantErr: true},
		{name: "wrong arity", in: "matrix(1 2 3)", wantErr: true},
		{name: "unterminated", in: "translate(1 2", wantErr: true},
		{name: "bad number", in: "scale(x)", wantErr: true},
		{name: "garbage", in: "nonsense", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransform(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransform(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParseTransform(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
	}{
		{in: "", want: nil},
		{in: "0,0 4,1 2,5", want: []float64{0, 0, 4, 1, 2, 5}},
		{in: " 1\t2\r\n3 ", want: []float64{1, 2, 3}},
		{in: "10-20-.5", want: []float64{10, -20, -0.5}},
		{in: "0.5.25.125", want: []float64{0.5, 0.25, 0.125}},
		{in: "1e2,3E+1", want: []float64{100, 30}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseNumbers(tt.in)
			if err != nil {
				t.Fatalf("parseNumbers(%q) error = %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseNumbers(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseNumbers(%q) = %v, want %v", tt.in, got, tt.want)
					break
				}
			}
		})
	}
}

func TestFormatTransform(t *testing.T) {
	tests := []struct {
		name string
		in   canvas.Matrix
		want string
	}{
		{name: "identity", in: canvas.Identity, want: ""},
		{name: "translate", in: canvas.Identity.Translate(5, 3), want: "translate(5, 3)"},
		{name: "negative zero", in: canvas.Identity.Translate(-0.0, 2), want: "translate(0, 2)"},
		{name: "uniform scale", in: canvas.Identity.Scale(1.5, 1.5), want: "scale(1.5)"},
		{name: "scale", in: canvas.Identity.Scale(1, -1), want: "scale(1, -1)"},
		{
			name: "matrix",
			in:   canvas.Identity.Scale(2, 2).Translate(-10, -10),
			want: "matrix(2, 0, 0, 2, -20, -20)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTransform(tt.in); got != tt.want {
				t.Errorf("FormatTransform() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTransformRoundTrip(t *testing.T) {
	m := canvas.Identity.Translate(3, -4).Rotate(30).Scale(1.25, 0.5)

	got, err := ParseTransform(FormatTransform(m))
	if err != nil {
		t.Fatalf("ParseTransform() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(got[i][j]-m[i][j]) > 1e-9 {
				t.Fatalf("round trip = %v, want %v", got, m)
			}
		}
	}
}
