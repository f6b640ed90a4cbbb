package typst

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteSource(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    string
		wantErr bool
	}{
		{
			name: "basic page",
			req:  Request{Code: "$ x^2 $", FontSize: 10, Page: "basic"},
			want: "#set page(margin: (x: 0pt, y: 0pt))\n#set text(10pt)\n$ x^2 $",
		},
		{
			name: "markup is written verbatim",
			req:  Request{Code: "#let f = 1\n$ f \\ \"q\" $\n", FontSize: 24, Page: "basic"},
			want: "#set page(margin: (x: 0pt, y: 0pt))\n#set text(24pt)\n#let f = 1\n$ f \\ \"q\" $\n",
		},
		{
			name: "font size is not constrained",
			req:  Request{Code: "a", FontSize: -3, Page: "basic"},
			want: "#set page(margin: (x: 0pt, y: 0pt))\n#set text(-3pt)\na",
		},
		{
			name:    "unknown page preset",
			req:     Request{Code: "a", FontSize: 10, Page: "a4"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			err := WriteSource(&sb, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("WriteSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if sb.Len() != 0 {
					t.Errorf("WriteSource() wrote %q on error", sb.String())
				}
				return
			}
			if got := sb.String(); got != tt.want {
				t.Errorf("WriteSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name string
		code string
		size int
		page string
		want Request
	}{
		{
			name: "empty page takes the default",
			code: "$ a $", size: 12,
			want: Request{Code: "$ a $", FontSize: 12, Page: DefaultPage},
		},
		{
			name: "empty markup and zero size are kept",
			page: "basic",
			want: Request{Code: "", FontSize: 0, Page: "basic"},
		},
		{
			name: "unknown page is kept for Validate",
			code: "a", size: 10, page: "a4",
			want: Request{Code: "a", FontSize: 10, Page: "a4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRequest(tt.code, tt.size, tt.page); got != tt.want {
				t.Errorf("NewRequest() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWriteSourceEmptyRequest(t *testing.T) {
	var sb strings.Builder
	if err := WriteSource(&sb, NewRequest("", 0, "basic")); err != nil {
		t.Fatalf("WriteSource() error = %v", err)
	}
	want := "#set page(margin: (x: 0pt, y: 0pt))\n#set text(0pt)\n"
	if got := sb.String(); got != want {
		t.Errorf("WriteSource() = %q, want %q", got, want)
	}
}

func TestWriteSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.typ")

	if err := WriteSourceFile(path, NewRequest("$ y $", 11, "basic")); err != nil {
		t.Fatalf("WriteSourceFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "#set page(margin: (x: 0pt, y: 0pt))\n#set text(11pt)\n$ y $"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestPages(t *testing.T) {
	got := Pages()
	if len(got) != 1 || got[0] != "basic" {
		t.Errorf("Pages() = %v, want [basic]", got)
	}
}
