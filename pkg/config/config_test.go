package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty file keeps defaults",
			data: "\n",
			want: Default(),
		},
		{
			name: "overrides",
			data: "typst:\n  binary: /opt/typst/bin/typst\n  timeout: 30s\nfont_size: 14\nlabel: Formula\n",
			want: Config{
				Typst:    TypstConfig{Binary: "/opt/typst/bin/typst", Timeout: 30 * time.Second},
				FontSize: 14,
				Page:     "basic",
				Label:    "Formula",
			},
		},
		{
			name: "partial typst section keeps default binary",
			data: "typst:\n  timeout: 1m\n",
			want: Config{
				Typst:    TypstConfig{Binary: "typst", Timeout: time.Minute},
				FontSize: 10,
				Page:     "basic",
				Label:    "Typst Formula",
			},
		},
		{
			name:    "unknown key",
			data:    "fontsize: 12\n",
			wantErr: true,
		},
		{
			name:    "unknown page",
			data:    "page: a4\n",
			wantErr: true,
		},
		{
			name:    "negative timeout",
			data:    "typst:\n  timeout: -1s\n",
			wantErr: true,
		},
		{
			name:    "invalid yaml",
			data:    "typst: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), "test.yaml")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typst-formula.yaml")
	if err := os.WriteFile(path, []byte("font_size: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("explicit path", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		cfg, err := Resolve(path)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.FontSize != 20 {
			t.Errorf("FontSize = %d, want 20", cfg.FontSize)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(EnvPath, path)
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if cfg.FontSize != 20 {
			t.Errorf("FontSize = %d, want 20", cfg.FontSize)
		}
	})

	t.Run("missing environment file", func(t *testing.T) {
		t.Setenv(EnvPath, filepath.Join(dir, "nope.yaml"))
		cfg, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv(EnvPath, "")
		if _, err := Resolve(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("Resolve() with a missing explicit file should fail")
		}
	})
}
