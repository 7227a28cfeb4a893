package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jsvensson/colorfamily"
	"gopkg.in/yaml.v3"
)

// execute runs the CLI with a config file holding cfg, so the user's own
// config never leaks into a test.
func execute(t *testing.T, cfg string, args ...string) (string, string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.hcl")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewText(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		args []string
		want string
	}{
		{
			name: "base color",
			args: []string{"new", "red"},
			want: "#ff0000\nrgba(255, 0, 0, 1)\nhsla(0, 100%, 50%, 1)\n",
		},
		{
			name: "hex with alpha",
			args: []string{"new", "#3498db80", "--format", "hexCode8"},
			want: "#3498db80\nrgba(52, 152, 219, 0.502)\nhsla(204.07, 69.87%, 53.14%, 0.502)\n",
		},
		{
			name: "format from config",
			cfg:  `format = "hexCode8"`,
			args: []string{"new", "blue"},
			want: "#0000ffff\nrgba(0, 0, 255, 1)\nhsla(240, 100%, 50%, 1)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := execute(t, tt.cfg, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestNewJSON(t *testing.T) {
	out, _, err := execute(t, "", "new", "green", "--output", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var got colorRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	want := colorRecord{
		Hex:  "#008000",
		RGBA: rgbaRecord{R: 0, G: 128, B: 0, A: 1},
		HSLA: hslaRecord{H: 120, S: 100, L: 25.1, A: 1},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStyles(t *testing.T) {
	out, _, err := execute(t, "", "new", "red", "--style", "pastel", "--style", "neon", "--seed", "7", "-o", "yaml")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var got colorRecord
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if diff := cmp.Diff([]string{"pastel", "neon"}, got.Styles); diff != "" {
		t.Errorf("styles mismatch (-want +got):\n%s", diff)
	}
	// The last style decides the band.
	if got.HSLA.S < 90 || got.HSLA.S > 94 || got.HSLA.L < 59 || got.HSLA.L > 61 {
		t.Errorf("hsla %+v outside the neon band", got.HSLA)
	}
	if got.HSLA.H != 0 {
		t.Errorf("hue = %v, want 0", got.HSLA.H)
	}
}

func TestNewSeedIsReproducible(t *testing.T) {
	first, _, err := execute(t, "", "new", "--seed", "42", "--style", "vivid")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	second, _, err := execute(t, "", "new", "--seed", "42", "--style", "vivid")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if first != second {
		t.Errorf("same seed gave different colors:\n%s\n%s", first, second)
	}

	fromConfig, _, err := execute(t, "seed = 42", "new", "--style", "vivid")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if fromConfig != first {
		t.Errorf("config seed gave %q, flag seed gave %q", fromConfig, first)
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown color", args: []string{"new", "teal"}, want: colorfamily.ErrInvalidFormat},
		{name: "bad hex", args: []string{"new", "#12345"}, want: colorfamily.ErrInvalidFormat},
		{name: "unknown style", args: []string{"new", "red", "--style", "glossy"}, want: colorfamily.ErrInvalidFormat},
		{name: "unimplemented style", args: []string{"new", "red", "--style", "metallic"}, want: colorfamily.ErrUnsupportedStyle},
		{name: "unknown format", args: []string{"new", "red", "--format", "rgb"}, want: colorfamily.ErrInvalidFormat},
		{name: "unknown output", args: []string{"new", "red", "--output", "toml"}, want: colorfamily.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, `format = "hexCode7"`, "new", "red")
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("err = %v, want a config error", err)
	}
}

func TestBases(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "", "bases")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		for _, b := range colorfamily.BaseColors() {
			if !strings.Contains(out, string(b)) {
				t.Errorf("output is missing %s:\n%s", b, out)
			}
		}
		if !strings.Contains(out, "#4b0082") {
			t.Errorf("output is missing indigo's hex code:\n%s", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "", "bases", "-o", "json", "-f", "hexCode8")
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		var recs []colorRecord
		if err := json.Unmarshal([]byte(out), &recs); err != nil {
			t.Fatalf("decoding: %v", err)
		}
		var names, hexes []string
		for _, r := range recs {
			names = append(names, r.Name)
			hexes = append(hexes, r.Hex)
		}
		wantNames := []string{"red", "orange", "yellow", "green", "blue", "indigo", "purple"}
		wantHexes := []string{"#ff0000ff", "#ffa500ff", "#ffff00ff", "#008000ff", "#0000ffff", "#4b0082ff", "#800080ff"}
		if diff := cmp.Diff(wantNames, names); diff != "" {
			t.Errorf("names (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(wantHexes, hexes); diff != "" {
			t.Errorf("hex codes (-want +got):\n%s", diff)
		}
	})
}

const testPalette = `meta {
  name = "Test"
  seed = 3
}

palette {
  bg     = "#191724"
  accent = base.red
  soft   = pastel(palette.accent)
}
`

func writePalette(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palette.hcl")
	if err := os.WriteFile(path, []byte(testPalette), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGeneratePrintsPalette(t *testing.T) {
	path := writePalette(t)

	out, _, err := execute(t, "", "generate", "--palette", path, "-o", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var got paletteRecord
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Name != "Test" || got.Seed == nil || *got.Seed != 3 {
		t.Errorf("meta = %q seed %v, want Test seed 3", got.Name, got.Seed)
	}
	var names []string
	for _, c := range got.Colors {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"bg", "accent", "soft"}, names); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if got.Colors[0].Hex != "#191724" || got.Colors[1].Hex != "#ff0000" {
		t.Errorf("hex codes = %s, %s", got.Colors[0].Hex, got.Colors[1].Hex)
	}

	again, _, err := execute(t, "", "generate", "--palette", path, "-o", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if again != out {
		t.Error("seeded palette is not reproducible")
	}

	text, _, err := execute(t, "", "generate", "--palette", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(text, "accent") || !strings.Contains(text, "#191724") {
		t.Errorf("text output:\n%s", text)
	}
}

func TestGenerateTemplates(t *testing.T) {
	path := writePalette(t)
	tmplDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	tmpl := `bg={{ hex .Colors.bg }} accent={{ hex "palette.accent" }}`
	if err := os.WriteFile(filepath.Join(tmplDir, "app.conf.tmpl"), []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "", "generate", "--palette", path, "--templates", tmplDir, "--out", outDir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, outDir) {
		t.Errorf("output = %q, want the output directory", out)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "app.conf"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if want := "bg=#191724 accent=#ff0000"; string(got) != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}

func TestGenerateMissingPalette(t *testing.T) {
	_, _, err := execute(t, "", "generate", "--palette", filepath.Join(t.TempDir(), "nope.hcl"))
	if err == nil || !strings.Contains(err.Error(), "loading palette") {
		t.Errorf("err = %v, want a palette error", err)
	}
}

func TestFmt(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.hcl")
	clean := filepath.Join(dir, "clean.hcl")
	if err := os.WriteFile(messy, []byte("palette {\nbg=\"#000000\"\n  accent  = base.red\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(clean, []byte("palette {\n  bg = \"#000000\"\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("check", func(t *testing.T) {
		out, _, err := execute(t, "", "fmt", "--check", messy, clean)
		if !errors.Is(err, errNotFormatted) {
			t.Errorf("err = %v, want errNotFormatted", err)
		}
		if strings.TrimSpace(out) != messy {
			t.Errorf("output = %q, want only %s", out, messy)
		}
	})

	t.Run("write", func(t *testing.T) {
		if _, _, err := execute(t, "", "fmt", messy, clean); err != nil {
			t.Fatalf("execute: %v", err)
		}
		got, err := os.ReadFile(messy)
		if err != nil {
			t.Fatal(err)
		}
		want := "palette {\n  bg     = \"#000000\"\n  accent = base.red\n}\n"
		if string(got) != want {
			t.Errorf("formatted:\n%s\nwant:\n%s", got, want)
		}
		if _, _, err := execute(t, "", "fmt", "--check", messy); err != nil {
			t.Errorf("check after formatting: %v", err)
		}
	})

	t.Run("syntax error", func(t *testing.T) {
		broken := filepath.Join(dir, "broken.hcl")
		if err := os.WriteFile(broken, []byte("palette {\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, stderr, err := execute(t, "", "fmt", broken)
		if !errors.Is(err, errFmtFailed) {
			t.Errorf("err = %v, want errFmtFailed", err)
		}
		if !strings.Contains(stderr, "Error formatting") {
			t.Errorf("stderr = %q", stderr)
		}
	})
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
