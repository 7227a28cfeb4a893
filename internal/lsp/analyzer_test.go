package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const validPalette = `
meta {
  name   = "Test Palette"
  author = "Test Author"
}

style "neon" {
  lightness = 55
}

palette {
  base    = "#191724"
  surface = "#1f1d2e"
  love    = "#eb6f92"
  warm    = base.orange
  glow    = neon(palette.love)
  shade   = darken(palette.love, 0.1)
  again   = palette.base
}
`

func TestAnalyze_ValidPalette(t *testing.T) {
	result := Analyze("test.hcl", validPalette)

	if len(result.Diagnostics) != 0 {
		for _, d := range result.Diagnostics {
			t.Logf("  diagnostic: [%v] %s", *d.Severity, d.Message)
		}
		t.Fatalf("expected 0 diagnostics, got %d", len(result.Diagnostics))
	}

	if len(result.Entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(result.Entries))
	}
	if got := result.Entries[0].Color.Hex(); got != "#191724" {
		t.Errorf("palette.base = %q, want %q", got, "#191724")
	}
	if len(result.Colors) != 7 {
		t.Errorf("got %d color locations, want 7", len(result.Colors))
	}
	for _, name := range []string{"palette.base", "palette.glow", "palette.again"} {
		if _, ok := result.Symbols[name]; !ok {
			t.Errorf("symbol %s missing", name)
		}
	}
}

func TestAnalyze_SyntaxError(t *testing.T) {
	content := `
palette {
  base = "#191724"
  this is not valid HCL!!!!
}
`
	result := Analyze("test.hcl", content)

	if len(result.Diagnostics) == 0 {
		t.Fatal("expected at least 1 diagnostic for syntax error")
	}

	// All syntax errors should be error-level
	for _, d := range result.Diagnostics {
		if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("expected error severity, got %v", d.Severity)
		}
	}
}

func TestAnalyze_SemanticErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine uint32
		wantMsg  string
	}{
		{
			name:     "undefined palette reference",
			content:  "palette {\n  base = \"#191724\"\n  fg   = palette.nonexistent\n}\n",
			wantLine: 2,
			wantMsg:  "Unsupported attribute",
		},
		{
			name:     "invalid hex literal",
			content:  "palette {\n  base = \"#1917\"\n}\n",
			wantLine: 1,
			wantMsg:  "Invalid color",
		},
		{
			name:     "unknown function",
			content:  "palette {\n  a = metallic(\"red\")\n}\n",
			wantLine: 1,
			wantMsg:  "unknown function",
		},
		{
			name:     "bad style band",
			content:  "style \"vivid\" {\n  saturation = 100\n}\npalette {}\n",
			wantLine: 0,
			wantMsg:  "Invalid style",
		},
		{
			name:     "nested block",
			content:  "palette {\n  group {\n  }\n}\n",
			wantLine: 1,
			wantMsg:  "Blocks are not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze("test.hcl", tt.content)
			if len(result.Diagnostics) == 0 {
				t.Fatal("expected a diagnostic")
			}
			d := result.Diagnostics[0]
			if !strings.Contains(d.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", d.Message, tt.wantMsg)
			}
			if d.Range.Start.Line != tt.wantLine {
				t.Errorf("diagnostic on line %d, want %d", d.Range.Start.Line, tt.wantLine)
			}
			if d.Source == nil || *d.Source != diagSource {
				t.Errorf("source = %v, want %q", d.Source, diagSource)
			}
		})
	}
}

func TestAnalyze_MissingPalette(t *testing.T) {
	result := Analyze("test.hcl", "meta {\n  name = \"x\"\n}\n")
	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(result.Diagnostics))
	}
	if !strings.Contains(result.Diagnostics[0].Message, "Missing palette block") {
		t.Errorf("unexpected message %q", result.Diagnostics[0].Message)
	}
}

func TestAnalyze_ContinuesPastErrors(t *testing.T) {
	content := "palette {\n  a = \"nope\"\n  b = \"#ffffff\"\n  c = \"also nope\"\n}\n"
	result := Analyze("test.hcl", content)

	if len(result.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(result.Diagnostics))
	}
	if len(result.Entries) != 1 || result.Entries[0].Name != "b" {
		t.Errorf("entries = %+v, want only b", result.Entries)
	}
}

func TestAnalyze_StableWithoutSeed(t *testing.T) {
	content := "palette {\n  a = pastel(\"blue\")\n}\n"
	a := Analyze("test.hcl", content)
	b := Analyze("test.hcl", content)
	if a.Entries[0].Color != b.Entries[0].Color {
		t.Errorf("unseeded analysis is not stable: %v vs %v", a.Entries[0].Color, b.Entries[0].Color)
	}
}

func TestAnalyze_ReferenceFlags(t *testing.T) {
	result := Analyze("test.hcl", validPalette)

	want := map[int]bool{
		0: false, // literal
		3: true,  // base.orange
		4: false, // neon(...)
		6: true,  // palette.base
	}
	for i, isRef := range want {
		if result.Colors[i].IsRef != isRef {
			t.Errorf("color %d IsRef = %v, want %v", i, result.Colors[i].IsRef, isRef)
		}
	}
}

func TestHCLRangeToLSP(t *testing.T) {
	result := Analyze("test.hcl", "palette {\n  base = \"#191724\"\n}\n")
	r := result.Colors[0].Range
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 9},
		End:   protocol.Position{Line: 1, Character: 18},
	}
	if r != want {
		t.Errorf("range = %+v, want %+v", r, want)
	}
}
