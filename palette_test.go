package colorfamily

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testPaletteHCL = `
meta {
  name   = "sunset"
  author = "Tester"
  seed   = 7
}

palette {
  primary = "#ff6600"
  accent  = base.purple
  soft    = pastel(palette.primary)
  shade   = darken(palette.primary, 0.2)
}
`

func writePalette(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "palette.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette(writePalette(t, testPaletteHCL))
	if err != nil {
		t.Fatalf("LoadPalette() error: %v", err)
	}

	if p.Meta.Name != "sunset" || p.Meta.Author != "Tester" {
		t.Errorf("Meta = %+v", p.Meta)
	}
	if p.Meta.Seed == nil || *p.Meta.Seed != 7 {
		t.Errorf("Meta.Seed = %v, want 7", p.Meta.Seed)
	}

	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Name
	}
	want := []string{"primary", "accent", "soft", "shade"}
	for i := range want {
		if i >= len(names) || names[i] != want[i] {
			t.Fatalf("entries = %v, want %v", names, want)
		}
	}

	shade, ok := p.Lookup("shade")
	if !ok {
		t.Fatal("shade missing")
	}
	if got := shade.String(); got != "#993d00ff" {
		t.Errorf("shade = %s, want #993d00ff", got)
	}

	if _, ok := p.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
	if len(p.Colors()) != 4 {
		t.Errorf("Colors() has %d entries, want 4", len(p.Colors()))
	}
}

func TestLoadPalette_Reproducible(t *testing.T) {
	path := writePalette(t, testPaletteHCL)

	a, err := LoadPalette(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadPalette(path)
	if err != nil {
		t.Fatal(err)
	}

	sa, _ := a.Lookup("soft")
	sb, _ := b.Lookup("soft")
	if sa.String() != sb.String() {
		t.Errorf("seeded palettes differ: %s vs %s", sa, sb)
	}

	// Restyling entries draws from the palette's random source.
	pa, _ := a.Lookup("primary")
	pb, _ := b.Lookup("primary")
	if pa.Neon().String() != pb.Neon().String() {
		t.Errorf("restyled entries differ: %s vs %s", pa, pb)
	}
}

func TestLoadPalette_WithStyles(t *testing.T) {
	styles, err := NewStyleTable(map[StyleKind]Band{
		Pastel: {Saturation: 0, Lightness: 50},
	})
	if err != nil {
		t.Fatal(err)
	}

	p, err := ParsePalette([]byte(`palette { gray = pastel("red") }`), "p.hcl", WithStyles(styles))
	if err != nil {
		t.Fatalf("ParsePalette() error: %v", err)
	}
	gray, _ := p.Lookup("gray")
	if got := gray.String(); got != "#808080ff" {
		t.Errorf("gray = %s, want #808080ff", got)
	}
}

func TestLoadPalette_Errors(t *testing.T) {
	_, err := ParsePalette([]byte(`palette { a = "notacolor" }`), "p.hcl")
	if !errors.Is(err, ErrInvalidPalette) {
		t.Errorf("expected ErrInvalidPalette, got %v", err)
	}

	_, err = LoadPalette(filepath.Join(t.TempDir(), "missing.hcl"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
