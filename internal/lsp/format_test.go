package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatEdits(t *testing.T) {
	content := "palette {\nprimary=\"#ff6600\"\n}\n"

	edits, err := formatEdits(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(edits))
	}

	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 3, Character: 0},
	}
	if edits[0].Range != want {
		t.Errorf("range = %+v, want %+v", edits[0].Range, want)
	}
	if edits[0].NewText != "palette {\n  primary = \"#ff6600\"\n}\n" {
		t.Errorf("NewText = %q", edits[0].NewText)
	}
}

func TestFormatEdits_NoChange(t *testing.T) {
	edits, err := formatEdits("palette {\n  a = \"#000000\"\n}\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(edits) != 0 {
		t.Errorf("expected no edits, got %d", len(edits))
	}
}

func TestFormatEdits_SyntaxError(t *testing.T) {
	edits, err := formatEdits("palette {\n  a = \n")
	if err != nil {
		t.Fatalf("syntax errors should not fail formatting, got %v", err)
	}
	if edits == nil || len(edits) != 0 {
		t.Errorf("expected an empty edit list, got %v", edits)
	}
}
