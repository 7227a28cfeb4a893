package lsp

import (
	"testing"
)

// TestDocumentStore_Update verifies that the document store properly updates content
func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()

	// Open a document
	store.Open("test://palette.hcl", "initial content")

	content, ok := store.Get("test://palette.hcl")
	if !ok {
		t.Fatal("Document not found after opening")
	}
	if content != "initial content" {
		t.Errorf("Expected 'initial content', got '%s'", content)
	}

	// Update the document
	store.Update("test://palette.hcl", "updated content")

	content, ok = store.Get("test://palette.hcl")
	if !ok {
		t.Fatal("Document not found after update")
	}
	if content != "updated content" {
		t.Errorf("Expected 'updated content', got '%s'", content)
	}
}

// TestDocumentStore_MultipleUpdates verifies multiple updates work correctly
func TestDocumentStore_MultipleUpdates(t *testing.T) {
	store := NewDocumentStore()
	store.Open("test://palette.hcl", "version 1")

	updates := []string{
		"version 2",
		"version 3",
		"version 4",
	}

	for i, update := range updates {
		store.Update("test://palette.hcl", update)
		content, ok := store.Get("test://palette.hcl")
		if !ok {
			t.Fatalf("Document not found after update %d", i+2)
		}
		if content != update {
			t.Errorf("Update %d: expected '%s', got '%s'", i+2, update, content)
		}
	}
}

// TestDocumentStore_ConcurrentAccess verifies thread safety
func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	store.Open("test://palette.hcl", "initial")

	// Run concurrent updates
	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			store.Update("test://palette.hcl", string(rune('0'+n)))
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for i := 0; i < 10; i++ {
		<-done
	}

	// Verify document still exists and has some content
	content, ok := store.Get("test://palette.hcl")
	if !ok {
		t.Error("Document not found after concurrent updates")
	}
	if content == "" {
		t.Error("Document content is empty after concurrent updates")
	}
}

func TestDocumentStore_Close(t *testing.T) {
	store := NewDocumentStore()
	store.Open("test://palette.hcl", "content")
	store.Close("test://palette.hcl")

	if _, ok := store.Get("test://palette.hcl"); ok {
		t.Error("document still present after close")
	}
	if entries := store.Entries("test://palette.hcl"); entries != nil {
		t.Errorf("entries still present after close: %v", entries)
	}
}

func TestDocumentStore_ResultCache(t *testing.T) {
	const uri = "test://palette.hcl"
	good := "palette {\n  a = \"#ff0000\"\n}\n"
	broken := "palette {\n  b = palette.\n}\n"

	store := NewDocumentStore()
	store.Open(uri, good)
	if _, ok := store.Result(uri); ok {
		t.Fatal("expected no cached result before analysis")
	}

	store.SetResult(uri, good, Analyze(uri, good))
	if r, ok := store.Result(uri); !ok || len(r.Entries) != 1 {
		t.Fatalf("expected cached result with 1 entry, got %+v", r)
	}

	store.Update(uri, broken)
	if _, ok := store.Result(uri); ok {
		t.Error("update should drop the cached result")
	}

	store.SetResult(uri, broken, Analyze(uri, broken))
	entries := store.Entries(uri)
	if len(entries) != 1 || entries[0].Name != "a" {
		t.Errorf("entries = %+v, want those of the last parsed version", entries)
	}
}

func TestDocumentStore_StaleResultIgnored(t *testing.T) {
	const uri = "test://palette.hcl"
	store := NewDocumentStore()
	store.Open(uri, "v2")

	store.SetResult(uri, "v1", &AnalysisResult{Parsed: true})
	if _, ok := store.Result(uri); ok {
		t.Error("result for stale content should be ignored")
	}
}
