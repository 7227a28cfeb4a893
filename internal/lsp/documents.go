package lsp

import (
	"sync"

	"github.com/jsvensson/colorfamily/internal/parser"
)

type document struct {
	content string
	result  *AnalysisResult
	// entries survive edits that break the syntax, for completion.
	entries []parser.Entry
}

// DocumentStore holds open document contents and their analysis keyed by URI.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*document)}
}

func (s *DocumentStore) Open(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &document{content: content}
}

// Update replaces the content of uri and drops its cached analysis.
func (s *DocumentStore) Update(uri, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.content = content
	doc.result = nil
}

func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *DocumentStore) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Result returns the cached analysis of uri, if any.
func (s *DocumentStore) Result(uri string) (*AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok || doc.result == nil {
		return nil, false
	}
	return doc.result, true
}

// SetResult caches the analysis of content. It is ignored when the document
// has since been closed or changed.
func (s *DocumentStore) SetResult(uri, content string, result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || doc.content != content {
		return
	}
	doc.result = result
	if result.Parsed {
		doc.entries = result.Entries
	}
}

// Entries returns the palette entries of the last analysis of uri that
// parsed cleanly.
func (s *DocumentStore) Entries(uri string) []parser.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if doc, ok := s.docs[uri]; ok {
		return doc.entries
	}
	return nil
}
