package lsp

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// definitionOf returns the palette entry name the target refers to. A
// cursor on an entry's own name refers to that entry. builtin is true for
// base.x references, which have no definition inside the document.
func definitionOf(t paletteTarget) (name string, builtin bool) {
	if t.node == nil {
		return t.attr.Name, false
	}

	ref, ok := t.node.(*hclsyntax.ScopeTraversalExpr)
	if !ok {
		return "", false
	}
	root, attr, ok := splitReference(ref.Traversal)
	if !ok {
		return "", false
	}

	switch root {
	case "palette":
		return attr, false
	case "base":
		return attr, true
	}
	return "", false
}

// definition returns where the palette entry referenced at pos is defined.
// Base colors are built in: they resolve to no location, and hover shows
// their canonical code instead.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	offset, ok := offsetAt(content, pos)
	if !ok {
		return nil
	}
	t, ok := result.targetAt(offset)
	if !ok {
		return nil
	}

	name, builtin := definitionOf(t)
	if builtin {
		log.Debugf("base.%s is a built-in color without a definition", name)
		return nil
	}
	if name == "" {
		return nil
	}

	symRange, ok := result.Symbols["palette."+name]
	if !ok {
		return nil
	}
	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: symRange,
	}
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return definition(result, content, uri, params.Position), nil
}
