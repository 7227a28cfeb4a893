package lsp

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// offsetAt converts pos to a byte offset into content. Characters are
// counted as bytes and clamped to the end of their line. ok is false when
// the line does not exist.
func offsetAt(content string, pos protocol.Position) (int, bool) {
	offset := 0
	for range pos.Line {
		i := strings.IndexByte(content[offset:], '\n')
		if i < 0 {
			return 0, false
		}
		offset += i + 1
	}

	lineLen := strings.IndexByte(content[offset:], '\n')
	if lineLen < 0 {
		lineLen = len(content) - offset
	}
	return offset + min(int(pos.Character), lineLen), true
}

// textInRange returns the source text covered by r.
func textInRange(content string, r protocol.Range) string {
	start, ok := offsetAt(content, r.Start)
	if !ok {
		return ""
	}
	end, ok := offsetAt(content, r.End)
	if !ok {
		end = len(content)
	}
	if end < start {
		return ""
	}
	return content[start:end]
}

// paletteTarget is what the cursor points at inside the palette block.
type paletteTarget struct {
	attr *hclsyntax.Attribute
	// node is the innermost expression node under the cursor, or nil when
	// the cursor is on the entry name.
	node hclsyntax.Node
}

// targetAt finds the palette entry under offset and the innermost node of
// its value expression.
func (r *AnalysisResult) targetAt(offset int) (paletteTarget, bool) {
	if r == nil || r.body == nil {
		return paletteTarget{}, false
	}

	for _, block := range r.body.Blocks {
		if block.Type != "palette" {
			continue
		}
		for _, attr := range block.Body.Attributes {
			if attr.NameRange.ContainsOffset(offset) {
				return paletteTarget{attr: attr}, true
			}
			if !attr.Expr.Range().ContainsOffset(offset) {
				continue
			}

			t := paletteTarget{attr: attr, node: attr.Expr}
			hclsyntax.VisitAll(attr.Expr, func(n hclsyntax.Node) hcl.Diagnostics {
				if rng := n.Range(); rng.ContainsOffset(offset) && span(rng) < span(t.node.Range()) {
					t.node = n
				}
				return nil
			})
			return t, true
		}
	}
	return paletteTarget{}, false
}

func span(r hcl.Range) int {
	return r.End.Byte - r.Start.Byte
}

// splitReference splits a two-step traversal such as base.red into its
// root and attribute names.
func splitReference(traversal hcl.Traversal) (root, name string, ok bool) {
	if len(traversal) != 2 {
		return "", "", false
	}
	attr, ok := traversal[1].(hcl.TraverseAttr)
	if !ok {
		return "", "", false
	}
	return traversal.RootName(), attr.Name, true
}
