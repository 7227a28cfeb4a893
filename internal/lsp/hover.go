package lsp

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/style"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zclconf/go-cty/cty"
)

// colorSummary renders c as 8-digit hex, rgba() and hsla() for hover text.
func colorSummary(c color.RGBA) string {
	summary := fmt.Sprintf("`%s` · `%s`", c.HexAlpha(), c.String())
	if hsla, err := color.RGBAToHSLA(c); err == nil {
		summary += fmt.Sprintf(" · `%s`", hsla.String())
	}
	return summary
}

// bandSummary describes the saturation and lightness a style draws from.
func bandSummary(b style.Band) string {
	return fmt.Sprintf("saturation %d±%d%%, lightness %d±%d%%",
		b.Saturation, b.SaturationJitter, b.Lightness, b.LightnessJitter)
}

// entryColor returns the evaluated color of the palette entry name.
func (r *AnalysisResult) entryColor(name string) (color.RGBA, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return color.RGBA{}, false
}

func (r *AnalysisResult) entryHover(name string) (string, bool) {
	c, ok := r.entryColor(name)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("**palette.%s**\n\n%s", name, colorSummary(c)), true
}

// referenceHover describes palette.x and base.x references. Base colors
// show their canonical code next to the breakdown.
func (r *AnalysisResult) referenceHover(traversal hcl.Traversal) (string, bool) {
	root, name, ok := splitReference(traversal)
	if !ok {
		return "", false
	}

	switch root {
	case "palette":
		return r.entryHover(name)
	case "base":
		code, ok := color.Base(name).HexCode()
		if !ok {
			return "", false
		}
		c, err := color.HexToRGBA(code)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("**base.%s** base color `%s`\n\n%s", name, code, colorSummary(c)), true
	}
	return "", false
}

// callHover describes a function call. Style calls show the band in effect
// for this file. A call that is the whole entry value also shows the
// entry's color.
func (r *AnalysisResult) callHover(call *hclsyntax.FunctionCallExpr, entry *hclsyntax.Attribute) (string, bool) {
	styles := r.Styles
	if styles == nil {
		styles = style.Default()
	}

	header := ""
	if kind, err := style.ParseKind(call.Name); err == nil {
		if band, ok := styles.Band(kind); ok {
			header = fmt.Sprintf("**%s**(color): %s", call.Name, bandSummary(band))
		}
	}

	if call != entry.Expr {
		return header, header != ""
	}

	md, ok := r.entryHover(entry.Name)
	if !ok {
		return header, header != ""
	}
	if header != "" {
		md = header + "\n\n" + md
	}
	return md, true
}

// literalHover describes a string literal that names a color, such as the
// argument in darken("#eb6f92", 0.2).
func literalHover(n hclsyntax.Node) (string, bool) {
	expr, ok := n.(hclsyntax.Expression)
	if !ok {
		return "", false
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || !v.IsKnown() || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	c, err := color.Resolve(v.AsString())
	if err != nil {
		return "", false
	}
	return colorSummary(c), true
}

// hover produces a Hover response for the palette expression under pos.
// Returns nil outside the palette block and on nodes that carry no color.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	offset, ok := offsetAt(content, pos)
	if !ok {
		return nil
	}
	t, ok := result.targetAt(offset)
	if !ok {
		return nil
	}

	var (
		md  string
		rng hcl.Range
	)
	switch n := t.node.(type) {
	case nil:
		md, ok = result.entryHover(t.attr.Name)
		rng = t.attr.NameRange
	case *hclsyntax.ScopeTraversalExpr:
		md, ok = result.referenceHover(n.Traversal)
		rng = n.SrcRange
	case *hclsyntax.FunctionCallExpr:
		md, ok = result.callHover(n, t.attr)
		rng = n.Range()
	default:
		md, ok = literalHover(n)
		rng = n.Range()
	}
	if !ok {
		return nil
	}

	lspRange := hclRangeToLSP(rng)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md,
		},
		Range: &lspRange,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
