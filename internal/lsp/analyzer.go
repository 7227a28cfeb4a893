package lsp

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/numeric"
	"github.com/jsvensson/colorfamily/internal/parser"
	"github.com/jsvensson/colorfamily/internal/style"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagSource = "colorfamily"

// analysisSeed keeps unseeded random styles stable between edits so that
// document colors do not flicker while typing.
const analysisSeed = 0

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

// AnalysisResult holds all information produced by analyzing a palette file.
type AnalysisResult struct {
	// Parsed is false when the content had syntax errors.
	Parsed      bool
	Diagnostics []protocol.Diagnostic
	Entries     []parser.Entry
	Symbols     map[string]protocol.Range // "palette.primary" -> definition range
	Colors      []ColorLocation
	// Styles holds the bands in effect after the file's style blocks.
	Styles *style.Table

	body *hclsyntax.Body
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.RGBA
	IsRef bool // true if this is a palette or base reference (not a literal)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses HCL content from memory and produces diagnostics, a symbol table,
// and color locations. It collects ALL errors rather than short-circuiting on the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		result.addDiags(diags)
		// Cannot proceed with semantic analysis if syntax is broken
		return result
	}
	result.Parsed = true
	result.body, _ = file.Body.(*hclsyntax.Body)

	res, diags := parser.Evaluate(file, parser.Options{
		Fallback: numeric.NewSeededRand(analysisSeed),
	})
	result.addDiags(diags)
	result.Entries = res.Entries
	result.Styles = res.Styles

	exprs := paletteExprs(file.Body)
	for _, e := range res.Entries {
		result.Symbols["palette."+e.Name] = hclRangeToLSP(hcl.RangeBetween(e.NameRange, e.ValueRange))
		result.Colors = append(result.Colors, ColorLocation{
			Range: hclRangeToLSP(e.ValueRange),
			Color: e.Color,
			IsRef: isReferenceExpr(exprs[e.Name]),
		})
	}

	return result
}

// paletteExprs returns the expressions of the palette block keyed by
// attribute name.
func paletteExprs(body hcl.Body) map[string]hclsyntax.Expression {
	exprs := make(map[string]hclsyntax.Expression)
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return exprs
	}
	for _, block := range syntaxBody.Blocks {
		if block.Type != "palette" {
			continue
		}
		for name, attr := range block.Body.Attributes {
			exprs[name] = attr.Expr
		}
	}
	return exprs
}

// addDiags converts HCL diagnostics and appends them.
func (r *AnalysisResult) addDiags(diags hcl.Diagnostics) {
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
	}
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func strPtr(s string) *string {
	return &s
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.primary or base.red) rather than a literal or a call.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
