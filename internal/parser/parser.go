// Package parser reads palette files: an optional meta block, style
// overrides and a palette block whose entries are evaluated in order.
package parser

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/config"
	"github.com/jsvensson/colorfamily/internal/funcs"
	"github.com/jsvensson/colorfamily/internal/numeric"
	"github.com/jsvensson/colorfamily/internal/style"
)

// ErrInvalidPalette is returned when a palette file fails to parse or
// evaluate. The message carries the HCL diagnostics.
var ErrInvalidPalette = errors.New("invalid palette")

// Meta holds palette metadata.
type Meta struct {
	Name   string `hcl:"name,optional"`
	Author string `hcl:"author,optional"`
	Seed   *int64 `hcl:"seed,optional"`
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig is the top-level layout of a palette file.
type RawConfig struct {
	Meta    *Meta               `hcl:"meta,block"`
	Styles  []config.StyleBlock `hcl:"style,block"`
	Palette *PaletteBlock       `hcl:"palette,block"`
}

// Options tune evaluation.
type Options struct {
	// Rand overrides the seed from the meta block.
	Rand *numeric.Rand
	// Fallback is used when neither Rand nor a meta seed is set. A fresh
	// random source is used when it is nil too.
	Fallback *numeric.Rand
	// Styles is the table the file's style blocks are applied on top of.
	Styles *style.Table
}

// Entry is one evaluated palette attribute.
type Entry struct {
	Name  string
	Color color.RGBA
	// NameRange covers the attribute name, ValueRange its expression.
	NameRange  hcl.Range
	ValueRange hcl.Range
}

// Result is an evaluated palette file.
type Result struct {
	Meta    Meta
	Styles  *style.Table
	Rand    *numeric.Rand
	Entries []Entry
}

// Lookup returns the entry with the given name.
func (r *Result) Lookup(name string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Colors returns the entries keyed by name.
func (r *Result) Colors() map[string]color.RGBA {
	m := make(map[string]color.RGBA, len(r.Entries))
	for _, e := range r.Entries {
		m[e.Name] = e.Color
	}
	return m
}

// Parse reads and evaluates a palette file.
func Parse(path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return ParseSource(src, path, opts)
}

// ParseSource evaluates palette file contents. filename is used in
// diagnostics.
func ParseSource(src []byte, filename string, opts Options) (*Result, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPalette, diags.Error())
	}

	res, diags := Evaluate(file, opts)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPalette, diags.Error())
	}
	return res, nil
}

// Evaluate decodes a parsed palette file. It keeps going past bad entries
// so that every problem is reported; the returned result holds the entries
// that evaluated cleanly.
func Evaluate(file *hcl.File, opts Options) (*Result, hcl.Diagnostics) {
	res := &Result{Styles: opts.Styles, Rand: opts.Rand}
	if res.Styles == nil {
		res.Styles = style.Default()
	}

	var raw RawConfig
	diags := gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return res, diags
	}

	if raw.Meta != nil {
		res.Meta = *raw.Meta
	}

	if res.Rand == nil {
		res.Rand = opts.Fallback
		if res.Rand == nil {
			res.Rand = numeric.NewRand()
		}
		if res.Meta.Seed != nil {
			seed, err := config.ParseSeed(*res.Meta.Seed)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid seed",
					Detail:   err.Error(),
					Subject:  metaRange(file.Body),
				})
			} else {
				res.Rand = numeric.NewSeededRand(seed)
			}
		}
	}

	styleRanges := blockRanges(file.Body, "style")
	for i, block := range raw.Styles {
		styles, err := config.ApplyStyles(res.Styles, []config.StyleBlock{block})
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid style",
				Detail:   err.Error(),
				Subject:  rangeAt(styleRanges, i),
			})
			continue
		}
		res.Styles = styles
	}
	if i := duplicateStyle(raw.Styles); i >= 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Duplicate style",
			Detail:   fmt.Sprintf("style %q is defined more than once", raw.Styles[i].Kind),
			Subject:  rangeAt(styleRanges, i),
		})
	}

	if raw.Palette == nil {
		return res, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing palette block",
			Detail:   "A palette file needs a palette block.",
		})
	}

	body, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return res, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported palette body",
			Detail:   "The palette block must be written in native HCL syntax.",
		})
	}

	for _, block := range body.Blocks {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected block",
			Detail:   fmt.Sprintf("Blocks are not allowed in palette; define %q as an attribute.", block.Type),
			Subject:  block.TypeRange.Ptr(),
		})
	}

	ctx := funcs.BuildEvalContext(funcs.Env{Styles: res.Styles, Rand: res.Rand})
	colors := make(map[string]color.RGBA)
	for _, attr := range Attributes(body) {
		funcs.SetPalette(ctx, colors)

		c, valDiags := EvalColor(attr.Expr, ctx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}

		colors[attr.Name] = c
		res.Entries = append(res.Entries, Entry{
			Name:       attr.Name,
			Color:      c,
			NameRange:  attr.NameRange,
			ValueRange: attr.Expr.Range(),
		})
	}

	return res, diags
}

// Attributes returns the attributes of body in source order.
func Attributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

// EvalColor evaluates expr and resolves the result to a color.
func EvalColor(expr hcl.Expression, ctx *hcl.EvalContext) (color.RGBA, hcl.Diagnostics) {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return color.RGBA{}, diags
	}

	c, err := funcs.ResolveColor(val)
	if err != nil {
		return color.RGBA{}, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid color",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
	}
	return c, diags
}

// duplicateStyle returns the index of the first block that repeats an
// earlier kind, or -1.
func duplicateStyle(blocks []config.StyleBlock) int {
	seen := make(map[string]bool, len(blocks))
	for i, b := range blocks {
		if seen[b.Kind] {
			return i
		}
		seen[b.Kind] = true
	}
	return -1
}

// blockRanges returns the header ranges of the top-level blocks of the
// given type, in source order.
func blockRanges(body hcl.Body, blockType string) []hcl.Range {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	var ranges []hcl.Range
	for _, block := range syntaxBody.Blocks {
		if block.Type == blockType {
			ranges = append(ranges, block.DefRange())
		}
	}
	return ranges
}

func rangeAt(ranges []hcl.Range, i int) *hcl.Range {
	if i < 0 || i >= len(ranges) {
		return nil
	}
	return ranges[i].Ptr()
}

func metaRange(body hcl.Body) *hcl.Range {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil
	}
	for _, block := range syntaxBody.Blocks {
		if block.Type == "meta" {
			if attr, ok := block.Body.Attributes["seed"]; ok {
				return attr.SrcRange.Ptr()
			}
			return block.DefRange().Ptr()
		}
	}
	return nil
}
