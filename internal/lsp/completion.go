package lsp

import (
	"strings"

	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/funcs"
	"github.com/jsvensson/colorfamily/internal/parser"
	"github.com/jsvensson/colorfamily/internal/style"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextStyle                // inside style "<kind>" {}
	contextPalette              // inside palette {}
	contextUnknown              // inside anything else
)

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "author", "seed"}

// styleAttributes are the valid attributes inside a style block.
var styleAttributes = []string{"saturation", "saturation_jitter", "lightness", "lightness_jitter"}

// functionSnippets describe the palette functions for completion.
var functionSnippets = map[string]struct {
	signature string
	snippet   string
}{
	"pastel":  {"pastel(color)", "pastel(${1:color})"},
	"vivid":   {"vivid(color)", "vivid(${1:color})"},
	"neon":    {"neon(color)", "neon(${1:color})"},
	"lighten": {"lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
	"darken":  {"darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
	"rgba":    {"rgba(r, g, b, a)", "rgba(${1:255}, ${2:255}, ${3:255}, ${4:1})"},
	"hsla":    {"hsla(h, s, l, a)", "hsla(${1:0}, ${2:100}, ${3:50}, ${4:1})"},
	"hex":     {"hex(color)", "hex(${1:color})"},
}

// complete produces completion items given the known palette entries, document
// content, and cursor position. This is the core logic, decoupled from the LSP
// protocol handler for testability.
func complete(entries []parser.Entry, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Determine which block the cursor is in by scanning from the top
	ctx := determineBlockContext(lines, int(pos.Line))

	switch ctx {
	case contextPalette:
		if items := tryReferenceCompletion(entries, textBeforeCursor); items != nil {
			return items
		}
		if isValuePosition(textBeforeCursor) {
			return valueCompletions()
		}
	case contextMeta:
		return attributeCompletions(lines, int(pos.Line), metaAttributes)
	case contextStyle:
		return attributeCompletions(lines, int(pos.Line), styleAttributes)
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryReferenceCompletion checks if the text before the cursor ends with a
// "palette." or "base." prefix, optionally followed by a partial name, and
// returns the names available under it. The client filters partial matches.
func tryReferenceCompletion(entries []parser.Entry, textBeforeCursor string) []protocol.CompletionItem {
	word := textBeforeCursor[lastWordStart(textBeforeCursor):]

	root, _, found := strings.Cut(word, ".")
	if !found {
		return nil
	}

	switch root {
	case "palette":
		return paletteCompletions(entries)
	case "base":
		return baseCompletions()
	}
	return nil
}

// lastWordStart returns the index where the identifier path ending at the
// end of text begins.
func lastWordStart(text string) int {
	i := len(text)
	for i > 0 && isIdentChar(text[i-1]) {
		i--
	}
	return i
}

// isIdentChar reports whether b can appear in a dotted reference path.
func isIdentChar(b byte) bool {
	return b == '_' || b == '.' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// paletteCompletions converts palette entries into completion items.
func paletteCompletions(entries []parser.Entry) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	kind := protocol.CompletionItemKindColor

	for _, e := range entries {
		hex := e.Color.HexAlpha()
		items = append(items, protocol.CompletionItem{
			Label:  e.Name,
			Kind:   &kind,
			Detail: &hex,
		})
	}

	return items
}

// baseCompletions lists the base colors.
func baseCompletions() []protocol.CompletionItem {
	var items []protocol.CompletionItem
	kind := protocol.CompletionItemKindColor

	for _, b := range color.Bases() {
		code, _ := b.HexCode()
		detail := strings.ToLower(code)
		items = append(items, protocol.CompletionItem{
			Label:  string(b),
			Kind:   &kind,
			Detail: &detail,
		})
	}

	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns completion items for a value position, including
// function snippets and the palette and base reference triggers.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range funcs.Names {
		fn, ok := functionSnippets[name]
		if !ok {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.signature),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}

	for _, v := range []struct{ name, detail string }{
		{"palette", "palette reference"},
		{"base", "base color"},
	} {
		items = append(items, protocol.CompletionItem{
			Label:      v.name,
			Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
			Detail:     strPtr(v.detail),
			InsertText: strPtr(v.name + "."),
		})
	}

	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				name := parts[0]
				for range opens {
					stack = append(stack, name)
				}
			}
		}

		// Process closing braces
		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}
	if len(stack) > 1 {
		return contextUnknown
	}

	switch stack[0] {
	case "meta":
		return contextMeta
	case "style":
		return contextStyle
	case "palette":
		return contextPalette
	default:
		return contextUnknown
	}
}

// attributeCompletions returns attribute name completions, excluding names
// already defined in the block surrounding the cursor.
func attributeCompletions(lines []string, cursorLine int, names []string) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var kinds []string
	for _, k := range style.Kinds() {
		if _, ok := style.Default().Band(k); ok {
			kinds = append(kinds, string(k))
		}
	}

	blocks := []struct{ name, snippet string }{
		{"meta", "meta {\n  $0\n}"},
		{"style", "style \"${1|" + strings.Join(kinds, ",") + "|}\" {\n  $0\n}"},
		{"palette", "palette {\n  $0\n}"},
	}

	var items []protocol.CompletionItem
	for _, b := range blocks {
		items = append(items, protocol.CompletionItem{
			Label:            b.name,
			Kind:             &kind,
			InsertText:       strPtr(b.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	// Typing "palette." leaves the document unparseable, so names come from
	// the last version that parsed.
	s.getResult(uri)
	entries := s.docs.Entries(uri)

	items := complete(entries, content, params.Position)
	return items, nil
}
