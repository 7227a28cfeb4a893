package lsp

import (
	"errors"
	"strings"

	"github.com/jsvensson/colorfamily/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single edit replacing the whole document with its
// formatted form. Documents that are already formatted or do not parse get
// no edits.
func formatEdits(content string) ([]protocol.TextEdit, error) {
	formatted, err := format.Format(content)
	if errors.Is(err, format.ErrSyntax) {
		return []protocol.TextEdit{}, nil
	}
	if err != nil {
		return nil, err
	}
	if formatted == content {
		return []protocol.TextEdit{}, nil
	}

	lines := splitLines(content)
	last := lines[len(lines)-1]
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(len(lines) - 1), Character: uint32(len(last))},
			},
			NewText: formatted,
		},
	}, nil
}

// textDocumentFormatting handles textDocument/formatting requests.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	content, ok := s.docs.Get(string(params.TextDocument.URI))
	if !ok {
		return nil, nil
	}
	// Editors send CRLF documents on Windows; hclwrite emits LF.
	if strings.Contains(content, "\r\n") {
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	return formatEdits(content)
}
