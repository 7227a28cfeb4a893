package lsp

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/numeric"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an internal color.RGBA (uint8 channels) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.RGBA) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: float32(c.A),
	}
}

// colorFromLSP converts a protocol.Color back to RGBA, rounding each channel.
func colorFromLSP(c protocol.Color) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(numeric.Clamp(math.Round(float64(v)*255), 0, 255))
	}
	alpha := numeric.Clamp(float64(c.Alpha), 0, 1)
	// float32 alphas such as 0.8 carry noise past the third decimal.
	alpha = math.Round(alpha*1000) / 1000
	return color.RGBA{R: channel(c.Red), G: channel(c.Green), B: channel(c.Blue), A: alpha}
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// hslaCall renders c as an hsla() call that palette files accept.
func hslaCall(c color.RGBA) string {
	hsla, err := color.RGBAToHSLA(c)
	if err != nil {
		return ""
	}
	num := func(v float64, decimals int) string {
		p := math.Pow(10, float64(decimals))
		return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
	}
	return "hsla(" + num(hsla.H, 2) + ", " + num(hsla.S, 2) + ", " + num(hsla.L, 2) + ", " + num(hsla.A, 3) + ")"
}

// colorPresentation produces color presentation options for a given color and range.
// String literals and rgba()/hsla() calls can be rewritten as a 6-digit hex
// code (opaque colors only), an 8-digit hex code, an rgba() call or an hsla()
// call. References and style calls return an empty slice so that they are
// never replaced with literal values.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	c := colorFromLSP(params.Color)

	// Extract the text at the given range to determine what kind of expression it is
	text := textInRange(content, params.Range)

	quote := ""
	switch {
	case strings.HasPrefix(text, "\""), strings.HasPrefix(text, "rgba("), strings.HasPrefix(text, "hsla("):
		quote = "\""
	case strings.HasPrefix(text, "#"):
		// Bare hex code, keep it bare
	default:
		return []protocol.ColorPresentation{}
	}

	var labels, texts []string
	if c.A == 1 {
		labels = append(labels, c.Hex())
		texts = append(texts, quote+c.Hex()+quote)
	}
	labels = append(labels, c.HexAlpha())
	texts = append(texts, quote+c.HexAlpha()+quote)

	if quote != "" {
		rgba, hsla := c.String(), hslaCall(c)
		labels = append(labels, rgba, hsla)
		texts = append(texts, rgba, hsla)
	}

	presentations := make([]protocol.ColorPresentation, len(labels))
	for i := range labels {
		presentations[i] = protocol.ColorPresentation{
			Label: labels[i],
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: texts[i],
			},
		}
	}
	return presentations
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
