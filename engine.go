package colorfamily

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/tliron/commonlog"

	"github.com/jsvensson/colorfamily/internal/color"
)

var log = commonlog.GetLogger("colorfamily")

// Engine renders Go templates against a Palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given palette, and writes output files.
func (e *Engine) Run(p *Palette) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(p)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
		log.Infof("rendered %s", filepath.Join(e.OutputDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta    Meta
	Colors  map[string]*Color
	Entries []PaletteEntry
	FuncMap template.FuncMap
}

// resolveColorPath resolves a dot-notation path to a Color.
// Supports paths like "palette.primary" and "base.red".
func resolveColorPath(path string, data templateData) (*Color, error) {
	block, name, ok := strings.Cut(path, ".")
	if !ok || name == "" || strings.Contains(name, ".") {
		return nil, fmt.Errorf("invalid path %q: must be block.name format", path)
	}

	switch block {
	case "palette":
		c, ok := data.Colors[name]
		if !ok {
			return nil, fmt.Errorf("palette color not found: %s", name)
		}
		return c, nil

	case "base":
		if !color.IsBase(name) {
			return nil, fmt.Errorf("base color not found: %s", name)
		}
		return New(name)

	default:
		return nil, fmt.Errorf("unknown block %q (valid: palette, base)", block)
	}
}

// templateColor accepts either a *Color or a color path string, so that
// both {{ hex .Colors.primary }} and {{ hex "palette.primary" }} work.
func templateColor(v any, data templateData) (*Color, error) {
	switch c := v.(type) {
	case *Color:
		if c == nil {
			return nil, fmt.Errorf("nil color")
		}
		return c, nil
	case string:
		return resolveColorPath(c, data)
	default:
		return nil, fmt.Errorf("expected a color or a color path, got %T", v)
	}
}

func buildTemplateData(p *Palette) templateData {
	data := templateData{
		Meta:    p.Meta,
		Colors:  p.Colors(),
		Entries: p.Entries,
	}

	render := func(f func(*Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := templateColor(v, data)
			if err != nil {
				return "", err
			}
			return f(c), nil
		}
	}

	data.FuncMap = template.FuncMap{
		"hex": render(func(c *Color) string {
			return c.rgba.Hex()
		}),
		"hexAlpha": render(func(c *Color) string {
			return c.rgba.HexAlpha()
		}),
		"rgba": render(func(c *Color) string {
			return c.rgba.String()
		}),
		"hsla": render(func(c *Color) string {
			return c.hsla.String()
		}),
		"color": func(path string) (*Color, error) {
			return resolveColorPath(path, data)
		},
	}
	return data
}
