// Package funcs builds the HCL evaluation context for palette files: the
// palette and base color variables and the color functions.
package funcs

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/numeric"
	"github.com/jsvensson/colorfamily/internal/style"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Names lists the functions available in palette files.
var Names = []string{"darken", "hex", "hsla", "lighten", "neon", "pastel", "rgba", "vivid"}

// Env is what the color functions draw on.
type Env struct {
	// Palette holds the entries defined so far, keyed by name.
	Palette map[string]color.RGBA
	Styles  *style.Table
	Rand    *numeric.Rand
}

// BuildEvalContext creates an HCL evaluation context with the `palette` and
// `base` variables and the color functions.
func BuildEvalContext(env Env) *hcl.EvalContext {
	if env.Styles == nil {
		env.Styles = style.Default()
	}
	if env.Rand == nil {
		env.Rand = numeric.NewRand()
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": colorsToCty(env.Palette),
			"base":    baseToCty(),
		},
		Functions: map[string]function.Function{
			"pastel":  MakeStyleFunc(style.Pastel, env.Styles, env.Rand),
			"vivid":   MakeStyleFunc(style.Vivid, env.Styles, env.Rand),
			"neon":    MakeStyleFunc(style.Neon, env.Styles, env.Rand),
			"lighten": MakeLightnessFunc("Lightens", color.Lighten),
			"darken":  MakeLightnessFunc("Darkens", color.Darken),
			"rgba":    MakeRGBAFunc(),
			"hsla":    MakeHSLAFunc(),
			"hex":     MakeHexFunc(),
		},
	}
}

// SetPalette replaces the `palette` variable of ctx with the given colors.
func SetPalette(ctx *hcl.EvalContext, palette map[string]color.RGBA) {
	ctx.Variables["palette"] = colorsToCty(palette)
}

// colorsToCty converts named colors to an object of 8-digit hex strings.
func colorsToCty(colors map[string]color.RGBA) cty.Value {
	if len(colors) == 0 {
		return cty.EmptyObjectVal
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(colors))
	for k := range colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make(map[string]cty.Value, len(colors))
	for _, k := range keys {
		vals[k] = cty.StringVal(colors[k].HexAlpha())
	}
	return cty.ObjectVal(vals)
}

func baseToCty() cty.Value {
	vals := make(map[string]cty.Value)
	for _, b := range color.Bases() {
		rgba, err := color.Resolve(string(b))
		if err != nil {
			continue
		}
		vals[string(b)] = cty.StringVal(rgba.HexAlpha())
	}
	return cty.ObjectVal(vals)
}

// MakeStyleFunc creates an HCL function that applies a style to a color.
// Usage: pastel("#hex"), vivid(palette.primary), neon("red")
func MakeStyleFunc(kind style.Kind, styles *style.Table, rng *numeric.Rand) function.Function {
	return function.New(&function.Spec{
		Description: fmt.Sprintf("Restyles a color as %s, keeping its hue", kind),
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.Resolve(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}

			hsla, err := color.RGBAToHSLA(c)
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}

			_, styled, err := styles.Apply(hsla, kind, rng)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(styled.HexAlpha()), nil
		},
	})
}

// MakeLightnessFunc creates an HCL function that shifts the lightness of a
// color. Usage: lighten("#hex", 0.1) or darken(palette.primary, 0.2)
func MakeLightnessFunc(verb string, shift func(color.RGBA, float64) (color.RGBA, error)) function.Function {
	return function.New(&function.Spec{
		Description: verb + " a color by the given fraction of the lightness scale (0.0 to 1.0)",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "amount",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.Resolve(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}

			amount, _ := args[1].AsBigFloat().Float64()
			if amount < 0 || amount > 1 {
				return cty.NilVal, function.NewArgErrorf(1, "amount %v must be between 0 and 1", amount)
			}

			shifted, err := shift(c, amount)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(shifted.HexAlpha()), nil
		},
	})
}

// MakeRGBAFunc creates an HCL function that builds a color from channels.
// Usage: rgba(255, 128, 0, 0.5)
func MakeRGBAFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from red, green and blue (0-255) and alpha (0-1)",
		Params: []function.Parameter{
			{Name: "r", Type: cty.Number},
			{Name: "g", Type: cty.Number},
			{Name: "b", Type: cty.Number},
			{Name: "a", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			channels := make([]int, 3)
			for i := range channels {
				bf := args[i].AsBigFloat()
				if !bf.IsInt() {
					return cty.NilVal, function.NewArgErrorf(i, "channel must be a whole number")
				}
				v, _ := bf.Int64()
				if v < 0 || v > 255 {
					return cty.NilVal, function.NewArgErrorf(i, "channel %d not in [0, 255]", v)
				}
				channels[i] = int(v)
			}
			a, _ := args[3].AsBigFloat().Float64()

			c, err := color.NewRGBA(channels[0], channels[1], channels[2], a)
			if err != nil {
				return cty.NilVal, function.NewArgError(3, err)
			}
			return cty.StringVal(c.HexAlpha()), nil
		},
	})
}

// MakeHSLAFunc creates an HCL function that builds a color from HSL.
// Usage: hsla(210, 60, 40, 1)
func MakeHSLAFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Builds a color from hue (0-360), saturation and lightness (0-100) and alpha (0-1)",
		Params: []function.Parameter{
			{Name: "h", Type: cty.Number},
			{Name: "s", Type: cty.Number},
			{Name: "l", Type: cty.Number},
			{Name: "a", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			vals := make([]float64, len(args))
			for i, arg := range args {
				vals[i], _ = arg.AsBigFloat().Float64()
			}

			hsla, err := color.NewHSLA(vals[0], vals[1], vals[2], vals[3])
			if err != nil {
				return cty.NilVal, err
			}
			c, err := color.HSLAToRGBA(hsla)
			if err != nil {
				return cty.NilVal, err
			}
			return cty.StringVal(c.HexAlpha()), nil
		},
	})
}

// MakeHexFunc creates an HCL function that normalizes a color to a 6-digit
// hex code, dropping alpha. Usage: hex("red") or hex(palette.primary)
func MakeHexFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Normalizes a base color name or hex code to an opaque #rrggbb code",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := color.Resolve(args[0].AsString())
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return cty.StringVal(c.Hex()), nil
		},
	})
}

// ResolveColor converts an evaluated palette value to RGBA. The value must be
// a string holding a base color name or a hex code.
func ResolveColor(val cty.Value) (color.RGBA, error) {
	if val.IsNull() || !val.IsKnown() {
		return color.RGBA{}, fmt.Errorf("%w: color value is null or unknown", color.ErrInvalidFormat)
	}
	if val.Type() != cty.String {
		return color.RGBA{}, fmt.Errorf("%w: expected a color string, got %s", color.ErrInvalidFormat, val.Type().FriendlyName())
	}
	return color.Resolve(val.AsString())
}
