// Package format canonicalizes palette files.
package format

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// ErrSyntax is returned for input that does not parse as HCL.
var ErrSyntax = errors.New("syntax error")

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules, with runs of blank lines collapsed and no
// blank lines just inside braces.
//
// Input with syntax errors is returned unchanged along with an error
// wrapping ErrSyntax, so that half-typed files are never rewritten.
func Format(content string) (string, error) {
	if _, diags := hclsyntax.ParseConfig([]byte(content), "", hcl.InitialPos); diags.HasErrors() {
		return content, fmt.Errorf("%w: %s", ErrSyntax, diags.Error())
	}

	formatted := hclwrite.Format([]byte(content))
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return collapsed, nil
}

// Check reports whether content is already formatted.
func Check(content string) (bool, error) {
	formatted, err := Format(content)
	if err != nil {
		return false, err
	}
	return formatted == content, nil
}
