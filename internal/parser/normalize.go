// Package parser turns pasted race-entry text into race blocks.
package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// dashReplacer folds every dash-like rune left after NFKC into an ASCII hyphen.
// The katakana prolonged sound mark (ー) is part of horse names and stays.
var dashReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
	"〜", "-", // wave dash
	"~", "-", // full-width tilde after NFKC
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

// Normalize canonicalizes pasted text: NFKC (full-width to half-width, ideographic
// space to ASCII space), one hyphen for all dash variants, LF line endings and
// single spaces. Tabs are preserved. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := norm.NFKC.String(text)
	s = reCRLF.ReplaceAllString(s, "\n")
	s = dashReplacer.Replace(s)
	s = reMultiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}
