package workbook

import (
	"fmt"
	"strings"
	"unicode"
)

const maxNameLength = 31

// Characters replaced with underscores when deriving Excel defined names
// from catalog strings. FormulaSanitize builds its SUBSTITUTE chain from
// this same set, so the name registered for a range and the name a
// dropdown formula computes at runtime always agree.
var nameReplacements = []string{" ", "/", "-", "&", "(", ")"}

// SanitizeName converts an arbitrary label (program name, package name,
// hotel name) into an identifier safe for Excel defined names.
func SanitizeName(name string) string {
	out := strings.TrimSpace(name)
	for _, ch := range nameReplacements {
		out = strings.ReplaceAll(out, ch, "_")
	}

	if out == "" {
		return "L_"
	}

	first := []rune(out)[0]
	if !unicode.IsLetter(first) && first != '_' {
		out = "L_" + out
	}

	runes := []rune(out)
	if len(runes) > maxNameLength {
		out = string(runes[:maxNameLength])
	}
	return out
}

// FormulaSanitize wraps a cell reference in the SUBSTITUTE chain that
// mirrors SanitizeName, for use inside INDIRECT dropdown formulas.
func FormulaSanitize(ref string) string {
	out := ref
	for _, ch := range nameReplacements {
		out = fmt.Sprintf("SUBSTITUTE(%s,%q,\"_\")", out, ch)
	}
	return out
}
