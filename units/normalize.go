package units

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeToken folds a unit or category spelling into a comparable key:
// compatibility normalisation (so the micro sign and the Greek mu agree,
// and "m²" becomes "m2"), whitespace collapsing and case folding.
func NormalizeToken(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	// A Caser keeps state, so one is created per call.
	return cases.Fold().String(s)
}

// unitKey is NormalizeToken without any inner whitespace, used for unit
// symbols where "mg / dL" and "mg/dL" must match.
func unitKey(s string) string {
	return strings.ReplaceAll(NormalizeToken(s), " ", "")
}

// aliasTable maps normalised spellings to a canonical symbol.
type aliasTable map[string]string

func newAliasTable(canonical map[string][]string) aliasTable {
	t := make(aliasTable)
	for symbol, aliases := range canonical {
		t[unitKey(symbol)] = symbol
		for _, alias := range aliases {
			t[unitKey(alias)] = symbol
		}
	}
	return t
}

func (t aliasTable) lookup(unit string) (string, bool) {
	symbol, ok := t[unitKey(unit)]
	return symbol, ok
}
