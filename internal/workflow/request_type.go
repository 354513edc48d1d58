package workflow

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var generalServiceLabels = map[string]struct{}{
	"general":             {},
	"general service":     {},
	"general services":    {},
	"servicio general":    {},
	"servicios generales": {},
}

// IsGeneralService reports whether a free-form request type names the
// general-service category, ignoring case, accents and separators.
func IsGeneralService(requestType string) bool {
	_, ok := generalServiceLabels[normalizeType(requestType)]
	return ok
}

func normalizeType(s string) string {
	// transform.Chain keeps state, so it is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}
