package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldSearchTerm normaliza un término de búsqueda: minúsculas, sin tildes y
// sin espacios sobrantes, para que "Muñoz" y "munoz" coincidan en ILIKE.
func FoldSearchTerm(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// NormalizePhone deja solo dígitos del número (formato E.164 sin el '+').
// Los webhooks de WhatsApp entregan "573001234567"; la UI puede enviar
// "+57 300 123 4567" y ambos deben coincidir en la búsqueda exacta.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
