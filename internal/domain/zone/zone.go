// Package zone classifies Lima addresses into the five delivery zones.
//
// The district table is scanned in declaration order (NORTE, SUR, ESTE, CENTRO,
// OESTE) and, inside a zone, in variant order. The first zone owning a district
// that appears in the address as a whole word wins, regardless of where in the
// address the district occurs. "San Juan de Miraflores" therefore resolves to SUR
// even though "Miraflores" is a CENTRO district.
package zone

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Code is one of the fixed delivery zones.
type Code string

const (
	Norte  Code = "NORTE"
	Sur    Code = "SUR"
	Este   Code = "ESTE"
	Oeste  Code = "OESTE"
	Centro Code = "CENTRO"
)

// DefaultCode is returned when no district matches and the caller gave no fallback.
const DefaultCode = Centro

// IsValid reports whether c is one of the five zones.
func (c Code) IsValid() bool {
	switch c {
	case Norte, Sur, Este, Oeste, Centro:
		return true
	}
	return false
}

type zoneDistricts struct {
	code      Code
	districts []string
}

// table is ordered; see package doc. Variants are stored lower-cased.
// Accented and unaccented spellings are separate entries.
var table = []zoneDistricts{
	{Norte, []string{
		"comas", "los olivos", "independencia",
		"san martín de porres", "san martin de porres", "smp",
		"puente piedra", "carabayllo", "ancón", "ancon",
	}},
	{Sur, []string{
		"chorrillos", "barranco", "santiago de surco", "surco",
		"san juan de miraflores", "sjm", "villa el salvador",
		"villa maría del triunfo", "villa maria del triunfo",
		"lurín", "lurin", "pachacámac", "pachacamac",
		"punta hermosa", "punta negra", "san bartolo", "santa maría del mar",
	}},
	{Este, []string{
		"la molina", "lamolina", "ate vitarte", "ate", "santa anita",
		"san juan de lurigancho", "sjl", "el agustino", "lurigancho",
		"chaclacayo", "cieneguilla",
	}},
	{Centro, []string{
		"miraflores", "san isidro", "lince", "jesús maría", "jesus maria",
		"cercado de lima", "lima cercado", "breña", "brena", "la victoria",
		"san borja", "surquillo", "magdalena del mar", "magdalena",
		"pueblo libre", "rímac", "rimac", "san luis",
	}},
	{Oeste, []string{
		"callao", "bellavista", "la perla", "la punta", "carmen de la legua",
		"ventanilla", "san miguel", "mi perú", "mi peru",
	}},
}

// Classify maps a free-text address to a zone. It never panics; an empty
// address or one with no known district yields def (CENTRO when def is empty).
func Classify(address string, def Code) Code {
	if def == "" {
		def = DefaultCode
	}
	if strings.TrimSpace(address) == "" {
		return def
	}

	normalized := strings.ToLower(address)
	for _, z := range table {
		for _, district := range z.districts {
			if containsWord(normalized, district) {
				return z.code
			}
		}
	}
	return def
}

// Match is Classify plus the district variant that decided the zone.
// District is empty when the fallback was used.
type Match struct {
	Zone     Code   `json:"zone"`
	District string `json:"district,omitempty"`
}

// Explain classifies address and reports which district matched.
func Explain(address string, def Code) Match {
	if def == "" {
		def = DefaultCode
	}
	normalized := strings.ToLower(address)
	for _, z := range table {
		for _, district := range z.districts {
			if containsWord(normalized, district) {
				return Match{Zone: z.code, District: district}
			}
		}
	}
	return Match{Zone: def}
}

// All returns the zones in declaration order.
func All() []Code {
	codes := make([]Code, len(table))
	for i, z := range table {
		codes[i] = z.code
	}
	return codes
}

// Districts returns a copy of the district variants for a zone.
func Districts(c Code) []string {
	for _, z := range table {
		if z.code == c {
			out := make([]string, len(z.districts))
			copy(out, z.districts)
			return out
		}
	}
	return nil
}

// containsWord reports whether word occurs in s delimited on both sides by
// start/end of string or a rune that is neither a letter nor a digit.
// Unlike regexp \b this treats accented letters (á, ñ) as word runes.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for offset := 0; offset <= len(s)-len(word); {
		i := strings.Index(s[offset:], word)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(word)
		if boundaryBefore(s, start) && boundaryAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
