// Package normalize folds free-text status values into a comparable ASCII form
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition, accents become separate combining marks
// 3 Drop every non-ASCII rune, which removes those marks
// 4 Lowercase
// 5 Trim surrounding whitespace
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// chains are not safe for concurrent use, so each caller borrows one
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
			cases.Lower(language.Und),
		)
	},
}

// Status returns the normalized form of s
// "  Concluída " and "CONCLUIDA" both become "concluida"
func Status(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Contains reports whether the normalized status holds the normalized marker
// An empty marker never matches
func Contains(status, marker string) bool {
	m := Status(marker)
	if m == "" {
		return false
	}
	return strings.Contains(Status(status), m)
}
