package dataprocessing

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnknownSizeRank is the sentinel rank for size labels outside the
// configured order. It is greater than any real position, so unknown sizes
// sort after every known one; their relative order is whatever the stable
// sort preserves.
const UnknownSizeRank = 999

// sizeTokenRe strips the word "size" in Japanese or English, together with
// any surrounding ASCII or full-width whitespace.
var sizeTokenRe = regexp.MustCompile(`(?i)[\s　]*(サイズ|size)[\s　]*`)

// SizeNormalizer canonicalizes free-text size labels and exposes a total
// order over them.
type SizeNormalizer struct {
	ranks map[string]int
	// canonical maps a case-folded token to its canonical spelling, so
	// "m", "M" and "Ｍサイズ" all normalize to the same form. First
	// occurrence in the configured order wins.
	canonical map[string]string
}

// NewSizeNormalizer builds a normalizer for the given size priority order.
func NewSizeNormalizer(order []string) *SizeNormalizer {
	ranks := make(map[string]int, len(order))
	canonical := make(map[string]string, len(order))
	for i, size := range order {
		if _, ok := ranks[size]; !ok {
			ranks[size] = i
		}
		folded := strings.ToUpper(size)
		if _, ok := canonical[folded]; !ok {
			canonical[folded] = size
		}
	}
	return &SizeNormalizer{ranks: ranks, canonical: canonical}
}

// Normalize canonicalizes a raw size label: Unicode compatibility (NFKC)
// normalization collapses full-width/half-width and composed/decomposed
// variants, the "size" token is stripped, surrounding whitespace is
// trimmed, and known tokens take their canonical spelling regardless of
// input case. Never fails; worst case returns the trimmed input unchanged.
func (n *SizeNormalizer) Normalize(label string) string {
	if label == "" {
		return ""
	}
	s := norm.NFKC.String(label)
	s = sizeTokenRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if token, ok := n.canonical[strings.ToUpper(s)]; ok {
		return token
	}
	return s
}

// Rank returns the position of a normalized label in the configured order,
// or UnknownSizeRank when the label is not a known token.
func (n *SizeNormalizer) Rank(normalized string) int {
	if rank, ok := n.ranks[normalized]; ok {
		return rank
	}
	return UnknownSizeRank
}
