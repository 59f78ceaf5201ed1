package catalog

import (
	"strings"

	"github.com/GastonArthur/Catalogo-Mayorista/pkg/types"
)

// separators that show up inside product names on the sheet, treated as
// word boundaries so "Vertex-03" matches the term "03"
var nameSeparators = strings.NewReplacer("-", " ", "/", " ", "(", " ", ")", " ")

// SearchTerms splits a free text query into lowercase terms. A blank query
// yields no terms and every product matches.
func SearchTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// NameWords returns the lowercase words of a product name.
func NameWords(name string) []string {
	return strings.Fields(nameSeparators.Replace(strings.ToLower(name)))
}

// MatchesSearch reports whether a product matches every term. A term hits
// when it is a substring of the SKU, level or year, or a prefix of any
// name word.
func MatchesSearch(p *types.Product, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	sku := strings.ToLower(p.Sku)
	level := strings.ToLower(p.Level)
	year := strings.ToLower(p.Year)
	words := NameWords(p.Name)
	for _, term := range terms {
		if !matchesTerm(term, sku, level, year, words) {
			return false
		}
	}
	return true
}

func matchesTerm(term, sku, level, year string, words []string) bool {
	if strings.Contains(sku, term) {
		return true
	}
	for _, word := range words {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return strings.Contains(level, term) || strings.Contains(year, term)
}
