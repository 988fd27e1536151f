package mdrcluster

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Document is one adverse-event report narrative entering the pipeline.
type Document struct {
	ID   string `json:"report_id"`
	Text string `json:"narrative"`
}

// NormalizeDocuments cleans every narrative into a token sequence, preserving
// input order. A narrative that is reduced to nothing (all digits and
// punctuation, or all stopwords) keeps its slot with an empty token slice so
// the corpus size stays fixed for the rest of the pipeline.
func NormalizeDocuments(docs []Document) [][]string {
	tokens := make([][]string, len(docs))
	for i, doc := range docs {
		tokens[i] = normalizeText(doc.Text)
	}
	return tokens
}

// normalizeText lowercases the narrative, strips digits and punctuation,
// drops English stopwords, and stems the remaining tokens.
func normalizeText(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		// Digits, punctuation, and symbols all become token boundaries.
		return ' '
	}, text)

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if stopwords[word] {
			continue
		}
		tokens = append(tokens, english.Stem(word, false))
	}
	return tokens
}
