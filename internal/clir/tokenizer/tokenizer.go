// Package tokenizer provides text tokenisation for the retrieval engine. It
// lower-cases input, treats every rune that is not a letter, digit, or
// whitespace as a separator, and drops tokens shorter than three characters.
// There is deliberately no stemming and no stop-word list: queries and
// documents must tokenise identically across languages.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize breaks text into normalised terms. It is pure and deterministic;
// empty input yields an empty slice.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len([]rune(word)) <= 2 {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
