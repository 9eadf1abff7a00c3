package ingest

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords map[string]struct{}
	stemLang  string // Optional: snowball language for stemming
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// SetStemming enables snowball stemming for the given language
// ("english", "french", ...). An empty language disables stemming.
// Tokens are stemmed before the stopword check, so stopword lists
// should hold stemmed forms when stemming is on.
func (t *Tokenizer) SetStemming(language string) {
	t.stemLang = language
}

// Tokenize splits text into normalized lowercase tokens, removing
// stopwords. Token order is preserved: positions feed window distances
// during co-occurrence counting.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				word := t.processToken(current.String())
				if word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		word := t.processToken(current.String())
		if word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// processToken applies cleaning, stemming, and stopword filtering.
func (t *Tokenizer) processToken(token string) string {
	word := t.cleanToken(token)
	if word == "" || len(word) <= 1 {
		return ""
	}

	// Pure-numeric tokens carry no co-occurrence signal. Mixed tokens
	// like "gpt-4" or "utf-8" are kept.
	if isNumericOnly(word) {
		return ""
	}

	if t.stemLang != "" {
		if stemmed, err := snowball.Stem(word, t.stemLang, false); err == nil && stemmed != "" {
			word = stemmed
		}
	}

	if t.isStopword(word) {
		return ""
	}

	return word
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func (t *Tokenizer) cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (t *Tokenizer) isStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	delete(t.stopwords, strings.ToLower(word))
}
