// Package text normalises raw strings into token sequences for the text models.
//
// Every text component (naivebayes, tfidf, sentiment, similarity) routes input
// through a Preprocessor before computing any statistic:
//
//	p := text.NewPreprocessor()
//	tokens := p.Pipeline("The cat sat on the mat!") // [cat sat mat]
package text

import (
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
)

var nonLetters = regexp.MustCompile(`[^a-z\s]`)

var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did", "will", "would", "could",
	"should", "may", "might", "must", "can", "this", "that", "these", "those",
}

// DefaultStopWords returns a fresh copy of the built-in English stop-word set.
func DefaultStopWords() mapset.Set[string] {
	return mapset.NewThreadUnsafeSet(defaultStopWords...)
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithStopWords replaces the stop-word set.
func WithStopWords(words ...string) Option {
	return func(p *Preprocessor) {
		p.stopWords = mapset.NewThreadUnsafeSet(words...)
	}
}

// Preprocessor cleans, tokenises and filters text. It is immutable after
// construction and safe for concurrent use.
type Preprocessor struct {
	stopWords mapset.Set[string]
}

// NewPreprocessor creates a Preprocessor with the default stop words.
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{stopWords: DefaultStopWords()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CleanText lowercases s, drops everything except ASCII letters and
// whitespace, and collapses whitespace runs to single spaces.
func CleanText(s string) string {
	s = nonLetters.ReplaceAllString(strings.ToLower(s), "")
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits the cleaned text on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(CleanText(s))
}

// IsStopWord reports whether token is in the stop-word set.
func (p *Preprocessor) IsStopWord(token string) bool {
	return p.stopWords.Contains(token)
}

// StopWords returns a copy of the stop-word set.
func (p *Preprocessor) StopWords() mapset.Set[string] {
	return p.stopWords.Clone()
}

// RemoveStopWords returns tokens without stop words, preserving order.
func (p *Preprocessor) RemoveStopWords(tokens []string) []string {
	return lo.Reject(tokens, func(t string, _ int) bool { return p.stopWords.Contains(t) })
}

// Tokenize is the method form of Tokenize.
func (p *Preprocessor) Tokenize(s string) []string {
	return Tokenize(s)
}

// Pipeline tokenises s and removes stop words.
func (p *Preprocessor) Pipeline(s string) []string {
	return p.RemoveStopWords(Tokenize(s))
}

// NGrams returns every contiguous run of n tokens, left to right.
// It returns nil when there are fewer than n tokens or n < 1.
func NGrams(tokens []string, n int) [][]string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([][]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, append([]string(nil), tokens[i:i+n]...))
	}
	return grams
}

// Bigrams is NGrams with n = 2.
func Bigrams(tokens []string) [][]string {
	return NGrams(tokens, 2)
}
