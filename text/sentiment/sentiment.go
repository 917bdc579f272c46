// Package sentiment scores text polarity with a word lexicon, negation and
// intensifier rules. It has no training step.
package sentiment

import (
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/text"
)

// Label is the polarity verdict.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

const intensifierBoost = 1.5

// Result is the outcome of Analyze.
type Result struct {
	Sentiment     Label   `json:"sentiment"`
	Confidence    float64 `json:"confidence"`
	PositiveScore float64 `json:"positive_score"`
	NegativeScore float64 `json:"negative_score"`
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLexicon replaces the built-in lexicon.
func WithLexicon(l Lexicon) Option {
	return func(a *Analyzer) {
		a.lexicon = l
	}
}

// Analyzer is stateless between calls and safe for concurrent use.
type Analyzer struct {
	lexicon Lexicon
}

// NewAnalyzer creates an Analyzer with the default lexicon.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{lexicon: DefaultLexicon()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze walks the tokens of s left to right. Stop words are kept.
//
// An intensifier multiplies the next sentiment word by 1.5 and a negation
// moves it to the opposite score. Both modifiers persist across neutral
// words and are cleared once a sentiment word has been scored. The verdict is
// the larger score's side (ties are negative) with confidence equal to its
// share of the total; a zero total is neutral with zero confidence.
func (a *Analyzer) Analyze(s string) Result {
	var pos, neg float64
	boost := 1.0
	negated := false

	for _, token := range text.Tokenize(s) {
		switch {
		case a.lexicon.Intensifiers.Contains(token):
			boost = intensifierBoost
			continue
		case a.lexicon.Negations.Contains(token):
			negated = true
			continue
		}

		isPositive := a.lexicon.Positive.Contains(token)
		isNegative := !isPositive && a.lexicon.Negative.Contains(token)
		if !isPositive && !isNegative {
			continue
		}
		if isPositive != negated {
			pos += boost
		} else {
			neg += boost
		}
		boost = 1.0
		negated = false
	}

	return verdict(pos, neg)
}

func verdict(pos, neg float64) Result {
	total := pos + neg
	if total == 0 {
		return Result{Sentiment: Neutral}
	}

	r := Result{PositiveScore: pos, NegativeScore: neg}
	posRatio := errors.SafeDivide(pos, total)
	negRatio := errors.SafeDivide(neg, total)
	if posRatio > negRatio {
		r.Sentiment, r.Confidence = Positive, posRatio
	} else {
		r.Sentiment, r.Confidence = Negative, negRatio
	}
	return r
}
