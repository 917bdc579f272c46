// Package tfidf builds a fixed vocabulary over a corpus and maps documents to
// term-frequency × inverse-document-frequency vectors.
package tfidf

import (
	"math"
	"slices"

	"github.com/goccy/go-json"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
	"github.com/YuminosukeSato/classicml/text"
)

const modelName = "TFIDFVectorizer"

var _ model.Vectorizer = (*Vectorizer)(nil)

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithPreprocessor replaces the default preprocessor.
func WithPreprocessor(p *text.Preprocessor) Option {
	return func(v *Vectorizer) {
		v.preprocessor = p
	}
}

// Vectorizer maps tokens to fixed column indices assigned in sorted token
// order. The vocabulary and IDF weights are fixed by Fit.
type Vectorizer struct {
	model.BaseEstimator

	Vocab     map[string]int     `json:"vocabulary"`
	IDFValues map[string]float64 `json:"idf"`

	preprocessor *text.Preprocessor
}

// New creates an unfitted vectorizer.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{preprocessor: text.NewPreprocessor()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Kind implements model.Estimator.
func (v *Vectorizer) Kind() model.Kind { return model.KindVectorization }

// Fit builds the vocabulary and computes idf = log(N / (1 + df)) for every
// word, where df counts the documents containing the word at least once.
func (v *Vectorizer) Fit(documents []string) error {
	if len(documents) == 0 {
		return errors.NewModelError("TFIDF.Fit", "empty data", errors.ErrEmptyData)
	}

	v.Reset()
	docFreq := make(map[string]int)
	for _, doc := range documents {
		for _, word := range mapset.NewThreadUnsafeSet(v.preprocessor.Pipeline(doc)...).ToSlice() {
			docFreq[word]++
		}
	}

	words := lo.Keys(docFreq)
	slices.Sort(words)

	n := float64(len(documents))
	v.Vocab = make(map[string]int, len(words))
	v.IDFValues = make(map[string]float64, len(words))
	for i, word := range words {
		v.Vocab[word] = i
		v.IDFValues[word] = math.Log(n / float64(1+docFreq[word]))
	}
	v.SetFitted()

	log.GetLoggerWithName("tfidf").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, v.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(documents),
		log.VocabSizeKey, len(words),
	)
	return nil
}

// UnmarshalJSON replaces the vocabulary and IDF weights with the snapshot.
// The preprocessor is kept.
func (v *Vectorizer) UnmarshalJSON(data []byte) error {
	type snapshot Vectorizer
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v.BaseEstimator = s.BaseEstimator
	v.Vocab = s.Vocab
	v.IDFValues = s.IDFValues
	return nil
}

// Transform returns one row per document with tf·idf at each word's column,
// where tf = count / document length. Unknown words are ignored and a
// document with no tokens maps to a zero row.
func (v *Vectorizer) Transform(documents []string) (*mat.Dense, error) {
	if !v.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Transform")
	}
	if len(documents) == 0 || len(v.Vocab) == 0 {
		return nil, errors.NewValueError("TFIDF.Transform", "no documents or empty vocabulary")
	}

	out := mat.NewDense(len(documents), len(v.Vocab), nil)
	for i, doc := range documents {
		tokens := v.preprocessor.Pipeline(doc)
		if len(tokens) == 0 {
			continue
		}
		length := float64(len(tokens))
		for word, count := range lo.CountValues(tokens) {
			idx, ok := v.Vocab[word]
			if !ok {
				continue
			}
			out.Set(i, idx, float64(count)/length*v.IDFValues[word])
		}
	}
	return out, nil
}

// TransformOne returns the vector of a single document.
func (v *Vectorizer) TransformOne(doc string) ([]float64, error) {
	m, err := v.Transform([]string{doc})
	if err != nil {
		return nil, err
	}
	return m.RawRowView(0), nil
}

// FitTransform fits on documents and transforms them.
func (v *Vectorizer) FitTransform(documents []string) (*mat.Dense, error) {
	if err := v.Fit(documents); err != nil {
		return nil, err
	}
	return v.Transform(documents)
}

// Vocabulary returns a copy of the word to column mapping.
func (v *Vectorizer) Vocabulary() map[string]int {
	out := make(map[string]int, len(v.Vocab))
	for k, i := range v.Vocab {
		out[k] = i
	}
	return out
}

// IDF returns the fitted weight of word.
func (v *Vectorizer) IDF(word string) (float64, bool) {
	idf, ok := v.IDFValues[word]
	return idf, ok
}

// FeatureNames returns the vocabulary ordered by column.
func (v *Vectorizer) FeatureNames() []string {
	names := make([]string, len(v.Vocab))
	for word, i := range v.Vocab {
		names[i] = word
	}
	return names
}
