// Package similarity compares texts by token overlap and vectors by angle.
package similarity

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/text"
	"github.com/YuminosukeSato/classicml/text/tfidf"
)

// Jaccard returns |A ∩ B| / |A ∪ B| over the stop-word-filtered token sets
// of a and b, or 0 when both sets are empty. A nil p uses the default stop words.
func Jaccard(p *text.Preprocessor, a, b string) float64 {
	if p == nil {
		p = text.NewPreprocessor()
	}
	setA := mapset.NewThreadUnsafeSet(p.Pipeline(a)...)
	setB := mapset.NewThreadUnsafeSet(p.Pipeline(b)...)

	union := setA.Union(setB).Cardinality()
	if union == 0 {
		return 0
	}
	return float64(setA.Intersect(setB).Cardinality()) / float64(union)
}

// Cosine returns a·b / (|a||b|). It fails when the lengths differ and
// returns 0 when either vector has zero magnitude.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.NewDimensionError("Cosine", len(a), len(b), 0)
	}
	normA, normB := vector.Norm(a), vector.Norm(b)
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return vector.Dot(a, b) / (normA * normB), nil
}

// TFIDFCosine returns the cosine similarity of the TF-IDF vectors of a and b
// under a fitted vectorizer.
func TFIDFCosine(v *tfidf.Vectorizer, a, b string) (float64, error) {
	m, err := v.Transform([]string{a, b})
	if err != nil {
		return 0, err
	}
	return Cosine(m.RawRowView(0), m.RawRowView(1))
}
