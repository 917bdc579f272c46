// Package neighbors implements a lazy k-nearest-neighbours classifier.
package neighbors

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/metrics"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

const modelName = "KNN"

var _ model.Classifier[string] = (*KNN[string])(nil)

// Option configures a KNN classifier.
type Option func(*knnConfig)

type knnConfig struct {
	k int
}

// WithK sets the number of neighbours that vote (default 3).
func WithK(k int) Option {
	return func(c *knnConfig) {
		c.k = k
	}
}

// KNN stores the training set verbatim and labels new rows by majority vote
// of the k closest training rows under Euclidean distance. Features are not
// normalised; scale them beforehand (see preprocessing.StandardScaler).
//
// When fewer than k training rows exist all of them vote. Vote ties go to
// the tied label whose nearest member is closest to the query.
type KNN[L comparable] struct {
	model.BaseEstimator

	XTrain [][]float64 `json:"x_train"`
	YTrain []L         `json:"y_train"`

	k int
}

// NewKNN creates an unfitted classifier.
func NewKNN[L comparable](opts ...Option) *KNN[L] {
	cfg := &knnConfig{k: 3}
	for _, opt := range opts {
		opt(cfg)
	}
	return &KNN[L]{k: cfg.k}
}

// Kind implements model.Estimator.
func (m *KNN[L]) Kind() model.Kind { return model.KindClassification }

// K returns the configured neighbour count.
func (m *KNN[L]) K() int { return m.k }

// Fit stores X and y.
func (m *KNN[L]) Fit(X mat.Matrix, y []L) error {
	if m.k <= 0 {
		return errors.NewValidationError("k", "must be positive", m.k)
	}
	n, c, err := vector.CheckShape("KNN.Fit", X, len(y))
	if err != nil {
		return err
	}

	m.Reset()
	m.XTrain = vector.Rows(X)
	m.YTrain = append([]L(nil), y...)
	m.SetFitted()

	log.GetLoggerWithName("neighbors").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, m.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, c,
		log.ClassesKey, len(lo.Uniq(y)),
	)
	return nil
}

type neighbour struct {
	index    int
	distance float64
}

// Predict returns one label per row of X.
func (m *KNN[L]) Predict(X mat.Matrix) ([]L, error) {
	if !m.IsFitted() || len(m.XTrain) == 0 {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	if err := vector.CheckFeatures("KNN.Predict", X, len(m.XTrain[0])); err != nil {
		return nil, err
	}

	rows := vector.Rows(X)
	predictions := make([]L, len(rows))
	neighbours := make([]neighbour, len(m.XTrain))
	for i, row := range rows {
		for j, train := range m.XTrain {
			neighbours[j] = neighbour{index: j, distance: vector.Euclidean(row, train)}
		}
		slices.SortStableFunc(neighbours, func(a, b neighbour) int {
			return cmp.Compare(a.distance, b.distance)
		})
		predictions[i] = m.vote(neighbours[:min(m.k, len(neighbours))])
	}
	return predictions, nil
}

// vote returns the most frequent label among nearest, which is sorted by distance.
func (m *KNN[L]) vote(nearest []neighbour) L {
	labels := lo.Map(nearest, func(n neighbour, _ int) L { return m.YTrain[n.index] })
	counts := lo.CountValues(labels)

	best := labels[0]
	for _, label := range labels[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// Score returns the accuracy of Predict(X) against y.
func (m *KNN[L]) Score(X mat.Matrix, y []L) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}
