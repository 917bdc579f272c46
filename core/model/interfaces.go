// Package model provides the shared estimator state and the capability
// interfaces implemented by every algorithm family.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Kind identifies an algorithm family.
type Kind int

const (
	KindRegression Kind = iota
	KindClassification
	KindClustering
	KindTextClassification
	KindVectorization
)

func (k Kind) String() string {
	switch k {
	case KindRegression:
		return "regression"
	case KindClassification:
		return "classification"
	case KindClustering:
		return "clustering"
	case KindTextClassification:
		return "text_classification"
	case KindVectorization:
		return "vectorization"
	default:
		return "unknown"
	}
}

// Estimator is implemented by every trainable model.
type Estimator interface {
	Kind() Kind
	IsFitted() bool
}

// Regressor maps feature rows to one or more real-valued outputs.
// LinearRegression returns an n×1 matrix; NeuralNetwork returns n×outputs.
type Regressor interface {
	Estimator
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier assigns one label of type L to each feature row.
type Classifier[L comparable] interface {
	Estimator
	Fit(X mat.Matrix, y []L) error
	Predict(X mat.Matrix) ([]L, error)
}

// Clusterer partitions feature rows into integer cluster labels.
type Clusterer interface {
	Estimator
	Fit(X mat.Matrix) ([]int, error)
	Predict(X mat.Matrix) ([]int, error)
}

// TextClassifier assigns a class label to raw text.
type TextClassifier interface {
	Estimator
	Train(documents []string, labels []string) error
	Predict(text string) (string, error)
}

// Vectorizer turns raw documents into fixed-width numeric rows.
type Vectorizer interface {
	Estimator
	Fit(documents []string) error
	Transform(documents []string) (*mat.Dense, error)
}
