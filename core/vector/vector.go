// Package vector holds the numeric primitives shared by the numeric models.
// All functions assume equal-length inputs unless they return an error.
package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/classicml/pkg/errors"
)

// Dot returns Σ a[i]*b[i].
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Norm returns the L2 magnitude of a.
func Norm(a []float64) float64 {
	return floats.Norm(a, 2)
}

// Mean returns the arithmetic mean of a, or NaN for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return math.NaN()
	}
	return stat.Mean(a, nil)
}

// Rows copies the rows of X into freshly allocated slices.
func Rows(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

// Column copies column j of X.
func Column(X mat.Matrix, j int) []float64 {
	return mat.Col(nil, j, X)
}

// ColumnRange returns the per-column minimum and maximum of X.
func ColumnRange(X mat.Matrix) (mins, maxs []float64) {
	_, c := X.Dims()
	mins = make([]float64, c)
	maxs = make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, X)
		mins[j] = floats.Min(col)
		maxs[j] = floats.Max(col)
	}
	return mins, maxs
}

// CheckShape validates a training matrix and returns its dimensions.
// op names the calling operation in the returned error.
func CheckShape(op string, X mat.Matrix, nLabels int) (rows, cols int, err error) {
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if nLabels >= 0 && nLabels != rows {
		return 0, 0, errors.NewDimensionError(op, rows, nLabels, 0)
	}
	return rows, cols, nil
}

// CheckFeatures validates the column count of a prediction matrix.
func CheckFeatures(op string, X mat.Matrix, nFeatures int) error {
	_, c := X.Dims()
	if c != nFeatures {
		return errors.NewDimensionError(op, nFeatures, c, 1)
	}
	return nil
}
