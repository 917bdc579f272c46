package cluster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
)

func demoData() *mat.Dense {
	return mat.NewDense(6, 2, []float64{
		1, 1,
		1, 2,
		2, 1,
		6, 6,
		6, 7,
		7, 6,
	})
}

// 1次元の2群は初期中心がどこに引かれても正しく分離される
func TestKMeans_GroupsSeparatedClusters(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{0, 0.1, 0.2, 9.8, 9.9, 10})

	for _, seed := range []uint64{0, 1, 7, 42, 1234} {
		km := NewKMeans(WithNClusters(2), WithSeed(seed))
		labels, err := km.Fit(X)
		require.NoError(t, err)
		require.Len(t, labels, 6)

		assert.Equal(t, labels[0], labels[1], "seed %d", seed)
		assert.Equal(t, labels[0], labels[2], "seed %d", seed)
		assert.Equal(t, labels[3], labels[4], "seed %d", seed)
		assert.Equal(t, labels[3], labels[5], "seed %d", seed)
		assert.NotEqual(t, labels[0], labels[3], "seed %d", seed)
		assert.True(t, km.Converged)
	}
}

func TestKMeans_FixedPoint(t *testing.T) {
	X := demoData()

	km := NewKMeans(WithNClusters(2))
	labels, err := km.Fit(X)
	require.NoError(t, err)
	require.True(t, km.Converged)

	// 収束後は割り当て・更新を繰り返しても変化しない
	again, err := km.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, labels, again)

	centers := km.Centroids()
	updateCenters(rowsOf(X), labels, centers)
	assert.Equal(t, labels, assign(rowsOf(X), centers))

	for _, l := range labels {
		assert.GreaterOrEqual(t, l, 0)
		assert.Less(t, l, 2)
	}
	assert.GreaterOrEqual(t, km.Inertia(), 0.0)
	assert.LessOrEqual(t, km.NIterations(), 100)
}

func rowsOf(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

func TestKMeans_DeterministicSeed(t *testing.T) {
	X := demoData()

	a := NewKMeans(WithNClusters(3), WithSeed(99))
	b := NewKMeans(WithNClusters(3), WithSeed(99))
	la, err := a.Fit(X)
	require.NoError(t, err)
	lb, err := b.Fit(X)
	require.NoError(t, err)

	assert.Equal(t, la, lb)
	assert.Equal(t, a.Centroids(), b.Centroids())
}

func TestKMeans_InitWithinRange(t *testing.T) {
	X := demoData()
	km := NewKMeans(WithNClusters(5))

	for _, c := range km.initializeCenters(X) {
		assert.GreaterOrEqual(t, c[0], 1.0)
		assert.LessOrEqual(t, c[0], 7.0)
		assert.GreaterOrEqual(t, c[1], 1.0)
		assert.LessOrEqual(t, c[1], 7.0)
	}
}

func TestUpdateCenters_EmptyClusterKeepsCentroid(t *testing.T) {
	rows := [][]float64{{0, 0}, {2, 2}}
	centers := [][]float64{{1, 1}, {50, 50}}

	updateCenters(rows, []int{0, 0}, centers)

	assert.Equal(t, []float64{1, 1}, centers[0])
	assert.Equal(t, []float64{50, 50}, centers[1])
}

func TestFindNearestCluster_FirstMinimumWins(t *testing.T) {
	centers := [][]float64{{-1}, {1}}
	assert.Equal(t, 0, findNearestCluster([]float64{0}, centers))
}

func TestKMeans_Errors(t *testing.T) {
	_, err := NewKMeans().Predict(demoData())
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	_, err = NewKMeans(WithNClusters(0)).Fit(demoData())
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))

	km := NewKMeans(WithNClusters(2))
	_, err = km.Fit(demoData())
	require.NoError(t, err)
	_, err = km.Predict(mat.NewDense(1, 3, nil))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestKMeans_JSONSnapshot(t *testing.T) {
	km := NewKMeans(WithNClusters(2))
	labels, err := km.FitPredict(demoData())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.SaveJSON(&buf, km))

	restored := NewKMeans()
	require.NoError(t, model.LoadJSON(&buf, restored))
	got, err := restored.Predict(demoData())
	require.NoError(t, err)
	assert.Equal(t, labels, got)
	assert.Equal(t, model.KindClustering, restored.Kind())
}
