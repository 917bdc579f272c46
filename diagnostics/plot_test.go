package diagnostics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.png")

	require.NoError(t, LearningCurve([]float64{4, 2, 1, 0.5}, "cost", "cost", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, LearningCurve(nil, "cost", "cost", path))
}

func TestClusterScatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clusters.png")
	rows := [][]float64{{1, 1}, {1, 2}, {6, 6}, {6, 7}}
	centroids := [][]float64{{1, 1.5}, {6, 6.5}, {9, 9}}

	require.NoError(t, ClusterScatter(rows, []int{0, 0, 1, 1}, centroids, path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	assert.Error(t, ClusterScatter(rows, []int{0}, centroids, path))
	assert.Error(t, ClusterScatter([][]float64{{1}}, []int{0}, centroids, path))
}
