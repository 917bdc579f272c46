package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/classicml/cluster"
	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/text/naivebayes"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestDemoML(t *testing.T) {
	dir := t.TempDir()
	plots := filepath.Join(dir, "plots")
	saved := filepath.Join(dir, "models")

	out, err := execute(t, "demo", "ml", "--log-level", "error", "--plot-dir", plots, "--save-dir", saved)
	require.NoError(t, err)

	for _, section := range []string{"Linear Regression", "K-Nearest Neighbors", "Decision Tree", "K-Means", "Neural Network"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "[A B]")

	for _, name := range []string{"linear_cost.png", "kmeans.png", "mlp_loss.png"} {
		assert.FileExists(t, filepath.Join(plots, name))
	}
	for _, name := range []string{"linear", "knn", "tree", "kmeans", "mlp"} {
		assert.FileExists(t, filepath.Join(saved, name+".json"))
	}

	km := cluster.NewKMeans()
	require.NoError(t, model.LoadJSONFile(filepath.Join(saved, "kmeans.json"), km))
	assert.Len(t, km.Centroids(), 2)
}

func TestDemoNLP(t *testing.T) {
	saved := t.TempDir()

	out, err := execute(t, "demo", "nlp", "--log-level", "error", "--save-dir", saved)
	require.NoError(t, err)

	assert.Contains(t, out, "-> positive")
	assert.Contains(t, out, "-> technical")
	assert.Contains(t, out, "vocabulary=35")
	assert.Contains(t, out, "matrix shape: 5x35")

	nb := naivebayes.New()
	require.NoError(t, model.LoadJSONFile(filepath.Join(saved, "naive_bayes.json"), nb))
	got, err := nb.Predict("machine learning language")
	require.NoError(t, err)
	assert.Equal(t, "technical", got)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("knn:\n  k: 1\n"), 0o644))

	out, err := execute(t, "demo", "ml", "--log-level", "error", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "k=1 predictions")
}

func TestInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"demo", "nlp", "--log-level", "loud"}},
		{"profile", []string{"demo", "nlp", "--profile", "gpu"}},
		{"missing config", []string{"demo", "nlp", "-c", "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestInvalidProfileIsValidationError(t *testing.T) {
	_, err := execute(t, "demo", "nlp", "--profile", "gpu")
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}
