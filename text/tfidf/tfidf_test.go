package tfidf

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
)

var corpus = []string{
	"the cat sat on the mat",
	"the dog sat on the log",
	"cats and dogs sat together",
}

func TestVectorizer_Fit(t *testing.T) {
	v := New()
	require.NoError(t, v.Fit(corpus))

	assert.Equal(t, []string{"cat", "cats", "dog", "dogs", "log", "mat", "sat", "together"}, v.FeatureNames())
	assert.Equal(t, 0, v.Vocabulary()["cat"])
	assert.Equal(t, 7, v.Vocabulary()["together"])

	tests := []struct {
		word string
		want float64
	}{
		{"sat", math.Log(3.0 / 4.0)},
		{"cat", math.Log(3.0 / 2.0)},
		{"together", math.Log(3.0 / 2.0)},
	}
	for _, tt := range tests {
		got, ok := v.IDF(tt.word)
		require.True(t, ok, tt.word)
		assert.InDelta(t, tt.want, got, 1e-12, tt.word)
	}

	_, ok := v.IDF("the")
	assert.False(t, ok, "stop words are not in the vocabulary")
}

func TestVectorizer_WordInEveryDocumentHasMinimalIDF(t *testing.T) {
	v := New()
	require.NoError(t, v.Fit(corpus))

	sat, _ := v.IDF("sat")
	for _, word := range v.FeatureNames() {
		idf, _ := v.IDF(word)
		assert.LessOrEqual(t, sat, idf, word)
	}
}

func TestVectorizer_Transform(t *testing.T) {
	v := New()
	m, err := v.FitTransform(corpus)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 8, c)

	// doc0 tokens: cat sat mat
	idfCat, _ := v.IDF("cat")
	assert.InDelta(t, idfCat/3, m.At(0, v.Vocabulary()["cat"]), 1e-12)
	assert.Zero(t, m.At(0, v.Vocabulary()["dog"]))

	row, err := v.TransformOne("cat cat unicorn")
	require.NoError(t, err)
	// unicorn は語彙外なので無視されるが文書長には数える
	assert.InDelta(t, idfCat*2/3, row[v.Vocabulary()["cat"]], 1e-12)
	for i, x := range row {
		if i != v.Vocabulary()["cat"] {
			assert.Zero(t, x)
		}
	}
}

func TestVectorizer_EmptyDocumentIsZeroRow(t *testing.T) {
	v := New()
	require.NoError(t, v.Fit(corpus))

	m, err := v.Transform([]string{"", "the of and"})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 8; j++ {
			assert.Zero(t, m.At(i, j))
		}
	}
}

func TestVectorizer_Errors(t *testing.T) {
	_, err := New().Transform(corpus)
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	assert.True(t, errors.Is(New().Fit(nil), errors.ErrEmptyData))

	v := New()
	require.NoError(t, v.Fit([]string{"the and of", "is was"}))
	assert.Empty(t, v.Vocabulary())
	_, err = v.Transform([]string{"the"})
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestVectorizer_JSONSnapshot(t *testing.T) {
	v := New()
	want, err := v.FitTransform(corpus)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, model.SaveJSON(&buf, v))

	restored := New()
	require.NoError(t, model.LoadJSON(&buf, restored))
	got, err := restored.Transform(corpus)
	require.NoError(t, err)
	assert.Equal(t, want.RawMatrix().Data, got.RawMatrix().Data)
}

func TestVectorizer_LoadJSONReplacesFittedState(t *testing.T) {
	other := New()
	require.NoError(t, other.Fit([]string{"rocket launch orbit", "garden flower bloom", "ocean wave tide"}))
	var buf bytes.Buffer
	require.NoError(t, model.SaveJSON(&buf, other))
	snapshot := buf.Bytes()

	fresh := New()
	require.NoError(t, model.LoadJSON(bytes.NewReader(snapshot), fresh))

	reused := New()
	require.NoError(t, reused.Fit(corpus))
	require.NoError(t, model.LoadJSON(bytes.NewReader(snapshot), reused))

	assert.Equal(t, fresh.FeatureNames(), reused.FeatureNames())
	assert.Len(t, reused.Vocabulary(), 9)
	_, ok := reused.IDF("cat")
	assert.False(t, ok)

	docs := []string{"rocket garden", "the cat sat"}
	want, err := fresh.Transform(docs)
	require.NoError(t, err)
	got, err := reused.Transform(docs)
	require.NoError(t, err)
	assert.Equal(t, want.RawMatrix().Data, got.RawMatrix().Data)
}
