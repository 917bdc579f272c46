package neural

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/pkg/errors"
)

func xorData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	y := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
	return X, y
}

func TestSigmoid(t *testing.T) {
	tests := []struct {
		name string
		z    float64
		want float64
	}{
		{"zero", 0, 0.5},
		{"large positive is clamped", 1e6, Sigmoid(500)},
		{"large negative is clamped", -1e6, Sigmoid(-500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sigmoid(tt.z)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestNeuralNetwork_XavierInit(t *testing.T) {
	nn := NewNeuralNetwork([]int{2, 4, 1})
	nn.initialize()

	require.Len(t, nn.Weights, 2)
	require.Len(t, nn.Weights[0], 4)
	require.Len(t, nn.Weights[0][0], 2)
	require.Len(t, nn.Weights[1], 1)
	require.Len(t, nn.Weights[1][0], 4)

	for l, layer := range nn.Weights {
		limit := math.Sqrt(6 / float64(nn.Layers[l]+nn.Layers[l+1]))
		for _, w := range layer {
			for _, v := range w {
				assert.LessOrEqual(t, math.Abs(v), limit)
			}
		}
		for _, b := range nn.Biases[l] {
			assert.Zero(t, b)
		}
	}
}

// 逆伝播の誤差項が損失の数値微分と一致することを確認する
func TestNeuralNetwork_GradientCheck(t *testing.T) {
	nn := NewNeuralNetwork([]int{3, 4, 2}, WithSeed(7))
	nn.initialize()

	x := []float64{0.3, -0.8, 0.5}
	target := []float64{1, 0}

	lossAt := func() float64 {
		_, a := nn.forward(x)
		return sampleLoss(a[len(a)-1], target)
	}

	zs, activations := nn.forward(x)
	deltas := nn.backward(zs, activations, target)

	const eps = 1e-6
	for l, layer := range nn.Weights {
		for j, w := range layer {
			for i := range w {
				orig := w[i]
				w[i] = orig + eps
				plus := lossAt()
				w[i] = orig - eps
				minus := lossAt()
				w[i] = orig

				numeric := (plus - minus) / (2 * eps)
				analytic := deltas[l][j] * activations[l][i]
				assert.InDelta(t, numeric, analytic, 1e-7, "weight[%d][%d][%d]", l, j, i)
			}

			orig := nn.Biases[l][j]
			nn.Biases[l][j] = orig + eps
			plus := lossAt()
			nn.Biases[l][j] = orig - eps
			minus := lossAt()
			nn.Biases[l][j] = orig
			assert.InDelta(t, (plus-minus)/(2*eps), deltas[l][j], 1e-7, "bias[%d][%d]", l, j)
		}
	}
}

func TestNeuralNetwork_TrainingReducesLoss(t *testing.T) {
	X, _ := xorData()
	y := mat.NewDense(4, 1, []float64{0, 0, 0, 1})

	nn := NewNeuralNetwork([]int{2, 4, 1}, WithLearningRate(0.5), WithEpochs(2000))
	require.NoError(t, nn.Fit(X, y))

	require.Len(t, nn.LossHistory, 2000)
	assert.Less(t, nn.LossHistory[len(nn.LossHistory)-1], nn.LossHistory[0])

	pred, err := nn.Predict(X)
	require.NoError(t, err)
	r, c := pred.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 1, c)
	for i := 0; i < r; i++ {
		assert.Greater(t, pred.At(i, 0), 0.0)
		assert.Less(t, pred.At(i, 0), 1.0)
	}
}

func TestNeuralNetwork_LearnsOR(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	y := mat.NewDense(4, 1, []float64{0, 1, 1, 1})

	nn := NewNeuralNetwork([]int{2, 1}, WithLearningRate(0.5), WithEpochs(3000))
	require.NoError(t, nn.Fit(X, y))

	pred, err := nn.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, y.At(i, 0) == 1, pred.At(i, 0) > 0.5, "sample %d: %v", i, pred.At(i, 0))
	}
}

func TestNeuralNetwork_DeterministicSeed(t *testing.T) {
	X, y := xorData()

	a := NewNeuralNetwork([]int{2, 3, 1}, WithEpochs(50))
	b := NewNeuralNetwork([]int{2, 3, 1}, WithEpochs(50))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.LossHistory, b.LossHistory)

	c := NewNeuralNetwork([]int{2, 3, 1}, WithEpochs(50), WithSeed(1))
	require.NoError(t, c.Fit(X, y))
	assert.NotEqual(t, a.Weights, c.Weights)
}

func TestNeuralNetwork_Errors(t *testing.T) {
	X, y := xorData()

	tests := []struct {
		name string
		nn   *NeuralNetwork
		X    mat.Matrix
		y    mat.Matrix
	}{
		{"single layer", NewNeuralNetwork([]int{2}), X, y},
		{"empty layer", NewNeuralNetwork([]int{2, 0, 1}), X, y},
		{"zero epochs", NewNeuralNetwork([]int{2, 1}, WithEpochs(0)), X, y},
		{"input width mismatch", NewNeuralNetwork([]int{3, 1}), X, y},
		{"output width mismatch", NewNeuralNetwork([]int{2, 2}), X, y},
		{"row mismatch", NewNeuralNetwork([]int{2, 1}), X, mat.NewDense(3, 1, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.nn.Fit(tt.X, tt.y))
			assert.False(t, tt.nn.IsFitted())
		})
	}

	_, err := NewNeuralNetwork([]int{2, 1}).Predict(X)
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))
}

func TestNeuralNetwork_JSONSnapshot(t *testing.T) {
	X, y := xorData()
	nn := NewNeuralNetwork([]int{2, 3, 1}, WithEpochs(100))
	require.NoError(t, nn.Fit(X, y))

	var buf bytes.Buffer
	require.NoError(t, model.SaveJSON(&buf, nn))

	restored := NewNeuralNetwork(nil)
	require.NoError(t, model.LoadJSON(&buf, restored))
	assert.Equal(t, nn.Layers, restored.Layers)
	assert.Equal(t, nn.Weights, restored.Weights)
	assert.Equal(t, nn.Biases, restored.Biases)

	want, err := nn.Predict(X)
	require.NoError(t, err)
	got, err := restored.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, mat.DenseCopyOf(want).RawMatrix().Data, mat.DenseCopyOf(got).RawMatrix().Data)
}

func TestNeuralNetwork_NonFiniteLoss(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{0, 1, math.NaN(), 1})
	y := mat.NewDense(2, 1, []float64{0, 1})

	nn := NewNeuralNetwork([]int{2, 2, 1}, WithEpochs(10))
	err := nn.Fit(X, y)

	var nie *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &nie))
	assert.Equal(t, "NeuralNetwork.loss", nie.Operation)
	assert.Equal(t, 0, nie.Iteration)
	assert.False(t, nn.IsFitted())
}
