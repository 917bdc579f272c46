// Package neural implements a fully connected sigmoid network trained with
// online back-propagation.
package neural

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

const (
	modelName = "NeuralNetwork"
	// sigmoidClip bounds the pre-activation before exponentiation.
	sigmoidClip = 500
	logEvery    = 100
)

var _ model.Regressor = (*NeuralNetwork)(nil)

// NeuralNetwork is a multi-layer perceptron. Layers lists the neuron count of
// every layer, input first and output last. Weights[l][j][i] connects neuron i
// of layer l to neuron j of layer l+1.
type NeuralNetwork struct {
	model.BaseEstimator

	Layers  []int         `json:"layers"`
	Weights [][][]float64 `json:"weights"`
	Biases  [][]float64   `json:"biases"`
	// LossHistory holds the mean per-sample loss Σ(o−t)²/2 of every epoch.
	LossHistory []float64 `json:"loss_history"`

	learningRate float64
	epochs       int
	seed         uint64
}

// NewNeuralNetwork creates an untrained network with the given layer sizes.
func NewNeuralNetwork(layers []int, opts ...Option) *NeuralNetwork {
	nn := &NeuralNetwork{
		Layers:       append([]int(nil), layers...),
		learningRate: 0.1,
		epochs:       1000,
		seed:         42,
	}
	for _, opt := range opts {
		opt(nn)
	}
	return nn
}

// Kind implements model.Estimator.
func (nn *NeuralNetwork) Kind() model.Kind { return model.KindRegression }

func (nn *NeuralNetwork) validate() error {
	if len(nn.Layers) < 2 {
		return errors.NewValidationError("layers", "need at least an input and an output layer", nn.Layers)
	}
	for _, size := range nn.Layers {
		if size <= 0 {
			return errors.NewValidationError("layers", "every layer needs at least one neuron", nn.Layers)
		}
	}
	if nn.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", nn.learningRate)
	}
	if nn.epochs <= 0 {
		return errors.NewValidationError("epochs", "must be positive", nn.epochs)
	}
	return nil
}

// initialize draws Xavier-uniform weights in ±sqrt(6/(fan_in+fan_out)) and zeroes the biases.
func (nn *NeuralNetwork) initialize() {
	rng := rand.New(rand.NewPCG(nn.seed, nn.seed))

	nn.Weights = make([][][]float64, len(nn.Layers)-1)
	nn.Biases = make([][]float64, len(nn.Layers)-1)
	for l := range nn.Weights {
		fanIn, fanOut := nn.Layers[l], nn.Layers[l+1]
		limit := math.Sqrt(6 / float64(fanIn+fanOut))

		nn.Weights[l] = make([][]float64, fanOut)
		for j := range nn.Weights[l] {
			nn.Weights[l][j] = make([]float64, fanIn)
			for i := range nn.Weights[l][j] {
				nn.Weights[l][j][i] = (rng.Float64()*2 - 1) * limit
			}
		}
		nn.Biases[l] = make([]float64, fanOut)
	}
}

// Sigmoid returns 1/(1+e^-z) with z clamped to [-500, 500].
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-errors.ClipValue(z, -sigmoidClip, sigmoidClip)))
}

func sigmoidDerivative(z float64) float64 {
	s := Sigmoid(z)
	return s * (1 - s)
}

// forward returns the pre-activations and activations of every layer.
// activations[0] is the input; zs[l] and activations[l+1] belong to layer l+1.
func (nn *NeuralNetwork) forward(x []float64) (zs, activations [][]float64) {
	zs = make([][]float64, len(nn.Weights))
	activations = make([][]float64, len(nn.Weights)+1)
	activations[0] = x

	for l, layer := range nn.Weights {
		zs[l] = make([]float64, len(layer))
		activations[l+1] = make([]float64, len(layer))
		for j, w := range layer {
			zs[l][j] = vector.Dot(w, activations[l]) + nn.Biases[l][j]
			activations[l+1][j] = Sigmoid(zs[l][j])
		}
	}
	return zs, activations
}

// backward returns the error term of every neuron in every non-input layer.
func (nn *NeuralNetwork) backward(zs, activations [][]float64, target []float64) [][]float64 {
	last := len(nn.Weights) - 1
	deltas := make([][]float64, len(nn.Weights))

	output := activations[last+1]
	deltas[last] = make([]float64, len(output))
	for j := range output {
		deltas[last][j] = (output[j] - target[j]) * sigmoidDerivative(zs[last][j])
	}

	for l := last - 1; l >= 0; l-- {
		deltas[l] = make([]float64, len(zs[l]))
		for i := range deltas[l] {
			var sum float64
			for j, w := range nn.Weights[l+1] {
				sum += w[i] * deltas[l+1][j]
			}
			deltas[l][i] = sum * sigmoidDerivative(zs[l][i])
		}
	}
	return deltas
}

func (nn *NeuralNetwork) update(activations, deltas [][]float64) {
	for l, layer := range nn.Weights {
		for j, w := range layer {
			step := nn.learningRate * deltas[l][j]
			for i := range w {
				w[i] -= step * activations[l][i]
			}
			nn.Biases[l][j] -= step
		}
	}
}

func sampleLoss(output, target []float64) float64 {
	var loss float64
	for j := range output {
		d := output[j] - target[j]
		loss += d * d
	}
	return loss / 2
}

// Fit trains the network with one weight update per sample for the configured
// number of epochs. X is n×Layers[0] and y is n×Layers[last]. Weights are
// re-initialised from the seed on every call.
func (nn *NeuralNetwork) Fit(X, y mat.Matrix) error {
	if err := nn.validate(); err != nil {
		return err
	}
	ry, cy := y.Dims()
	n, _, err := vector.CheckShape("NeuralNetwork.Fit", X, ry)
	if err != nil {
		return err
	}
	if err := vector.CheckFeatures("NeuralNetwork.Fit", X, nn.Layers[0]); err != nil {
		return err
	}
	if out := nn.Layers[len(nn.Layers)-1]; cy != out {
		return errors.NewDimensionError("NeuralNetwork.Fit", out, cy, 1)
	}

	nn.Reset()
	nn.initialize()
	nn.LossHistory = make([]float64, 0, nn.epochs)

	logger := log.GetLoggerWithName("neural").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, nn.ID(),
	)

	inputs := vector.Rows(X)
	targets := vector.Rows(y)
	losses := make([]float64, n)
	for epoch := 0; epoch < nn.epochs; epoch++ {
		for s, x := range inputs {
			zs, activations := nn.forward(x)
			losses[s] = sampleLoss(activations[len(activations)-1], targets[s])
			nn.update(activations, nn.backward(zs, activations, targets[s]))
		}
		if err := errors.CheckNumericalStability("NeuralNetwork.loss", losses, epoch); err != nil {
			return err
		}
		loss := floats.Sum(losses) / float64(n)
		nn.LossHistory = append(nn.LossHistory, loss)

		if epoch%logEvery == 0 {
			logger.Debug("epoch completed", log.EpochKey, epoch, log.LossKey, loss)
		}
	}

	nn.SetFitted()
	logger.Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, nn.Layers[0],
		log.EpochKey, nn.epochs,
		log.LossKey, nn.LossHistory[len(nn.LossHistory)-1],
		log.LearningRateKey, nn.learningRate,
		log.RandomSeedKey, nn.seed,
	)
	return nil
}

// Predict returns the output-layer activations, one row per sample.
func (nn *NeuralNetwork) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !nn.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	if err := vector.CheckFeatures("NeuralNetwork.Predict", X, nn.Layers[0]); err != nil {
		return nil, err
	}

	r, _ := X.Dims()
	out := mat.NewDense(r, nn.Layers[len(nn.Layers)-1], nil)
	for i := 0; i < r; i++ {
		_, activations := nn.forward(mat.Row(nil, i, X))
		out.SetRow(i, activations[len(activations)-1])
	}
	return out, nil
}
