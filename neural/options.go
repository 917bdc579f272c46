package neural

// Option configures a NeuralNetwork.
type Option func(*NeuralNetwork)

// WithLearningRate sets the per-sample step size (default 0.1).
func WithLearningRate(lr float64) Option {
	return func(nn *NeuralNetwork) {
		nn.learningRate = lr
	}
}

// WithEpochs sets the number of passes over the training set (default 1000).
func WithEpochs(epochs int) Option {
	return func(nn *NeuralNetwork) {
		nn.epochs = epochs
	}
}

// WithSeed sets the weight initialisation seed (default 42).
func WithSeed(seed uint64) Option {
	return func(nn *NeuralNetwork) {
		nn.seed = seed
	}
}
