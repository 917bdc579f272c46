package linear

// Option は LinearRegression のハイパーパラメータを設定する
type Option func(*LinearRegression)

// WithLearningRate sets the gradient descent step size (default 0.01).
func WithLearningRate(lr float64) Option {
	return func(m *LinearRegression) {
		m.learningRate = lr
	}
}

// WithMaxIterations sets the iteration cap (default 1000).
func WithMaxIterations(n int) Option {
	return func(m *LinearRegression) {
		m.maxIterations = n
	}
}

// WithTol sets the absolute cost change below which training stops early (default 1e-6).
func WithTol(tol float64) Option {
	return func(m *LinearRegression) {
		m.tol = tol
	}
}
