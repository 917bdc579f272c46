// Package linear は勾配降下法による線形回帰を提供する
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/metrics"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

const (
	modelName = "LinearRegression"
	// earlyStopWindow はコスト比較の間隔（反復数）
	earlyStopWindow = 10
	weightsVersion  = "1.0"
)

var _ model.Regressor = (*LinearRegression)(nil)

// LinearRegression はバッチ勾配降下法で学習する線形回帰モデル
// 単一インスタンスの並行利用は呼び出し側で直列化すること
type LinearRegression struct {
	model.BaseEstimator

	Weights   []float64 `json:"weights"`   // 重み（係数）
	Intercept float64   `json:"intercept"` // 切片
	NFeatures int       `json:"n_features"`
	// CostHistory は各反復のコスト Σ(pred-y)²/(2n)
	CostHistory []float64 `json:"cost_history"`
	NIter       int       `json:"n_iter"`
	Converged   bool      `json:"converged"`

	learningRate  float64
	maxIterations int
	tol           float64
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		learningRate:  0.01,
		maxIterations: 1000,
		tol:           1e-6,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Kind implements model.Estimator.
func (lr *LinearRegression) Kind() model.Kind { return model.KindRegression }

func (lr *LinearRegression) validate() error {
	if lr.learningRate <= 0 || math.IsNaN(lr.learningRate) {
		return errors.NewValidationError("learning_rate", "must be positive", lr.learningRate)
	}
	if lr.maxIterations <= 0 {
		return errors.NewValidationError("max_iterations", "must be positive", lr.maxIterations)
	}
	if lr.tol < 0 {
		return errors.NewValidationError("tol", "must not be negative", lr.tol)
	}
	return nil
}

// Fit はモデルを訓練データで学習させる
// y は n×1 の列ベクトル。重みと切片はゼロから開始し、固定回数の勾配降下を行う。
// 10反復目以降、現在のコストと10反復前のコストの差が tol 未満になれば早期終了する。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	if err := lr.validate(); err != nil {
		return err
	}
	ry, cy := y.Dims()
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	n, c, err := vector.CheckShape("LinearRegression.Fit", X, ry)
	if err != nil {
		return err
	}

	rows := vector.Rows(X)
	targets := vector.Column(y, 0)

	lr.Reset()
	lr.NFeatures = c
	lr.Weights = make([]float64, c)
	lr.Intercept = 0
	lr.CostHistory = make([]float64, 0, lr.maxIterations)
	lr.Converged = false

	predictions := make([]float64, n)
	dw := make([]float64, c)

	for iter := 0; iter < lr.maxIterations; iter++ {
		for i, row := range rows {
			predictions[i] = lr.Intercept + vector.Dot(lr.Weights, row)
		}

		mse, err := metrics.MSE(targets, predictions)
		if err != nil {
			return err
		}
		cost := mse / 2
		if err := errors.CheckScalar("LinearRegression.cost", cost, iter); err != nil {
			return err
		}
		lr.CostHistory = append(lr.CostHistory, cost)

		// 勾配: サンプル平均の (pred - y) * x
		for j := range dw {
			dw[j] = 0
		}
		var db float64
		for i, row := range rows {
			residual := predictions[i] - targets[i]
			db += residual
			for j, x := range row {
				dw[j] += residual * x
			}
		}
		for j := range lr.Weights {
			lr.Weights[j] -= lr.learningRate * dw[j] / float64(n)
		}
		lr.Intercept -= lr.learningRate * db / float64(n)
		lr.NIter = iter + 1

		if iter >= earlyStopWindow &&
			math.Abs(lr.CostHistory[iter]-lr.CostHistory[iter-earlyStopWindow]) < lr.tol {
			lr.Converged = true
			break
		}
	}

	if !lr.Converged {
		errors.Warn(errors.NewConvergenceWarning(modelName, lr.NIter, ""))
	}

	lr.SetFitted()
	log.GetLoggerWithName("linear").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, lr.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, c,
		log.IterationKey, lr.NIter,
		log.ConvergedKey, lr.Converged,
		log.LossKey, lr.CostHistory[len(lr.CostHistory)-1],
		log.LearningRateKey, lr.learningRate,
	)
	return nil
}

// Predict は各サンプルについて bias + weights·x を返す（n×1）
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	if err := vector.CheckFeatures("LinearRegression.Predict", X, lr.NFeatures); err != nil {
		return nil, err
	}

	r, _ := X.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, lr.Intercept+vector.Dot(lr.Weights, mat.Row(nil, i, X)))
	}
	return predictions, nil
}

// GetWeights は学習された重みのコピーを返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	return append([]float64(nil), lr.Weights...)
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(vector.Column(y, 0), vector.Column(yPred, 0))
}

// ExportWeights は学習済みパラメータを ModelWeights として返す
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "ExportWeights")
	}
	return &model.ModelWeights{
		ModelType:    modelName,
		Version:      weightsVersion,
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		Hyperparameters: map[string]interface{}{
			"learning_rate":  lr.learningRate,
			"max_iterations": lr.maxIterations,
			"tol":            lr.tol,
		},
		Metadata: map[string]interface{}{
			"n_iter":    lr.NIter,
			"converged": lr.Converged,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights は ModelWeights から学習済みパラメータを復元する
func (lr *LinearRegression) ImportWeights(mw *model.ModelWeights) error {
	if err := mw.Validate(); err != nil {
		return err
	}
	if mw.ModelType != modelName {
		return errors.NewValueError("LinearRegression.ImportWeights", "unexpected model type "+mw.ModelType)
	}
	if !mw.IsFitted {
		return errors.NewValueError("LinearRegression.ImportWeights", "weights are not fitted")
	}
	lr.Weights = append([]float64(nil), mw.Coefficients...)
	lr.Intercept = mw.Intercept
	lr.NFeatures = len(mw.Coefficients)
	lr.SetFitted()
	return nil
}
