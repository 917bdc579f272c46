// Package cluster はK-meansクラスタリングを提供する
package cluster

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

const modelName = "KMeans"

var _ model.Clusterer = (*KMeans)(nil)

// KMeansOption はKMeansの設定オプション
type KMeansOption func(*KMeans)

// WithNClusters はクラスタ数を設定（デフォルト3）
func WithNClusters(k int) KMeansOption {
	return func(km *KMeans) {
		km.nClusters = k
	}
}

// WithMaxIter は最大イテレーション数を設定（デフォルト100）
func WithMaxIter(maxIter int) KMeansOption {
	return func(km *KMeans) {
		km.maxIter = maxIter
	}
}

// WithSeed は中心初期化の乱数シードを設定（デフォルト42）
func WithSeed(seed uint64) KMeansOption {
	return func(km *KMeans) {
		km.seed = seed
	}
}

// KMeans はLloydアルゴリズムによるK-meansクラスタリング
//
// 中心は各次元の観測範囲 [min, max] から一様乱数で初期化する。
// 割り当てられるサンプルがなくなったクラスタの中心は更新せずに残すため、
// 使われないクラスタが最後まで残ることがある。
type KMeans struct {
	model.BaseEstimator

	ClusterCenters [][]float64 `json:"cluster_centers"` // クラスタ中心（nClusters x nFeatures）
	TrainLabels    []int       `json:"labels"`          // 学習データのクラスタラベル
	InertiaValue   float64     `json:"inertia"`         // クラスタ内平方和誤差
	NIter          int         `json:"n_iter"`
	Converged      bool        `json:"converged"`

	nClusters int
	maxIter   int
	seed      uint64
}

// NewKMeans は新しいKMeansを作成
func NewKMeans(options ...KMeansOption) *KMeans {
	km := &KMeans{
		nClusters: 3,
		maxIter:   100,
		seed:      42,
	}
	for _, opt := range options {
		opt(km)
	}
	return km
}

// Kind implements model.Estimator.
func (km *KMeans) Kind() model.Kind { return model.KindClustering }

// Fit はクラスタ中心を学習し、各サンプルのクラスタラベルを返す
// 割り当てが前回と完全に一致した時点、または maxIter 到達で終了する
func (km *KMeans) Fit(X mat.Matrix) ([]int, error) {
	if km.nClusters <= 0 {
		return nil, errors.NewValidationError("n_clusters", "must be positive", km.nClusters)
	}
	if km.maxIter <= 0 {
		return nil, errors.NewValidationError("max_iter", "must be positive", km.maxIter)
	}
	n, c, err := vector.CheckShape("KMeans.Fit", X, -1)
	if err != nil {
		return nil, err
	}

	km.Reset()
	rows := vector.Rows(X)
	centers := km.initializeCenters(X)

	var labels, previous []int
	km.Converged = false
	iter := 0
	for ; iter < km.maxIter; iter++ {
		labels = assign(rows, centers)
		if previous != nil && slices.Equal(labels, previous) {
			km.Converged = true
			break
		}
		updateCenters(rows, labels, centers)
		previous = labels
	}

	km.ClusterCenters = centers
	km.TrainLabels = labels
	km.NIter = min(iter+1, km.maxIter)
	km.InertiaValue = computeInertia(rows, centers)
	km.SetFitted()

	log.GetLoggerWithName("cluster").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, km.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, c,
		log.IterationKey, km.NIter,
		log.ConvergedKey, km.Converged,
		log.InertiaKey, km.InertiaValue,
		log.RandomSeedKey, km.seed,
	)
	return slices.Clone(labels), nil
}

// Predict は各サンプルを最も近い学習済み中心に割り当てる
func (km *KMeans) Predict(X mat.Matrix) ([]int, error) {
	if !km.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	if err := vector.CheckFeatures("KMeans.Predict", X, len(km.ClusterCenters[0])); err != nil {
		return nil, err
	}
	return assign(vector.Rows(X), km.ClusterCenters), nil
}

// FitPredict は学習を行い、学習データのラベルを返す
func (km *KMeans) FitPredict(X mat.Matrix) ([]int, error) {
	return km.Fit(X)
}

// NIterations は実行された学習イテレーション数を返す
func (km *KMeans) NIterations() int {
	return km.NIter
}

// Centroids は学習されたクラスタ中心のコピーを返す
func (km *KMeans) Centroids() [][]float64 {
	centers := make([][]float64, len(km.ClusterCenters))
	for i := range km.ClusterCenters {
		centers[i] = slices.Clone(km.ClusterCenters[i])
	}
	return centers
}

// Labels は学習データのクラスタラベルを返す
func (km *KMeans) Labels() []int {
	return slices.Clone(km.TrainLabels)
}

// Inertia は慣性（クラスタ内平方和誤差）を返す
func (km *KMeans) Inertia() float64 {
	return km.InertiaValue
}

// initializeCenters は各次元の [min, max] から一様に中心を引く
func (km *KMeans) initializeCenters(X mat.Matrix) [][]float64 {
	rng := rand.New(rand.NewPCG(km.seed, km.seed))
	mins, maxs := vector.ColumnRange(X)

	centers := make([][]float64, km.nClusters)
	for k := range centers {
		centers[k] = make([]float64, len(mins))
		for j := range mins {
			centers[k][j] = mins[j] + rng.Float64()*(maxs[j]-mins[j])
		}
	}
	return centers
}

// findNearestCluster は最近傍クラスタを返す（同距離なら番号の小さい方）
func findNearestCluster(sample []float64, centers [][]float64) int {
	minDist := math.Inf(1)
	nearest := 0
	for c, center := range centers {
		if dist := vector.Euclidean(sample, center); dist < minDist {
			minDist = dist
			nearest = c
		}
	}
	return nearest
}

func assign(rows [][]float64, centers [][]float64) []int {
	labels := make([]int, len(rows))
	for i, row := range rows {
		labels[i] = findNearestCluster(row, centers)
	}
	return labels
}

// updateCenters は各中心を割り当てサンプルの座標平均に置き換える
// 割り当てのないクラスタは元の中心のまま
func updateCenters(rows [][]float64, labels []int, centers [][]float64) {
	for k := range centers {
		var members [][]float64
		for i, label := range labels {
			if label == k {
				members = append(members, rows[i])
			}
		}
		if len(members) == 0 {
			continue
		}
		for j := range centers[k] {
			col := make([]float64, len(members))
			for m, row := range members {
				col[m] = row[j]
			}
			centers[k][j] = vector.Mean(col)
		}
	}
}

// computeInertia は慣性（クラスタ内平方和誤差）を計算
func computeInertia(rows [][]float64, centers [][]float64) float64 {
	inertia := 0.0
	for _, row := range rows {
		dist := vector.Euclidean(row, centers[findNearestCluster(row, centers)])
		inertia += dist * dist
	}
	return inertia
}
