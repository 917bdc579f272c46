// Package tree はGini不純度による二分決定木分類器を提供する
package tree

import (
	"math"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/metrics"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/pkg/log"
)

const modelName = "DecisionTree"

// noChild は葉ノードの子インデックス
const noChild = -1

var _ model.Classifier[string] = (*DecisionTree[string])(nil)

// Node は木のノード。内部ノード（Feature, Threshold, Left, Right）か
// 葉（Value）のどちらか一方のみを持つ
type Node[L comparable] struct {
	IsLeaf    bool    `json:"is_leaf"`
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`  // Nodes内のインデックス
	Right     int     `json:"right"` // Nodes内のインデックス
	Value     L       `json:"value"`
}

// DecisionTree は深さ優先の再帰分割で構築される決定木分類器
// 構築後のノード配列は不変
type DecisionTree[L comparable] struct {
	model.BaseEstimator

	Nodes     []Node[L] `json:"nodes"`
	Root      int       `json:"root"`
	NFeatures int       `json:"n_features"`

	maxDepth        int
	minSamplesSplit int
}

// NewDecisionTree は新しい決定木を作成する
func NewDecisionTree[L comparable](opts ...Option) *DecisionTree[L] {
	cfg := &treeConfig{maxDepth: 10, minSamplesSplit: 2}
	for _, opt := range opts {
		opt(cfg)
	}
	return &DecisionTree[L]{
		maxDepth:        cfg.maxDepth,
		minSamplesSplit: cfg.minSamplesSplit,
	}
}

// Kind implements model.Estimator.
func (t *DecisionTree[L]) Kind() model.Kind { return model.KindClassification }

// Fit は木を構築する
func (t *DecisionTree[L]) Fit(X mat.Matrix, y []L) error {
	if t.maxDepth < 0 {
		return errors.NewValidationError("max_depth", "must not be negative", t.maxDepth)
	}
	if t.minSamplesSplit < 1 {
		return errors.NewValidationError("min_samples_split", "must be at least 1", t.minSamplesSplit)
	}
	n, c, err := vector.CheckShape("DecisionTree.Fit", X, len(y))
	if err != nil {
		return err
	}

	t.Reset()
	t.NFeatures = c
	t.Nodes = t.Nodes[:0]
	b := &builder[L]{tree: t, rows: vector.Rows(X), labels: y}
	t.Root = b.build(lo.Range(n), 0)
	t.SetFitted()

	log.GetLoggerWithName("tree").With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, t.ID(),
	).Debug("fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, n,
		log.FeaturesKey, c,
		log.TreeDepthKey, t.Depth(),
		log.TreeLeavesKey, t.NLeaves(),
	)
	return nil
}

type builder[L comparable] struct {
	tree   *DecisionTree[L]
	rows   [][]float64
	labels []L
}

func (b *builder[L]) addNode(n Node[L]) int {
	b.tree.Nodes = append(b.tree.Nodes, n)
	return len(b.tree.Nodes) - 1
}

func (b *builder[L]) leaf(idx []int) int {
	return b.addNode(Node[L]{
		IsLeaf: true,
		Left:   noChild,
		Right:  noChild,
		Value:  majority(lo.Map(idx, func(i int, _ int) L { return b.labels[i] })),
	})
}

// build は idx のサンプルから部分木を作り、その根のインデックスを返す
func (b *builder[L]) build(idx []int, depth int) int {
	labels := lo.Map(idx, func(i int, _ int) L { return b.labels[i] })
	if depth >= b.tree.maxDepth ||
		len(idx) < b.tree.minSamplesSplit ||
		len(lo.Uniq(labels)) == 1 {
		return b.leaf(idx)
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	left, right := lo.FilterReject(idx, func(i int, _ int) bool {
		return b.rows[i][feature] <= threshold
	})

	// 親ノードを先に確保し、子の構築後にリンクを埋める
	node := b.addNode(Node[L]{Feature: feature, Threshold: threshold})
	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.tree.Nodes[node].Left = l
	b.tree.Nodes[node].Right = r
	return node
}

// bestSplit は重み付きGini不純度が最小となる特徴量と閾値を探す
// 閾値はソート済みの異なる値の隣接中点。同値の場合は先に見つかった候補を採用する
func (b *builder[L]) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	best := math.Inf(1)
	for f := 0; f < b.tree.NFeatures; f++ {
		values := lo.Uniq(lo.Map(idx, func(i int, _ int) float64 { return b.rows[i][f] }))
		slices.Sort(values)

		for v := 0; v+1 < len(values); v++ {
			th := (values[v] + values[v+1]) / 2
			impurity := b.splitImpurity(idx, f, th)
			if impurity < best {
				best = impurity
				feature, threshold, ok = f, th, true
			}
		}
	}
	return feature, threshold, ok
}

// splitImpurity は (n_left/n)·gini_left + (n_right/n)·gini_right を返す
// 片側が空になる分割は +Inf
func (b *builder[L]) splitImpurity(idx []int, feature int, threshold float64) float64 {
	var left, right []L
	for _, i := range idx {
		if b.rows[i][feature] <= threshold {
			left = append(left, b.labels[i])
		} else {
			right = append(right, b.labels[i])
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return math.Inf(1)
	}
	n := float64(len(idx))
	return float64(len(left))/n*Gini(left) + float64(len(right))/n*Gini(right)
}

// Gini はラベル集合の不純度 1 − Σp_c² を返す。空集合は0
func Gini[L comparable](labels []L) float64 {
	if len(labels) == 0 {
		return 0
	}
	n := float64(len(labels))
	impurity := 1.0
	for _, count := range lo.CountValues(labels) {
		p := float64(count) / n
		impurity -= p * p
	}
	return impurity
}

// majority は最頻ラベルを返す。同数の場合はラベル列で先に現れたもの
func majority[L comparable](labels []L) L {
	counts := lo.CountValues(labels)
	best := labels[0]
	for _, label := range labels[1:] {
		if counts[label] > counts[best] {
			best = label
		}
	}
	return best
}

// Predict は各サンプルについて根から葉まで辿り、葉のラベルを返す
func (t *DecisionTree[L]) Predict(X mat.Matrix) ([]L, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}
	if err := vector.CheckFeatures("DecisionTree.Predict", X, t.NFeatures); err != nil {
		return nil, err
	}

	rows := vector.Rows(X)
	predictions := make([]L, len(rows))
	for i, row := range rows {
		predictions[i] = t.predictOne(row)
	}
	return predictions, nil
}

func (t *DecisionTree[L]) predictOne(row []float64) L {
	node := t.Nodes[t.Root]
	for !node.IsLeaf {
		if row[node.Feature] <= node.Threshold {
			node = t.Nodes[node.Left]
		} else {
			node = t.Nodes[node.Right]
		}
	}
	return node.Value
}

// Depth は木の深さ（根のみなら0）を返す
func (t *DecisionTree[L]) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	return t.depthFrom(t.Root)
}

func (t *DecisionTree[L]) depthFrom(i int) int {
	node := t.Nodes[i]
	if node.IsLeaf {
		return 0
	}
	return 1 + max(t.depthFrom(node.Left), t.depthFrom(node.Right))
}

// NLeaves は葉の数を返す
func (t *DecisionTree[L]) NLeaves() int {
	return lo.CountBy(t.Nodes, func(n Node[L]) bool { return n.IsLeaf })
}

// Score は正解率を返す
func (t *DecisionTree[L]) Score(X mat.Matrix, y []L) (float64, error) {
	pred, err := t.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}
