package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/classicml/cluster"
	"github.com/YuminosukeSato/classicml/core/model"
	"github.com/YuminosukeSato/classicml/core/vector"
	"github.com/YuminosukeSato/classicml/diagnostics"
	"github.com/YuminosukeSato/classicml/linear"
	"github.com/YuminosukeSato/classicml/neighbors"
	"github.com/YuminosukeSato/classicml/neural"
	"github.com/YuminosukeSato/classicml/pkg/errors"
	"github.com/YuminosukeSato/classicml/preprocessing"
	"github.com/YuminosukeSato/classicml/tree"
)

var (
	classX = mat.NewDense(6, 2, []float64{
		1, 2,
		2, 3,
		3, 3,
		6, 7,
		7, 8,
		8, 9,
	})
	classY  = []string{"A", "A", "A", "B", "B", "B"}
	classXT = mat.NewDense(2, 2, []float64{2, 2, 7, 7})

	clusterX = mat.NewDense(6, 2, []float64{
		1, 1,
		1, 2,
		2, 1,
		6, 6,
		6, 7,
		7, 6,
	})

	xorX = mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
	xorY = mat.NewDense(4, 1, []float64{0, 1, 1, 0})
)

// regressionData returns y = 2x + 1 + U(-0.5, 0.5) for x = 1..10.
func regressionData() (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(42, 42))
	X := mat.NewDense(10, 1, nil)
	y := mat.NewDense(10, 1, nil)
	for i := 0; i < 10; i++ {
		x := float64(i + 1)
		X.Set(i, 0, x)
		y.Set(i, 0, 2*x+1+rng.Float64()-0.5)
	}
	return X, y
}

// artifacts writes optional plots and model snapshots.
type artifacts struct {
	plotDir string
	saveDir string
}

func (a artifacts) prepare() error {
	for _, dir := range []string{a.plotDir, a.saveDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	return nil
}

func (a artifacts) save(name string, m model.Estimator) error {
	if a.saveDir == "" {
		return nil
	}
	return model.SaveJSONFile(filepath.Join(a.saveDir, name+".json"), m)
}

func (a artifacts) curve(name, title, yLabel string, history []float64) error {
	if a.plotDir == "" {
		return nil
	}
	return diagnostics.LearningCurve(history, title, yLabel, filepath.Join(a.plotDir, name+".png"))
}

func runML(w io.Writer, opts *options) (err error) {
	defer errors.Recover(&err, "demo ml")

	out := artifacts{plotDir: opts.plotDir, saveDir: opts.saveDir}
	if err := out.prepare(); err != nil {
		return err
	}
	cfg := opts.cfg

	fmt.Fprintln(w, "1. Linear Regression")
	X, y := regressionData()
	lr := linear.NewLinearRegression(cfg.Linear.Options()...)
	if err := lr.Fit(X, y); err != nil {
		return err
	}
	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{11, 12}))
	if err != nil {
		return err
	}
	r2, err := lr.Score(X, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   weights=%.3f bias=%.3f iterations=%d R2=%.4f\n", lr.GetWeights(), lr.GetIntercept(), lr.NIter, r2)
	fmt.Fprintf(w, "   predictions for [11] [12]: %.2f\n", vector.Column(pred, 0))
	if err := out.curve("linear_cost", "Linear regression cost", "Cost", lr.CostHistory); err != nil {
		return err
	}
	if err := out.save("linear", lr); err != nil {
		return err
	}

	fmt.Fprintln(w, "2. K-Nearest Neighbors")
	scaler := preprocessing.NewStandardScalerDefault()
	scaledX, err := scaler.FitTransform(classX)
	if err != nil {
		return err
	}
	scaledT, err := scaler.Transform(classXT)
	if err != nil {
		return err
	}
	knn := neighbors.NewKNN[string](cfg.KNN.Options()...)
	if err := knn.Fit(scaledX, classY); err != nil {
		return err
	}
	knnPred, err := knn.Predict(scaledT)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   k=%d predictions for [2 2] [7 7]: %v\n", knn.K(), knnPred)
	if err := out.save("knn", knn); err != nil {
		return err
	}

	fmt.Fprintln(w, "3. Decision Tree")
	dt := tree.NewDecisionTree[string](cfg.Tree.Options()...)
	if err := dt.Fit(classX, classY); err != nil {
		return err
	}
	dtPred, err := dt.Predict(classXT)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   predictions for [2 2] [7 7]: %v (depth=%d leaves=%d)\n", dtPred, dt.Depth(), dt.NLeaves())
	if err := out.save("tree", dt); err != nil {
		return err
	}

	fmt.Fprintln(w, "4. K-Means")
	km := cluster.NewKMeans(cfg.KMeans.Options()...)
	labels, err := km.Fit(clusterX)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "   assignments: %v\n", labels)
	fmt.Fprintf(w, "   centroids: %.2f inertia=%.3f converged=%t\n", km.Centroids(), km.Inertia(), km.Converged)
	if out.plotDir != "" {
		path := filepath.Join(out.plotDir, "kmeans.png")
		if err := diagnostics.ClusterScatter(vector.Rows(clusterX), labels, km.Centroids(), path); err != nil {
			return err
		}
	}
	if err := out.save("kmeans", km); err != nil {
		return err
	}

	fmt.Fprintln(w, "5. Neural Network (XOR)")
	nn := neural.NewNeuralNetwork(cfg.Neural.Layers, cfg.Neural.Options()...)
	if err := nn.Fit(xorX, xorY); err != nil {
		return err
	}
	nnPred, err := nn.Predict(xorX)
	if err != nil {
		return err
	}
	for i := 0; i < 4; i++ {
		fmt.Fprintf(w, "   input=%v target=%.0f prediction=%.3f\n", mat.Row(nil, i, xorX), xorY.At(i, 0), nnPred.At(i, 0))
	}
	if err := out.curve("mlp_loss", "MLP training loss", "Loss", nn.LossHistory); err != nil {
		return err
	}
	return out.save("mlp", nn)
}
