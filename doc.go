// Package classicml implements classical machine-learning algorithms and a
// small text-analysis toolkit from first principles on top of gonum.
//
// Every model is trained with a plain loop that can be read end to end:
// gradient descent for linear regression, an exhaustive Gini search for the
// decision tree, Lloyd iterations for K-means and backpropagation for the
// feed-forward network. Results are deterministic for a fixed seed.
//
// # Installation
//
//	go get github.com/YuminosukeSato/classicml
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/classicml/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})
//
//	    model := linear.NewLinearRegression(linear.WithMaxIterations(5000))
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.Predict(mat.NewDense(1, 1, []float64{5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", pred.At(0, 0))
//	}
//
// # Packages
//
//   - linear: LinearRegression trained by batch gradient descent
//   - neighbors: generic k-nearest-neighbours classifier
//   - tree: generic CART classifier with Gini impurity
//   - cluster: K-means with seeded initialisation
//   - neural: fully connected sigmoid network with backpropagation
//   - preprocessing: StandardScaler and MinMaxScaler
//   - metrics: MSE, RMSE, MAE, R² and accuracy
//   - text: cleaning, tokenisation, stop words and n-grams
//   - text/naivebayes, text/tfidf, text/sentiment, text/similarity
//   - diagnostics: learning-curve and cluster plots
//   - config: hyperparameters from YAML, TOML, JSON or the environment
//   - core/model: estimator interfaces, weights export and JSON snapshots
//   - pkg/errors, pkg/log: structured errors, warnings and logging
//
// The classicml command (cmd/classicml) runs both demonstrations:
//
//	classicml demo ml --plot-dir out
//	classicml demo nlp
//
// # License
//
// classicml is released under the MIT License.
package classicml
