package metrics

import "github.com/YuminosukeSato/classicml/pkg/errors"

// Accuracy は予測ラベルが正解と一致する割合を返す
func Accuracy[L comparable](yTrue, yPred []L) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewValueError("Accuracy", "empty label sequence")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("Accuracy", len(yTrue), len(yPred), 0)
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}
