package model

import (
	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/classicml/pkg/errors"
)

// ModelWeights は線形モデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	ModelType       string                 `json:"model_type"`
	Version         string                 `json:"version"`
	Coefficients    []float64              `json:"coefficients"`
	Intercept       float64                `json:"intercept"`
	Hyperparameters map[string]interface{} `json:"hyperparameters"`
	// Metadata は学習時の統計（反復回数、最終コストなど）
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	IsFitted bool                   `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValueError("ModelWeights.Validate", "unfitted model should not have coefficients")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValueError("ModelWeights.Validate", "fitted model must have coefficients")
	}
	return nil
}
