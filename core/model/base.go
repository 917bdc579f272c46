package model

import "github.com/google/uuid"

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

// BaseEstimator は全てのモデルの基底となる構造体
// フィールドはJSONスナップショットに含まれる
type BaseEstimator struct {
	State       EstimatorState `json:"state"`
	EstimatorID string         `json:"estimator_id,omitempty"`
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset はモデルを初期状態にリセットする
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}

// ID はログ出力用のインスタンスIDを返す（初回呼び出し時に採番）
func (e *BaseEstimator) ID() string {
	if e.EstimatorID == "" {
		e.EstimatorID = uuid.NewString()
	}
	return e.EstimatorID
}
