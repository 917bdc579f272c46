package model

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/YuminosukeSato/classicml/pkg/errors"
)

// SaveJSON はモデルの公開フィールドをJSONとしてwに書き出す
//
// 使用例:
//
//	err := model.SaveJSON(f, tree)
func SaveJSON(w io.Writer, m Estimator) error {
	if !m.IsFitted() {
		return errors.NewValueError("SaveJSON", "refusing to save an unfitted model")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadJSON はSaveJSONの出力を構築済みのモデルに読み込む
// ハイパーパラメータ（非公開フィールド）はコンストラクタの値が維持される
// 学習済みのモデルに読み込んだ場合、学習済み状態はスナップショットで置き換えられる
func LoadJSON(r io.Reader, m Estimator) error {
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	if !m.IsFitted() {
		return errors.NewValueError("LoadJSON", "snapshot does not contain a fitted model")
	}
	return nil
}

// SaveJSONFile はモデルをファイルに保存する
func SaveJSONFile(path string, m Estimator) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()
	return SaveJSON(f, m)
}

// LoadJSONFile はファイルからモデルを読み込む
func LoadJSONFile(path string, m Estimator) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return LoadJSON(f, m)
}
