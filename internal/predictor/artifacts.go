package predictor

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Model and scaler persist as two independent gob artifacts so
// inference-time code can load either without retraining. Writes go
// through a temp file and rename so a crashed run never leaves a
// truncated artifact behind.

func SaveModel(path string, m *LogisticModel) error    { return saveGob(path, m) }
func SaveScaler(path string, sc *StandardScaler) error { return saveGob(path, sc) }

func removeArtifact(path string) { _ = os.Remove(path) }

func LoadModel(path string) (*LogisticModel, error) {
	m := &LogisticModel{}
	if err := loadGob(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

func LoadScaler(path string) (*StandardScaler, error) {
	sc := &StandardScaler{}
	if err := loadGob(path, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func saveGob(path string, v interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())
	if err := gob.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode artifact %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func loadGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode artifact %s: %w", path, err)
	}
	return nil
}
