package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env         string
	DatabaseDSN string
	Trainer     Trainer
}

// Trainer holds the training pipeline settings. Values come from the
// environment and can be overridden by a YAML file passed to the CLI.
type Trainer struct {
	Holdout      float64 `yaml:"holdout"`
	Seed         int64   `yaml:"seed"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	ModelPath    string  `yaml:"model_path"`
	ScalerPath   string  `yaml:"scaler_path"`
}

// Load reads configuration from the environment with defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:ecoloop.db")
	cfg.Trainer = Trainer{
		Holdout:      getFloat("TRAIN_HOLDOUT", 0.3),
		Seed:         getInt("TRAIN_SEED", 42),
		LearningRate: getFloat("TRAIN_LEARNING_RATE", 0.1),
		Epochs:       int(getInt("TRAIN_EPOCHS", 1500)),
		ModelPath:    getEnv("MODEL_PATH", "recycle_predictor.gob"),
		ScalerPath:   getEnv("SCALER_PATH", "recycle_scaler.gob"),
	}
	return cfg
}

// LoadTrainerFile overlays settings from a YAML file onto base. Only
// fields present in the file replace the base values.
func LoadTrainerFile(path string, base Trainer) (Trainer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read trainer config: %w", err)
	}
	out := base
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return base, fmt.Errorf("parse trainer config: %w", err)
	}
	return out, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
