package predictor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyTrainingSet aborts training before any artifact is written.
var ErrEmptyTrainingSet = errors.New("training set is empty")

// Example is one labeled training sample.
type Example struct {
	Features []float64
	Label    int
}

// Config tunes a training run. Zero values take defaults.
type Config struct {
	Holdout      float64 // test fraction, default 0.3
	Seed         int64   // split seed, default 42
	LearningRate float64
	Epochs       int
	ModelPath    string
	ScalerPath   string
}

// Report summarizes a finished training run.
type Report struct {
	RunID      string
	TrainedAt  time.Time
	Samples    int
	TrainSize  int
	TestSize   int
	Evaluation Evaluation
	ModelPath  string
	ScalerPath string
}

// Train runs the full pipeline: seeded holdout split, scaler fitted on
// the training split only, logistic fit, held-out evaluation, then both
// artifacts persisted. An empty training set is a hard abort with
// nothing written; a failed artifact write leaves no partial pair.
func Train(logger *zap.Logger, examples []Example, cfg Config) (*Report, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: no instances with a terminal lifecycle outcome", ErrEmptyTrainingSet)
	}
	holdout := cfg.Holdout
	if holdout <= 0 || holdout >= 1 {
		holdout = 0.3
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	logger.Info("training run starting",
		zap.Int("samples", len(examples)),
		zap.Float64("holdout", holdout),
		zap.Int64("seed", seed))

	X := make([][]float64, len(examples))
	y := make([]int, len(examples))
	for i, ex := range examples {
		X[i] = ex.Features
		y[i] = ex.Label
	}

	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, holdout, seed)
	logger.Info("split dataset", zap.Int("train", len(XTrain)), zap.Int("test", len(XTest)))

	scaler := &StandardScaler{}
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return nil, err
	}
	XTestScaled, err := scaler.Transform(XTest)
	if err != nil {
		return nil, err
	}

	model, err := FitLogistic(XTrainScaled, yTrain, FitOptions{LearningRate: cfg.LearningRate, Epochs: cfg.Epochs})
	if err != nil {
		return nil, err
	}

	yPred := make([]int, len(XTestScaled))
	for i, row := range XTestScaled {
		yPred[i] = model.Predict(row)
	}
	eval := Evaluate(yTest, yPred)
	logger.Info("evaluated held-out split", zap.Float64("accuracy", eval.Accuracy))

	if err := SaveScaler(cfg.ScalerPath, scaler); err != nil {
		return nil, err
	}
	if err := SaveModel(cfg.ModelPath, model); err != nil {
		// keep the pair consistent: discard the scaler written above
		removeArtifact(cfg.ScalerPath)
		return nil, err
	}
	logger.Info("artifacts persisted",
		zap.String("model", cfg.ModelPath),
		zap.String("scaler", cfg.ScalerPath))

	return &Report{
		RunID:      runID,
		TrainedAt:  time.Now(),
		Samples:    len(examples),
		TrainSize:  len(XTrain),
		TestSize:   len(XTest),
		Evaluation: eval,
		ModelPath:  cfg.ModelPath,
		ScalerPath: cfg.ScalerPath,
	}, nil
}
