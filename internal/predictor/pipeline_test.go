package predictor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func artifactPaths(t *testing.T) (string, string) {
	dir := t.TempDir()
	return filepath.Join(dir, "model.gob"), filepath.Join(dir, "scaler.gob")
}

func separableExamples(n int) []Example {
	// heavy hazardous products get disposed, light clean ones recycled
	examples := make([]Example, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			examples = append(examples, Example{
				Features: []float64{100 + float64(i), 3.5, 0, 2},
				Label:    1,
			})
		} else {
			examples = append(examples, Example{
				Features: []float64{900 + float64(i), 1.2, 3, 5},
				Label:    0,
			})
		}
	}
	return examples
}

func TestTrainPipeline(t *testing.T) {
	modelPath, scalerPath := artifactPaths(t)
	report, err := Train(zap.NewNop(), separableExamples(20), Config{
		ModelPath:  modelPath,
		ScalerPath: scalerPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, report.Samples)
	assert.Equal(t, 6, report.TestSize)
	assert.Equal(t, 14, report.TrainSize)
	assert.Equal(t, 1.0, report.Evaluation.Accuracy, "separable data must evaluate cleanly")
	assert.NotEmpty(t, report.RunID)

	// both artifacts are independently loadable and replay the exact fit
	model, err := LoadModel(modelPath)
	require.NoError(t, err)
	scaler, err := LoadScaler(scalerPath)
	require.NoError(t, err)

	scaled, err := scaler.Transform([][]float64{{105, 3.4, 0, 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, model.Predict(scaled[0]))

	scaled, err = scaler.Transform([][]float64{{910, 1.1, 3, 5}})
	require.NoError(t, err)
	assert.Equal(t, 0, model.Predict(scaled[0]))
}

func TestTrainPipelineReproducible(t *testing.T) {
	modelPath, scalerPath := artifactPaths(t)
	cfg := Config{Seed: 7, ModelPath: modelPath, ScalerPath: scalerPath}

	first, err := Train(zap.NewNop(), separableExamples(20), cfg)
	require.NoError(t, err)
	second, err := Train(zap.NewNop(), separableExamples(20), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Evaluation, second.Evaluation)
	assert.Equal(t, first.TrainSize, second.TrainSize)
}

func TestTrainEmptySetAborts(t *testing.T) {
	modelPath, scalerPath := artifactPaths(t)
	_, err := Train(zap.NewNop(), nil, Config{ModelPath: modelPath, ScalerPath: scalerPath})
	require.ErrorIs(t, err, ErrEmptyTrainingSet)

	// hard abort: no partial artifact may exist
	_, statErr := os.Stat(modelPath)
	assert.True(t, os.IsNotExist(statErr), "model artifact must not be written")
	_, statErr = os.Stat(scalerPath)
	assert.True(t, os.IsNotExist(statErr), "scaler artifact must not be written")
}

func TestArtifactRoundTrip(t *testing.T) {
	modelPath, scalerPath := artifactPaths(t)

	model := &LogisticModel{Weights: []float64{0.5, -1.25}, Bias: 0.1}
	require.NoError(t, SaveModel(modelPath, model))
	loaded, err := LoadModel(modelPath)
	require.NoError(t, err)
	assert.Equal(t, model, loaded)

	scaler := &StandardScaler{Means: []float64{1, 2}, Stds: []float64{0.5, 4}}
	require.NoError(t, SaveScaler(scalerPath, scaler))
	loadedScaler, err := LoadScaler(scalerPath)
	require.NoError(t, err)
	assert.Equal(t, scaler, loadedScaler)

	_, err = LoadModel(filepath.Join(t.TempDir(), "missing.gob"))
	require.Error(t, err)
}
