package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLogisticSeparable(t *testing.T) {
	// linearly separable in one dimension
	X := [][]float64{{-2}, {-1.5}, {-1}, {-0.5}, {0.5}, {1}, {1.5}, {2}}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}

	m, err := FitLogistic(X, y, FitOptions{})
	require.NoError(t, err)

	for i, row := range X {
		assert.Equal(t, y[i], m.Predict(row), "sample %d", i)
	}
	assert.Greater(t, m.Prob([]float64{3}), 0.9)
	assert.Less(t, m.Prob([]float64{-3}), 0.1)
}

func TestFitLogisticErrors(t *testing.T) {
	_, err := FitLogistic(nil, nil, FitOptions{})
	require.Error(t, err)

	_, err = FitLogistic([][]float64{{1}}, []int{1, 0}, FitOptions{})
	require.Error(t, err, "sample/label length mismatch")
}

func TestTrainTestSplit(t *testing.T) {
	X := make([][]float64, 10)
	y := make([]int, 10)
	for i := range X {
		X[i] = []float64{float64(i)}
		y[i] = i % 2
	}

	XTrain, XTest, yTrain, yTest := TrainTestSplit(X, y, 0.3, 42)
	assert.Len(t, XTest, 3)
	assert.Len(t, XTrain, 7)
	assert.Len(t, yTest, 3)
	assert.Len(t, yTrain, 7)

	// all samples accounted for exactly once
	seen := map[float64]bool{}
	for _, row := range append(append([][]float64{}, XTrain...), XTest...) {
		assert.False(t, seen[row[0]], "sample %v duplicated", row[0])
		seen[row[0]] = true
	}
	assert.Len(t, seen, 10)

	// same seed reproduces the same partition
	_, XTest2, _, _ := TrainTestSplit(X, y, 0.3, 42)
	assert.Equal(t, XTest, XTest2)
}

func TestTrainTestSplitSmall(t *testing.T) {
	X := [][]float64{{1}, {2}}
	y := []int{0, 1}
	XTrain, XTest, _, _ := TrainTestSplit(X, y, 0.3, 1)
	assert.Len(t, XTest, 1, "holdout must round up to keep the test split non-empty")
	assert.Len(t, XTrain, 1)
}

func TestEvaluate(t *testing.T) {
	yTrue := []int{1, 1, 1, 0, 0, 0}
	yPred := []int{1, 1, 0, 0, 0, 1}

	eval := Evaluate(yTrue, yPred)
	assert.InDelta(t, 4.0/6.0, eval.Accuracy, 1e-9)

	pos := eval.Classes[1]
	assert.InDelta(t, 2.0/3.0, pos.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, pos.Recall, 1e-9)
	assert.Equal(t, 3, pos.Support)

	neg := eval.Classes[0]
	assert.InDelta(t, 2.0/3.0, neg.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, neg.Recall, 1e-9)
}

func TestEvaluateZeroDivision(t *testing.T) {
	// no positive predictions and no positive truth: metrics stay 0
	eval := Evaluate([]int{0, 0}, []int{0, 0})
	assert.Equal(t, 1.0, eval.Accuracy)
	assert.Equal(t, 0.0, eval.Classes[1].Precision)
	assert.Equal(t, 0.0, eval.Classes[1].Recall)
	assert.Equal(t, 0.0, eval.Classes[1].F1)
}
