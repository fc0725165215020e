package predictor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticModel is a binary logistic-regression classifier fitted by
// batch gradient descent. Any classifier satisfying the same
// feature/label contract could replace it; this is the reference
// choice.
type LogisticModel struct {
	Weights []float64
	Bias    float64
}

// FitOptions tune the gradient descent. Zero values take defaults.
type FitOptions struct {
	LearningRate float64 // default 0.1
	Epochs       int     // default 1500
}

// FitLogistic fits a logistic model on standardized features X and
// binary labels y.
func FitLogistic(X [][]float64, y []int, opts FitOptions) (*LogisticModel, error) {
	if len(X) == 0 {
		return nil, errors.New("fit: no samples")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit: %d samples but %d labels", len(X), len(y))
	}
	lr := opts.LearningRate
	if lr <= 0 {
		lr = 0.1
	}
	epochs := opts.Epochs
	if epochs <= 0 {
		epochs = 1500
	}

	cols := len(X[0])
	m := &LogisticModel{Weights: make([]float64, cols)}
	grad := make([]float64, cols)
	n := float64(len(X))
	for e := 0; e < epochs; e++ {
		for j := range grad {
			grad[j] = 0
		}
		var biasGrad float64
		for i, row := range X {
			residual := m.Prob(row) - float64(y[i])
			floats.AddScaled(grad, residual, row)
			biasGrad += residual
		}
		floats.AddScaled(m.Weights, -lr/n, grad)
		m.Bias -= lr / n * biasGrad
	}
	return m, nil
}

// Prob returns the predicted probability of the positive (recycled)
// class.
func (m *LogisticModel) Prob(x []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, x) + m.Bias)
}

// Predict returns the class at the 0.5 decision threshold.
func (m *LogisticModel) Predict(x []float64) int {
	if m.Prob(x) >= 0.5 {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }
