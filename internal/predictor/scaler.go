package predictor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers features to zero mean and unit variance.
// Fit on the training split only; the fitted statistics are persisted
// alongside the model so inference replays the exact normalization.
type StandardScaler struct {
	Means []float64
	Stds  []float64
}

// Fit computes per-column mean and population standard deviation.
// Columns with zero variance scale by 1 so constant features pass
// through centered instead of dividing by zero.
func (sc *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("fit scaler: no samples")
	}
	cols := len(X[0])
	sc.Means = make([]float64, cols)
	sc.Stds = make([]float64, cols)
	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i, row := range X {
			if len(row) != cols {
				return fmt.Errorf("fit scaler: row %d has %d features, want %d", i, len(row), cols)
			}
			col[i] = row[j]
		}
		mean := stat.Mean(col, nil)
		// second central moment = population variance
		std := math.Sqrt(stat.MomentAbout(2, col, mean, nil))
		if std == 0 {
			std = 1
		}
		sc.Means[j] = mean
		sc.Stds[j] = std
	}
	return nil
}

// Transform returns a standardized copy of X.
func (sc *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(sc.Means) {
			return nil, fmt.Errorf("transform: row %d has %d features, want %d", i, len(row), len(sc.Means))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - sc.Means[j]) / sc.Stds[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on X and returns its standardized copy.
func (sc *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := sc.Fit(X); err != nil {
		return nil, err
	}
	return sc.Transform(X)
}
