package predictor

import (
	"math"
	"math/rand"
)

// TrainTestSplit shuffles the dataset with a seeded generator and holds
// out the given fraction for evaluation. The seed fixes the partition
// so runs are reproducible. With at least two samples, both partitions
// are guaranteed non-empty.
func TrainTestSplit(X [][]float64, y []int, holdout float64, seed int64) (XTrain, XTest [][]float64, yTrain, yTest []int) {
	n := len(X)
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(float64(n) * holdout))
	if nTest < 1 && n > 1 {
		nTest = 1
	}
	if nTest >= n && n > 1 {
		nTest = n - 1
	}
	for i, idx := range perm {
		if i < nTest {
			XTest = append(XTest, X[idx])
			yTest = append(yTest, y[idx])
		} else {
			XTrain = append(XTrain, X[idx])
			yTrain = append(yTrain, y[idx])
		}
	}
	return XTrain, XTest, yTrain, yTest
}
