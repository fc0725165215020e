package predictor

// ClassMetrics is the per-class precision/recall/F1 breakdown.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Evaluation is the held-out split report.
type Evaluation struct {
	Accuracy float64
	Classes  map[int]ClassMetrics
}

// Evaluate computes accuracy and the per-class breakdown for binary
// predictions. Zero denominators yield 0, not NaN.
func Evaluate(yTrue, yPred []int) Evaluation {
	eval := Evaluation{Classes: map[int]ClassMetrics{}}
	if len(yTrue) == 0 {
		return eval
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	eval.Accuracy = float64(correct) / float64(len(yTrue))

	for _, class := range []int{0, 1} {
		var tp, fp, fn, support int
		for i := range yTrue {
			if yTrue[i] == class {
				support++
				if yPred[i] == class {
					tp++
				} else {
					fn++
				}
			} else if yPred[i] == class {
				fp++
			}
		}
		m := ClassMetrics{Support: support}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		eval.Classes[class] = m
	}
	return eval
}
