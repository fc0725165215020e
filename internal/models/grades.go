package models

// gradeScore maps a recyclability grade to its numeric desirability.
// This is the single source for every scoring and feature-extraction
// consumer; duplicating the mapping elsewhere is a bug.
var gradeScore = map[string]float64{
	"A": 4,
	"B": 3,
	"C": 2,
	"D": 1,
}

// GradeScore returns the numeric score for a recyclability grade.
// Unknown or empty grades score 0.
func GradeScore(grade string) float64 {
	return gradeScore[grade]
}
