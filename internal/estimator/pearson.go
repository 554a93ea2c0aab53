package estimator

import (
	"math"
	"time"

	"github.com/pintowar/bellum-sub001/internal/domain"
)

// PearsonEstimator estimates duration from the Pearson correlation between
// an employee's skill vector and a task's required-skill vector: perfect
// correlation is fast (5 minutes), no correlation is middling (45 minutes),
// and anti-correlation is slow (85 minutes).
type PearsonEstimator struct{}

// Estimate implements TimeEstimator via the default skill-union template.
func (p PearsonEstimator) Estimate(employee domain.Employee, task domain.Task) (time.Duration, error) {
	return estimateViaSkillUnion(p, employee, task)
}

func (p PearsonEstimator) skillsEstimation(employeeSkills, taskSkills []int) (time.Duration, error) {
	if err := validateSkillVectors(employeeSkills, taskSkills); err != nil {
		return 0, err
	}
	r := pearsonCorrelation(employeeSkills, taskSkills)
	minutes := 5 + math.Round(40*(1-r))
	return time.Duration(minutes) * time.Minute, nil
}

// pearsonCorrelation returns the Pearson correlation coefficient of two
// equal-length vectors, mapped to 0 when it is undefined (NaN), e.g. when
// one vector is constant.
func pearsonCorrelation(x, y []int) float64 {
	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		fx, fy := float64(x[i]), float64(y[i])
		sumX += fx
		sumY += fy
		sumXY += fx * fy
		sumX2 += fx * fx
		sumY2 += fy * fy
	}
	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt(n*sumX2-sumX*sumX) * math.Sqrt(n*sumY2-sumY*sumY)
	if denominator == 0 {
		return 0
	}
	r := numerator / denominator
	if math.IsNaN(r) {
		return 0
	}
	return r
}
