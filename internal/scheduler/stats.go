package scheduler

// ChocoStats builds the stats bag for a CP-engine solution, matching the
// "Choco Solver" branch of the solverStats wire shape: modelName,
// searchState, solutions found so far, the objective value, and standard
// branch-and-bound search counters.
func ChocoStats(modelName, searchState string, solutions, nodes, backtracks, fails, restarts int, objective int64) map[string]any {
	return map[string]any{
		"solver":      "Choco Solver",
		"modelName":   modelName,
		"searchState": searchState,
		"solutions":   solutions,
		"objective":   objective,
		"nodes":       nodes,
		"backtracks":  backtracks,
		"fails":       fails,
		"restarts":    restarts,
	}
}

// JeneticsStats builds the stats bag for a GA-engine solution, matching the
// "Jenetics" branch of the solverStats wire shape.
func JeneticsStats(fitness float64, generations int, fitnessMin, fitnessMax, fitnessMean, fitnessVariance float64, alteredCount, killedCount, invalidCount int) map[string]any {
	return map[string]any{
		"solver":          "Jenetics",
		"fitness":         fitness,
		"generations":     generations,
		"fitnessMin":      fitnessMin,
		"fitnessMax":      fitnessMax,
		"fitnessMean":     fitnessMean,
		"fitnessVariance": fitnessVariance,
		"alteredCount":    alteredCount,
		"killedCount":     killedCount,
		"invalidCount":    invalidCount,
	}
}
