package kmeans

import "math"

// AbortStrategy decides when an optimizer may stop before its iteration
// budget runs out. Each run asks for a fresh evaluator, so one strategy value
// can be shared by many runs.
type AbortStrategy interface {
	NewEvaluator() AbortEvaluator
}

// AbortEvaluator receives the objective (distance sum) after every optimizer
// iteration and reports whether the run should stop.
type AbortEvaluator interface {
	Next(distSum float64) bool
}

// DefaultAbortStrategy is used when Config.AbortStrategy is nil.
var DefaultAbortStrategy AbortStrategy = NoImprovementForXIterations{
	X:         5,
	Threshold: 0.0005,
}

// relativeImprovement returns how much cur improved over prev, as a fraction
// of prev. A zero objective has nothing left to improve.
func relativeImprovement(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return (prev - cur) / prev
}

// NoImprovement stops as soon as one iteration improves the objective by less
// than Threshold (relative). Objectives that grow count as no improvement.
type NoImprovement struct {
	Threshold float64
}

// NewEvaluator implements AbortStrategy.
func (a NoImprovement) NewEvaluator() AbortEvaluator {
	return &noImprovement{threshold: a.Threshold, prev: math.NaN()}
}

type noImprovement struct {
	threshold float64
	prev      float64
}

func (e *noImprovement) Next(distSum float64) bool {
	prev := e.prev
	e.prev = distSum
	if math.IsNaN(prev) {
		return false
	}
	return relativeImprovement(prev, distSum) < e.threshold
}

// NoImprovementForXIterations stops after X consecutive iterations that each
// improve the objective by less than Threshold (relative). With
// AbortOnNegative set, any iteration that makes the objective worse stops the
// run immediately.
type NoImprovementForXIterations struct {
	X               int
	Threshold       float64
	AbortOnNegative bool
}

// NewEvaluator implements AbortStrategy.
func (a NoImprovementForXIterations) NewEvaluator() AbortEvaluator {
	x := a.X
	if x < 1 {
		x = 1
	}
	return &noImprovementForX{cfg: a, x: x, prev: math.NaN()}
}

type noImprovementForX struct {
	cfg    NoImprovementForXIterations
	x      int
	prev   float64
	streak int
}

func (e *noImprovementForX) Next(distSum float64) bool {
	prev := e.prev
	e.prev = distSum
	if math.IsNaN(prev) {
		return false
	}

	imp := relativeImprovement(prev, distSum)
	if imp < 0 && e.cfg.AbortOnNegative {
		return true
	}
	if imp < e.cfg.Threshold {
		e.streak++
	} else {
		e.streak = 0
	}
	return e.streak >= e.x
}

// Never disables early stopping; runs end on convergence or budget.
type Never struct{}

// NewEvaluator implements AbortStrategy.
func (Never) NewEvaluator() AbortEvaluator { return never{} }

type never struct{}

func (never) Next(float64) bool { return false }

// AbortFunc adapts a predicate over the full objective history. The slice
// passed to the function grows by one entry per iteration and must not be
// retained.
type AbortFunc func(history []float64) bool

// NewEvaluator implements AbortStrategy.
func (f AbortFunc) NewEvaluator() AbortEvaluator {
	return &abortFunc{fn: f}
}

type abortFunc struct {
	fn      AbortFunc
	history []float64
}

func (e *abortFunc) Next(distSum float64) bool {
	e.history = append(e.history, distSum)
	return e.fn(e.history)
}
