// Package bot plays the game by scoring every reachable placement of the
// active piece and taking the best one.
package bot

import "github.com/vovakirdan/tui-blocks/internal/games/blocks/core"

// Evaluator scores the board a placement would leave behind.
// Higher is better.
type Evaluator interface {
	Evaluate(m core.Metrics) float64
}

// WeightedEvaluator combines evaluators with a weight each.
type WeightedEvaluator struct {
	evaluators []Evaluator
	weights    []float64
}

// NewWeightedEvaluator pairs evaluators with weights by index.
func NewWeightedEvaluator(evaluators []Evaluator, weights []float64) *WeightedEvaluator {
	return &WeightedEvaluator{
		evaluators: evaluators,
		weights:    weights,
	}
}

// Evaluate returns the weighted sum of all evaluators.
func (w *WeightedEvaluator) Evaluate(m core.Metrics) float64 {
	score := 0.0
	for i, ev := range w.evaluators {
		score += w.weights[i] * ev.Evaluate(m)
	}
	return score
}

// LinesEvaluator counts the rows the placement would complete.
type LinesEvaluator struct{}

func (LinesEvaluator) Evaluate(m core.Metrics) float64 { return float64(m.ClearableLines) }

// HeightEvaluator is the sum of column heights.
type HeightEvaluator struct{}

func (HeightEvaluator) Evaluate(m core.Metrics) float64 { return float64(m.AggregateHeight) }

// HolesEvaluator counts covered empty cells.
type HolesEvaluator struct{}

func (HolesEvaluator) Evaluate(m core.Metrics) float64 { return float64(m.Holes) }

// BumpinessEvaluator sums height differences between neighbouring columns.
type BumpinessEvaluator struct{}

func (BumpinessEvaluator) Evaluate(m core.Metrics) float64 { return float64(m.Bumpiness) }

// DefaultWeights are the lines, height, holes and bumpiness weights used by
// DefaultEvaluator.
var DefaultWeights = []float64{0.76, -0.51, -0.36, -0.18}

// DefaultEvaluator rewards cleared lines and penalises height, holes and
// bumpiness.
func DefaultEvaluator() *WeightedEvaluator {
	return NewWeightedEvaluator(
		[]Evaluator{LinesEvaluator{}, HeightEvaluator{}, HolesEvaluator{}, BumpinessEvaluator{}},
		DefaultWeights,
	)
}
