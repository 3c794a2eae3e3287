// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package matcher

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Scorer is an online logistic-regression scorer. Weights are initialized
// with small random values and updated in place, one gradient step per
// feedback example. It is not safe for concurrent use; the owning engine
// serializes access.
type Scorer struct {
	weights      []float64
	learningRate float64
}

// NewScorer creates a scorer with dim weights drawn uniformly from
// [-0.05, 0.05].
func NewScorer(dim int, learningRate float64, rng *rand.Rand) *Scorer {
	weights := make([]float64, dim)
	for i := range weights {
		weights[i] = rng.Float64()*0.1 - 0.05
	}
	return &Scorer{weights: weights, learningRate: learningRate}
}

// overlap is the single point where a feature/weight length mismatch is
// absorbed: both Score and Update silently operate on the shorter prefix.
// TODO: surface a metric if the lengths ever actually diverge in production.
func (s *Scorer) overlap(features []float64) int {
	if len(features) < len(s.weights) {
		return len(features)
	}
	return len(s.weights)
}

// Score returns the probability for the given feature vector. The
// pre-activation sum is clamped to [-500, 500] before exponentiation so the
// sigmoid cannot overflow.
func (s *Scorer) Score(features []float64) float64 {
	n := s.overlap(features)
	z := floats.Dot(features[:n], s.weights[:n])
	if z > 500 {
		z = 500
	} else if z < -500 {
		z = -500
	}
	return 1 / (1 + math.Exp(-z))
}

// Update performs one online gradient-descent step toward label (0 or 1).
// The prediction*(1-prediction) sigmoid-derivative factor stays in: it is
// what makes updates vanish as the model approaches certainty.
func (s *Scorer) Update(features []float64, label float64) {
	p := s.Score(features)
	n := s.overlap(features)
	step := s.learningRate * (label - p) * p * (1 - p)
	floats.AddScaled(s.weights[:n], step, features[:n])
}

// Weights returns a copy of the current weight vector.
func (s *Scorer) Weights() []float64 {
	out := make([]float64, len(s.weights))
	copy(out, s.weights)
	return out
}

// SetWeights replaces the weight vector, used when restoring a saved model.
func (s *Scorer) SetWeights(w []float64) {
	s.weights = make([]float64, len(w))
	copy(s.weights, w)
}
