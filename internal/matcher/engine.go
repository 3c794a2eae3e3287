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
	"context"
	"encoding/gob"
	"log"
	"math/rand"
	"os"
	"sync"
	"time"
)

// Default engine tuning. Overridable through Options.
const (
	defaultLearningRate      = 0.01
	defaultBufferCap         = 100
	defaultReweightThreshold = 10
	defaultCacheTTL          = time.Hour
	defaultCacheMaxEntries   = 10000
)

// Ensemble weight indices: the learned model first, then the rule scorers.
const (
	wModel = iota
	wPhone
	wAddress
	wGeo
)

// defaultEnsemble is the prior mix before any feedback arrives.
var defaultEnsemble = [4]float64{0.4, 0.3, 0.2, 0.1}

// Options tunes an Engine. Zero values fall back to the defaults above.
type Options struct {
	LearningRate      float64
	BufferCap         int
	ReweightThreshold int
	CacheTTL          time.Duration
	Seed              int64 // 0 seeds from the clock
	Sink              FeedbackSink
}

// Engine scores place candidates by blending a learned linear model with
// phone, address, and geographic rule validators, and adapts both the model
// weights (every feedback event) and the ensemble mix (every Nth event) from
// binary user feedback.
//
// One Engine serves a whole process. All methods are safe for concurrent
// use. Horizontally scaled deployments learn per instance; there is no
// cross-process state.
type Engine struct {
	mu       sync.RWMutex
	scorer   *Scorer
	geo      *GeoValidator
	ensemble [4]float64

	buffer []TrainingExample // bounded FIFO of labeled examples
	queue  []bool            // feedback correctness pending a reweight pass

	cache *scoreCache
	sink  FeedbackSink
	opts  Options

	feedbackTotal int
}

// Stats is a point-in-time snapshot of engine state for operational
// visibility.
type Stats struct {
	EnsembleWeights [4]float64 `json:"ensemble_weights"`
	BufferSize      int        `json:"buffer_size"`
	QueueSize       int        `json:"queue_size"`
	CacheSize       int        `json:"cache_size"`
	FeedbackTotal   int        `json:"feedback_total"`
}

// NewEngine constructs an engine ready to serve. Created once at process
// startup and passed by reference to request handlers.
func NewEngine(opts Options) *Engine {
	if opts.LearningRate <= 0 {
		opts.LearningRate = defaultLearningRate
	}
	if opts.BufferCap <= 0 {
		opts.BufferCap = defaultBufferCap
	}
	if opts.ReweightThreshold <= 0 {
		opts.ReweightThreshold = defaultReweightThreshold
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Sink == nil {
		opts.Sink = NoopSink{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		scorer:   NewScorer(FeatureDim, opts.LearningRate, rand.New(rand.NewSource(seed))),
		geo:      NewGeoValidator(),
		ensemble: defaultEnsemble,
		cache:    newScoreCache(opts.CacheTTL, defaultCacheMaxEntries),
		sink:     opts.Sink,
		opts:     opts,
	}
}

// Predict returns the probability that place is the real-world location the
// query describes. Results are cached per (name, candidate id) for the cache
// TTL; a cache hit returns immediately with no side effects.
func (e *Engine) Predict(q Query, place Place) float64 {
	key := cacheKey{name: q.Name, id: place.ID()}
	if score, ok := e.cache.get(key); ok {
		return score
	}
	score := e.scoreCandidate(q, place)
	e.cache.put(key, score)
	return score
}

// scoreCandidate runs the four sub-scorers and combines them under the
// current ensemble weights. Any panic inside the pipeline is absorbed and
// replaced by the rule-only fallback score; the caller never sees an error.
func (e *Engine) scoreCandidate(q Query, place Place) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("scoring pipeline failed (%v), falling back to rule-only score", r)
			score = e.fallbackScore(q, place)
		}
	}()

	features := ExtractFeatures(q, place)
	phone := PhoneRegionScore(q.Phone, place.FormattedAddress)
	address := AddressMatchScore(q.Address, place.FormattedAddress)

	e.mu.RLock()
	defer e.mu.RUnlock()

	model := e.scorer.Score(features)
	geo := Neutral
	if place.Location != nil {
		geo = e.geo.Validate(place.Location.Lat, place.Location.Lng, q.Area)
	}

	// The area validator is deliberately absent here; it contributes only to
	// the fallback path.
	s := model*e.ensemble[wModel] +
		phone*e.ensemble[wPhone] +
		address*e.ensemble[wAddress] +
		geo*e.ensemble[wGeo]
	return clamp01(s)
}

// fallbackScore is the rule-only substitute used when the main pipeline
// fails: a 0.5 base plus weighted validator scores for whichever optional
// inputs are present. It cannot fail; a nested panic yields the bare neutral
// score.
func (e *Engine) fallbackScore(q Query, place Place) (score float64) {
	defer func() {
		if recover() != nil {
			score = Neutral
		}
	}()
	score = Neutral
	if q.Phone != "" {
		score += 0.4 * PhoneRegionScore(q.Phone, place.FormattedAddress)
	}
	if q.Address != "" {
		score += 0.3 * AddressMatchScore(q.Address, place.FormattedAddress)
	}
	if q.Area != "" {
		score += 0.2 * AreaMatchScore(q.Area, place.FormattedAddress)
	}
	return clamp01(score)
}

// Train ingests one binary feedback judgment. Every call takes one gradient
// step on the linear model; every ReweightThreshold-th call additionally
// retunes how much the ensemble trusts that model. Train never propagates a
// failure to the caller.
func (e *Engine) Train(q Query, place Place, correct bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("feedback processing failed after weight update: %v", r)
		}
	}()

	features := ExtractFeatures(q, place)
	label := 0.0
	if correct {
		label = 1.0
	}
	ex := TrainingExample{
		Features:  features,
		Label:     label,
		Timestamp: time.Now(),
		Name:      place.Name,
	}
	if ex.Name == "" {
		ex.Name = q.Name
	}
	if place.Location != nil {
		ex.Lat, ex.Lng = place.Location.Lat, place.Location.Lng
		ex.HasLocation = true
	}

	e.ingest(ex, features, label, correct)

	// Fire-and-forget audit write. Errors are logged and dropped; the engine
	// never depends on the sink for correctness.
	ev := FeedbackEvent{
		Name: q.Name, Phone: q.Phone, Address: q.Address, Area: q.Area,
		PlaceID: place.ID(), Correct: correct, At: ex.Timestamp,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.sink.Record(ctx, ev); err != nil {
			log.Printf("feedback sink write failed: %v", err)
		}
	}()
}

func (e *Engine) ingest(ex TrainingExample, features []float64, label float64, correct bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.buffer = append(e.buffer, ex)
	if len(e.buffer) > e.opts.BufferCap {
		// Evict the oldest; shift in place so the backing array does not
		// pin evicted examples.
		copy(e.buffer, e.buffer[1:])
		e.buffer = e.buffer[:e.opts.BufferCap]
	}
	e.queue = append(e.queue, correct)
	e.feedbackTotal++

	// The mandatory per-example step happens on every call, before any
	// reweighting decision.
	e.scorer.Update(features, label)

	if len(e.queue) >= e.opts.ReweightThreshold {
		e.reweight()
	}
}

// reweight retunes the learned-model ensemble weight from rolling feedback
// accuracy, renormalizes the mix to sum to 1, and hard-resets the queue.
// Caller holds e.mu.
func (e *Engine) reweight() {
	correct := 0
	for _, ok := range e.queue {
		if ok {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(e.queue))

	switch {
	case accuracy > 0.85:
		e.ensemble[wModel] += 0.05
	case accuracy < 0.70:
		e.ensemble[wModel] -= 0.05
	}
	if e.ensemble[wModel] < 0 {
		e.ensemble[wModel] = 0
	}

	sum := 0.0
	for _, w := range e.ensemble {
		sum += w
	}
	for i := range e.ensemble {
		e.ensemble[i] /= sum
	}

	e.queue = e.queue[:0]
	log.Printf("ensemble reweighted: accuracy=%.2f weights=%v", accuracy, e.ensemble)
}

// EnsembleWeights returns the current 4-way mix (model, phone, address, geo).
func (e *Engine) EnsembleWeights() [4]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ensemble
}

// Stats returns a snapshot of engine state.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		EnsembleWeights: e.ensemble,
		BufferSize:      len(e.buffer),
		QueueSize:       len(e.queue),
		CacheSize:       e.cache.size(),
		FeedbackTotal:   e.feedbackTotal,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// modelSnapshot is the gob-encoded persisted form of the learned state.
type modelSnapshot struct {
	Weights  []float64
	Ensemble [4]float64
}

// SaveModel persists the weight vector and ensemble mix to path.
func (e *Engine) SaveModel(path string) error {
	e.mu.RLock()
	snap := modelSnapshot{Weights: e.scorer.Weights(), Ensemble: e.ensemble}
	e.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return gob.NewEncoder(file).Encode(snap)
}

// LoadModel restores previously saved learned state.
func (e *Engine) LoadModel(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var snap modelSnapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.scorer.SetWeights(snap.Weights)
	e.ensemble = snap.Ensemble
	return nil
}
