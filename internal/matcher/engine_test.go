package matcher

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Options{Seed: 42})
}

func joesCoffee() (Query, Place) {
	q := Query{Name: "Joe's Coffee", Phone: "3055551234"}
	p := Place{
		PlaceID:          "place-joes",
		Name:             "Joe's Coffee",
		FormattedAddress: "123 Main St, Miami, FL 33101, United States",
	}
	return q, p
}

func TestPredictEndToEnd(t *testing.T) {
	e := newTestEngine(t)
	q, p := joesCoffee()

	// Florida phone plus FL candidate address: the phone validator alone
	// contributes 0.3 under default weights, so a near-neutral fresh model
	// still lands above 0.5.
	score := e.Predict(q, p)
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 1.0)
}

func TestPredictBounds(t *testing.T) {
	e := newTestEngine(t)
	cases := []struct {
		q Query
		p Place
	}{
		{Query{}, Place{}},
		{Query{Name: "x"}, Place{}},
		{Query{Name: "Joe's", Phone: "!!!", Address: "???", Area: "nowhere"}, Place{FormattedAddress: ""}},
		{Query{Name: "Joe's", Area: "london"}, Place{PlaceID: "p", Location: &LatLng{Lat: 91, Lng: 181}}},
	}
	for _, c := range cases {
		score := e.Predict(c.q, c.p)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestPredictDeterministic(t *testing.T) {
	q, p := joesCoffee()
	a := NewEngine(Options{Seed: 7}).Predict(q, p)
	b := NewEngine(Options{Seed: 7}).Predict(q, p)
	assert.Equal(t, a, b)
}

func TestPredictCacheSurvivesUnrelatedTraining(t *testing.T) {
	e := newTestEngine(t)
	q, p := joesCoffee()

	first := e.Predict(q, p)

	// Mutate the model via feedback on a different name.
	other := Query{Name: "Burger Palace", Address: "9 Elm Road"}
	otherPlace := Place{PlaceID: "place-other", FormattedAddress: "9 Elm Rd, Dallas, TX"}
	for i := 0; i < 5; i++ {
		e.Train(other, otherPlace, true)
	}

	assert.Equal(t, first, e.Predict(q, p), "cached score must be returned verbatim")

	// Force expiry; the recompute sees the updated weights.
	e.cache.backdate(cacheKey{name: q.Name, id: p.ID()}, 2*time.Hour)
	recomputed := e.Predict(q, p)
	assert.GreaterOrEqual(t, recomputed, 0.0)
	assert.LessOrEqual(t, recomputed, 1.0)
}

func TestTrainBufferBounded(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 150; i++ {
		q := Query{Name: fmt.Sprintf("Shop %d", i)}
		p := Place{
			PlaceID:          fmt.Sprintf("place-%d", i),
			Name:             fmt.Sprintf("Shop %d", i),
			FormattedAddress: "1 High St, London, UK",
		}
		e.Train(q, p, true)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	require.Len(t, e.buffer, 100)
	assert.Equal(t, "Shop 50", e.buffer[0].Name, "oldest surviving example should be the 51st")
	assert.Equal(t, "Shop 149", e.buffer[99].Name)
}

func TestReweightIncreasesModelWeightOnHighAccuracy(t *testing.T) {
	e := NewEngine(Options{Seed: 42, ReweightThreshold: 10})
	q, p := joesCoffee()

	prior := e.EnsembleWeights()
	for i := 0; i < 10; i++ {
		e.Train(q, p, true) // 100% accuracy
	}

	w := e.EnsembleWeights()
	assert.Greater(t, w[0], prior[0])
	assert.InDelta(t, 1.0, w[0]+w[1]+w[2]+w[3], 1e-9)
	assert.Zero(t, e.Stats().QueueSize, "feedback queue must hard-reset after reweighting")
}

func TestReweightDecreasesModelWeightOnLowAccuracy(t *testing.T) {
	e := NewEngine(Options{Seed: 42, ReweightThreshold: 10})
	q, p := joesCoffee()

	prior := e.EnsembleWeights()
	for i := 0; i < 10; i++ {
		e.Train(q, p, i%2 == 0) // 50% accuracy
	}

	w := e.EnsembleWeights()
	assert.Less(t, w[0], prior[0])
	assert.InDelta(t, 1.0, w[0]+w[1]+w[2]+w[3], 1e-9)
}

func TestReweightHoldsInMiddleBand(t *testing.T) {
	e := NewEngine(Options{Seed: 42, ReweightThreshold: 10})
	q, p := joesCoffee()

	prior := e.EnsembleWeights()
	for i := 0; i < 10; i++ {
		e.Train(q, p, i < 8) // 80% accuracy: between 0.70 and 0.85
	}

	w := e.EnsembleWeights()
	assert.InDelta(t, prior[0], w[0], 1e-12)
}

// A panic anywhere in the scoring pipeline must surface as the rule-only
// fallback score, never as an error or a deadlock.
func TestPredictSubstitutesFallbackOnPipelineFailure(t *testing.T) {
	e := newTestEngine(t)
	e.scorer = nil // first Score call dereferences nil and panics

	q, p := joesCoffee()
	var score float64
	assert.NotPanics(t, func() { score = e.Predict(q, p) })

	// Rule-only formula: 0.5 base + 0.4 * phone validator (1.0 here).
	assert.InDelta(t, 0.9, score, 1e-12)

	// The engine lock must have been released on the panic path.
	done := make(chan struct{})
	go func() {
		e.Train(q, p, true)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Train blocked after a recovered scoring failure")
	}
}

func TestFallbackScoreNeverFails(t *testing.T) {
	e := newTestEngine(t)
	cases := []struct {
		q Query
		p Place
	}{
		{Query{}, Place{}},
		{Query{Name: "Joe's", Phone: "3055551234", Address: "123 Main Street", Area: "florida"}, Place{FormattedAddress: "123 Main St, Miami, FL"}},
		{Query{Name: "x", Phone: "??", Address: "??", Area: "??"}, Place{}},
	}
	for _, c := range cases {
		got := e.fallbackScore(c.q, c.p)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

func TestFallbackFavorsAgreeingSignals(t *testing.T) {
	e := newTestEngine(t)
	q := Query{Name: "Joe's", Phone: "3055551234", Address: "123 Main Street", Area: "florida"}
	p := Place{FormattedAddress: "123 Main St, Miami, Florida, United States"}

	// 0.5 + 0.4*1.0 + 0.3*1.0 + 0.2*1.0 clamps to 1.
	assert.Equal(t, 1.0, e.fallbackScore(q, p))
}

func TestTrainNeverPanics(t *testing.T) {
	e := newTestEngine(t)
	assert.NotPanics(t, func() {
		e.Train(Query{}, Place{}, true)
		e.Train(Query{Name: "x"}, Place{Location: &LatLng{Lat: 1, Lng: 2}}, false)
	})
}

func TestSaveLoadModel(t *testing.T) {
	path := t.TempDir() + "/model.gob"
	e := NewEngine(Options{Seed: 42, ReweightThreshold: 10})
	q, p := joesCoffee()
	for i := 0; i < 25; i++ {
		e.Train(q, p, true)
	}
	require.NoError(t, e.SaveModel(path))

	restored := NewEngine(Options{Seed: 99})
	require.NoError(t, restored.LoadModel(path))
	assert.Equal(t, e.EnsembleWeights(), restored.EnsembleWeights())
	assert.Equal(t, e.scorer.Weights(), restored.scorer.Weights())
}

func TestConcurrentPredictAndTrain(t *testing.T) {
	e := newTestEngine(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				q := Query{Name: fmt.Sprintf("Shop %d-%d", n, j), Phone: "3055551234"}
				p := Place{PlaceID: fmt.Sprintf("p-%d-%d", n, j), FormattedAddress: "Miami, FL, USA"}
				score := e.Predict(q, p)
				if score < 0 || score > 1 {
					t.Errorf("score out of bounds: %v", score)
				}
				e.Train(q, p, j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	w := e.EnsembleWeights()
	assert.InDelta(t, 1.0, w[0]+w[1]+w[2]+w[3], 1e-9)
	assert.LessOrEqual(t, e.Stats().BufferSize, 100)
}
