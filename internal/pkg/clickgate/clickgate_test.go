package clickgate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts single and double firings per id.
type recorder struct {
	mu      sync.Mutex
	singles map[int64]int
	doubles map[int64]int
}

func newRecorder() *recorder {
	return &recorder{
		singles: make(map[int64]int),
		doubles: make(map[int64]int),
	}
}

func (r *recorder) single(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.singles[id]++
}

func (r *recorder) double(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doubles[id]++
}

func (r *recorder) counts(id int64) (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.singles[id], r.doubles[id]
}

const testDelay = 40 * time.Millisecond

// waitSettle sleeps long enough for any armed timer to have fired.
func waitSettle() {
	time.Sleep(4 * testDelay)
}

func TestSingleClickFiresExactlyOnce(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.Click(1)
	waitSettle()

	singles, doubles := rec.counts(1)
	assert.Equal(t, 1, singles, "single-click action should fire exactly once")
	assert.Equal(t, 0, doubles, "double-click action should not fire")
}

func TestDoubleClickSuppressesSingle(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.Click(1)
	g.Click(1)
	waitSettle()

	singles, doubles := rec.counts(1)
	assert.Equal(t, 0, singles, "single-click action must not fire for a double click")
	assert.Equal(t, 1, doubles)
}

func TestSlowSecondClickIsTwoSingles(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.Click(1)
	waitSettle()
	g.Click(1)
	waitSettle()

	singles, doubles := rec.counts(1)
	assert.Equal(t, 2, singles)
	assert.Equal(t, 0, doubles)
}

func TestIndependentTimersPerID(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	// Double click on post 1 interleaved with a single click on post 2.
	g.Click(1)
	g.Click(2)
	g.Click(1)
	waitSettle()

	singles1, doubles1 := rec.counts(1)
	singles2, doubles2 := rec.counts(2)
	assert.Equal(t, 0, singles1)
	assert.Equal(t, 1, doubles1)
	assert.Equal(t, 1, singles2)
	assert.Equal(t, 0, doubles2)
}

func TestDisabledIDIgnoresClicks(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.SetDisabled(1, true)
	g.Click(1)
	g.Click(1)
	waitSettle()

	singles, doubles := rec.counts(1)
	assert.Equal(t, 0, singles)
	assert.Equal(t, 0, doubles)

	// Re-enabling restores normal behavior.
	g.SetDisabled(1, false)
	g.Click(1)
	waitSettle()
	singles, _ = rec.counts(1)
	assert.Equal(t, 1, singles)
}

func TestDisableCancelsPendingTimer(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.Click(1)
	g.SetDisabled(1, true)
	waitSettle()

	singles, doubles := rec.counts(1)
	assert.Equal(t, 0, singles, "disabling mid-window must cancel the armed single click")
	assert.Equal(t, 0, doubles)
}

func TestResetCancelsAll(t *testing.T) {
	rec := newRecorder()
	g := New(testDelay, rec.single, rec.double)

	g.Click(1)
	g.Click(2)
	g.Reset()
	waitSettle()

	for _, id := range []int64{1, 2} {
		singles, doubles := rec.counts(id)
		assert.Equal(t, 0, singles)
		assert.Equal(t, 0, doubles)
	}
}

func TestDefaultDelayFallback(t *testing.T) {
	g := New(0, func(int64) {}, func(int64) {})
	require.NotNil(t, g)
	assert.Equal(t, DefaultDelay, g.delay)
}
