package tick

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/forceteam/internal/dependencies/mocks"
	"github.com/mcoot/forceteam/internal/testutil"
)

func newTestLoop() (*Loop, *mocks.MockClock) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	return NewLoop(clk, 10*time.Millisecond, testutil.NopLogger()), clk
}

func TestNextTickRunsOnFollowingStep(t *testing.T) {
	loop, _ := newTestLoop()

	var order []string
	loop.NextTick(func() {
		order = append(order, "first")
		loop.NextTick(func() { order = append(order, "second") })
	})

	loop.Step()
	assert.Equal(t, []string{"first"}, order)

	loop.Step()
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAfterWaitsForClock(t *testing.T) {
	loop, clk := newTestLoop()

	ran := false
	loop.After(500*time.Millisecond, func() { ran = true })

	loop.Step()
	assert.False(t, ran)

	clk.Advance(499 * time.Millisecond)
	loop.Step()
	assert.False(t, ran)

	clk.Advance(time.Millisecond)
	loop.Step()
	assert.True(t, ran)
}

func TestTimersRunInDueOrder(t *testing.T) {
	loop, clk := newTestLoop()

	var order []int
	loop.After(2*time.Second, func() { order = append(order, 2) })
	loop.After(time.Second, func() { order = append(order, 1) })
	loop.After(time.Second, func() { order = append(order, 11) })

	clk.Advance(3 * time.Second)
	loop.Step()

	assert.Equal(t, []int{1, 11, 2}, order)
}

func TestTimerScheduledDuringStepWaitsForNextStep(t *testing.T) {
	loop, _ := newTestLoop()

	ran := false
	loop.NextTick(func() {
		loop.After(0, func() { ran = true })
	})

	loop.Step()
	assert.False(t, ran)

	loop.Step()
	assert.True(t, ran)
}

func TestPanickingCallbackDoesNotStopStep(t *testing.T) {
	loop, _ := newTestLoop()

	ran := false
	loop.NextTick(func() { panic("boom") })
	loop.NextTick(func() { ran = true })

	require.NotPanics(t, loop.Step)
	assert.True(t, ran)
}

func TestCallRunsOnLoop(t *testing.T) {
	loop := NewLoop(mocks.NewMockClock(time.Now()), time.Millisecond, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	value := 0
	err := loop.Call(context.Background(), func() { value = 42 })
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestCallAfterStopReturnsErrStopped(t *testing.T) {
	loop := NewLoop(mocks.NewMockClock(time.Now()), time.Millisecond, testutil.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, loop.Run(ctx))

	err := loop.Call(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestCallRespectsCallerContext(t *testing.T) {
	loop, _ := newTestLoop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nobody steps the loop, so only the context can end the wait
	err := loop.Call(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
