package lantern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimer_FirstSampleIsZero(t *testing.T) {
	var ft FrameTimer

	raw, smoothed := ft.Sample(time.Unix(100, 0))
	if raw != 0 || smoothed != 0 {
		t.Errorf("first sample should be zero, got raw=%v smoothed=%v", raw, smoothed)
	}
}

func TestFrameTimer_SmoothsSteadyFrames(t *testing.T) {
	var ft FrameTimer
	now := time.Unix(100, 0)
	ft.Sample(now)

	var raw, smoothed float64
	for i := 0; i < 100; i++ {
		now = now.Add(10 * time.Millisecond)
		raw, smoothed = ft.Sample(now)
	}

	assert.InDelta(t, 0.010, raw, 1e-9)
	assert.InDelta(t, 0.010, smoothed, 1e-9)
}

func TestFrameTimer_HitchDoesNotPolluteAverage(t *testing.T) {
	var ft FrameTimer
	now := time.Unix(100, 0)
	ft.Sample(now)

	for i := 0; i < 60; i++ {
		now = now.Add(10 * time.Millisecond)
		ft.Sample(now)
	}

	// A two second stall, e.g. the window was dragged.
	now = now.Add(2 * time.Second)
	raw, smoothed := ft.Sample(now)

	assert.InDelta(t, 2.0, raw, 1e-9)
	assert.InDelta(t, 0.010, smoothed, 1e-6)

	// The next normal frame still sees a clean average.
	now = now.Add(10 * time.Millisecond)
	_, smoothed = ft.Sample(now)
	assert.InDelta(t, 0.010, smoothed, 1e-6)
}

func TestFrameTimer_SmallJitterIsAveraged(t *testing.T) {
	var ft FrameTimer
	now := time.Unix(100, 0)
	ft.Sample(now)

	for i := 0; i < frameTimeSamples; i++ {
		step := 10 * time.Millisecond
		if i%2 == 1 {
			step = 20 * time.Millisecond
		}
		now = now.Add(step)
		ft.Sample(now)
	}

	now = now.Add(15 * time.Millisecond)
	_, smoothed := ft.Sample(now)
	assert.InDelta(t, 0.015, smoothed, 2e-3)
}

func TestFrameTimer_FPSWindow(t *testing.T) {
	var ft FrameTimer
	now := time.Unix(100, 0)
	ft.Sample(now)

	if ft.FPS() != 0 {
		t.Errorf("fps should start at 0, got %d", ft.FPS())
	}

	// 10 frames of 100ms close exactly one FPS window.
	for i := 0; i < 10; i++ {
		now = now.Add(100 * time.Millisecond)
		ft.Sample(now)
	}
	assert.Equal(t, 10, ft.FPS())

	// The next window counts from scratch.
	for i := 0; i < 5; i++ {
		now = now.Add(200 * time.Millisecond)
		ft.Sample(now)
	}
	assert.Equal(t, 5, ft.FPS())
}
