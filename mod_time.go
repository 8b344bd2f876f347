package lantern

import (
	"math"
	"time"
)

const frameTimeSamples = 50

// FrameTimer smooths the frame delta with a rolling average over the
// last 50 samples. A raw delta that differs from the current average
// by a second or more is treated as a hitch (debugger pause, window
// losing focus) and never enters the buffer.
type FrameTimer struct {
	samples [frameTimeSamples]float64
	count   int
	next    int

	last    time.Time
	started bool

	fpsElapsed float64
	fpsFrames  int
	fps        int
}

// Sample ingests one frame boundary and returns the raw and the
// smoothed delta in seconds.
func (ft *FrameTimer) Sample(now time.Time) (raw float64, smoothed float64) {
	if !ft.started {
		ft.started = true
		ft.last = now
		return 0, 0
	}

	raw = now.Sub(ft.last).Seconds()
	ft.last = now

	if ft.count == 0 || math.Abs(raw-ft.average()) < 1.0 {
		ft.samples[ft.next] = raw
		ft.next = (ft.next + 1) % frameTimeSamples
		if ft.count < frameTimeSamples {
			ft.count++
		}
	}

	ft.fpsElapsed += raw
	ft.fpsFrames++
	if ft.fpsElapsed >= 1.0 {
		ft.fps = ft.fpsFrames
		ft.fpsFrames = 0
		ft.fpsElapsed = 0
	}

	return raw, ft.average()
}

func (ft *FrameTimer) average() float64 {
	if ft.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < ft.count; i++ {
		sum += ft.samples[i]
	}
	return sum / float64(ft.count)
}

func (ft *FrameTimer) FPS() int { return ft.fps }

type Time struct {
	Now   time.Time
	RawDt float64 // unsmoothed frame delta, seconds
	Dt    float64 // smoothed frame delta, seconds
	FPS   int
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) error {
	cmd.AddResources(
		&Time{Now: time.Now()},
		&FrameTimer{},
	)
	app.UseSystem(System(timeSystem).InStage(PreUpdate))
	return nil
}

func timeSystem(timeResource *Time, timer *FrameTimer) {
	now := time.Now()
	raw, smoothed := timer.Sample(now)

	timeResource.Now = now
	timeResource.RawDt = raw
	timeResource.Dt = smoothed
	timeResource.FPS = timer.FPS()
}
