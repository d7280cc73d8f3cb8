package cones

import (
	"time"
)

// Time is refreshed once per frame. Start is fixed when the module is
// installed, so AbsoluteSeconds is real elapsed time since process start.
type Time struct {
	Start time.Time
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

func (t *Time) AbsoluteSeconds() float32 {
	return float32(t.Time.Sub(t.Start).Seconds())
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := time.Now()
	cmd.AddResources(&Time{
		Start: now,
		Time:  now,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}

// FrameLimitModule requests the Exit state once Frames frames have been
// executed. Used for headless runs.
type FrameLimitModule struct {
	Frames uint64
	Exit   State
}

func (mod FrameLimitModule) Install(app *App, cmd *Commands) {
	limit := mod.Frames
	exitState := mod.Exit
	app.UseSystem(
		System(func(t *Time, cmd *Commands) {
			if t.Frame >= limit {
				cmd.ChangeState(exitState)
			}
		}).
			InStage(Finale).
			RunAlways(),
	)
}
