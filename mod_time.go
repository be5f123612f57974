package lumen

import (
	"time"
)

// Time tracks wall-clock frame timing. Dt is the gap since the previous
// frame; on the very first frame it is zero so nothing jumps. Elapsed is the
// absolute simulation time used by closed-form templates.
type Time struct {
	Now     time.Time
	Dt      time.Duration
	Elapsed time.Duration

	started bool
}

func (t *Time) DtSeconds() float32 {
	return float32(t.Dt.Seconds())
}

func (t *Time) ElapsedSeconds() float32 {
	return float32(t.Elapsed.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
	cmd.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	if !timeResource.started {
		timeResource.started = true
		timeResource.Now = now
		timeResource.Dt = 0
		return
	}

	timeResource.Dt = now.Sub(timeResource.Now)
	timeResource.Elapsed += timeResource.Dt
	timeResource.Now = now
}
