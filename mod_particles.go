package lumen

import (
	"math/rand"
)

// ParticlesModule installs the simulation core: the particle store, the
// template engine, and the systems that advance the store each frame and
// hand the packed batch to the attached presenters.
//
// Requires TimeModule and ControlModule.
type ParticlesModule struct {
	// Config tunes the simulation; the zero value means DefaultConfig().
	Config Config

	// Presenters to attach at startup. More can be attached later through
	// the PresenterSet resource.
	Presenters []Presenter
}

func (m ParticlesModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	cfg = cfg.normalized()

	rng := rand.New(rand.NewSource(cfg.Seed))
	store := NewParticleStore(cfg, rng)
	engine := NewEngine(cfg, store, rng)

	set := &PresenterSet{}
	for _, p := range m.Presenters {
		set.Attach(p)
	}

	cmd.AddResources(store, engine, set, &FrameOutput{})
	cmd.UseSystem(System(simulationSystem).InStage(Update))
	cmd.UseSystem(System(presentSystem).InStage(Present))

	cmd.Logger().Infof("particles: %d slots, template dispatch ready", store.Len())
}

func simulationSystem(tm *Time, ctl *ControlState, engine *Engine, out *FrameOutput) {
	out.Instances = engine.Advance(tm.DtSeconds(), tm.ElapsedSeconds(), ctl)
	out.Frame++
}

func presentSystem(out *FrameOutput, set *PresenterSet) {
	if out.Instances == nil {
		return
	}
	set.broadcast(out.Frame, out.Instances)
}
