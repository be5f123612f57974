package lumen

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	signalWanderScale  = 0.11 // anchor wander frequency, Hz-ish
	signalBreatheScale = 0.23 // expansion oscillation frequency
)

// SignalModule is the repo's placeholder control producer. It stands in for
// the real tracking input by synthesizing a smooth control stream — Perlin
// anchor wander, expansion breathing, palette and template cycling — and
// writes it through the ControlState setters like any external producer
// would. The simulation core has no dependency on it.
//
// Requires TimeModule and ControlModule.
type SignalModule struct {
	Seed int64

	// Templates cycled through while running; empty leaves the control
	// default untouched.
	Templates []TemplateId

	// SwitchEvery is the template/palette hold time in seconds; zero means
	// 12 seconds.
	SwitchEvery float32

	// WanderRadius bounds the anchor wander; zero means 5 units.
	WanderRadius float32
}

type signalProducer struct {
	noise        *perlin.Perlin
	templates    []TemplateId
	palette      [][4]float32
	switchEvery  float32
	wanderRadius float32
}

func (m SignalModule) Install(app *App, cmd *Commands) {
	seed := m.Seed
	if seed == 0 {
		seed = 1
	}
	switchEvery := m.SwitchEvery
	if switchEvery <= 0 {
		switchEvery = 12
	}
	wander := m.WanderRadius
	if wander <= 0 {
		wander = 5
	}

	prod := &signalProducer{
		noise:       perlin.NewPerlin(2, 2, 3, seed),
		templates:   m.Templates,
		switchEvery: switchEvery,
		palette: [][4]float32{
			NamedColor("white"),
			NamedColor("gold"),
			NamedColor("deepskyblue"),
			NamedColor("orchid"),
			NamedColor("tomato"),
		},
		wanderRadius: wander,
	}

	cmd.AddResources(prod)
	cmd.UseSystem(System(signalSystem).InStage(PreUpdate))
}

func signalSystem(tm *Time, prod *signalProducer, ctl *ControlState) {
	t := float64(tm.ElapsedSeconds())

	ctl.SetAnchor(mgl32.Vec3{
		float32(prod.noise.Noise2D(t*signalWanderScale, 7.3)) * prod.wanderRadius,
		float32(prod.noise.Noise2D(t*signalWanderScale, 39.1)) * prod.wanderRadius * 0.5,
		float32(prod.noise.Noise2D(t*signalWanderScale, 71.7)) * prod.wanderRadius,
	})

	ctl.SetExpansion(clamp01(0.5 + 0.7*float32(prod.noise.Noise1D(t*signalBreatheScale))))

	slot := int(t / float64(prod.switchEvery))
	ctl.SetTargetColor(prod.palette[slot%len(prod.palette)])
	if len(prod.templates) > 0 {
		ctl.SetTemplate(prod.templates[slot%len(prod.templates)])
	}
}
