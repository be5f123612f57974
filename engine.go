package lumen

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// TemplateId names one rule set governing particle motion and color.
type TemplateId string

const (
	TemplateFireworks TemplateId = "fireworks"
	TemplateSaturn    TemplateId = "saturn"
	TemplateFountain  TemplateId = "fountain"
	TemplateNebula    TemplateId = "nebula"
)

// controlFrame is the engine-side view of the control snapshot for one
// frame, with the expansion factor already clamped into [0,1].
type controlFrame struct {
	Expansion   float32
	TargetColor [4]float32
	Anchor      mgl32.Vec3
}

// Template advances one particle for one frame. Implementations mutate the
// slot in place and return the emitted color. They must be total: defined,
// finite output for every finite input.
type Template interface {
	// BeginFrame lets a template precompute per-frame factors (damping,
	// wobble, orbit radius) once instead of per particle.
	BeginFrame(ctl controlFrame, dt, elapsed float32)
	AdvanceParticle(i int, st *ParticleStore, ctl controlFrame, dt, elapsed float32) [4]float32
}

// Engine dispatches the active template over every particle slot and packs
// the per-frame instance batch. The batch buffer is allocated once; Advance
// performs no per-frame allocation.
type Engine struct {
	cfg       Config
	store     *ParticleStore
	templates map[TemplateId]Template
	instances []ParticleInstance
}

// NewEngine builds an engine over the given store with the built-in
// templates registered. The rng seeds the stochastic templates; pass a
// deterministically seeded one for reproducible runs.
func NewEngine(cfg Config, store *ParticleStore, rng *rand.Rand) *Engine {
	cfg = cfg.normalized()
	e := &Engine{
		cfg:       cfg,
		store:     store,
		templates: make(map[TemplateId]Template),
		instances: make([]ParticleInstance, store.Len()),
	}

	// Seed the batch from the startup state so an unrecognized template on
	// the very first frame still emits defined values.
	for i := 0; i < store.Len(); i++ {
		p := store.pos[i]
		e.instances[i] = ParticleInstance{
			Pos:   [3]float32{p.X(), p.Y(), p.Z()},
			Size:  cfg.ParticleSize,
			Color: store.color[i],
		}
	}

	e.Register(TemplateFireworks, newFireworksTemplate(cfg, rng))
	e.Register(TemplateSaturn, newSaturnTemplate(cfg))
	e.Register(TemplateFountain, newFountainTemplate(cfg, rng))
	e.Register(TemplateNebula, newNebulaTemplate(cfg))

	return e
}

// Register adds a template variant under an id. Adding a template never
// touches the dispatch loop.
func (e *Engine) Register(id TemplateId, t Template) {
	e.templates[id] = t
}

func (e *Engine) Store() *ParticleStore { return e.store }

// Advance runs one simulation step: age every particle, dispatch the active
// template, pack the instance batch. An unrecognized template id freezes the
// particles: their slots and emitted instances keep the previous frame's
// position and color (ages still advance). Always returns exactly Len()
// index-aligned instances.
func (e *Engine) Advance(dt, elapsed float32, ctl *ControlState) []ParticleInstance {
	frame := controlFrame{
		Expansion:   clamp01(ctl.Expansion),
		TargetColor: ctl.TargetColor,
		Anchor:      ctl.Anchor,
	}

	st := e.store
	tpl := e.templates[ctl.Template]
	if tpl != nil {
		tpl.BeginFrame(frame, dt, elapsed)
	}

	for i := 0; i < st.capacity; i++ {
		st.age[i] += dt

		if tpl == nil {
			continue
		}

		col := tpl.AdvanceParticle(i, st, frame, dt, elapsed)

		p := st.pos[i]
		e.instances[i].Pos = [3]float32{p.X(), p.Y(), p.Z()}
		e.instances[i].Color = clampColor(col)
	}

	return e.instances
}

func clamp01(v float32) float32 {
	if v != v || v < 0 { // NaN collapses to 0
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampColor forces every channel into [0,1] so no frame ever emits a
// negative or undefined component.
func clampColor(c [4]float32) [4]float32 {
	for i := range c {
		c[i] = clamp01(c[i])
	}
	return c
}

func scaleColor(c [4]float32, f float32) [4]float32 {
	return [4]float32{c[0] * f, c[1] * f, c[2] * f, c[3] * f}
}

func lerpColor(a, b [4]float32, t float32) [4]float32 {
	return [4]float32{
		lerp(a[0], b[0], t),
		lerp(a[1], b[1], t),
		lerp(a[2], b[2], t),
		lerp(a[3], b[3], t),
	}
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32 { return float32(math.Cos(float64(v))) }

// dampingFactor converts a per-reference-tick retention constant (e.g. 0.99
// at 60 Hz) into the equivalent factor for an arbitrary dt, so damping is
// frame-rate independent and a zero dt leaves velocity untouched.
func dampingFactor(perTick, dt float32) float32 {
	if perTick <= 0 {
		return 0
	}
	return float32(math.Pow(float64(perTick), float64(dt)*60.0))
}
