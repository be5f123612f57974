package lumen

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// fireworksTemplate: radial bursts from the anchor. A particle past its
// lifetime respawns at the anchor with a fresh random velocity whose
// magnitude scales with the expansion factor; every call then integrates and
// damps, including the respawn call itself.
//
// The respawn check is level-triggered: a particle whose age exceeds its
// lifetime re-fires on every call until a respawn resets it. With dt > 0 the
// reset happens on the first such call, so in practice each death respawns
// once; with dt == 0 the respawn repeats per call while the rest of the
// state stays fixed.
type fireworksTemplate struct {
	cfg Config
	rng *rand.Rand

	damp float32
}

func newFireworksTemplate(cfg Config, rng *rand.Rand) *fireworksTemplate {
	return &fireworksTemplate{cfg: cfg, rng: rng}
}

func (t *fireworksTemplate) BeginFrame(ctl controlFrame, dt, elapsed float32) {
	t.damp = dampingFactor(t.cfg.Damping, dt)
}

func (t *fireworksTemplate) AdvanceParticle(i int, st *ParticleStore, ctl controlFrame, dt, elapsed float32) [4]float32 {
	maxAge := st.maxAge[i]

	// maxAge <= 0 degrades to "always respawn" instead of dividing by zero.
	if maxAge <= 0 || st.age[i] > maxAge {
		st.pos[i] = ctl.Anchor
		speed := 0.5 * ctl.Expansion * t.cfg.MaxRadius * t.rng.Float32()
		st.vel[i] = randUnitVec3(t.rng).Mul(speed)
		st.age[i] = 0
	}

	st.pos[i] = st.pos[i].Add(st.vel[i].Mul(dt))
	st.vel[i] = st.vel[i].Mul(t.damp)

	fade := float32(1)
	if maxAge > 0 {
		fade = 1 - st.age[i]/maxAge
	}
	if fade < 0 {
		fade = 0
	}
	return scaleColor(ctl.TargetColor, fade)
}

// randUnitVec3 samples a uniformly distributed direction on the unit sphere.
func randUnitVec3(rng *rand.Rand) mgl32.Vec3 {
	z := 2*rng.Float32() - 1
	phi := 2 * float32(math.Pi) * rng.Float32()
	r := float32(math.Sqrt(float64(1 - z*z)))
	return mgl32.Vec3{r * cos32(phi), r * sin32(phi), z}
}
