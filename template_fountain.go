package lumen

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// fountainTemplate: fireworks-style lifecycle, but respawn velocity is
// sampled in a cone about +Y and gravity pulls the arc back down. Color
// fades from the target color toward the particle's fallback color with age.
type fountainTemplate struct {
	cfg Config
	rng *rand.Rand

	damp float32
}

func newFountainTemplate(cfg Config, rng *rand.Rand) *fountainTemplate {
	return &fountainTemplate{cfg: cfg, rng: rng}
}

func (t *fountainTemplate) BeginFrame(ctl controlFrame, dt, elapsed float32) {
	t.damp = dampingFactor(t.cfg.Damping, dt)
}

func (t *fountainTemplate) AdvanceParticle(i int, st *ParticleStore, ctl controlFrame, dt, elapsed float32) [4]float32 {
	maxAge := st.maxAge[i]

	if maxAge <= 0 || st.age[i] > maxAge {
		st.pos[i] = ctl.Anchor
		dir := sampleCone(t.rng, t.cfg.ConeAngleDeg)
		speed := lerp(0.5, 1.0, t.rng.Float32()) * 0.5 * ctl.Expansion * t.cfg.MaxRadius
		st.vel[i] = dir.Mul(speed)
		st.age[i] = 0
	}

	v := st.vel[i].Add(mgl32.Vec3{0, -t.cfg.Gravity * dt, 0})
	st.pos[i] = st.pos[i].Add(v.Mul(dt))
	st.vel[i] = v.Mul(t.damp)

	life := float32(0)
	if maxAge > 0 {
		life = clamp01(st.age[i] / maxAge)
	}
	return lerpColor(ctl.TargetColor, st.color[i], life)
}

// sampleCone samples a direction uniformly inside a cone around the +Y axis.
func sampleCone(rng *rand.Rand, coneDeg float32) mgl32.Vec3 {
	if coneDeg <= 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	thetaMax := float32(math.Pi) * (coneDeg / 180.0)
	u := rng.Float32()
	v := rng.Float32()
	cosTheta := lerp(cos32(thetaMax), 1.0, u)
	sinTheta := float32(math.Sqrt(float64(1.0 - cosTheta*cosTheta)))
	phi := 2.0 * float32(math.Pi) * v

	return mgl32.Vec3{
		cos32(phi) * sinTheta,
		cosTheta,
		sin32(phi) * sinTheta,
	}
}
