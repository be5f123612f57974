package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// saturnTemplate: an orbital ring, recomputed analytically each frame. No
// velocity integration, no respawn, no age dependency; the output is a pure
// function of (index, control, elapsed time), so the ring is deterministic
// and restartable from any global time value. Each index carries a fixed
// phase offset, spreading the set into a ring; all particles share the same
// vertical bob.
type saturnTemplate struct {
	cfg  Config
	base [4]float32

	radius float32
	wobble float32
	blend  [4]float32
}

func newSaturnTemplate(cfg Config) *saturnTemplate {
	return &saturnTemplate{
		cfg:  cfg,
		base: NamedColor("slateblue"),
	}
}

func (t *saturnTemplate) BeginFrame(ctl controlFrame, dt, elapsed float32) {
	t.radius = ctl.Expansion * t.cfg.MaxRadius
	t.wobble = t.cfg.WobbleAmp * sin32(elapsed*t.cfg.WobbleFreq)
	t.blend = lerpColor(t.base, ctl.TargetColor, ctl.Expansion)
}

func (t *saturnTemplate) AdvanceParticle(i int, st *ParticleStore, ctl controlFrame, dt, elapsed float32) [4]float32 {
	angle := elapsed*t.cfg.AngularSpeed + float32(i)*t.cfg.AngularOffset

	st.pos[i] = ctl.Anchor.Add(mgl32.Vec3{cos32(angle) * t.radius, t.wobble, sin32(angle) * t.radius})

	return t.blend
}
