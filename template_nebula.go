package lumen

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	nebulaFieldScale = 0.08 // spatial frequency of the flow field
	nebulaTimeScale  = 0.2
	nebulaFlowSpeed  = 0.3 // fraction of MaxRadius per second at full noise
	nebulaPullRate   = 0.8 // anchor pull per second at full expansion
)

// nebulaTemplate: particles drift through a time-varying Perlin flow field
// while the expansion factor pulls them toward the anchor. Velocity is
// recomputed from the field each frame rather than accumulated, so the
// motion stays bounded for any input and is deterministic for a fixed seed.
type nebulaTemplate struct {
	cfg   Config
	noise *perlin.Perlin
}

func newNebulaTemplate(cfg Config) *nebulaTemplate {
	return &nebulaTemplate{
		cfg:   cfg,
		noise: perlin.NewPerlin(2, 2, 3, cfg.Seed),
	}
}

func (t *nebulaTemplate) BeginFrame(ctl controlFrame, dt, elapsed float32) {}

func (t *nebulaTemplate) AdvanceParticle(i int, st *ParticleStore, ctl controlFrame, dt, elapsed float32) [4]float32 {
	p := st.pos[i]

	ts := float64(elapsed * nebulaTimeScale)
	sx := float64(p.X() * nebulaFieldScale)
	sy := float64(p.Y() * nebulaFieldScale)
	sz := float64(p.Z() * nebulaFieldScale)

	nx := float32(t.noise.Noise3D(sx, sy, ts))
	ny := float32(t.noise.Noise3D(sy+31.7, sz, ts))
	nz := float32(t.noise.Noise3D(sz+67.3, sx, ts))

	flow := mgl32.Vec3{nx, ny, nz}.Mul(t.cfg.MaxRadius * nebulaFlowSpeed)
	pull := ctl.Anchor.Sub(p).Mul(ctl.Expansion * nebulaPullRate)

	v := flow.Add(pull)
	st.vel[i] = v
	st.pos[i] = p.Add(v.Mul(dt))

	// Noise in [-1,1] maps to brightness in [0.25, 1].
	bright := 0.625 + 0.375*nx
	return scaleColor(ctl.TargetColor, bright)
}
