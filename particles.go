package lumen

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleInstance is one packed output record for the presentation layer.
type ParticleInstance struct {
	Pos   [3]float32 `json:"pos"`
	Size  float32    `json:"size"`
	Color [4]float32 `json:"color"`
}

// ParticleStore is a fixed-capacity SoA arena of per-particle simulation
// memory. Slots are allocated once at startup and addressed by index; index i
// refers to the same logical particle for the lifetime of the store.
type ParticleStore struct {
	pos     []mgl32.Vec3
	initPos []mgl32.Vec3
	vel     []mgl32.Vec3
	age     []float32
	maxAge  []float32
	color   [][4]float32

	capacity int
}

// NewParticleStore allocates cfg.ParticleCount slots. Positions start inside
// a small cube around the origin, velocities at zero, ages randomized below
// each particle's lifetime so deaths desynchronize.
func NewParticleStore(cfg Config, rng *rand.Rand) *ParticleStore {
	cfg = cfg.normalized()
	n := cfg.ParticleCount

	st := &ParticleStore{
		pos:      make([]mgl32.Vec3, n),
		initPos:  make([]mgl32.Vec3, n),
		vel:      make([]mgl32.Vec3, n),
		age:      make([]float32, n),
		maxAge:   make([]float32, n),
		color:    make([][4]float32, n),
		capacity: n,
	}

	e := cfg.SpawnExtent
	for i := 0; i < n; i++ {
		st.pos[i] = mgl32.Vec3{
			lerp(-e, e, rng.Float32()),
			lerp(-e, e, rng.Float32()),
			lerp(-e, e, rng.Float32()),
		}
		st.initPos[i] = st.pos[i]
		st.maxAge[i] = lerp(cfg.BaseLifetime, cfg.BaseLifetime+cfg.LifetimeBonus, rng.Float32())
		st.age[i] = rng.Float32() * st.maxAge[i]
		st.color[i] = [4]float32{
			lerp(0.3, 1.0, rng.Float32()),
			lerp(0.3, 1.0, rng.Float32()),
			lerp(0.3, 1.0, rng.Float32()),
			1,
		}
	}

	return st
}

func (st *ParticleStore) Len() int { return st.capacity }

func (st *ParticleStore) Position(i int) mgl32.Vec3        { return st.pos[i] }
func (st *ParticleStore) SetPosition(i int, p mgl32.Vec3)  { st.pos[i] = p }
func (st *ParticleStore) InitialPosition(i int) mgl32.Vec3 { return st.initPos[i] }
func (st *ParticleStore) Velocity(i int) mgl32.Vec3        { return st.vel[i] }
func (st *ParticleStore) SetVelocity(i int, v mgl32.Vec3)  { st.vel[i] = v }
func (st *ParticleStore) Age(i int) float32                { return st.age[i] }
func (st *ParticleStore) SetAge(i int, a float32)          { st.age[i] = a }
func (st *ParticleStore) MaxAge(i int) float32             { return st.maxAge[i] }
func (st *ParticleStore) SetMaxAge(i int, a float32)       { st.maxAge[i] = a }
func (st *ParticleStore) Color(i int) [4]float32           { return st.color[i] }
func (st *ParticleStore) SetColor(i int, c [4]float32)     { st.color[i] = c }

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
