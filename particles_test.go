package lumen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(n int) Config {
	cfg := DefaultConfig()
	cfg.ParticleCount = n
	return cfg
}

func TestParticleStore_init(t *testing.T) {
	cfg := testConfig(256)
	st := NewParticleStore(cfg, rand.New(rand.NewSource(1)))

	require.Equal(t, 256, st.Len())

	for i := 0; i < st.Len(); i++ {
		p := st.Position(i)
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, p[axis], -cfg.SpawnExtent)
			assert.LessOrEqual(t, p[axis], cfg.SpawnExtent)
		}
		assert.Equal(t, p, st.InitialPosition(i))
		assert.Zero(t, st.Velocity(i))

		assert.GreaterOrEqual(t, st.MaxAge(i), cfg.BaseLifetime)
		assert.LessOrEqual(t, st.MaxAge(i), cfg.BaseLifetime+cfg.LifetimeBonus)
		assert.GreaterOrEqual(t, st.Age(i), float32(0))
		assert.Less(t, st.Age(i), st.MaxAge(i))

		c := st.Color(i)
		for ch := 0; ch < 4; ch++ {
			assert.GreaterOrEqual(t, c[ch], float32(0))
			assert.LessOrEqual(t, c[ch], float32(1))
		}
	}
}

func TestParticleStore_agesDesynchronized(t *testing.T) {
	st := NewParticleStore(testConfig(64), rand.New(rand.NewSource(1)))

	distinct := map[float32]bool{}
	for i := 0; i < st.Len(); i++ {
		distinct[st.Age(i)] = true
	}
	assert.Greater(t, len(distinct), 1, "startup ages should spread out so deaths desynchronize")
}

func TestParticleStore_clampsCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = -10

	st := NewParticleStore(cfg, rand.New(rand.NewSource(1)))
	assert.Equal(t, 1, st.Len(), "non-positive capacity request degrades to one slot")
}

func TestParticleStore_deterministicForSeed(t *testing.T) {
	a := NewParticleStore(testConfig(32), rand.New(rand.NewSource(7)))
	b := NewParticleStore(testConfig(32), rand.New(rand.NewSource(7)))

	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.Position(i), b.Position(i))
		assert.Equal(t, a.MaxAge(i), b.MaxAge(i))
		assert.Equal(t, a.Color(i), b.Color(i))
	}
}
