package lumen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireworks_respawnResetsAtomically(t *testing.T) {
	engine, st, cfg := newTestEngine(t, 8)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetExpansion(1)
	anchor := mgl32.Vec3{2, 3, 4}
	ctl.SetAnchor(anchor)

	for i := 0; i < st.Len(); i++ {
		st.SetAge(i, st.MaxAge(i)+1)
	}

	engine.Advance(0, 0, ctl)

	maxSpeed := 0.5 * ctl.Expansion * cfg.MaxRadius
	for i := 0; i < st.Len(); i++ {
		assert.Zero(t, st.Age(i), "respawned particle %d resets age", i)
		assert.Equal(t, anchor, st.Position(i), "respawned particle %d sits on the anchor (dt=0, nothing integrated)", i)
		assert.LessOrEqual(t, st.Velocity(i).Len(), maxSpeed, "respawn speed bounded by half the current radius")
	}
}

func TestFireworks_expiredLifetimeScenario(t *testing.T) {
	// age=11, maxAge=10, dt=0: respawn fires, fade factor stays >= 0.
	engine, st, _ := newTestEngine(t, 1)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetExpansion(0.5)

	st.SetMaxAge(0, 10)
	st.SetAge(0, 11)

	out := engine.Advance(0, 0, ctl)

	require.Zero(t, st.Age(0))
	for ch := 0; ch < 4; ch++ {
		assert.GreaterOrEqual(t, out[0].Color[ch], float32(0))
	}
}

func TestFireworks_zeroDtIdempotentWhileAlive(t *testing.T) {
	engine, st, _ := newTestEngine(t, 8)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetExpansion(1)

	for i := 0; i < st.Len(); i++ {
		st.SetAge(i, st.MaxAge(i)*0.5)
	}
	engine.Advance(0, 0, ctl)

	type snapshot struct {
		pos, vel mgl32.Vec3
		age      float32
	}
	before := make([]snapshot, st.Len())
	for i := range before {
		before[i] = snapshot{st.Position(i), st.Velocity(i), st.Age(i)}
	}

	for n := 0; n < 5; n++ {
		engine.Advance(0, 0, ctl)
	}

	for i := range before {
		assert.Equal(t, before[i].pos, st.Position(i), "particle %d position", i)
		assert.Equal(t, before[i].vel, st.Velocity(i), "particle %d velocity", i)
		assert.Equal(t, before[i].age, st.Age(i), "particle %d age", i)
	}
}

func TestFireworks_respawnIsLevelTriggered(t *testing.T) {
	// Past-lifetime particles re-fire on every call with dt=0; the age check
	// is level-triggered, not edge-triggered. Designed behavior, kept as-is.
	engine, st, _ := newTestEngine(t, 4)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetExpansion(1)
	anchor := mgl32.Vec3{5, 0, -5}
	ctl.SetAnchor(anchor)

	velocities := make([]mgl32.Vec3, 3)
	for n := 0; n < 3; n++ {
		for i := 0; i < st.Len(); i++ {
			st.SetAge(i, st.MaxAge(i)+1)
		}
		engine.Advance(0, 0, ctl)
		velocities[n] = st.Velocity(0)

		for i := 0; i < st.Len(); i++ {
			assert.Zero(t, st.Age(i))
			assert.Equal(t, anchor, st.Position(i))
		}
	}

	// A fresh velocity is drawn per respawn.
	assert.NotEqual(t, velocities[0], velocities[1])
}

func TestFireworks_fadesTargetColorWithAge(t *testing.T) {
	engine, st, _ := newTestEngine(t, 1)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetTargetColor([4]float32{1, 0.5, 0.25, 1})

	st.SetMaxAge(0, 10)

	st.SetAge(0, 0)
	young := engine.Advance(0, 0, ctl)[0].Color

	st.SetAge(0, 9)
	old := engine.Advance(0, 0, ctl)[0].Color

	for ch := 0; ch < 3; ch++ {
		assert.Greater(t, young[ch], old[ch], "channel %d fades toward death", ch)
	}
	assert.InDelta(t, 1.0, young[0], 1e-5, "fade is 1 at spawn")
	assert.InDelta(t, 0.1, old[0], 1e-5, "fade approaches 0 near death")
}

func TestFireworks_nonPositiveLifetimeAlwaysRespawns(t *testing.T) {
	engine, st, _ := newTestEngine(t, 2)
	ctl := NewControlState()
	ctl.SetTemplate(TemplateFireworks)
	ctl.SetExpansion(1)
	anchor := mgl32.Vec3{1, 1, 1}
	ctl.SetAnchor(anchor)

	st.SetMaxAge(0, 0)
	st.SetMaxAge(1, -3)

	out := engine.Advance(0, 0, ctl)

	for i := 0; i < st.Len(); i++ {
		assert.Zero(t, st.Age(i))
		assert.Equal(t, anchor, st.Position(i))
		for ch := 0; ch < 4; ch++ {
			assert.GreaterOrEqual(t, out[i].Color[ch], float32(0))
			assert.LessOrEqual(t, out[i].Color[ch], float32(1))
		}
	}
}

func TestFireworks_dampingIsFrameRateIndependent(t *testing.T) {
	// The same wall-clock span damps equally whether covered by one frame
	// or many small ones.
	one := dampingFactor(0.99, 1.0/30)
	two := dampingFactor(0.99, 1.0/60) * dampingFactor(0.99, 1.0/60)
	assert.InDelta(t, one, two, 1e-5)

	assert.InDelta(t, 1.0, dampingFactor(0.99, 0), 1e-6, "zero dt leaves velocity untouched")
}
