package lumen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signalTestApp(mod SignalModule) (*App, *Time, *ControlState) {
	app := NewAppBuilder().
		UseModule(ControlModule{}).
		UseModule(mod).
		Build()
	tm := &Time{}
	app.addResources(tm)
	return app, tm, resourceOf[ControlState](app)
}

func TestSignal_expansionStaysInRange(t *testing.T) {
	app, tm, ctl := signalTestApp(SignalModule{Seed: 3})

	for n := 0; n < 500; n++ {
		tm.Elapsed = time.Duration(n) * 33 * time.Millisecond
		app.RunFrame()

		assert.GreaterOrEqual(t, ctl.Expansion, float32(0))
		assert.LessOrEqual(t, ctl.Expansion, float32(1))
		for ch := 0; ch < 4; ch++ {
			assert.GreaterOrEqual(t, ctl.TargetColor[ch], float32(0))
			assert.LessOrEqual(t, ctl.TargetColor[ch], float32(1))
		}
	}
}

func TestSignal_anchorStaysWithinWanderRadius(t *testing.T) {
	app, tm, ctl := signalTestApp(SignalModule{Seed: 3, WanderRadius: 4})

	for n := 0; n < 200; n++ {
		tm.Elapsed = time.Duration(n) * 50 * time.Millisecond
		app.RunFrame()

		assert.LessOrEqual(t, ctl.Anchor.X(), float32(4))
		assert.GreaterOrEqual(t, ctl.Anchor.X(), float32(-4))
		assert.LessOrEqual(t, ctl.Anchor.Z(), float32(4))
		assert.GreaterOrEqual(t, ctl.Anchor.Z(), float32(-4))
	}
}

func TestSignal_cyclesTemplates(t *testing.T) {
	app, tm, ctl := signalTestApp(SignalModule{
		Seed:        3,
		Templates:   []TemplateId{TemplateFireworks, TemplateSaturn},
		SwitchEvery: 1,
	})

	tm.Elapsed = 500 * time.Millisecond
	app.RunFrame()
	require.Equal(t, TemplateFireworks, ctl.Template)

	tm.Elapsed = 1500 * time.Millisecond
	app.RunFrame()
	assert.Equal(t, TemplateSaturn, ctl.Template)

	tm.Elapsed = 2500 * time.Millisecond
	app.RunFrame()
	assert.Equal(t, TemplateFireworks, ctl.Template)
}

func TestSignal_deterministicForSeed(t *testing.T) {
	appA, tmA, ctlA := signalTestApp(SignalModule{Seed: 9})
	appB, tmB, ctlB := signalTestApp(SignalModule{Seed: 9})

	tmA.Elapsed = 7 * time.Second
	tmB.Elapsed = 7 * time.Second
	appA.RunFrame()
	appB.RunFrame()

	assert.Equal(t, ctlA.Anchor, ctlB.Anchor)
	assert.Equal(t, ctlA.Expansion, ctlB.Expansion)
}
