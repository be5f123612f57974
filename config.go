package lumen

import (
	"golang.org/x/image/colornames"
)

// Simulation tuning defaults. Fixed at startup; the core is not runtime
// reconfigurable.
const (
	DefaultParticleCount = 4096
	DefaultParticleSize  = 0.05
	DefaultMaxRadius     = 15.0
	DefaultDamping       = 0.99 // velocity retained per reference tick (1/60 s)
	DefaultBaseLifetime  = 4.0  // seconds
	DefaultLifetimeBonus = 4.0  // extra lifetime, randomized per particle
	DefaultAngularSpeed  = 0.6  // rad/s for orbit templates
	DefaultAngularOffset = 0.01 // per-index phase, spreads particles into a ring
	DefaultWobbleAmp     = 0.8
	DefaultWobbleFreq    = 1.5
	DefaultSpawnExtent   = 1.0 // half-extent of the startup spawn cube
	DefaultGravity       = 9.8
	DefaultConeAngleDeg  = 25.0
)

type Config struct {
	ParticleCount int
	ParticleSize  float32
	MaxRadius     float32
	Damping       float32
	BaseLifetime  float32
	LifetimeBonus float32
	AngularSpeed  float32
	AngularOffset float32
	WobbleAmp     float32
	WobbleFreq    float32
	SpawnExtent   float32
	Gravity       float32
	ConeAngleDeg  float32
	Seed          int64
}

func DefaultConfig() Config {
	return Config{
		ParticleCount: DefaultParticleCount,
		ParticleSize:  DefaultParticleSize,
		MaxRadius:     DefaultMaxRadius,
		Damping:       DefaultDamping,
		BaseLifetime:  DefaultBaseLifetime,
		LifetimeBonus: DefaultLifetimeBonus,
		AngularSpeed:  DefaultAngularSpeed,
		AngularOffset: DefaultAngularOffset,
		WobbleAmp:     DefaultWobbleAmp,
		WobbleFreq:    DefaultWobbleFreq,
		SpawnExtent:   DefaultSpawnExtent,
		Gravity:       DefaultGravity,
		ConeAngleDeg:  DefaultConeAngleDeg,
		Seed:          1,
	}
}

// normalized clamps a config into the range the simulation can run with.
// Out-of-range requests degrade, they never fail.
func (c Config) normalized() Config {
	if c.ParticleCount <= 0 {
		c.ParticleCount = 1
	}
	if c.ParticleSize <= 0 {
		c.ParticleSize = DefaultParticleSize
	}
	if c.MaxRadius <= 0 {
		c.MaxRadius = DefaultMaxRadius
	}
	if c.Damping <= 0 || c.Damping > 1 {
		c.Damping = DefaultDamping
	}
	if c.BaseLifetime <= 0 {
		c.BaseLifetime = DefaultBaseLifetime
	}
	if c.LifetimeBonus < 0 {
		c.LifetimeBonus = 0
	}
	if c.SpawnExtent <= 0 {
		c.SpawnExtent = DefaultSpawnExtent
	}
	return c
}

// NamedColor resolves an SVG 1.1 color name to normalized RGBA. Unknown
// names fall back to white rather than failing.
func NamedColor(name string) [4]float32 {
	c, ok := colornames.Map[name]
	if !ok {
		return [4]float32{1, 1, 1, 1}
	}
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
