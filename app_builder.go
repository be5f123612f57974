package lumen

import (
	"reflect"
	"time"
)

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	app := &App{
		resources: make(map[reflect.Type]any),
		systems:   make(map[string][]systemFn),
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return &AppBuilder{app: app}
}

// UseFrameRate caps the frame loop at the given rate. Zero or negative
// removes the cap and lets frames run back to back.
func (b *AppBuilder) UseFrameRate(fps int) *AppBuilder {
	if fps <= 0 {
		b.app.frameInterval = 0
		return b
	}
	b.app.frameInterval = time.Second / time.Duration(fps)
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

func (b *AppBuilder) Build() *App {
	app := b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
