package lumen

import (
	"fmt"
	"reflect"
	"runtime"
	"sync/atomic"
	"time"
)

type systemFn any

// Module installs resources and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	modules   []Module
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any

	frameInterval time.Duration
	frameCount    uint64
	running       atomic.Bool
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run drives frames at the configured rate until Stop is called.
// Stop takes effect between frames; a frame always runs to completion.
func (app *App) Run() {
	app.running.Store(true)
	for app.running.Load() {
		start := time.Now()
		app.RunFrame()

		if app.frameInterval > 0 {
			if rest := app.frameInterval - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
}

// RunFrame executes every scheduled system once, in stage order.
func (app *App) RunFrame() {
	for _, stage := range app.stages {
		for _, system := range app.systems[stage.Name] {
			app.callSystem(system)
		}
	}
	app.frameCount++
}

func (app *App) Stop() {
	app.running.Store(false)
}

func (app *App) FrameCount() uint64 {
	return app.frameCount
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// resourceOf returns the resource of type T, or nil if none was added.
func resourceOf[T any](app *App) *T {
	var zero T
	if res, ok := app.resources[reflect.TypeOf(zero)]; ok {
		return res.(*T)
	}
	return nil
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem resolves a system's pointer arguments from the resource map and
// invokes it. Systems declare what they need; the app wires it.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
