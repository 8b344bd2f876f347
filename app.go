package lantern

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// Module is a unit of installation: it registers resources and systems
// into the App. Install returns an error instead of panicking so that
// fallible setup (window creation, GPU init, capability detection) is
// surfaced to the caller of Build.
type Module interface {
	Install(app *App, cmd *Commands) error
}

// RunControl is the shared loop-control resource. Any system may request
// shutdown by setting Quit; HasFocus gates simulation advancement.
type RunControl struct {
	Quit     bool
	HasFocus bool
}

type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	control   *RunControl
	ecs       *Ecs

	// Command buffering
	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompAdds  []pendingCompAdd
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

type pendingCompAdd struct {
	eid        EntityId
	components []any
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Run drives the frame loop until a system sets RunControl.Quit. One
// iteration walks every stage in order; systems never overlap, so all
// shared state is single-threaded by construction.
func (app *App) Run() {
	for {
		for _, stage := range app.stages {
			for _, system := range app.systems[stage.Name] {
				app.callSystem(system)
			}
			app.FlushCommands()
		}

		if app.control.Quit {
			return
		}
	}
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

// resourceOf fetches an installed resource by type. Used by modules
// whose Install depends on resources registered by earlier modules.
func resourceOf[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

var typeOfCommands = reflect.TypeOf(Commands{})

// callSystem resolves each parameter of the system func from the
// resource map (or a fresh Commands) and invokes it.
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
			panic(fmt.Sprintf("Unable to resolve system dependency.\nSystem: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(argType),
			))
		}
	}
	systemValue.Call(args)
}

func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompAdds) == 0 {
		return
	}

	// Removals first so we never add to dead entities.
	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
