package lantern

import (
	"fmt"
	"reflect"
)

type AppBuilder struct {
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

func (builder *AppBuilder) UseModule(module Module) *AppBuilder {
	builder.modules = append(builder.modules, module)
	return builder
}

// Build assembles the App and installs every registered module in
// order. Installation failures abort the build; nothing is rolled
// back, the caller just discards the partial App.
func (builder *AppBuilder) Build() (*App, error) {
	ecs := MakeEcs()
	control := &RunControl{HasFocus: true}

	app := &App{
		stages:    []Stage{PreUpdate, Update, PostUpdate, PreRender, Render},
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		control:   control,
		ecs:       &ecs,
	}
	for _, stage := range app.stages {
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	app.addResources(control)

	cmd := app.Commands()
	for _, module := range builder.modules {
		if err := module.Install(app, cmd); err != nil {
			return nil, fmt.Errorf("installing %T: %w", module, err)
		}
		app.FlushCommands()
	}

	return app, nil
}
