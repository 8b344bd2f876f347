package lantern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	Value int
}

type MockResource2 struct {
	Calls []string
}

type mockModule struct {
	resource *MockResource1
}

func (m mockModule) Install(app *App, cmd *Commands) error {
	cmd.AddResources(m.resource)
	return nil
}

type failingModule struct {
	err error
}

func (m failingModule) Install(app *App, cmd *Commands) error {
	return m.err
}

func TestBuild_InstallsModuleResources(t *testing.T) {
	app, err := NewAppBuilder().
		UseModule(mockModule{resource: &MockResource1{Value: 42}}).
		Build()
	require.NoError(t, err)

	res, ok := resourceOf[MockResource1](app)
	require.True(t, ok)
	assert.Equal(t, 42, res.Value)
}

func TestBuild_PropagatesInstallErrors(t *testing.T) {
	boom := errors.New("no device")

	_, err := NewAppBuilder().
		UseModule(mockModule{resource: &MockResource1{}}).
		UseModule(failingModule{err: boom}).
		Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failingModule")
}

func TestAddResources_DuplicateTypePanics(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	app.addResources(&MockResource1{})
	assert.Panics(t, func() {
		app.addResources(&MockResource1{})
	})
}

func TestRun_InjectsResourcesIntoSystems(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	app.addResources(&MockResource1{Value: 7})

	var seen int
	app.UseSystem(System(func(res *MockResource1, control *RunControl) {
		seen = res.Value
		control.Quit = true
	}))

	app.Run()
	assert.Equal(t, 7, seen)
}

func TestRun_MissingDependencyPanics(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	app.UseSystem(System(func(res *MockResource1) {}))

	assert.Panics(t, func() { app.Run() })
}

func TestRun_StagesExecuteInOrder(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	trace := &MockResource2{}
	app.addResources(trace)

	record := func(name string) systemFn {
		return func(r *MockResource2, control *RunControl) {
			r.Calls = append(r.Calls, name)
			control.Quit = true
		}
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("pre-update")).InStage(PreUpdate))
	app.UseSystem(System(record("update")).InStage(Update))

	app.Run()
	assert.Equal(t, []string{"pre-update", "update", "render"}, trace.Calls)
}

func TestRun_SystemsReceiveCommands(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	var eid EntityId
	app.UseSystem(System(func(cmd *Commands, control *RunControl) {
		if !control.Quit {
			eid = cmd.AddEntity(testPosition{X: 9})
			control.Quit = true
		}
	}))

	app.Run()

	comps := app.Commands().GetAllComponents(eid)
	require.Len(t, comps, 1)
	assert.Equal(t, testPosition{X: 9}, comps[0])
}

func TestCommands_EntityLifecycleThroughQueries(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	cmd := app.Commands()
	a := cmd.AddEntity(testPosition{X: 1})
	b := cmd.AddEntity(testPosition{X: 2}, testVelocity{X: 5})

	// Additions are buffered until the end of the stage.
	count := 0
	MakeQuery1[testPosition](cmd).Map(func(eid EntityId, p *testPosition) bool {
		count++
		return true
	})
	assert.Equal(t, 0, count)

	app.FlushCommands()

	found := map[EntityId]float32{}
	MakeQuery1[testPosition](cmd).Map(func(eid EntityId, p *testPosition) bool {
		found[eid] = p.X
		return true
	})
	assert.Equal(t, map[EntityId]float32{a: 1, b: 2}, found)

	// Mutations through the query pointer stick.
	MakeQuery2[testPosition, testVelocity](cmd).Map(func(eid EntityId, p *testPosition, v *testVelocity) bool {
		p.X += v.X
		return true
	})
	comps := cmd.GetAllComponents(b)
	assert.Contains(t, comps, testPosition{X: 7})

	cmd.RemoveEntity(a)
	app.FlushCommands()

	count = 0
	MakeQuery1[testPosition](cmd).Map(func(eid EntityId, p *testPosition) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestQuery_OptionalComponents(t *testing.T) {
	app, err := NewAppBuilder().Build()
	require.NoError(t, err)

	cmd := app.Commands()
	plain := cmd.AddEntity(testPosition{X: 1})
	moving := cmd.AddEntity(testPosition{X: 2}, testVelocity{X: 3})
	app.FlushCommands()

	velocities := map[EntityId]bool{}
	MakeQuery2[testPosition, testVelocity](cmd).Map(func(eid EntityId, p *testPosition, v *testVelocity) bool {
		velocities[eid] = v != nil
		return true
	}, testVelocity{})

	assert.Equal(t, map[EntityId]bool{plain: false, moving: true}, velocities)
}
