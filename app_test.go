package cones

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	stateA State = iota
	stateB
	stateC
)

type counter struct {
	calls []string
}

func TestApp_ChangeState(t *testing.T) {
	app := NewAppBuilder().UseStates(stateA, stateC).Build()
	app.Start()

	app.changeState(stateB)
	assert.True(t, app.stateTransitioning)
	assert.Equal(t, stateB, app.nextState)

	done := app.Frame()
	assert.False(t, done)
	assert.Equal(t, stateB, app.State())
	assert.False(t, app.stateTransitioning)
}

func TestApp_AddResources(t *testing.T) {
	type config struct{ name string }

	app := NewAppBuilder().Build()
	app.addResources(&config{name: "x"})

	res, ok := Resource[config](app)
	require.True(t, ok)
	assert.Equal(t, "x", res.name)

	_, ok = Resource[counter](app)
	assert.False(t, ok)
}

func TestApp_AddResourcesPanics(t *testing.T) {
	type config struct{}

	app := NewAppBuilder().Build()
	assert.Panics(t, func() { app.addResources(config{}) }, "non-pointer resource")

	app.addResources(&config{})
	assert.PanicsWithValue(t, "*cones.config is already in resources", func() {
		app.addResources(&config{})
	})
}

func TestApp_SystemsReceiveResourcesAndCommands(t *testing.T) {
	c := &counter{}
	app := NewAppBuilder().Build()
	app.addResources(c)

	app.UseSystem(System(func(c *counter, cmd *Commands) {
		c.calls = append(c.calls, "update")
		cmd.AddEntity(&queryComp1{a: 1})
	}))

	app.Frame()
	app.Frame()

	assert.Equal(t, []string{"update", "update"}, c.calls)
	assert.Equal(t, 2, app.Commands().EntityCount())
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	type missing struct{}

	var logs bytes.Buffer
	app := NewAppBuilder().UseModule(LoggingModule{Output: &logs}).Build()
	app.UseSystem(System(func(m *missing) {}))

	require.Panics(t, func() { app.Frame() })
	assert.Contains(t, logs.String(), "Unable to resolve System dependency")
}

func TestApp_StatePhasesRunInOrder(t *testing.T) {
	c := &counter{}
	record := func(name string) func(*counter, *Commands) {
		return func(c *counter, cmd *Commands) { c.calls = append(c.calls, name) }
	}

	app := NewAppBuilder().UseStates(stateA, stateB).Build()
	app.addResources(c)
	app.UseSystem(System(record("enterA")).InState(OnEnter(stateA)))
	app.UseSystem(System(func(c *counter, cmd *Commands) {
		c.calls = append(c.calls, "executeA")
		cmd.ChangeState(stateB)
	}).InState(OnExecute(stateA)))
	app.UseSystem(System(record("exitA")).InState(OnExit(stateA)))
	app.UseSystem(System(record("enterB")).InState(OnEnter(stateB)))
	app.UseSystem(System(record("exitB")).InState(OnExit(stateB)))
	app.UseSystem(System(record("always")).InStage(Prelude).InState(Always()))

	app.Run()

	assert.Equal(t, []string{"enterA", "always", "executeA", "exitA", "enterB", "exitB"}, c.calls)
	assert.Equal(t, stateB, app.State())
}

func TestApp_FlushAppliesRemovalsBeforeAdditions(t *testing.T) {
	app := NewAppBuilder().Build()
	cmd := app.Commands()

	doomed := cmd.AddEntity(&queryComp1{a: 1})
	kept := cmd.AddEntity(&queryComp1{a: 2})
	app.FlushCommands()

	cmd.RemoveEntity(doomed)
	cmd.AddComponents(doomed, &queryComp2{b: 1})
	cmd.AddComponents(kept, &queryComp2{b: 2})
	app.FlushCommands()

	assert.Equal(t, 1, cmd.EntityCount())
	assert.Nil(t, cmd.GetAllComponents(doomed))
	assert.ElementsMatch(t, []any{queryComp1{a: 2}, queryComp2{b: 2}}, cmd.GetAllComponents(kept))

	cmd.RemoveComponents(kept, queryComp1{})
	app.FlushCommands()
	assert.Equal(t, []any{queryComp2{b: 2}}, cmd.GetAllComponents(kept))
}

func TestApp_EntitiesAppearAfterStageFlush(t *testing.T) {
	seen := -1
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(cmd *Commands) {
		cmd.AddEntity(&queryComp1{})
		seen = MakeQuery1[queryComp1](cmd).Count()
	}).InStage(PreUpdate))

	var later int
	app.UseSystem(System(func(cmd *Commands) {
		later = MakeQuery1[queryComp1](cmd).Count()
	}).InStage(Update))

	app.Frame()
	assert.Equal(t, 0, seen)
	assert.Equal(t, 1, later)
}
