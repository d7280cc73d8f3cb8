package cones

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	if len(ecs.archetypes) != 0 {
		t.Errorf("Expected archetypes to be empty, got %v", ecs.archetypes)
	}
	if len(ecs.entityIndex) != 0 {
		t.Errorf("Expected entityIndex to be empty, got %v", ecs.entityIndex)
	}
	if ecs.nextEntity != 0 {
		t.Errorf("Expected nextEntity to be 0, got %v", ecs.nextEntity)
	}
}

func TestEcs_AddEntity(t *testing.T) {
	ecs := MakeEcs()

	entityId := ecs.addEntity()
	if !ecs.hasEntity(entityId) {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId)
	}

	type TestComponent struct {
		x string
	}
	entityId2 := ecs.addEntity(TestComponent{x: "test"})
	if !ecs.hasEntity(entityId2) {
		t.Errorf("Expected entityId %v to be in entityIndex", entityId2)
	}

	if ecs.entityIndex[entityId] == ecs.entityIndex[entityId2] {
		t.Errorf("Entities with different components ended up in the same Archetype")
	}
	assert.Equal(t, 2, ecs.entityCount())
}

func TestEcs_SameComponentsShareArchetype(t *testing.T) {
	type A struct{ v int }
	type B struct{ v int }

	ecs := MakeEcs()
	id1 := ecs.addEntity(A{1}, B{1})
	id2 := ecs.addEntity(&B{2}, &A{2})

	assert.Equal(t, ecs.entityIndex[id1], ecs.entityIndex[id2])
	assert.Len(t, ecs.archetypes, 1)
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }
	type TestComponent3 struct{ z string }

	ecs := MakeEcs()
	entityId := ecs.addEntity(TestComponent0{a: 1337})

	ecs.addComponents(entityId, TestComponent1{x: "test"}, TestComponent2{y: "hello"})
	ecs.addComponents(entityId, &TestComponent3{z: "test-2"})

	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	if 4 != len(arch.componentData) {
		t.Errorf("Should have ended up in an Archetype with 4 components, got %d", len(arch.componentData))
	}

	comps := ecs.components(entityId)
	assert.Contains(t, comps, TestComponent0{a: 1337})
	assert.Contains(t, comps, TestComponent3{z: "test-2"})
}

func TestEcs_AddComponentsOverwritesExisting(t *testing.T) {
	type Health struct{ hp int }

	ecs := MakeEcs()
	id := ecs.addEntity(Health{hp: 1})
	ecs.addComponents(id, Health{hp: 5})

	assert.Equal(t, []any{Health{hp: 5}}, ecs.components(id))
	assert.Len(t, ecs.archetypes, 1)
}

func TestEcs_AddComponentsToMissingEntityPanics(t *testing.T) {
	type A struct{}
	ecs := MakeEcs()
	require.Panics(t, func() { ecs.addComponents(42, A{}) })
}

func TestEcs_RemoveComponents(t *testing.T) {
	type A struct{ v int }
	type B struct{ v int }

	ecs := MakeEcs()
	id := ecs.addEntity(A{1}, B{2})
	ecs.removeComponents(id, B{})

	assert.Equal(t, []any{A{1}}, ecs.components(id))
}

func TestEcs_AddInvalidComponentShouldPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic on invalid component type")
		}
	}()

	ecs := MakeEcs()
	ecs.addEntity(123)
}

func TestEcs_ComponentRegistration(t *testing.T) {
	type Position struct{ x, y float64 }

	ecs := MakeEcs()
	id1 := ecs.getComponentId(reflect.TypeOf(Position{}))
	id2 := ecs.getComponentId(reflect.TypeOf(Position{}))

	if id1 != id2 {
		t.Errorf("expected component IDs to be equal")
	}

	if tp := ecs.componentType(id1); tp != reflect.TypeOf(Position{}) {
		t.Errorf("expected Position type, got %s", tp.Name())
	}
}

func TestEcs_ArchetypeKeyNormalization(t *testing.T) {
	assert.Equal(t, archetypeKey{1, 2, 3}, normalizeKey(archetypeKey{3, 1, 2, 1, 3}))
	assert.Equal(t, archetypeKey{1, 2, 3, 4}, mergeKeys(archetypeKey{1, 2, 3}, archetypeKey{4, 3, 2, 1}))
}

func TestEcs_RemoveEntity(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	id := ecs.addEntity(Position{1, 2})
	ecs.removeEntity(id)

	if ecs.hasEntity(id) {
		t.Errorf("entity not removed")
	}
	assert.Nil(t, ecs.components(id))
}

func TestEcs_RecycledRowIsReused(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	first := ecs.addEntity(Position{1, 2})
	ecs.removeEntity(first)
	second := ecs.addEntity(Position{3, 4})

	arch := ecs.archetypes[ecs.entityIndex[second]]
	assert.Equal(t, 1, arch.size)
	assert.Equal(t, []any{Position{3, 4}}, ecs.components(second))
}
