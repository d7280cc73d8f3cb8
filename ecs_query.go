package cones

import (
	"iter"
	"reflect"
)

// Queries match every archetype that owns the required component types.
// Types passed as optionals to Map may be missing, in which case the
// callback receives a nil pointer for them.
type Query1[A any] struct{ query }
type Query2[A, B any] struct{ query }
type Query3[A, B, C any] struct{ query }

// Row2 and Row3 carry the components of one match when iterating with All.
type Row2[A, B any] struct {
	A *A
	B *B
}

type Row3[A, B, C any] struct {
	A *A
	B *B
	C *C
}

type query struct {
	ecs     *Ecs
	without []any
}

func MakeQuery1[A any](cmd *Commands) Query1[A] { return Query1[A]{query{ecs: cmd.app.ecs}} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] {
	return Query2[A, B]{query{ecs: cmd.app.ecs}}
}
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{query{ecs: cmd.app.ecs}}
}

// Without excludes entities owning any of the given component types.
func (q Query1[A]) Without(components ...any) Query1[A] {
	return Query1[A]{q.exclude(components)}
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	return Query2[A, B]{q.exclude(components)}
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	return Query3[A, B, C]{q.exclude(components)}
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	idA := componentIdOf[A](q.ecs)

	for arch := range q.archetypes([]componentId{idA}, optionals) {
		colA := column[A](arch, idA)
		for entityId, r := range arch.entities {
			if !m(entityId, at(colA, r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	idA, idB := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)

	for arch := range q.archetypes([]componentId{idA, idB}, optionals) {
		colA, colB := column[A](arch, idA), column[B](arch, idB)
		for entityId, r := range arch.entities {
			if !m(entityId, at(colA, r), at(colB, r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	idA, idB, idC := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)

	for arch := range q.archetypes([]componentId{idA, idB, idC}, optionals) {
		colA, colB, colC := column[A](arch, idA), column[B](arch, idB), column[C](arch, idC)
		for entityId, r := range arch.entities {
			if !m(entityId, at(colA, r), at(colB, r), at(colC, r)) {
				return
			}
		}
	}
}

// All iterates over the matches with range-over-func.
func (q Query1[A]) All() iter.Seq2[EntityId, *A] {
	return func(yield func(EntityId, *A) bool) {
		q.Map(yield)
	}
}

func (q Query2[A, B]) All() iter.Seq2[EntityId, Row2[A, B]] {
	return func(yield func(EntityId, Row2[A, B]) bool) {
		q.Map(func(eid EntityId, a *A, b *B) bool {
			return yield(eid, Row2[A, B]{A: a, B: b})
		})
	}
}

func (q Query3[A, B, C]) All() iter.Seq2[EntityId, Row3[A, B, C]] {
	return func(yield func(EntityId, Row3[A, B, C]) bool) {
		q.Map(func(eid EntityId, a *A, b *B, c *C) bool {
			return yield(eid, Row3[A, B, C]{A: a, B: b, C: c})
		})
	}
}

func (q Query1[A]) Count() int {
	return q.count(componentIdOf[A](q.ecs))
}

func (q Query2[A, B]) Count() int {
	return q.count(componentIdOf[A](q.ecs), componentIdOf[B](q.ecs))
}

func (q Query3[A, B, C]) Count() int {
	return q.count(componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs))
}

func (q query) exclude(components []any) query {
	without := make([]any, 0, len(q.without)+len(components))
	without = append(without, q.without...)
	return query{ecs: q.ecs, without: append(without, components...)}
}

func (q query) count(required ...componentId) int {
	n := 0
	for arch := range q.archetypes(required, nil) {
		n += len(arch.entities)
	}
	return n
}

func (q query) archetypes(required []componentId, optionals []any) iter.Seq[*archetype] {
	optional := q.idSet(optionals)
	excluded := q.idSet(q.without)

	return func(yield func(*archetype) bool) {
		for _, arch := range q.ecs.archetypes {
			if !arch.matches(required, optional, excluded) {
				continue
			}
			if !yield(arch) {
				return
			}
		}
	}
}

func (q query) idSet(components []any) set[componentId] {
	res := make(set[componentId], len(components))
	for _, c := range components {
		res[q.ecs.getComponentId(componentTypeOf(c))] = struct{}{}
	}
	return res
}

func (arch *archetype) matches(required []componentId, optional set[componentId], excluded set[componentId]) bool {
	for _, id := range required {
		if _, ok := arch.componentData[id]; ok {
			continue
		}
		if _, ok := optional[id]; !ok {
			return false
		}
	}
	for id := range excluded {
		if _, ok := arch.componentData[id]; ok {
			return false
		}
	}
	return true
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}

func column[T any](arch *archetype, id componentId) []T {
	if data, ok := arch.componentData[id]; ok {
		return data.([]T)
	}
	return nil
}

func at[T any](col []T, r row) *T {
	if col == nil {
		return nil
	}
	return &col[r]
}
