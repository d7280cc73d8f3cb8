package cones

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type row int
type set[T comparable] = map[T]struct{}

// Ecs stores entities grouped by archetype: the sorted set of component
// types they own. Each archetype keeps one dense slice per component type.
type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	idLock       sync.Mutex
	nextEntity   EntityId
	componentIds map[reflect.Type]componentId
	componentTys []reflect.Type
}

type archetype struct {
	id            archetypeId
	key           archetypeKey
	entities      map[EntityId]row
	componentData map[componentId]any // []T built through reflection
	size          int
	recycled      []row
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:   make(map[archetypeId]*archetype),
		entityIndex:  make(map[EntityId]archetypeId),
		componentIds: make(map[reflect.Type]componentId),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	arch := ecs.archetypeFor(ecs.keyOf(components...))

	r := arch.reserveRow(ecs)
	arch.entities[entityId] = r
	for _, component := range components {
		ecs.writeComponent(arch, r, component)
	}
	ecs.entityIndex[entityId] = arch.id

	return entityId
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entityIndex[entityId]
	return ok
}

func (ecs *Ecs) entityCount() int {
	return len(ecs.entityIndex)
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	if !ecs.hasEntity(entityId) {
		return
	}
	ecs.releaseRow(entityId)
}

// addComponents moves the entity into the archetype extended by the given
// components. Components of a type the entity already owns are overwritten.
func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	src, srcRow, ok := ecs.locate(entityId)
	if !ok {
		panic(fmt.Sprintf("entity %d does not exist", entityId))
	}

	dst := ecs.archetypeFor(mergeKeys(src.key, ecs.keyOf(components...)))
	if dst == src {
		for _, component := range components {
			ecs.writeComponent(src, srcRow, component)
		}
		return
	}

	dstRow := dst.reserveRow(ecs)
	copyRow(src, srcRow, dst, dstRow)
	for _, component := range components {
		ecs.writeComponent(dst, dstRow, component)
	}

	ecs.releaseRow(entityId)
	dst.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dst.id
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	src, srcRow, ok := ecs.locate(entityId)
	if !ok {
		return
	}

	drop := make(set[componentId])
	for _, id := range ecs.keyOf(components...) {
		drop[id] = struct{}{}
	}

	var key archetypeKey
	for _, id := range src.key {
		if _, found := drop[id]; !found {
			key = append(key, id)
		}
	}
	if len(key) == len(src.key) {
		return
	}

	dst := ecs.archetypeFor(key)
	dstRow := dst.reserveRow(ecs)
	copyRow(src, srcRow, dst, dstRow)

	ecs.releaseRow(entityId)
	dst.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dst.id
}

// components returns copies of every component owned by the entity.
func (ecs *Ecs) components(entityId EntityId) []any {
	arch, r, ok := ecs.locate(entityId)
	if !ok {
		return nil
	}

	res := make([]any, 0, len(arch.key))
	for _, id := range arch.key {
		res = append(res, reflectSliceGet(arch.componentData[id], int(r)).Interface())
	}
	return res
}

func (ecs *Ecs) locate(entityId EntityId) (*archetype, row, bool) {
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil, 0, false
	}
	arch := ecs.archetypes[archId]
	return arch, arch.entities[entityId], true
}

func (ecs *Ecs) releaseRow(entityId EntityId) {
	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	r := arch.entities[entityId]

	// Zero the row so recycled slots do not pin old values.
	for _, id := range arch.key {
		reflectSliceSet(arch.componentData[id], int(r), reflect.Zero(ecs.componentType(id)))
	}
	arch.recycled = append(arch.recycled, r)

	delete(arch.entities, entityId)
	delete(ecs.entityIndex, entityId)
}

// copyRow copies the components both archetypes have in common.
func copyRow(src *archetype, srcRow row, dst *archetype, dstRow row) {
	for _, id := range src.key {
		dstData, ok := dst.componentData[id]
		if !ok {
			continue
		}
		reflectSliceSet(dstData, int(dstRow), reflectSliceGet(src.componentData[id], int(srcRow)))
	}
}

func (ecs *Ecs) writeComponent(arch *archetype, r row, component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	reflectSliceSet(arch.componentData[ecs.getComponentId(value.Type())], int(r), value)
}

func (ecs *Ecs) archetypeFor(key archetypeKey) *archetype {
	id := hashKey(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return arch
	}

	arch := &archetype{
		id:            id,
		key:           key,
		entities:      make(map[EntityId]row),
		componentData: make(map[componentId]any, len(key)),
	}
	for _, cid := range key {
		arch.componentData[cid] = reflectSliceMake(ecs.componentType(cid))
	}

	ecs.archetypes[id] = arch
	return arch
}

func (arch *archetype) reserveRow(ecs *Ecs) row {
	if n := len(arch.recycled); n > 0 {
		r := arch.recycled[n-1]
		arch.recycled = arch.recycled[:n-1]
		return r
	}

	r := row(arch.size)
	arch.size++
	for _, cid := range arch.key {
		arch.componentData[cid] = reflectSliceAppend(arch.componentData[cid], reflect.Zero(ecs.componentType(cid)))
	}
	return r
}

// keyOf returns the canonical archetype key (sorted, deduplicated ids) for
// a list of component values.
func (ecs *Ecs) keyOf(components ...any) archetypeKey {
	key := make(archetypeKey, 0, len(components))
	for _, component := range components {
		key = append(key, ecs.getComponentId(componentTypeOf(component)))
	}
	return normalizeKey(key)
}

func componentTypeOf(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("component must not be nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected component to be a struct or a pointer to a struct, got %s", t.Kind()))
	}
	return t
}

func mergeKeys(a archetypeKey, b archetypeKey) archetypeKey {
	merged := make(archetypeKey, 0, len(a)+len(b))
	merged = append(merged, a...)
	return normalizeKey(append(merged, b...))
}

func normalizeKey(key archetypeKey) archetypeKey {
	slices.Sort(key)
	return slices.Compact(key)
}

// hashKey derives the archetype id from its key. Collisions are not handled.
func hashKey(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	b := make([]byte, 4)
	for _, cid := range key {
		binary.LittleEndian.PutUint32(b, uint32(cid))
		hash.Write(b)
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()

	id := ecs.nextEntity
	ecs.nextEntity++
	return id
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()

	if id, ok := ecs.componentIds[componentType]; ok {
		return id
	}
	id := componentId(len(ecs.componentTys))
	ecs.componentIds[componentType] = id
	ecs.componentTys = append(ecs.componentTys, componentType)
	return id
}

func (ecs *Ecs) componentType(id componentId) reflect.Type {
	if int(id) < len(ecs.componentTys) {
		return ecs.componentTys[id]
	}
	panic(fmt.Sprintf("component id %d not registered", id))
}
