package lazyquery

import (
	"reflect"
	"unsafe"
)

// TypeID returns the world-local component ID for type `T`, registering the
// type on first use. IDs are stable for the lifetime of the world and are the
// identities that appear in AccessSet declarations.
func TypeID[T any](w *World) uint8 {
	return w.getCompTypeID(reflect.TypeOf((*T)(nil)).Elem())
}

// GetComponent retrieves a pointer to the component of type `T` for the given
// entity. It provides a direct, type-safe way to access component data.
//
// If the entity is invalid, does not have the component, or if the entity ID is
// out of bounds, this function returns nil.
//
// Parameters:
//   - w: The World containing the entity.
//   - e: The Entity from which to retrieve the component.
//
// Returns:
//   - A pointer to the component data (*T), or nil if not found.
func GetComponent[T any](w *World, e Entity) *T {
	if !w.IsValid(e) {
		return nil
	}
	meta := w.entities.metas[e.ID]
	id := w.getCompTypeID(reflect.TypeOf((*T)(nil)).Elem())
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.ContainsBit(id) {
		return nil
	}
	return (*T)(unsafe.Add(a.basePtrs[id], uintptr(meta.index)*a.compSizes[id]))
}

// SetComponent adds a component of type `T` with the given value to an entity,
// or updates it if the component already exists. Either way the row's changed
// tick is stamped with the current world tick.
//
// If the entity does not already have the component, adding it will cause the
// entity to move to a different archetype. This is a relatively expensive
// operation compared to updating an existing component. If the entity is
// invalid, this function does nothing.
//
// Parameters:
//   - w: The World where the entity resides.
//   - e: The Entity to modify.
//   - val: The component data of type `T` to set.
func SetComponent[T any](w *World, e Entity, val T) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := w.getCompTypeID(t)
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if a.mask.ContainsBit(id) {
		// already has, just set
		ptr := unsafe.Add(a.basePtrs[id], uintptr(meta.index)*a.compSizes[id])
		*(*T)(ptr) = val
		a.ticks[id][meta.index] = w.stampTick()
		return
	}
	// add new
	newMask := a.mask
	newMask.Set(id)
	var targetA *Archetype
	if idx, ok := w.archetypes.maskToArcIndex[newMask]; ok {
		targetA = w.archetypes.archetypes[idx]
	} else {
		// build specs only when creating a new archetype
		var tempSpecs [MaxComponentTypes]compSpec
		count := 0
		for _, cid := range a.compOrder {
			tempSpecs[count] = compSpec{
				id:   cid,
				typ:  w.components.compIDToType[cid],
				size: w.components.compIDToSize[cid],
			}
			count++
		}
		tempSpecs[count] = compSpec{
			id:   id,
			typ:  w.components.compIDToType[id],
			size: w.components.compIDToSize[id],
		}
		count++
		targetA = w.getOrCreateArchetype(newMask, tempSpecs[:count])
	}
	// move to target
	newIdx := w.pushRow(targetA)
	targetA.entities[newIdx] = e
	for _, cid := range a.compOrder {
		src := unsafe.Add(a.basePtrs[cid], uintptr(meta.index)*a.compSizes[cid])
		dst := unsafe.Add(targetA.basePtrs[cid], uintptr(newIdx)*targetA.compSizes[cid])
		memCopy(dst, src, a.compSizes[cid])
		targetA.ticks[cid][newIdx] = a.ticks[cid][meta.index]
	}
	dst := unsafe.Add(targetA.basePtrs[id], uintptr(newIdx)*targetA.compSizes[id])
	*(*T)(dst) = val
	targetA.ticks[id][newIdx] = w.stampTick()
	w.removeFromArchetype(a, meta)
	meta.archetypeIndex = targetA.index
	meta.index = newIdx
}

// RemoveComponent removes the component of type `T` from the specified entity.
//
// This operation will cause the entity to move to a new archetype that does not
// include the removed component. This can be an expensive operation. If the
// entity is invalid or does not have the component, this function does nothing.
//
// Parameters:
//   - w: The World where the entity resides.
//   - e: The Entity to modify.
func RemoveComponent[T any](w *World, e Entity) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	id := w.getCompTypeID(reflect.TypeOf((*T)(nil)).Elem())
	a := w.archetypes.archetypes[meta.archetypeIndex]
	if !a.mask.ContainsBit(id) {
		return
	}
	newMask := a.mask
	newMask.Unset(id)
	var targetA *Archetype
	if idx, ok := w.archetypes.maskToArcIndex[newMask]; ok {
		targetA = w.archetypes.archetypes[idx]
	} else {
		var tempSpecs [MaxComponentTypes]compSpec
		count := 0
		for _, cid := range a.compOrder {
			if cid == id {
				continue
			}
			tempSpecs[count] = compSpec{
				id:   cid,
				typ:  w.components.compIDToType[cid],
				size: w.components.compIDToSize[cid],
			}
			count++
		}
		targetA = w.getOrCreateArchetype(newMask, tempSpecs[:count])
	}
	newIdx := w.pushRow(targetA)
	targetA.entities[newIdx] = e
	for _, cid := range targetA.compOrder {
		src := unsafe.Add(a.basePtrs[cid], uintptr(meta.index)*a.compSizes[cid])
		dst := unsafe.Add(targetA.basePtrs[cid], uintptr(newIdx)*targetA.compSizes[cid])
		memCopy(dst, src, a.compSizes[cid])
		targetA.ticks[cid][newIdx] = a.ticks[cid][meta.index]
	}
	w.removeFromArchetype(a, meta)
	meta.archetypeIndex = targetA.index
	meta.index = newIdx
}
