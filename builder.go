package lazyquery

import (
	"reflect"
	"unsafe"
)

// Builder creates entities that start out with component T, placing them
// directly into the target archetype. It is the cheap path for populating a
// world: no archetype moves, one row reservation per entity.
type Builder[T any] struct {
	world *World
	arch  *Archetype
	id    uint8
}

// NewBuilder creates a builder for entities with component T.
func NewBuilder[T any](w *World) *Builder[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id := w.getCompTypeID(t)
	var mask Mask
	mask.Set(id)
	sp := compSpec{id: id, typ: t, size: w.components.compIDToSize[id]}
	arch := w.getOrCreateArchetype(mask, []compSpec{sp})
	return &Builder[T]{world: w, arch: arch, id: id}
}

// NewEntity creates one entity with a zero-valued component.
func (b *Builder[T]) NewEntity() Entity {
	return b.world.createEntity(b.arch)
}

// NewEntityWith creates one entity and sets its component to val.
func (b *Builder[T]) NewEntityWith(val T) Entity {
	e := b.world.createEntity(b.arch)
	idx := b.world.entities.metas[e.ID].index
	ptr := unsafe.Add(b.arch.basePtrs[b.id], uintptr(idx)*b.arch.compSizes[b.id])
	*(*T)(ptr) = val
	b.arch.ticks[b.id][idx] = b.world.stampTick()
	return e
}

// NewEntities creates count entities with zero-valued components and returns them.
func (b *Builder[T]) NewEntities(count int) []Entity {
	if count == 0 {
		return nil
	}
	a := b.arch
	if a.size+count > a.capacity {
		b.world.growArchetype(a, a.size+count)
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = b.world.createEntity(a)
	}
	return ents
}

// Builder2 creates entities that start out with components T1 and T2.
type Builder2[T1, T2 any] struct {
	world *World
	arch  *Archetype
	id1   uint8
	id2   uint8
}

// NewBuilder2 creates a builder for entities with components T1 and T2.
func NewBuilder2[T1, T2 any](w *World) *Builder2[T1, T2] {
	t1 := reflect.TypeOf((*T1)(nil)).Elem()
	t2 := reflect.TypeOf((*T2)(nil)).Elem()
	id1 := w.getCompTypeID(t1)
	id2 := w.getCompTypeID(t2)
	var mask Mask
	mask.Set(id1)
	mask.Set(id2)
	specs := []compSpec{
		{id: id1, typ: t1, size: w.components.compIDToSize[id1]},
		{id: id2, typ: t2, size: w.components.compIDToSize[id2]},
	}
	arch := w.getOrCreateArchetype(mask, specs)
	return &Builder2[T1, T2]{world: w, arch: arch, id1: id1, id2: id2}
}

// NewEntity creates one entity with zero-valued components.
func (b *Builder2[T1, T2]) NewEntity() Entity {
	return b.world.createEntity(b.arch)
}

// NewEntityWith creates one entity and sets both components.
func (b *Builder2[T1, T2]) NewEntityWith(v1 T1, v2 T2) Entity {
	e := b.world.createEntity(b.arch)
	idx := b.world.entities.metas[e.ID].index
	p1 := unsafe.Add(b.arch.basePtrs[b.id1], uintptr(idx)*b.arch.compSizes[b.id1])
	*(*T1)(p1) = v1
	p2 := unsafe.Add(b.arch.basePtrs[b.id2], uintptr(idx)*b.arch.compSizes[b.id2])
	*(*T2)(p2) = v2
	tick := b.world.stampTick()
	b.arch.ticks[b.id1][idx] = tick
	b.arch.ticks[b.id2][idx] = tick
	return e
}

// NewEntities creates count entities with zero-valued components and returns them.
func (b *Builder2[T1, T2]) NewEntities(count int) []Entity {
	if count == 0 {
		return nil
	}
	a := b.arch
	if a.size+count > a.capacity {
		b.world.growArchetype(a, a.size+count)
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = b.world.createEntity(a)
	}
	return ents
}
