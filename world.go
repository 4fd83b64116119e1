package lazyquery

import (
	"reflect"
	"unsafe"
)

// MaxComponentTypes defines the maximum number of unique component types that
// can be registered in a World. This value is fixed at 256.
const MaxComponentTypes = 256

// Entity represents a unique identifier for an object in the World. It combines
// a 32-bit ID with a 32-bit version to ensure that recycled IDs are not confused
// with new entities.
type Entity struct {
	// ID is the unique, recyclable identifier for the entity.
	ID uint32
	// Version is a generation counter to protect against stale entity references.
	// It is incremented each time an entity ID is reused.
	Version uint32
}

// entityMeta holds the internal location and state of an entity.
type entityMeta struct {
	archetypeIndex int    // index in World.archetypes
	index          int    // row inside the archetype's columns
	version        uint32 // current version, 0 if the entity is dead
}

// compSpec bundles a component type's ID and reflect.Type.
type compSpec struct {
	typ  reflect.Type
	size uintptr
	id   uint8
}

// Archetype holds columnar storage for one unique component-set mask. All
// entities sharing the same component set live in the same archetype, one row
// per entity. Component data is stored in per-type slices allocated through
// reflect so the garbage collector sees pointers inside components; row
// addressing goes through cached unsafe base pointers.
//
// Each component column carries a parallel changed-tick lane recording the
// world tick of the row's last write. The query layer forwards this state to
// descriptors unmodified; it never interprets it.
type Archetype struct {
	entities  []Entity
	compOrder []uint8 // list of component IDs in this archetype
	compSizes [MaxComponentTypes]uintptr
	columns   [MaxComponentTypes]reflect.Value // slice values, retained for GC
	basePtrs  [MaxComponentTypes]unsafe.Pointer
	ticks     [MaxComponentTypes][]uint32 // changed tick per row, per component
	mask      Mask                        // which component bits this archetype uses
	index     int                         // position in world.archetypes
	size      int                         // current entity count
	capacity  int                         // allocated rows
}

// Mask returns the component-set mask identifying this archetype.
func (a *Archetype) Mask() Mask {
	return a.mask
}

// Len returns the number of entities currently stored in the archetype.
func (a *Archetype) Len() int {
	return a.size
}

// componentRegistry assigns stable uint8 IDs to component types.
type componentRegistry struct {
	compIDToType   [MaxComponentTypes]reflect.Type
	compTypeMap    map[reflect.Type]uint8
	compIDToSize   [MaxComponentTypes]uintptr
	nextCompTypeID uint16 // counter for assigning new component type IDs
}

// entityRegistry tracks entity liveness and recycles IDs.
type entityRegistry struct {
	freeIDs         []uint32     // stack of recycled entity IDs
	metas           []entityMeta // stores metadata for each entity, indexed by entity ID
	capacity        int          // current maximum number of entities
	initialCapacity int          // initial capacity, used for expansion
	nextEntityVer   uint32       // version for the next created entity
}

// archetypeRegistry indexes archetypes by component mask.
type archetypeRegistry struct {
	maskToArcIndex   map[Mask]int // lookup mask→archetype index
	archetypes       []*Archetype // list of all archetypes in the world
	archetypeVersion uint32       // incremented when a new archetype is created
}

// World owns all storage the query layer operates on: the component
// registry, entity metadata, archetype columns, and the change-detection
// clock. Queries and descriptors only ever borrow from it.
type World struct {
	archetypes      archetypeRegistry
	entities        entityRegistry
	components      componentRegistry
	tick            uint32 // change-detection clock, advanced per query pass
	mutationVersion uint32 // incremented on entity mutations
}

// NewWorld creates and initializes a new World with a specified initial
// capacity for entities. It pre-allocates memory for the entity metadata and
// free ID list to optimize performance.
//
// Parameters:
//   - initialCapacity: The number of entities to pre-allocate memory for.
//     Choosing a suitable capacity can prevent re-allocations during runtime.
//
// Returns:
//   - The newly created World.
func NewWorld(initialCapacity int) World {
	w := World{
		components: componentRegistry{
			compTypeMap: make(map[reflect.Type]uint8, 16),
		},
		entities: entityRegistry{
			capacity:        initialCapacity,
			initialCapacity: initialCapacity,
			freeIDs:         make([]uint32, initialCapacity),
			metas:           make([]entityMeta, initialCapacity),
			nextEntityVer:   1,
		},
		archetypes: archetypeRegistry{
			maskToArcIndex: make(map[Mask]int),
			archetypes:     make([]*Archetype, 0, 16),
		},
	}
	for i := range w.entities.freeIDs {
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.entities.metas {
		w.entities.metas[i].archetypeIndex = -1
		w.entities.metas[i].index = -1
		w.entities.metas[i].version = 0
	}
	// Pre-create the empty archetype
	var emptyMask Mask
	w.getOrCreateArchetype(emptyMask, []compSpec{})
	return w
}

// ClearEntities removes all entities from the world, recycling their IDs and
// resetting archetypes. This is an efficient way to reset the world state
// without deallocating memory.
func (w *World) ClearEntities() {
	for i := range w.entities.metas {
		w.entities.metas[i].archetypeIndex = -1
		w.entities.metas[i].index = -1
		w.entities.metas[i].version = 0
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := uint32(0); i < uint32(w.entities.capacity); i++ {
		w.entities.freeIDs = append(w.entities.freeIDs, i)
	}
	for _, a := range w.archetypes.archetypes {
		a.size = 0
	}
	w.mutationVersion++
}

// IsValid checks if the entity is currently alive in the world. An entity is
// valid if its ID is within bounds and its version matches the world's current
// version for that ID. This prevents "stale" entity references from accessing
// incorrect data after an entity has been deleted and its ID recycled.
//
// Parameters:
//   - e: The Entity to validate.
//
// Returns:
//   - true if the entity is valid, false otherwise.
func (w *World) IsValid(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := w.entities.metas[e.ID]
	return meta.version != 0 && meta.version == e.Version
}

// Tick returns the current value of the change-detection clock. The clock
// advances once per query pass and once per external component write;
// descriptors receive it as a TickWindow and forward it without
// interpreting it.
func (w *World) Tick() uint32 {
	return w.tick
}

// stampTick advances the clock for one external write and returns the tick
// to stamp the written row with.
func (w *World) stampTick() uint32 {
	w.tick++
	return w.tick
}

// getCompTypeID registers or fetches a component type ID for t.
func (w *World) getCompTypeID(t reflect.Type) uint8 {
	if id, ok := w.components.compTypeMap[t]; ok {
		return id
	}
	if w.components.nextCompTypeID >= MaxComponentTypes {
		panic("lazyquery: too many component types")
	}
	id := uint8(w.components.nextCompTypeID)
	w.components.compTypeMap[t] = id
	w.components.compIDToType[id] = t
	w.components.compIDToSize[id] = t.Size()
	w.components.nextCompTypeID++
	return id
}

// getOrCreateArchetype returns the archetype for the given mask, allocating
// an empty one from the specs if it does not exist yet.
func (w *World) getOrCreateArchetype(mask Mask, specs []compSpec) *Archetype {
	if idx, ok := w.archetypes.maskToArcIndex[mask]; ok {
		return w.archetypes.archetypes[idx]
	}
	a := &Archetype{
		index:     len(w.archetypes.archetypes),
		mask:      mask,
		compOrder: make([]uint8, len(specs)),
	}
	for i, sp := range specs {
		a.compOrder[i] = sp.id
		a.compSizes[sp.id] = sp.size
	}
	w.archetypes.archetypes = append(w.archetypes.archetypes, a)
	w.archetypes.maskToArcIndex[mask] = a.index
	w.archetypes.archetypeVersion++
	return a
}

// growArchetype reallocates the archetype's columns to hold at least minCap
// rows, preserving existing data and tick lanes.
func (w *World) growArchetype(a *Archetype, minCap int) {
	newCap := max(2*a.capacity, minCap, 64)
	ents := make([]Entity, newCap)
	copy(ents, a.entities[:a.size])
	a.entities = ents
	for _, cid := range a.compOrder {
		typ := w.components.compIDToType[cid]
		ns := reflect.MakeSlice(reflect.SliceOf(typ), newCap, newCap)
		if a.size > 0 {
			reflect.Copy(ns, a.columns[cid].Slice(0, a.size))
		}
		a.columns[cid] = ns
		a.basePtrs[cid] = ns.UnsafePointer()
		nt := make([]uint32, newCap)
		copy(nt, a.ticks[cid][:a.size])
		a.ticks[cid] = nt
	}
	a.capacity = newCap
}

// pushRow reserves the next free row in the archetype, growing it if full.
func (w *World) pushRow(a *Archetype) int {
	if a.size == a.capacity {
		w.growArchetype(a, a.size+1)
	}
	idx := a.size
	a.size++
	return idx
}

// expand automatically increases entity capacity when full.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if newCap < oldCap+additional {
		newCap = oldCap + additional
	}
	delta := newCap - oldCap
	newMetas := make([]entityMeta, delta)
	for i := range newMetas {
		newMetas[i].archetypeIndex = -1
		newMetas[i].index = -1
		newMetas[i].version = 0
	}
	w.entities.metas = append(w.entities.metas, newMetas...)
	newFree := make([]uint32, delta)
	for i := 0; i < delta; i++ {
		newFree[i] = uint32(newCap - 1 - i)
	}
	w.entities.freeIDs = append(w.entities.freeIDs, newFree...)
	w.entities.capacity = newCap
}

// createEntity bumps an entity into the given archetype.
func (w *World) createEntity(a *Archetype) Entity {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	// pop an ID
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	idx := w.pushRow(a)
	meta := &w.entities.metas[id]
	meta.archetypeIndex = a.index
	meta.index = idx
	meta.version = w.entities.nextEntityVer
	ent := Entity{ID: id, Version: meta.version}
	a.entities[idx] = ent
	w.entities.nextEntityVer++
	w.mutationVersion++
	return ent
}

// CreateEntity creates a new entity with no components.
func (w *World) CreateEntity() Entity {
	emptyMask := Mask{}
	idx, ok := w.archetypes.maskToArcIndex[emptyMask]
	if !ok {
		panic("lazyquery: empty archetype not found")
	}
	a := w.archetypes.archetypes[idx]
	return w.createEntity(a)
}

// CreateEntities creates a batch of entities with no components and returns them.
func (w *World) CreateEntities(count int) []Entity {
	if count == 0 {
		return nil
	}
	emptyMask := Mask{}
	idx, ok := w.archetypes.maskToArcIndex[emptyMask]
	if !ok {
		panic("lazyquery: empty archetype not found")
	}
	a := w.archetypes.archetypes[idx]
	if a.size+count > a.capacity {
		w.growArchetype(a, a.size+count)
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = w.createEntity(a)
	}
	return ents
}

// RemoveEntity removes a single entity.
func (w *World) RemoveEntity(e Entity) {
	if !w.IsValid(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	a := w.archetypes.archetypes[meta.archetypeIndex]
	w.removeFromArchetype(a, meta)
	meta.archetypeIndex = -1
	meta.index = -1
	meta.version = 0
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
	w.mutationVersion++
}

// RemoveEntities removes a batch of entities.
func (w *World) RemoveEntities(ents []Entity) {
	for _, e := range ents {
		w.RemoveEntity(e)
	}
}

// removeFromArchetype removes the entity's row via swap-remove without freeing
// the ID or invalidating the version. Tick lanes move with their rows.
func (w *World) removeFromArchetype(a *Archetype, meta *entityMeta) {
	idx := meta.index
	lastIdx := a.size - 1
	if idx < lastIdx {
		moved := a.entities[lastIdx]
		a.entities[idx] = moved
		for _, cid := range a.compOrder {
			size := a.compSizes[cid]
			src := unsafe.Add(a.basePtrs[cid], uintptr(lastIdx)*size)
			dst := unsafe.Add(a.basePtrs[cid], uintptr(idx)*size)
			memCopy(dst, src, size)
			a.ticks[cid][idx] = a.ticks[cid][lastIdx]
		}
		w.entities.metas[moved.ID].index = idx
	}
	a.size--
	w.mutationVersion++
}

// memCopy copies size bytes from src to dst using built-in copy for performance.
func memCopy(dst, src unsafe.Pointer, size uintptr) {
	if size == 0 {
		return
	}
	dstBytes := unsafe.Slice((*byte)(dst), size)
	srcBytes := unsafe.Slice((*byte)(src), size)
	copy(dstBytes, srcBytes)
}
