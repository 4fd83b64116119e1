package lazyquery

import (
	"reflect"
	"unsafe"
)

// column is the per-archetype bound fetch state for one component: the base
// pointer of its data column, its changed-tick lane, and the change-detection
// window of the current pass. It is rebuilt on every BindArchetype call and
// both capability variants of a descriptor pair share one instance.
type column struct {
	base   unsafe.Pointer
	ticks  []uint32
	window TickWindow
	size   uintptr
	id     uint8
}

func (c *column) init(w *World, t reflect.Type) {
	c.id = w.getCompTypeID(t)
	c.size = t.Size()
}

func (c *column) bind(a *Archetype, window TickWindow) {
	c.base = a.basePtrs[c.id]
	c.ticks = a.ticks[c.id]
	c.window = window
}

func (c *column) ptr(row int) unsafe.Pointer {
	return unsafe.Add(c.base, uintptr(row)*c.size)
}

// Ref fetches a shared borrow of component T. The returned pointer must be
// treated as read-only; writing through it bypasses both the declared access
// set and change detection.
type Ref[T any] struct {
	col *column
}

// NewRef creates a shared-borrow descriptor for component T.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{col: &column{}}
}

func (r *Ref[T]) InitState(w *World) {
	r.col.init(w, reflect.TypeOf((*T)(nil)).Elem())
}

func (r *Ref[T]) DeclareAccess(set *AccessSet) {
	set.AddRead(r.col.id)
}

func (r *Ref[T]) MatchesArchetype(mask Mask) bool {
	return mask.ContainsBit(r.col.id)
}

func (r *Ref[T]) BindArchetype(a *Archetype, window TickWindow) {
	r.col.bind(a, window)
}

func (r *Ref[T]) FetchRow(_ Entity, row int) *T {
	return (*T)(r.col.ptr(row))
}

func (r *Ref[T]) readOnly() {}

// Mut fetches an exclusive borrow of component T, wrapped in a MutRef that
// stamps the row's changed tick on writes. At most one MutRef per row may be
// live at a time; fetching the same row again re-borrows the same cell.
type Mut[T any] struct {
	col *column
}

// NewMut creates an exclusive-borrow descriptor for component T.
func NewMut[T any]() *Mut[T] {
	return &Mut[T]{col: &column{}}
}

func (m *Mut[T]) InitState(w *World) {
	m.col.init(w, reflect.TypeOf((*T)(nil)).Elem())
}

func (m *Mut[T]) DeclareAccess(set *AccessSet) {
	set.AddWrite(m.col.id)
}

func (m *Mut[T]) MatchesArchetype(mask Mask) bool {
	return mask.ContainsBit(m.col.id)
}

func (m *Mut[T]) BindArchetype(a *Archetype, window TickWindow) {
	m.col.bind(a, window)
}

func (m *Mut[T]) FetchRow(_ Entity, row int) MutRef[T] {
	return MutRef[T]{
		value:  (*T)(m.col.ptr(row)),
		tick:   &m.col.ticks[row],
		window: m.col.window,
	}
}

// ReadOnlyForm returns a Ref over the same column state. Binding either
// descriptor binds both.
func (m *Mut[T]) ReadOnlyForm() ReadOnlyFetch[*T] {
	return &Ref[T]{col: m.col}
}

// MutRef is an exclusive borrow of a value of type T together with the
// change-detection bookkeeping of the storage cell it came from. Writes
// through Set or Update stamp the cell with the pass's ThisRun tick; reads
// do not.
type MutRef[T any] struct {
	value  *T
	tick   *uint32
	window TickWindow
}

// Get returns a copy of the borrowed value without marking it changed.
func (m MutRef[T]) Get() T {
	return *m.value
}

// Set replaces the borrowed value and marks the cell changed.
func (m MutRef[T]) Set(v T) {
	*m.value = v
	*m.tick = m.window.ThisRun
}

// Update mutates the borrowed value in place and marks the cell changed.
func (m MutRef[T]) Update(f func(*T)) {
	f(m.value)
	*m.tick = m.window.ThisRun
}

// IsChanged reports whether the cell was written after the window's LastRun,
// i.e. since the previous pass of the owning query.
func (m MutRef[T]) IsChanged() bool {
	return *m.tick > m.window.LastRun
}

// MapMut re-borrows a projection of the borrowed value, keeping the original
// cell's change-detection bookkeeping. project must return a pointer into
// the memory already exclusively held through m; returning a pointer to
// anything else aliases storage the owning descriptor never declared.
func MapMut[T, U any](m MutRef[T], project func(*T) *U) MutRef[U] {
	return MutRef[U]{value: project(m.value), tick: m.tick, window: m.window}
}

// Opt makes a read-only descriptor optional: it matches every archetype and
// produces Option items whose Present flag reports whether the wrapped
// descriptor had columns to bind in the current archetype. Access is the
// wrapped descriptor's, unchanged - optionality affects matching, never the
// set of storage touched.
type Opt[T any] struct {
	from  ReadOnlyFetch[T]
	bound bool
}

// NewOpt wraps a read-only descriptor in optional presence.
func NewOpt[T any](from ReadOnlyFetch[T]) *Opt[T] {
	return &Opt[T]{from: from}
}

func (o *Opt[T]) InitState(w *World) {
	o.from.InitState(w)
}

func (o *Opt[T]) DeclareAccess(set *AccessSet) {
	o.from.DeclareAccess(set)
}

func (o *Opt[T]) MatchesArchetype(Mask) bool {
	return true
}

func (o *Opt[T]) BindArchetype(a *Archetype, window TickWindow) {
	o.bound = o.from.MatchesArchetype(a.Mask())
	if o.bound {
		o.from.BindArchetype(a, window)
	}
}

func (o *Opt[T]) FetchRow(e Entity, row int) Option[T] {
	if !o.bound {
		return Option[T]{}
	}
	return Option[T]{Value: o.from.FetchRow(e, row), Present: true}
}

func (o *Opt[T]) readOnly() {}
