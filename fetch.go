// Package lazyquery provides composable query views for an archetype-based
// Entity-Component-System. A view wraps an existing query descriptor and
// transforms the per-row item it produces - copying it out, cloning it,
// dereferencing a wrapper component, or substituting a default or constant
// when the component is absent - without touching the descriptor's access
// declaration or its per-archetype binding machinery. Views are descriptors
// themselves, so they nest freely.
package lazyquery

// TickWindow is the change-detection window for one query pass. LastRun is
// the world tick of the previous pass of the same query, ThisRun the tick of
// the current one. Descriptors forward the window to their column bindings
// unmodified; only the host storage interprets it.
type TickWindow struct {
	LastRun uint32
	ThisRun uint32
}

// Descriptor is the item-type-independent half of the fetch protocol. A
// descriptor resolves its component state once against a world, reports its
// component access, and binds column storage one archetype at a time.
//
// The binding lifecycle for one query pass is: InitState (once, at query
// construction), then per matching archetype a BindArchetype call followed by
// any number of FetchRow calls for rows of that archetype. Nothing is
// retained across passes beyond the resolved component state.
type Descriptor interface {
	// InitState resolves component identities against the world. It is
	// called once before any other method.
	InitState(w *World)
	// DeclareAccess reports every component the descriptor reads or writes.
	// Wrapping descriptors forward this verbatim; augmenting the wrapped
	// set breaks the host's conflict detection.
	DeclareAccess(set *AccessSet)
	// MatchesArchetype reports whether the descriptor can produce items for
	// archetypes with the given component mask.
	MatchesArchetype(mask Mask) bool
	// BindArchetype binds column storage for one archetype. The window is
	// the change-detection window of the current pass, forwarded as-is.
	BindArchetype(a *Archetype, window TickWindow)
}

// Fetch is a query descriptor producing one item of type T per entity row.
// The item borrows from the bound archetype and is valid until the next
// BindArchetype call or world mutation, whichever comes first.
type Fetch[T any] interface {
	Descriptor
	// FetchRow produces the item for one entity row of the bound archetype.
	FetchRow(e Entity, row int) T
}

// ReadOnlyFetch marks descriptors that never write component storage. The
// host may run a read-only descriptor concurrently with any other read-only
// access to the same components. The marker method is unexported: read-only
// capability cannot be claimed from outside the package, only derived from
// read-only building blocks via NewAdapter.
type ReadOnlyFetch[T any] interface {
	Fetch[T]
	readOnly()
}

// MutableFetch is a descriptor whose item may grant exclusive access to
// component storage. Every mutable descriptor exposes a read-only
// counterpart over the very same bound state, so callers that only need
// shared access can use the narrower capability without re-deriving fetch
// logic. RO is the counterpart's item type.
type MutableFetch[T, RO any] interface {
	Fetch[T]
	// ReadOnlyForm returns the read-only counterpart. Binding either
	// descriptor binds both: they share column state.
	ReadOnlyForm() ReadOnlyFetch[RO]
}

// Option holds the item of an optional fetch: Present reports whether the
// underlying descriptor had a column to fetch from.
type Option[T any] struct {
	Value   T
	Present bool
}

// Cloner is the capability for component types that can duplicate themselves.
// Clone must return a value independent of the receiver.
type Cloner[T any] interface {
	Clone() T
}

// Defaulter is the capability for item types with a declared default value,
// produced when a component is absent from an entity.
type Defaulter[T any] interface {
	Default() T
}

// DerefPtr is the capability for wrapper components exposing a shared borrow
// of their inner value. Deref must return a pointer into the receiver, not a
// copy, so that dereferencing views borrow storage rather than duplicate it.
type DerefPtr[T, Target any] interface {
	*T
	Deref() *Target
}

// DerefMutPtr extends DerefPtr with an exclusive borrow of the inner value.
// DerefMut must return a pointer into the same memory already exclusively
// held through the receiver; returning anything else would alias storage the
// descriptor never declared.
type DerefMutPtr[T, Target any] interface {
	DerefPtr[T, Target]
	DerefMut() *Target
}

// ScalarType constrains the constant-substitution views to fixed-width and
// native-width scalars. ~int32 covers rune and ~uint8 covers byte.
type ScalarType interface {
	~bool | ~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}
