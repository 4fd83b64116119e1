package lazyquery

// Adapter wraps a read-only descriptor and transforms every item it fetches.
// State resolution, access declaration, archetype matching, and column
// binding are those of the wrapped descriptor, forwarded verbatim; the
// transformation happens at the final per-row fetch step and nowhere else.
// An Adapter is itself a read-only descriptor, so adapters nest freely.
//
// The transformation must be total over every item the wrapped descriptor
// can produce, and pure: it may only narrow or project the fetched item,
// never reach into storage the wrapped descriptor did not declare.
type Adapter[In, Out any] struct {
	from   ReadOnlyFetch[In]
	modify func(In) Out
}

// NewAdapter builds a read-only adapter over `from` with the given
// transformation. All concrete views in this package are instances of it.
func NewAdapter[In, Out any](from ReadOnlyFetch[In], modify func(In) Out) *Adapter[In, Out] {
	return &Adapter[In, Out]{from: from, modify: modify}
}

func (ad *Adapter[In, Out]) InitState(w *World) {
	ad.from.InitState(w)
}

func (ad *Adapter[In, Out]) DeclareAccess(set *AccessSet) {
	ad.from.DeclareAccess(set)
}

func (ad *Adapter[In, Out]) MatchesArchetype(mask Mask) bool {
	return ad.from.MatchesArchetype(mask)
}

func (ad *Adapter[In, Out]) BindArchetype(a *Archetype, window TickWindow) {
	ad.from.BindArchetype(a, window)
}

func (ad *Adapter[In, Out]) FetchRow(e Entity, row int) Out {
	return ad.modify(ad.from.FetchRow(e, row))
}

func (ad *Adapter[In, Out]) readOnly() {}

// AdapterMut is the mutable-capable counterpart of Adapter: the wrapped
// descriptor's item may be an exclusive borrow, and the transformation may
// produce a mutable projection of it. The transformation is only permitted
// to re-borrow memory already exclusively held by the underlying fetch
// (see MapMut); widening or aliasing it breaks the soundness of the whole
// layer.
//
// Every AdapterMut carries a read-only counterpart built over the same
// column state as the wrapped descriptor, satisfying the duality contract of
// MutableFetch: binding either form binds both.
type AdapterMut[In, Out, RO any] struct {
	from     Fetch[In]
	modify   func(In) Out
	readOnly ReadOnlyFetch[RO]
}

// NewAdapterMut builds a mutable adapter over `from`. readOnlyForm must be a
// read-only descriptor sharing `from`'s column state; the mutable views in
// this package derive it from the wrapped descriptor's own ReadOnlyForm.
func NewAdapterMut[In, Out, RO any](from Fetch[In], modify func(In) Out, readOnlyForm ReadOnlyFetch[RO]) *AdapterMut[In, Out, RO] {
	return &AdapterMut[In, Out, RO]{from: from, modify: modify, readOnly: readOnlyForm}
}

func (ad *AdapterMut[In, Out, RO]) InitState(w *World) {
	ad.from.InitState(w)
}

func (ad *AdapterMut[In, Out, RO]) DeclareAccess(set *AccessSet) {
	ad.from.DeclareAccess(set)
}

func (ad *AdapterMut[In, Out, RO]) MatchesArchetype(mask Mask) bool {
	return ad.from.MatchesArchetype(mask)
}

func (ad *AdapterMut[In, Out, RO]) BindArchetype(a *Archetype, window TickWindow) {
	ad.from.BindArchetype(a, window)
}

func (ad *AdapterMut[In, Out, RO]) FetchRow(e Entity, row int) Out {
	return ad.modify(ad.from.FetchRow(e, row))
}

// ReadOnlyForm returns the read-only counterpart sharing this adapter's
// bound state.
func (ad *AdapterMut[In, Out, RO]) ReadOnlyForm() ReadOnlyFetch[RO] {
	return ad.readOnly
}
