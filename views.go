package lazyquery

// Copied produces the component value itself rather than a borrow of it.
// The value is a shallow copy; mutating it does not touch storage.
func Copied[T any]() *Adapter[*T, T] {
	return NewAdapter[*T, T](NewRef[T](), func(p *T) T {
		return *p
	})
}

// Cloned produces an independent duplicate of the component, made through
// its Clone capability. Use it over Copied for components whose shallow copy
// would share internals with storage (slices, maps).
func Cloned[T Cloner[T]]() *Adapter[*T, T] {
	return NewAdapter[*T, T](NewRef[T](), func(p *T) T {
		return (*p).Clone()
	})
}

// AsDeref produces a shared borrow of the wrapper component's inner value.
func AsDeref[T, Target any, PT DerefPtr[T, Target]]() *Adapter[*T, *Target] {
	return NewAdapter[*T, *Target](NewRef[T](), func(p *T) *Target {
		return PT(p).Deref()
	})
}

// AsDerefMut produces an exclusive borrow of the wrapper component's inner
// value. The projection re-borrows through DerefMut and keeps the wrapper's
// change-detection cell, so writes to the inner value mark the component
// changed. Its read-only form is the matching AsDeref view over the same
// column state.
func AsDerefMut[T, Target any, PT DerefMutPtr[T, Target]]() *AdapterMut[MutRef[T], MutRef[Target], *Target] {
	mu := NewMut[T]()
	ro := NewAdapter[*T, *Target](mu.ReadOnlyForm(), func(p *T) *Target {
		return PT(p).Deref()
	})
	return NewAdapterMut[MutRef[T], MutRef[Target], *Target](mu,
		func(m MutRef[T]) MutRef[Target] {
			return MapMut(m, func(p *T) *Target { return PT(p).DerefMut() })
		}, ro)
}

// AsDerefCopied produces a copy of the wrapper component's dereferenced
// value. The wrapper itself is never copied, only its inner value.
func AsDerefCopied[T, Target any, PT DerefPtr[T, Target]]() *Adapter[*T, Target] {
	return NewAdapter[*T, Target](NewRef[T](), func(p *T) Target {
		return *PT(p).Deref()
	})
}

// AsDerefCloned produces a clone of the wrapper component's dereferenced
// value. The inner value needs the Clone capability, the wrapper does not.
func AsDerefCloned[T any, Target Cloner[Target], PT DerefPtr[T, Target]]() *Adapter[*T, Target] {
	return NewAdapter[*T, Target](NewRef[T](), func(p *T) Target {
		return (*PT(p).Deref()).Clone()
	})
}

// OrDefault substitutes the item type's declared default when the wrapped
// descriptor has nothing to fetch. A present component passes through
// untransformed; an absent one yields Default() of the item type, stable
// across repeated fetches.
//
// The item type must be an owned value for the blanket Defaulter constraint
// to be satisfiable; for borrow-producing descriptors there is no automatic
// default. A consumer can still close that gap manually with a
// pointer-receiver Default returning a package-level sentinel:
//
//	var fallback = Settings{Level: 3}
//
//	func (*Settings) Default() *Settings { return &fallback }
//
//	view := lazyquery.OrDefault[*Settings](lazyquery.NewRef[Settings]())
func OrDefault[T Defaulter[T]](from ReadOnlyFetch[T]) *Adapter[Option[T], T] {
	return NewAdapter[Option[T], T](NewOpt[T](from), func(o Option[T]) T {
		if o.Present {
			return o.Value
		}
		var zero T
		return zero.Default()
	})
}

// CopiedOrDefault returns a copy of the component, or its default when absent.
func CopiedOrDefault[T Defaulter[T]]() *Adapter[Option[T], T] {
	return OrDefault[T](Copied[T]())
}

// ClonedOrDefault returns a clone of the component, or its default when absent.
func ClonedOrDefault[T interface {
	Cloner[T]
	Defaulter[T]
}]() *Adapter[Option[T], T] {
	return OrDefault[T](Cloned[T]())
}

// AsDerefCopiedOrDefault returns a copy of the component's dereferenced
// value, or the default of the dereferenced type when the component is
// absent. If the default should instead come from the component type (whose
// default may differ from its inner value's), see
// AsDerefCopiedOfCopiedOrDefault and AsDerefCopiedOfClonedOrDefault.
func AsDerefCopiedOrDefault[T any, Target Defaulter[Target], PT DerefPtr[T, Target]]() *Adapter[Option[Target], Target] {
	return OrDefault[Target](AsDerefCopied[T, Target, PT]())
}

// AsDerefClonedOrDefault returns a clone of the component's dereferenced
// value, or the default of the dereferenced type when the component is
// absent.
func AsDerefClonedOrDefault[T any, Target interface {
	Cloner[Target]
	Defaulter[Target]
}, PT DerefPtr[T, Target]]() *Adapter[Option[Target], Target] {
	return OrDefault[Target](AsDerefCloned[T, Target, PT]())
}

// AsDerefCopiedOfClonedOrDefault first clones the component or takes the
// component type's default, then dereferences that value and copies it.
// Useful when the component's declared default differs from the default of
// the dereferenced type: an absent component yields the deref of the
// component default, not the zero of the inner type.
func AsDerefCopiedOfClonedOrDefault[T interface {
	Cloner[T]
	Defaulter[T]
}, Target any, PT DerefPtr[T, Target]]() *Adapter[Option[*T], Target] {
	return NewAdapter[Option[*T], Target](NewOpt[*T](NewRef[T]()), func(o Option[*T]) Target {
		var v T
		if o.Present {
			v = (*o.Value).Clone()
		} else {
			v = v.Default()
		}
		return *PT(&v).Deref()
	})
}

// AsDerefCopiedOfCopiedOrDefault first copies the component or takes the
// component type's default, then dereferences that value and copies it.
func AsDerefCopiedOfCopiedOrDefault[T Defaulter[T], Target any, PT DerefPtr[T, Target]]() *Adapter[Option[*T], Target] {
	return NewAdapter[Option[*T], Target](NewOpt[*T](NewRef[T]()), func(o Option[*T]) Target {
		var v T
		if o.Present {
			v = *o.Value
		} else {
			v = v.Default()
		}
		return *PT(&v).Deref()
	})
}

// AsDerefClonedOfClonedOrDefault first clones the component or takes the
// component type's default, then dereferences that value and clones it.
func AsDerefClonedOfClonedOrDefault[T interface {
	Cloner[T]
	Defaulter[T]
}, Target Cloner[Target], PT DerefPtr[T, Target]]() *Adapter[Option[*T], Target] {
	return NewAdapter[Option[*T], Target](NewOpt[*T](NewRef[T]()), func(o Option[*T]) Target {
		var v T
		if o.Present {
			v = (*o.Value).Clone()
		} else {
			v = v.Default()
		}
		return (*PT(&v).Deref()).Clone()
	})
}
