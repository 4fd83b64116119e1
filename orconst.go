package lazyquery

// OrConst extracts the scalar behind a wrapper component's Deref capability,
// or produces the given constant when the component is absent. It is the
// generic core of the per-scalar catalog below; value is fixed at view
// construction and never read from storage.
//
// Go has no value-level type parameters, so the constant is a constructor
// argument rather than part of the view's type identity. Two OrConst views
// over the same component with different constants therefore share a type
// but not behavior.
func OrConst[S ScalarType, T any, PT DerefPtr[T, S]](value S) *Adapter[Option[*T], S] {
	return NewAdapter[Option[*T], S](NewOpt[*T](NewRef[T]()), func(o Option[*T]) S {
		if o.Present {
			return *PT(o.Value).Deref()
		}
		return value
	})
}

// The per-scalar constructors cover every fixed-width and native-width
// scalar the host supports. They are thin instantiations of OrConst; rune
// and byte are covered by OrInt32 and OrUint8 respectively but get named
// entries of their own.

// OrBool substitutes value when the wrapper component is absent.
func OrBool[T any, PT DerefPtr[T, bool]](value bool) *Adapter[Option[*T], bool] {
	return OrConst[bool, T, PT](value)
}

// OrRune substitutes value when the wrapper component is absent.
func OrRune[T any, PT DerefPtr[T, rune]](value rune) *Adapter[Option[*T], rune] {
	return OrConst[rune, T, PT](value)
}

// OrInt substitutes value when the wrapper component is absent.
func OrInt[T any, PT DerefPtr[T, int]](value int) *Adapter[Option[*T], int] {
	return OrConst[int, T, PT](value)
}

// OrInt8 substitutes value when the wrapper component is absent.
func OrInt8[T any, PT DerefPtr[T, int8]](value int8) *Adapter[Option[*T], int8] {
	return OrConst[int8, T, PT](value)
}

// OrInt16 substitutes value when the wrapper component is absent.
func OrInt16[T any, PT DerefPtr[T, int16]](value int16) *Adapter[Option[*T], int16] {
	return OrConst[int16, T, PT](value)
}

// OrInt32 substitutes value when the wrapper component is absent.
func OrInt32[T any, PT DerefPtr[T, int32]](value int32) *Adapter[Option[*T], int32] {
	return OrConst[int32, T, PT](value)
}

// OrInt64 substitutes value when the wrapper component is absent.
func OrInt64[T any, PT DerefPtr[T, int64]](value int64) *Adapter[Option[*T], int64] {
	return OrConst[int64, T, PT](value)
}

// OrUint substitutes value when the wrapper component is absent.
func OrUint[T any, PT DerefPtr[T, uint]](value uint) *Adapter[Option[*T], uint] {
	return OrConst[uint, T, PT](value)
}

// OrUint8 substitutes value when the wrapper component is absent.
func OrUint8[T any, PT DerefPtr[T, uint8]](value uint8) *Adapter[Option[*T], uint8] {
	return OrConst[uint8, T, PT](value)
}

// OrUint16 substitutes value when the wrapper component is absent.
func OrUint16[T any, PT DerefPtr[T, uint16]](value uint16) *Adapter[Option[*T], uint16] {
	return OrConst[uint16, T, PT](value)
}

// OrUint32 substitutes value when the wrapper component is absent.
func OrUint32[T any, PT DerefPtr[T, uint32]](value uint32) *Adapter[Option[*T], uint32] {
	return OrConst[uint32, T, PT](value)
}

// OrUint64 substitutes value when the wrapper component is absent.
func OrUint64[T any, PT DerefPtr[T, uint64]](value uint64) *Adapter[Option[*T], uint64] {
	return OrConst[uint64, T, PT](value)
}

// OrUintptr substitutes value when the wrapper component is absent.
func OrUintptr[T any, PT DerefPtr[T, uintptr]](value uintptr) *Adapter[Option[*T], uintptr] {
	return OrConst[uintptr, T, PT](value)
}
