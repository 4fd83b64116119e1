package lazyquery

// AccessSet records which components a query descriptor reads and which it
// writes. A host scheduler grants disjoint storage access to concurrently
// running query passes based solely on these sets, so a descriptor that
// under- or over-declares silently breaks race prevention for every system
// using it. Adapters must report exactly their wrapped descriptor's set.
type AccessSet struct {
	reads  Mask
	writes Mask
}

// AddRead declares shared (read-only) access to the component ID.
func (s *AccessSet) AddRead(id uint8) {
	s.reads.Set(id)
}

// AddWrite declares exclusive (read-write) access to the component ID.
func (s *AccessSet) AddWrite(id uint8) {
	s.writes.Set(id)
}

// Reads reports whether the set declares shared access to the component ID.
func (s *AccessSet) Reads(id uint8) bool {
	return s.reads.ContainsBit(id)
}

// Writes reports whether the set declares exclusive access to the component ID.
func (s *AccessSet) Writes(id uint8) bool {
	return s.writes.ContainsBit(id)
}

// ConflictsWith reports whether two declarations cannot run concurrently:
// either set writing a component the other reads or writes is a conflict.
// Two read-only sets never conflict.
func (s *AccessSet) ConflictsWith(other *AccessSet) bool {
	if s.writes.Intersects(other.reads) || s.writes.Intersects(other.writes) {
		return true
	}
	return other.writes.Intersects(s.reads)
}

// Equal reports whether both declarations cover the same components with the
// same capability.
func (s *AccessSet) Equal(other *AccessSet) bool {
	return s.reads == other.reads && s.writes == other.writes
}
