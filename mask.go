package lazyquery

// Mask represents a set of up to 256 component IDs. It identifies archetypes
// and backs the read/write sets of an AccessSet. Each bit corresponds to a
// component ID, and if the bit is set, the component is part of the set.
type Mask [4]uint64

// Set enables the bit corresponding to the given component ID.
func (m *Mask) Set(bit uint8) {
	i := bit >> 6 // (bit / 64) to find the uint64 index
	o := bit & 63 // (bit % 64) to find the bit offset
	m[i] |= uint64(1) << uint64(o)
}

// Unset disables the bit corresponding to the given component ID.
func (m *Mask) Unset(bit uint8) {
	i := bit >> 6
	o := bit & 63
	m[i] &= ^(uint64(1) << uint64(o))
}

// Contains checks if all the bits set in the `sub` mask are also set in the
// receiver mask `m`. This is used to determine if an archetype's component
// set is a superset of a descriptor's required components.
//
// Parameters:
//   - sub: The mask representing the subset of components to check for.
//
// Returns:
//   - true if the receiver contains all components from the subset, false otherwise.
func (m Mask) Contains(sub Mask) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1] &&
		(m[2]&sub[2]) == sub[2] &&
		(m[3]&sub[3]) == sub[3]
}

// ContainsBit checks if a specific bit is set in the mask.
func (m Mask) ContainsBit(bit uint8) bool {
	i := bit >> 6
	o := bit & 63
	return (m[i] & (uint64(1) << uint64(o))) != 0
}

// Intersects checks if this mask has any bits in common with another mask.
func (m Mask) Intersects(other Mask) bool {
	return (m[0]&other[0] != 0) ||
		(m[1]&other[1] != 0) ||
		(m[2]&other[2] != 0) ||
		(m[3]&other[3] != 0)
}
