package lazyquery

// Query drives a fetch descriptor across all matching archetypes of a world.
// It is the single-threaded execution surface: a host scheduler decides which
// queries may run concurrently by comparing their Access sets, then each
// query iterates its rows synchronously.
//
// Example:
//
//	q := lazyquery.NewQuery(&world, lazyquery.Copied[Position]())
//	for q.Next() {
//	    pos := q.Item()
//	    // ... process pos
//	}
type Query[T any] struct {
	world    *World
	desc     Fetch[T]
	matching []*Archetype
	cur      *Archetype
	access   AccessSet
	window   TickWindow
	lastRun  uint32
	archVer  uint32 // archetypeVersion the matching list was built against
	archIdx  int
	row      int
	curEnt   Entity
}

// NewQuery creates a query over the given descriptor. The descriptor's state
// is resolved against the world and its component access recorded once; the
// query is ready to iterate.
//
// Parameters:
//   - w: The World to query.
//   - desc: The fetch descriptor producing one item per entity row.
//
// Returns:
//   - A pointer to the newly created Query[T].
func NewQuery[T any](w *World, desc Fetch[T]) *Query[T] {
	q := &Query[T]{world: w, desc: desc}
	desc.InitState(w)
	desc.DeclareAccess(&q.access)
	q.updateMatching()
	q.Reset()
	return q
}

// Access returns the component access the descriptor declared. A host
// scheduler reads this to detect conflicts between concurrently scheduled
// queries; the set never changes after construction.
func (q *Query[T]) Access() *AccessSet {
	return &q.access
}

// updateMatching rebuilds the list of archetypes the descriptor matches.
func (q *Query[T]) updateMatching() {
	q.matching = q.matching[:0]
	for _, a := range q.world.archetypes.archetypes {
		if q.desc.MatchesArchetype(a.mask) {
			q.matching = append(q.matching, a)
		}
	}
	q.archVer = q.world.archetypes.archetypeVersion
}

// Reset rewinds the query to the beginning and opens a new change-detection
// window: the world clock advances, LastRun becomes the tick of the previous
// pass. If new archetypes appeared since the last pass, the matching list is
// rebuilt.
func (q *Query[T]) Reset() {
	if q.archVer != q.world.archetypes.archetypeVersion {
		q.updateMatching()
	}
	q.world.tick++
	q.window = TickWindow{LastRun: q.lastRun, ThisRun: q.world.tick}
	q.lastRun = q.world.tick
	q.archIdx = -1
	q.cur = nil
	q.row = -1
}

// Next advances to the next entity row, binding the descriptor to each new
// archetype as iteration enters it. It returns false when the iteration is
// complete. This method must be called before Item or Entity.
func (q *Query[T]) Next() bool {
	q.row++
	if q.cur != nil && q.row < q.cur.size {
		q.curEnt = q.cur.entities[q.row]
		return true
	}
	for {
		q.archIdx++
		if q.archIdx >= len(q.matching) {
			return false
		}
		a := q.matching[q.archIdx]
		if a.size == 0 {
			continue
		}
		q.desc.BindArchetype(a, q.window)
		q.cur = a
		q.row = 0
		q.curEnt = a.entities[0]
		return true
	}
}

// Item produces the descriptor's item for the current row. Each call fetches
// anew; for mutable descriptors, call it once per row and reuse the borrow.
func (q *Query[T]) Item() T {
	return q.desc.FetchRow(q.curEnt, q.row)
}

// Entity returns the current entity in the iteration. This should only be
// called after Next has returned true.
func (q *Query[T]) Entity() Entity {
	return q.curEnt
}
