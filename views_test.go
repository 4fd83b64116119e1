package lazyquery_test

import (
	"testing"

	"github.com/edwinsyarief/lazyquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a query into a per-entity map.
func collect[T any](q *lazyquery.Query[T]) map[lazyquery.Entity]T {
	out := make(map[lazyquery.Entity]T)
	for q.Next() {
		out[q.Entity()] = q.Item()
	}
	return out
}

func TestCopiedIsIndependent(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Position{X: 1, Y: 2})

	q := lazyquery.NewQuery(&world, lazyquery.Copied[Position]())
	require.True(t, q.Next())
	p := q.Item()
	p.X = 999

	stored := lazyquery.GetComponent[Position](&world, e)
	assert.Equal(t, float32(1), stored.X, "mutating the copy must not touch storage")
}

func TestClonedIsDeep(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Names{list: []string{"a", "b"}})

	q := lazyquery.NewQuery(&world, lazyquery.Cloned[Names]())
	require.True(t, q.Next())
	n := q.Item()
	n.list[0] = "mutated"

	stored := lazyquery.GetComponent[Names](&world, e)
	assert.Equal(t, "a", stored.list[0], "clone must not share slice storage")
}

func TestAsDerefReadsInner(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Wrapped{value: 11})

	q := lazyquery.NewQuery(&world, lazyquery.AsDeref[Wrapped, int32, *Wrapped]())
	require.True(t, q.Next())
	assert.Equal(t, int32(11), *q.Item())

	qc := lazyquery.NewQuery(&world, lazyquery.AsDerefCopied[Wrapped, int32, *Wrapped]())
	require.True(t, qc.Next())
	assert.Equal(t, int32(11), qc.Item())
}

func TestAsDerefMutWriteAndChangeMark(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Wrapped{value: 1})

	view := lazyquery.AsDerefMut[Wrapped, int32, *Wrapped]()
	q := lazyquery.NewQuery(&world, lazyquery.Fetch[lazyquery.MutRef[int32]](view))

	require.True(t, q.Next())
	item := q.Item()
	item.Set(33)
	assert.True(t, item.IsChanged(), "a write marks the component changed")

	w := lazyquery.GetComponent[Wrapped](&world, e)
	assert.Equal(t, int32(33), w.value)

	// Update mutates in place and stamps too
	q.Reset()
	require.True(t, q.Next())
	item = q.Item()
	assert.False(t, item.IsChanged(), "untouched since last pass")
	item.Update(func(v *int32) { *v += 1 })
	assert.True(t, item.IsChanged())
	assert.Equal(t, int32(34), lazyquery.GetComponent[Wrapped](&world, e).value)
}

func TestOrDefaultSubstitution(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Wrapped{value: 7})

	q := lazyquery.NewQuery(&world, lazyquery.CopiedOrDefault[Wrapped]())
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, Wrapped{value: 7}, got[with], "present component passes through")
	assert.Equal(t, Wrapped{value: 20}, got[without], "absent component yields the declared default")

	// the substitution is stable across passes
	q.Reset()
	again := collect(q)
	assert.Equal(t, got, again)
}

func TestClonedOrDefaultIndependence(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Names{list: []string{"x"}})

	q := lazyquery.NewQuery(&world, lazyquery.ClonedOrDefault[Names]())
	require.True(t, q.Next())
	n := q.Item()
	n.list[0] = "mutated"
	assert.Equal(t, "x", lazyquery.GetComponent[Names](&world, e).list[0])
}

func TestAsDerefCopiedOrDefaultUsesTargetDefault(t *testing.T) {
	// the plain deref-or-default family takes the default of the inner type,
	// not the deref of the component's default
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Distance{m: 12})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefCopiedOrDefault[Distance, Meters, *Distance]())
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, Meters(12), got[with])
	assert.Equal(t, Meters(5), got[without], "Meters default, not Distance default")
}

func TestAsDerefCopiedOfClonedOrDefault(t *testing.T) {
	// the Of form defaults the component first, then dereferences: an absent
	// Wrapped yields 20, the inner value of Wrapped's default
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Wrapped{value: 7})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefCopiedOfClonedOrDefault[Wrapped, int32, *Wrapped]())
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, int32(7), got[with])
	assert.Equal(t, int32(20), got[without])
}

func TestAsDerefCopiedOfCopiedOrDefault(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefCopiedOfCopiedOrDefault[Distance, Meters, *Distance]())
	require.True(t, q.Next())
	assert.Equal(t, Meters(99), q.Item(), "deref of the component default")
	assert.False(t, q.Next())
}

func TestAsDerefClonedOfClonedOrDefault(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Labels{set: StringSet{vals: []string{"boss"}}})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefClonedOfClonedOrDefault[Labels, StringSet, *Labels]())
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"boss"}, got[with].vals)
	assert.Equal(t, []string{"default"}, got[without].vals)

	// result is a clone: mutating it leaves storage alone
	s := got[with]
	s.vals[0] = "mutated"
	assert.Equal(t, "boss", lazyquery.GetComponent[Labels](&world, with).set.vals[0])
}

func TestAsDerefCloned(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Labels{set: StringSet{vals: []string{"npc"}}})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefCloned[Labels, StringSet, *Labels]())
	require.True(t, q.Next())
	got := q.Item()
	got.vals[0] = "mutated"
	assert.Equal(t, "npc", lazyquery.GetComponent[Labels](&world, e).set.vals[0])
}

func TestDefaultCompositionOrderAgrees(t *testing.T) {
	// when the inner type's default equals the deref of the component's
	// default, nesting order does not change what absence produces
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Tank{f: 7})

	derefThenDefault := lazyquery.NewQuery(&world, lazyquery.AsDerefCopiedOrDefault[Tank, Fuel, *Tank]())
	a := collect(derefThenDefault)
	defaultThenDeref := lazyquery.NewQuery(&world, lazyquery.AsDerefCopiedOfClonedOrDefault[Tank, Fuel, *Tank]())
	b := collect(defaultThenDeref)

	require.Len(t, a, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, Fuel(20), a[without])
	assert.Equal(t, Fuel(7), a[with])
}

func TestAsDerefClonedOrDefault(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})

	q := lazyquery.NewQuery(&world, lazyquery.AsDerefClonedOrDefault[Labels, StringSet, *Labels]())
	require.True(t, q.Next())
	assert.Equal(t, []string{"inner"}, q.Item().vals, "StringSet default, not Labels default")
	assert.False(t, q.Next())
}

func TestOrDefaultManualBorrowSentinel(t *testing.T) {
	// a pointer-receiver Default returning a package-level sentinel gives
	// borrow-producing descriptors a default too
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Settings{Level: 9})

	q := lazyquery.NewQuery(&world, lazyquery.OrDefault[*Settings](lazyquery.NewRef[Settings]()))
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, 9, got[with].Level)
	assert.Same(t, &defaultSettings, got[without], "absent rows borrow the sentinel")
}
