package lazyquery_test

import (
	"testing"

	"github.com/edwinsyarief/lazyquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// declaredAccess runs the state-init and access-declaration steps of a
// descriptor against a fresh world and returns what it declared.
func declaredAccess(t *testing.T, w *lazyquery.World, desc lazyquery.Descriptor) *lazyquery.AccessSet {
	t.Helper()
	desc.InitState(w)
	var set lazyquery.AccessSet
	desc.DeclareAccess(&set)
	return &set
}

func TestAdapterAccessTransparency(t *testing.T) {
	// each view must declare exactly the access of the descriptor it wraps
	world := lazyquery.NewWorld(4)

	base := declaredAccess(t, &world, lazyquery.NewRef[Wrapped]())
	mutBase := declaredAccess(t, &world, lazyquery.NewMut[Wrapped]())

	views := map[string]lazyquery.Descriptor{
		"Copied":                         lazyquery.Copied[Wrapped](),
		"Cloned":                         lazyquery.Cloned[Wrapped](),
		"AsDeref":                        lazyquery.AsDeref[Wrapped, int32, *Wrapped](),
		"AsDerefCopied":                  lazyquery.AsDerefCopied[Wrapped, int32, *Wrapped](),
		"CopiedOrDefault":                lazyquery.CopiedOrDefault[Wrapped](),
		"ClonedOrDefault":                lazyquery.ClonedOrDefault[Wrapped](),
		"OrInt32":                        lazyquery.OrInt32[Wrapped, *Wrapped](0),
		"AsDerefCopiedOfClonedOrDefault": lazyquery.AsDerefCopiedOfClonedOrDefault[Wrapped, int32, *Wrapped](),
	}
	for name, v := range views {
		got := declaredAccess(t, &world, v)
		assert.True(t, base.Equal(got), "%s must forward read access untouched", name)
	}

	mut := declaredAccess(t, &world, lazyquery.AsDerefMut[Wrapped, int32, *Wrapped]())
	assert.True(t, mutBase.Equal(mut), "AsDerefMut must forward write access untouched")
	assert.False(t, base.Equal(mut), "read and write declarations differ")
}

func TestAdapterMatchesLikeWrapped(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Wrapped{value: 1})
	e2 := world.CreateEntity()
	lazyquery.SetComponent(&world, e2, Position{})

	ref := lazyquery.NewRef[Wrapped]()
	view := lazyquery.Copied[Wrapped]()
	ref.InitState(&world)
	view.InitState(&world)

	var withW, withoutW lazyquery.Mask
	withW.Set(lazyquery.TypeID[Wrapped](&world))
	withoutW.Set(lazyquery.TypeID[Position](&world))

	assert.Equal(t, ref.MatchesArchetype(withW), view.MatchesArchetype(withW))
	assert.Equal(t, ref.MatchesArchetype(withoutW), view.MatchesArchetype(withoutW))
	assert.False(t, view.MatchesArchetype(withoutW))
}

func TestAdapterFetchAppliesModify(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Health{Current: 40, Max: 100})

	ratio := lazyquery.NewAdapter[*Health, float64](lazyquery.NewRef[Health](), func(h *Health) float64 {
		return float64(h.Current) / float64(h.Max)
	})
	q := lazyquery.NewQuery(&world, ratio)
	require.True(t, q.Next())
	assert.InDelta(t, 0.4, q.Item(), 1e-9)
	assert.False(t, q.Next())
}

func TestAccessConflicts(t *testing.T) {
	world := lazyquery.NewWorld(4)

	read := declaredAccess(t, &world, lazyquery.Copied[Wrapped]())
	read2 := declaredAccess(t, &world, lazyquery.AsDeref[Wrapped, int32, *Wrapped]())
	write := declaredAccess(t, &world, lazyquery.AsDerefMut[Wrapped, int32, *Wrapped]())
	other := declaredAccess(t, &world, lazyquery.Copied[Position]())

	assert.False(t, read.ConflictsWith(read2), "two readers of one component coexist")
	assert.True(t, read.ConflictsWith(write), "reader conflicts with writer")
	assert.True(t, write.ConflictsWith(read), "conflict is symmetric")
	assert.True(t, write.ConflictsWith(write), "two writers conflict")
	assert.False(t, write.ConflictsWith(other), "disjoint components never conflict")
}

func TestMutReadOnlyFormSharesState(t *testing.T) {
	// the read-only form of a mutable view observes writes made through the
	// mutable view within the same pass, because both share bound columns
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Wrapped{value: 1})

	mut := lazyquery.AsDerefMut[Wrapped, int32, *Wrapped]()
	q := lazyquery.NewQuery(&world, lazyquery.Fetch[lazyquery.MutRef[int32]](mut))
	ro := mut.ReadOnlyForm()

	require.True(t, q.Next())
	q.Item().Set(42)

	got := ro.FetchRow(e, 0)
	assert.Equal(t, int32(42), *got)
}

func TestAdapterMutFetchAndReadOnlyForm(t *testing.T) {
	world := lazyquery.NewWorld(4)
	e := world.CreateEntity()
	lazyquery.SetComponent(&world, e, Frozen{on: false})

	view := lazyquery.AsDerefMut[Frozen, bool, *Frozen]()
	q := lazyquery.NewQuery(&world, lazyquery.Fetch[lazyquery.MutRef[bool]](view))

	require.True(t, q.Next())
	item := q.Item()
	assert.False(t, item.Get())
	item.Set(true)

	f := lazyquery.GetComponent[Frozen](&world, e)
	require.NotNil(t, f)
	got := *(*f).Deref()
	assert.True(t, got, "write through the deref view lands in storage")
}
