package lazyquery_test

import (
	"testing"

	"github.com/edwinsyarief/lazyquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrInt32Substitution(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Wrapped{value: 7})

	q := lazyquery.NewQuery(&world, lazyquery.OrInt32[Wrapped, *Wrapped](-1))
	got := collect(q)

	require.Len(t, got, 2)
	assert.Equal(t, int32(7), got[with], "present component dereferences")
	assert.Equal(t, int32(-1), got[without], "absent component yields the constant")
}

func TestOrBoolSubstitution(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})
	with := world.CreateEntity()
	lazyquery.SetComponent(&world, with, Frozen{on: false})

	// a missing Frozen counts as frozen here, unlike the type's zero value
	q := lazyquery.NewQuery(&world, lazyquery.OrBool[Frozen, *Frozen](true))
	got := collect(q)

	require.Len(t, got, 2)
	assert.False(t, got[with])
	assert.True(t, got[without])
}

func TestOrConstGeneric(t *testing.T) {
	world := lazyquery.NewWorld(4)
	without := world.CreateEntity()
	lazyquery.SetComponent(&world, without, Position{})

	// the named constructors are shorthands over OrConst
	q := lazyquery.NewQuery(&world, lazyquery.OrConst[int32, Wrapped, *Wrapped](9))
	require.True(t, q.Next())
	assert.Equal(t, int32(9), q.Item())
	assert.False(t, q.Next())
}
