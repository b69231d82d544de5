package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_TieBreakByInsertionOrder(t *testing.T) {
	f := NewFrontier[string]()
	f.Insert("A", 5)
	f.Insert("B", 2)
	f.Insert("C", 2)

	var got []string
	for f.Len() > 0 {
		item, _, err := f.ExtractMin()
		require.NoError(t, err)
		got = append(got, item)
	}

	assert.Equal(t, []string{"B", "C", "A"}, got)
}

func TestFrontier_ExtractMinEmpty(t *testing.T) {
	f := NewFrontier[int]()

	_, _, err := f.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyFrontier)

	f.Insert(1, 1)
	_, _, err = f.ExtractMin()
	require.NoError(t, err)

	_, _, err = f.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyFrontier)
}

func TestFrontier_DuplicatesAreKept(t *testing.T) {
	f := NewFrontier[string]()
	f.Insert("A", 3)
	f.Insert("A", 1)
	f.Insert("A", 3)

	require.Equal(t, 3, f.Len())

	priorities := []float64{}
	for f.Len() > 0 {
		item, priority, err := f.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, "A", item)
		priorities = append(priorities, priority)
	}
	assert.Equal(t, []float64{1, 3, 3}, priorities)
}

func TestFrontier_OrderingLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		f := NewFrontier[int]()
		n := 1 + rng.Intn(200)
		for i := 0; i < n; i++ {
			// Few distinct priorities so ties are common
			f.Insert(i, float64(rng.Intn(10)))
		}

		lastPriority := -1.0
		lastItem := -1
		for f.Len() > 0 {
			item, priority, err := f.ExtractMin()
			require.NoError(t, err)

			require.GreaterOrEqual(t, priority, lastPriority, "priorities must be non-decreasing")
			if priority == lastPriority {
				require.Greater(t, item, lastItem, "equal priorities must come out in insertion order")
			}
			lastPriority, lastItem = priority, item
		}
	}
}

func TestFrontier_Reset(t *testing.T) {
	f := NewFrontier[string]()
	f.Insert("A", 1)
	f.Insert("B", 1)
	f.Reset()

	assert.Equal(t, 0, f.Len())

	f.Insert("C", 4)
	f.Insert("D", 4)
	item, _, err := f.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, "C", item)
}
