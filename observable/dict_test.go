package observable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NixonInnes/gosmorg/observable"
)

func newStringDict(t *testing.T, initial map[string]int) *observable.Dict[string, int] {
	t.Helper()

	dict, err := observable.NewDict(initial)
	require.NoError(t, err)

	return dict
}

func Test_Dict_InitialContentsAreCopied(t *testing.T) {
	initial := map[string]int{"a": 1}
	dict := newStringDict(t, initial)

	initial["a"] = 99

	value, ok := dict.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)
}

func Test_Dict_MutationsClassifyIntoExactlyOneType(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(d *observable.Dict[string, int]) error
		expectedKind    observable.DictModificationType
		expectedEntries map[string]int
	}{
		{
			name:            "set new key",
			mutate:          func(d *observable.Dict[string, int]) error { d.Set("c", 3); return nil },
			expectedKind:    observable.DictModificationUpdated,
			expectedEntries: map[string]int{"c": 3},
		},
		{
			name:            "set existing key",
			mutate:          func(d *observable.Dict[string, int]) error { d.Set("a", 9); return nil },
			expectedKind:    observable.DictModificationUpdated,
			expectedEntries: map[string]int{"a": 9},
		},
		{
			name:            "delete",
			mutate:          func(d *observable.Dict[string, int]) error { return d.Delete("a") },
			expectedKind:    observable.DictModificationRemove,
			expectedEntries: map[string]int{"a": 1},
		},
		{
			name: "pop",
			mutate: func(d *observable.Dict[string, int]) error {
				_, _ = d.Pop("b")
				return nil
			},
			expectedKind:    observable.DictModificationRemove,
			expectedEntries: map[string]int{"b": 2},
		},
		{
			name:            "merge",
			mutate:          func(d *observable.Dict[string, int]) error { d.Merge(map[string]int{"x": 7, "y": 8}); return nil },
			expectedKind:    observable.DictModificationExtend,
			expectedEntries: map[string]int{"x": 7, "y": 8},
		},
		{
			name:            "clear",
			mutate:          func(d *observable.Dict[string, int]) error { d.Clear(); return nil },
			expectedKind:    observable.DictModificationClear,
			expectedEntries: map[string]int{"a": 1, "b": 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dict := newStringDict(t, map[string]int{"a": 1, "b": 2})

			var changes []observable.DictChange[string, int]
			require.NoError(t, dict.AddObserver(observable.OnValue(func(v any) {
				changes = append(changes, v.(observable.DictChange[string, int]))
			})))

			require.NoError(t, tc.mutate(dict))

			require.Len(t, changes, 1)
			assert.Equal(t, tc.expectedKind, changes[0].Kind)
			assert.Equal(t, tc.expectedEntries, changes[0].Entries)
		})
	}
}

func Test_Dict_CatchAllFiresBeforeTypeSpecific(t *testing.T) {
	dict := newStringDict(t, nil)

	var order []string
	require.NoError(t, dict.AddObserver(observable.On(func() { order = append(order, "all") })))
	require.NoError(t, dict.AddObserver(
		observable.On(func() { order = append(order, "updated") }),
		observable.DictModificationUpdated,
	))

	dict.Set("a", 1)

	assert.Equal(t, []string{"all", "updated"}, order)
}

func Test_Dict_FailedMutationFiresNothing(t *testing.T) {
	dict := newStringDict(t, map[string]int{"a": 1})

	calls := 0
	require.NoError(t, dict.AddObserver(observable.On(func() { calls++ })))

	assert.ErrorIs(t, dict.Delete("missing"), observable.ErrKeyNotFound)

	_, ok := dict.Pop("missing")
	assert.False(t, ok)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, dict.Len())
}

func Test_Dict_TwoArgObserverReceivesBeforeAfterSnapshots(t *testing.T) {
	dict := newStringDict(t, map[string]int{"a": 1})

	var befores, afters []map[string]int
	require.NoError(t, dict.AddObserver(observable.OnChange(func(old, new any) {
		befores = append(befores, old.(map[string]int))
		afters = append(afters, new.(map[string]int))
	})))

	dict.Set("b", 2)

	require.Len(t, befores, 1)
	assert.Equal(t, map[string]int{"a": 1}, befores[0])
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, afters[0])
}

func Test_Dict_InvalidModificationTypeRejected(t *testing.T) {
	dict := newStringDict(t, nil)

	err := dict.AddObserver(observable.On(func() {}), observable.DictModificationType(-1))
	assert.ErrorIs(t, err, observable.ErrInvalidModificationType)
}

func Test_Dict_PopReturnsRemovedValue(t *testing.T) {
	dict := newStringDict(t, map[string]int{"a": 1})

	value, ok := dict.Pop("a")
	require.True(t, ok)
	assert.Equal(t, 1, value)
	assert.Equal(t, 0, dict.Len())
}

func Test_Dict_ReadsDoNotNotify(t *testing.T) {
	dict := newStringDict(t, map[string]int{"a": 1})

	calls := 0
	require.NoError(t, dict.AddObserver(observable.On(func() { calls++ })))

	_, _ = dict.Get("a")
	_ = dict.Len()
	_ = dict.Items()

	assert.Equal(t, 0, calls)
}
