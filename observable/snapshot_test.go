package observable_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NixonInnes/gosmorg/observable"
)

func Test_Object_SnapshotCapturesCurrentStateWithDefaults(t *testing.T) {
	obj := newPersonObject(t)
	require.NoError(t, obj.Set("age", 35))

	snapshot, err := obj.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, observable.SnapshotKindObject, snapshot.Kind)
	assert.Equal(t, obj.ID(), snapshot.Source)
	assert.False(t, snapshot.TakenAt.IsZero())
	require.NoError(t, snapshot.Validate())

	var state map[string]any
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(snapshot.Data, &state))

	assert.Equal(t, float64(35), state["age"])
	assert.Equal(t, "", state["name"], "unwritten property falls back to its default")
}

func Test_List_SnapshotCapturesContents(t *testing.T) {
	list, err := observable.NewList([]int{1, 2, 3})
	require.NoError(t, err)

	snapshot, err := list.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, observable.SnapshotKindList, snapshot.Kind)
	require.NoError(t, snapshot.Validate())
	assert.JSONEq(t, `[1,2,3]`, string(snapshot.Data))
}

func Test_List_SnapshotOfEmptyListIsEmptyArray(t *testing.T) {
	list, err := observable.NewList[int](nil)
	require.NoError(t, err)

	snapshot, err := list.Snapshot()
	require.NoError(t, err)

	assert.JSONEq(t, `[]`, string(snapshot.Data))
}

func Test_Dict_SnapshotCapturesContents(t *testing.T) {
	dict, err := observable.NewDict(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)

	snapshot, err := dict.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, observable.SnapshotKindDict, snapshot.Kind)
	require.NoError(t, snapshot.Validate())
	assert.JSONEq(t, `{"a":1,"b":2}`, string(snapshot.Data))
}

func Test_Snapshot_Validate(t *testing.T) {
	tests := []struct {
		name        string
		snapshot    observable.Snapshot
		expectedErr error
	}{
		{
			name:        "empty kind",
			snapshot:    observable.Snapshot{Kind: "", Data: []byte(`{}`)},
			expectedErr: observable.ErrEmptySnapshotKind,
		},
		{
			name:        "malformed json",
			snapshot:    observable.Snapshot{Kind: observable.SnapshotKindObject, Data: []byte(`{"broken":`)},
			expectedErr: observable.ErrInvalidSnapshotJSON,
		},
		{
			name:     "valid",
			snapshot: observable.Snapshot{Kind: observable.SnapshotKindObject, Data: []byte(`{"age":35}`)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.snapshot.Validate()
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
