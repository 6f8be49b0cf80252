package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalJSON(t *testing.T) {
	rec := domain.Record{
		Pose:      domain.RigResult{"spine": map[string]any{"x": 0, "y": 0, "z": 0}},
		HandLeft:  domain.RigResult{"RightWrist": map[string]any{"x": 1, "y": 0, "z": 0}},
		HandRight: nil,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"pose":{"spine":{"x":0,"y":0,"z":0}}},{"hand_left":{"RightWrist":{"x":1,"y":0,"z":0}}},{"hand_right":null}]`,
		string(data))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		var rec domain.Record
		err := json.Unmarshal([]byte(`[{"pose":{"a":1}},{"hand_left":{"b":2}},{"hand_right":{"c":3}}]`), &rec)
		require.NoError(t, err)
		assert.Equal(t, float64(1), rec.Pose["a"])
		assert.Equal(t, float64(2), rec.HandLeft["b"])
		assert.Equal(t, float64(3), rec.HandRight["c"])
	})

	t.Run("Wrong arity", func(t *testing.T) {
		var rec domain.Record
		err := json.Unmarshal([]byte(`[{"pose":{}},{"hand_left":{}}]`), &rec)
		assert.ErrorContains(t, err, "3 entries")
	})

	t.Run("Wrong order", func(t *testing.T) {
		var rec domain.Record
		err := json.Unmarshal([]byte(`[{"hand_left":{}},{"pose":{}},{"hand_right":{}}]`), &rec)
		assert.ErrorContains(t, err, `"pose"`)
	})

	t.Run("Extra keys", func(t *testing.T) {
		var rec domain.Record
		err := json.Unmarshal([]byte(`[{"pose":{},"x":{}},{"hand_left":{}},{"hand_right":{}}]`), &rec)
		assert.Error(t, err)
	})
}

func TestOutputSequence_RoundTrip(t *testing.T) {
	seq := domain.OutputSequence{
		{Pose: domain.RigResult{"i": float64(0)}, HandLeft: domain.RigResult{}, HandRight: domain.RigResult{}},
		{Pose: domain.RigResult{"i": float64(1)}, HandLeft: domain.RigResult{}, HandRight: domain.RigResult{}},
	}

	data, err := json.MarshalIndent(seq, "", "  ")
	require.NoError(t, err)

	var back domain.OutputSequence
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, seq, back)
}
