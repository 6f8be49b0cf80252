package domain

import (
	"encoding/json"
	"fmt"
)

// Output record keys, in encoding order.
const (
	KeyPose      = "pose"
	KeyHandLeft  = "hand_left"
	KeyHandRight = "hand_right"
)

// Record holds the three rig results of a single frame.
//
// On the wire it is a 3-element array of single-key objects:
//
//	[{"pose": …}, {"hand_left": …}, {"hand_right": …}]
type Record struct {
	Pose      RigResult
	HandLeft  RigResult
	HandRight RigResult
}

// MarshalJSON encodes the record as its 3-element array form.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]map[string]RigResult{
		{KeyPose: r.Pose},
		{KeyHandLeft: r.HandLeft},
		{KeyHandRight: r.HandRight},
	})
}

// UnmarshalJSON decodes the 3-element array form, enforcing key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	var parts []map[string]RigResult
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("record must have 3 entries, got %d", len(parts))
	}

	keys := [3]string{KeyPose, KeyHandLeft, KeyHandRight}
	slots := [3]*RigResult{&r.Pose, &r.HandLeft, &r.HandRight}
	for i, part := range parts {
		val, ok := part[keys[i]]
		if !ok || len(part) != 1 {
			return fmt.Errorf("record entry %d must hold exactly the %q key", i, keys[i])
		}
		*slots[i] = val
	}
	return nil
}

// OutputSequence is the converted result, index-aligned with the input frames.
type OutputSequence []Record
