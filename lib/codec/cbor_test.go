// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

type request struct {
	Action   string `cbor:"action"`
	Instance string `cbor:"instance,omitempty"`
}

type requestV2 struct {
	Action   string `cbor:"action"`
	Instance string `cbor:"instance,omitempty"`
	Verbose  bool   `cbor:"verbose"`
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]any{"zeta": 1, "alpha": "a", "mid": true}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("encoding %d differs: %x vs %x", i, again, first)
		}
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	data, err := Marshal(requestV2{Action: "status", Verbose: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded request
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal into older type: %v", err)
	}
	if decoded.Action != "status" {
		t.Errorf("Action = %q, want %q", decoded.Action, "status")
	}
}

func TestAnyMapsUseStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"nested": map[string]any{"clients": 2}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	outer, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := outer["nested"].(map[string]any); !ok {
		t.Errorf("nested value is %T, want map[string]any", outer["nested"])
	}
}

func TestStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, action := range []string{"version", "exit"} {
		if err := encoder.Encode(request{Action: action}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	decoder := NewDecoder(&buffer)
	for _, want := range []string{"version", "exit"} {
		var got request
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Action != want {
			t.Errorf("Action = %q, want %q", got.Action, want)
		}
	}
}
