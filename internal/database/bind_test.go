package database

import (
	"encoding/json"
	"testing"
)

func TestBindInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"integral number", json.Number("10"), int64(10)},
		{"negative number", json.Number("-1"), int64(-1)},
		{"fraction stays text", json.Number("1.5"), "1.5"},
		{"string passes through", "10", "10"},
		{"bool becomes text", true, "true"},
		{"native int", int64(7), int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bindInt(tt.in); got != tt.want {
				t.Errorf("bindInt(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBindText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "up", "up"},
		{"number", json.Number("3"), "3"},
		{"bool", false, "false"},
		{"object", map[string]any{"a": "b"}, `{"a":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bindText(tt.in); got != tt.want {
				t.Errorf("bindText(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
