package connection

import (
	"encoding/json"
	"testing"
)

func TestAck_Encode(t *testing.T) {
	tests := []struct {
		name string
		ack  Ack
		want string
	}{
		{
			name: "connected",
			ack:  Connected(),
			want: `{"status":"connected"}`,
		},
		{
			name: "success echoes payload verbatim",
			ack:  Success(json.RawMessage(`{"x": 10, "y":20 ,"deltaX":1,"deltaY":-1,"direction":"<up>"}`)),
			want: `{"status":"success","received_data":{"x": 10, "y":20 ,"deltaX":1,"deltaY":-1,"direction":"<up>"}}`,
		},
		{
			name: "validation failure",
			ack:  ValidationFailed("missing required coordinate or direction data"),
			want: `{"status":"error","message":"missing required coordinate or direction data"}`,
		},
		{
			name: "internal error",
			ack:  InternalError(),
			want: `{"status":"error","message":"internal server error"}`,
		},
		{
			name: "message is escaped",
			ack:  ValidationFailed(`bad "quote"`),
			want: `{"status":"error","message":"bad \"quote\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tt.ack.Encode())
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
			if !json.Valid([]byte(got)) {
				t.Errorf("Encode() produced invalid JSON: %s", got)
			}
		})
	}
}
