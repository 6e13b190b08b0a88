package database

import (
	"encoding/json"
	"fmt"

	"github.com/rickgao/cursorlog/internal/model"
)

// coordinateArgs maps event values onto the five insert parameters.
//
// Nothing is validated here. Integral numbers bind as int64, everything else binds as
// text and the engine decides: "10" into an integer column is accepted, "abc" or 1.5 is
// rejected and the write fails.
func coordinateArgs(ev model.CoordinateEvent) []any {
	return []any{
		bindInt(ev.X),
		bindInt(ev.Y),
		bindInt(ev.DeltaX),
		bindInt(ev.DeltaY),
		bindText(ev.Direction),
	}
}

func bindInt(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		return val.String()
	case int, int32, int64:
		return val
	default:
		return bindText(v)
	}
}

func bindText(v any) any {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return nil
	default:
		if b, err := json.Marshal(val); err == nil {
			return string(b)
		}
		return fmt.Sprint(val)
	}
}
