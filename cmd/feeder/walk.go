package main

import (
	"encoding/json"
	"math/rand/v2"
)

// walk produces a random pointer path as coordinate payloads.
type walk struct {
	x, y      int
	dropEvery int
	seq       int
	rng       *rand.Rand
}

func newWalk(dropEvery int) *walk {
	return &walk{
		x:         400,
		y:         300,
		dropEvery: dropEvery,
		rng:       rand.New(rand.NewPCG(1, 2)),
	}
}

// next returns the next payload. Every dropEvery-th payload lacks "direction".
func (w *walk) next() []byte {
	w.seq++

	dx := w.rng.IntN(21) - 10
	dy := w.rng.IntN(21) - 10
	w.x = max(0, w.x+dx)
	w.y = max(0, w.y+dy)

	payload := map[string]any{
		"x":         w.x,
		"y":         w.y,
		"deltaX":    dx,
		"deltaY":    dy,
		"direction": direction(dx, dy),
	}
	if w.dropEvery > 0 && w.seq%w.dropEvery == 0 {
		delete(payload, "direction")
	}

	b, _ := json.Marshal(payload)
	return b
}

func direction(dx, dy int) string {
	switch {
	case abs(dx) > abs(dy) && dx > 0:
		return "right"
	case abs(dx) > abs(dy):
		return "left"
	case dy > 0:
		return "down"
	case dy < 0:
		return "up"
	default:
		return "none"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// isSuccess reports whether an ack frame carries status "success".
func isSuccess(ack []byte) bool {
	var v struct {
		Status string `json:"status"`
	}
	return json.Unmarshal(ack, &v) == nil && v.Status == "success"
}
