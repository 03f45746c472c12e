package progress

import (
	"math"
	"sort"
)

// window keeps the last size instantaneous rates.
type window struct {
	size   int
	values []float64
	next   int
}

func newWindow(size int) *window {
	if size <= 0 {
		size = 1
	}
	return &window{size: size, values: make([]float64, 0, size)}
}

func (w *window) Add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if len(w.values) < w.size {
		w.values = append(w.values, v)
		return
	}
	w.values[w.next] = v
	w.next = (w.next + 1) % w.size
}

// Median interpolates between the two middle samples of an even window.
func (w *window) Median() float64 {
	if len(w.values) == 0 {
		return 0
	}
	cp := append([]float64(nil), w.values...)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid]
	}
	return (cp[mid-1] + cp[mid]) / 2
}
