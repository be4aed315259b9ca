package monitor

import "github.com/teslashibe/go-arena/pkg/tracking"

// ring is a fixed-capacity record buffer that overwrites its oldest entry.
type ring struct {
	buf   []tracking.Record
	next  int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]tracking.Record, capacity)}
}

func (r *ring) push(rec tracking.Record) {
	r.buf[r.next] = rec
	r.next = (r.next + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// last returns up to n of the newest records in insertion order. n <= 0
// returns everything buffered.
func (r *ring) last(n int) []tracking.Record {
	if n <= 0 || n > r.count {
		n = r.count
	}
	out := make([]tracking.Record, 0, n)
	start := (r.next - n + len(r.buf)) % len(r.buf)
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
