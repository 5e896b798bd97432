package circ

import "github.com/coldcathode/efm/efmerr"

// DelayLine is a single-lane FIFO of fixed depth, expressed as a ring
// buffer with an explicit head/tail and primed count. Depth 0 passes
// bytes straight through. Push emits the oldest buffered byte once the
// lane has been pushed depth times; IsReady reports whether the lane
// has primed.
type DelayLine struct {
	depth  int
	buf    []byte
	head   int
	primed int
}

// NewDelayLine constructs a lane of the given depth.
func NewDelayLine(depth int) *DelayLine {
	d := &DelayLine{depth: depth}
	if depth > 0 {
		d.buf = make([]byte, depth)
	}
	return d
}

// Push inserts v and returns the byte that falls out the other end,
// plus whether the lane is primed (has emitted a real value).
func (d *DelayLine) Push(v byte) (out byte, ready bool) {
	if d.depth == 0 {
		return v, true
	}
	out = d.buf[d.head]
	ready = d.primed >= d.depth
	d.buf[d.head] = v
	d.head = (d.head + 1) % d.depth
	if d.primed < d.depth {
		d.primed++
	}
	return out, ready
}

// IsReady reports whether the lane has been pushed at least depth times.
func (d *DelayLine) IsReady() bool { return d.primed >= d.depth }

// DelayBank is a vector of per-lane DelayLines sharing a single Push
// call across all lanes, mirroring the source's DelayLines wrapper.
type DelayBank struct {
	lanes []*DelayLine
}

// NewDelayBank builds one DelayLine per entry in depths.
func NewDelayBank(depths []int) *DelayBank {
	b := &DelayBank{lanes: make([]*DelayLine, len(depths))}
	for i, d := range depths {
		b.lanes[i] = NewDelayLine(d)
	}
	return b
}

// Push feeds one input byte per lane and returns the emitted bytes
// plus whether every lane is primed.
func (b *DelayBank) Push(in []byte) ([]byte, bool, error) {
	if len(in) != len(b.lanes) {
		return nil, false, efmerr.New(efmerr.ComponentCIRC, "delay bank width mismatch")
	}
	out := make([]byte, len(in))
	ready := true
	for i, v := range in {
		o, r := b.lanes[i].Push(v)
		out[i] = o
		if !r {
			ready = false
		}
	}
	return out, ready, nil
}

// Len reports the number of lanes in the bank.
func (b *DelayBank) Len() int { return len(b.lanes) }
