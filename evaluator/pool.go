package evaluator

import "github.com/sieveir/ir"

// Pool is a FIFO queue of field-element values, fed by InstanceMessage or
// WitnessMessage ingestion and drained in order by Instance/Witness gates.
type Pool struct {
	values []ir.Value
	next   int
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// Push appends values to the back of the pool.
func (p *Pool) Push(values []ir.Value) {
	p.values = append(p.values, values...)
}

// Pop removes and returns the value at the front of the pool.
func (p *Pool) Pop() (ir.Value, bool) {
	if p.next >= len(p.values) {
		return nil, false
	}
	v := p.values[p.next]
	p.next++
	return v, true
}

// Remaining reports how many values are still queued.
func (p *Pool) Remaining() int {
	return len(p.values) - p.next
}

// Clone returns an independent copy of p's remaining queue, used by a
// Switch gate to give every branch its own full copy of the pre-reserved
// instance/witness values: each branch pops from its own clone, so an
// untaken branch's consumption never affects any other branch or the
// parent pool.
func (p *Pool) Clone() *Pool {
	values := make([]ir.Value, len(p.values)-p.next)
	copy(values, p.values[p.next:])
	return &Pool{values: values}
}
