// Package stats implements a minimal metrics collector over a relation's
// gate tree, the Go counterpart of the reference CLI's "metrics" tool: a
// gate-kind frequency count plus the depth of the deepest subcircuit
// nesting, neither of which requires driving a backend.
package stats

import "github.com/sieveir/ir"

// Counts tallies how many times each gate kind appears across a relation,
// descending into Call/AnonCall/For/Switch bodies.
type Counts struct {
	ByKind   map[string]int
	MaxDepth int
}

// Collect walks gates (and, through fns, any named function they call) and
// returns the accumulated Counts.
func Collect(gates []ir.Gate, fns map[string]ir.Function) Counts {
	c := Counts{ByKind: make(map[string]int)}
	c.walk(gates, fns, 1)
	return c
}

func (c *Counts) walk(gates []ir.Gate, fns map[string]ir.Function, depth int) {
	if depth > c.MaxDepth {
		c.MaxDepth = depth
	}
	for _, g := range gates {
		c.ByKind[kindName(g)]++
		switch gate := g.(type) {
		case ir.CallGate:
			if fn, ok := fns[gate.Name]; ok {
				c.walk(fn.Body, fns, depth+1)
			}
		case ir.AnonCallGate:
			c.walk(gate.Body, fns, depth+1)
		case ir.ForGate:
			if gate.Body.Kind == ir.ForBodyAnonCall {
				c.walk(gate.Body.AnonBody, fns, depth+1)
			} else if fn, ok := fns[gate.Body.Name]; ok {
				c.walk(fn.Body, fns, depth+1)
			}
		case ir.SwitchGate:
			for _, br := range gate.Branches {
				if br.Anon != nil {
					c.walk(br.Anon.Body, fns, depth+1)
				} else if br.Call != nil {
					if fn, ok := fns[br.Call.Name]; ok {
						c.walk(fn.Body, fns, depth+1)
					}
				}
			}
		}
	}
}

func kindName(g ir.Gate) string {
	switch g.(type) {
	case ir.ConstantGate:
		return "constant"
	case ir.CopyGate:
		return "copy"
	case ir.AddGate:
		return "add"
	case ir.MulGate:
		return "mul"
	case ir.AndGate:
		return "and"
	case ir.XorGate:
		return "xor"
	case ir.AddConstantGate:
		return "add_constant"
	case ir.MulConstantGate:
		return "mul_constant"
	case ir.NotGate:
		return "not"
	case ir.AssertZeroGate:
		return "assert_zero"
	case ir.InstanceGate:
		return "instance"
	case ir.WitnessGate:
		return "witness"
	case ir.FreeGate:
		return "free"
	case ir.CallGate:
		return "call"
	case ir.AnonCallGate:
		return "anon_call"
	case ir.ForGate:
		return "for"
	case ir.SwitchGate:
		return "switch"
	default:
		return "unknown"
	}
}
