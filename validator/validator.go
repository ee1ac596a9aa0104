// Package validator implements a structural check over a message stream
// independent of any concrete field backend: every wire a gate reads must
// already be Defined, every wire a gate defines must not already be
// Defined, headers must agree across messages, and every value must fit
// the field's declared byte length. It accumulates every violation it
// finds rather than stopping at the first one, the Go counterpart of the
// reference Validator.
package validator

import (
	"fmt"

	"github.com/sieveir/ir"
)

// Status is a wire's lifecycle state within the scope that owns it.
type Status int

const (
	Undefined Status = iota
	Defined
	Used
)

// Validator accumulates Violations across any number of ingested messages.
type Validator struct {
	asProver bool

	gotHeader bool
	field     ir.Field

	functions map[string]ir.Function

	variables  map[ir.WireID]Status
	violations []string
	sawGate    bool
}

// New returns a Validator. With asProver set, Witness messages are
// accepted and their values checked against the field; a verifier
// (asProver == false) reports any Witness message as a violation. The
// number of Witness gates is not compared with the number of witness
// values.
func New(asProver bool) *Validator {
	return &Validator{
		asProver:  asProver,
		functions: make(map[string]ir.Function),
		variables: make(map[ir.WireID]Status),
	}
}

// Violations returns every violation accumulated so far.
func (v *Validator) Violations() []string {
	return v.violations
}

func (v *Validator) violate(format string, args ...interface{}) {
	v.violations = append(v.violations, fmt.Sprintf(format, args...))
}

// Ingest checks m against the Validator's accumulated state.
func (v *Validator) Ingest(m ir.Message) {
	v.ingestHeader(m.MessageHeader())
	switch msg := m.(type) {
	case ir.InstanceMessage:
		v.ingestInstance(msg)
	case ir.WitnessMessage:
		v.ingestWitness(msg)
	case ir.RelationMessage:
		v.ingestRelation(msg)
	default:
		v.violate("unknown message type %T", m)
	}
}

func (v *Validator) ingestHeader(h ir.Header) {
	if !v.gotHeader {
		v.gotHeader = true
		v.field = h.Field
		if h.Field.Degree != 1 {
			v.violate("unsupported field degree %d", h.Field.Degree)
		}
		return
	}
	if v.field.Characteristic.Cmp(h.Field.Characteristic) != 0 {
		v.violate("header mismatch: field characteristic changed mid-stream")
	}
	if v.field.Bytelen != h.Field.Bytelen {
		v.violate("header mismatch: field byte length changed mid-stream")
	}
}

func (v *Validator) ensureValueInField(val ir.Value, context string) {
	if len(val) != v.field.Bytelen {
		v.violate("%s: value has %d bytes, expected %d", context, len(val), v.field.Bytelen)
		return
	}
	if val.BigInt().Cmp(v.field.Characteristic) >= 0 {
		v.violate("%s: value is not strictly less than the field characteristic", context)
	}
}

func (v *Validator) ingestInstance(m ir.InstanceMessage) {
	for i, val := range m.CommonInputs {
		v.ensureValueInField(val, fmt.Sprintf("instance value #%d", i))
	}
}

func (v *Validator) ingestWitness(m ir.WitnessMessage) {
	if !v.asProver {
		v.violate("witness message present in a verifier-only stream")
		return
	}
	for i, val := range m.ShortWitness {
		v.ensureValueInField(val, fmt.Sprintf("witness value #%d", i))
	}
}

func (v *Validator) ingestRelation(m ir.RelationMessage) {
	for _, fn := range m.Functions {
		if _, dup := v.functions[fn.Name]; dup {
			v.violate("function %q declared more than once", fn.Name)
			continue
		}
		v.functions[fn.Name] = fn
		v.checkBody(fn.Body, fn.OutputCount, fn.InputCount)
	}
	if len(m.Gates) > 0 {
		v.sawGate = true
	}
	v.checkGates(v.variables, m.Gates)
}

// Finalize reports any stream-level violation that can only be known once
// every message has been seen: an entirely empty relation, and any
// top-level wire that was defined but never read.
func (v *Validator) Finalize() {
	if !v.sawGate {
		v.violate("Did not receive any gate to verify.")
	}
	for id, status := range v.variables {
		if status == Defined {
			v.violate("wire_%d was defined but not used", id)
		}
	}
}

// checkBody validates an invoked subcircuit's body in its own fresh
// namespace. Only the input positions [outputCount, outputCount+inputCount)
// are pre-marked Defined, matching the evaluator's own copy-in contract
// (spec.md §4.4): the output positions [0, outputCount) are not bound by
// the caller and must be defined by the body itself.
func (v *Validator) checkBody(body []ir.Gate, outputCount, inputCount int) {
	scope := make(map[ir.WireID]Status, outputCount+inputCount)
	for i := outputCount; i < outputCount+inputCount; i++ {
		scope[ir.WireID(i)] = Defined
	}
	v.checkGates(scope, body)
}

func (v *Validator) checkGates(scope map[ir.WireID]Status, gates []ir.Gate) {
	define := func(id ir.WireID) {
		if scope[id] != Undefined {
			v.violate("wire_%d already has a value", id)
			return
		}
		scope[id] = Defined
	}
	use := func(id ir.WireID) {
		switch scope[id] {
		case Undefined:
			v.violate("wire_%d does not have a value yet", id)
		default:
			scope[id] = Used
		}
	}

	for _, g := range gates {
		switch gate := g.(type) {
		case ir.ConstantGate:
			v.ensureValueInField(gate.Value, fmt.Sprintf("wire_%d constant", gate.Out))
			define(gate.Out)
		case ir.CopyGate:
			use(gate.In)
			define(gate.Out)
		case ir.AddGate:
			use(gate.Left)
			use(gate.Right)
			define(gate.Out)
		case ir.MulGate:
			use(gate.Left)
			use(gate.Right)
			define(gate.Out)
		case ir.AndGate:
			use(gate.Left)
			use(gate.Right)
			define(gate.Out)
		case ir.XorGate:
			use(gate.Left)
			use(gate.Right)
			define(gate.Out)
		case ir.AddConstantGate:
			use(gate.In)
			v.ensureValueInField(gate.Constant, fmt.Sprintf("wire_%d add_constant", gate.Out))
			define(gate.Out)
		case ir.MulConstantGate:
			use(gate.In)
			v.ensureValueInField(gate.Constant, fmt.Sprintf("wire_%d mul_constant", gate.Out))
			define(gate.Out)
		case ir.NotGate:
			use(gate.In)
			define(gate.Out)
		case ir.AssertZeroGate:
			use(gate.In)
		case ir.InstanceGate:
			define(gate.Out)
		case ir.WitnessGate:
			define(gate.Out)
		case ir.FreeGate:
			last := gate.First
			if gate.Last != nil {
				last = *gate.Last
			}
			for id := gate.First; id <= last; id++ {
				if scope[id] == Undefined {
					v.violate("wire_%d does not have a value, can't free it", id)
					continue
				}
				delete(scope, id)
			}
		case ir.CallGate:
			fn, ok := v.functions[gate.Name]
			if !ok {
				v.violate("unknown function: %s", gate.Name)
				continue
			}
			ins := gate.Ins.Expand()
			if len(ins) != fn.InputCount {
				v.violate("%s: expected %d input wires, got %d", gate.Name, fn.InputCount, len(ins))
			}
			for _, id := range ins {
				use(id)
			}
			outs := gate.Outs.Expand()
			if len(outs) != fn.OutputCount {
				v.violate("%s: expected %d output wires, got %d", gate.Name, fn.OutputCount, len(outs))
			}
			for _, id := range outs {
				define(id)
			}
		case ir.AnonCallGate:
			for _, id := range gate.Ins.Expand() {
				use(id)
			}
			v.checkBody(gate.Body, len(gate.Outs.Expand()), len(gate.Ins.Expand()))
			for _, id := range gate.Outs.Expand() {
				define(id)
			}
		case ir.ForGate:
			v.checkFor(scope, gate, define, use)
		case ir.SwitchGate:
			v.checkSwitch(scope, gate, define, use)
		default:
			v.violate("unhandled gate type %T", g)
		}
	}
}

func (v *Validator) checkFor(_ map[ir.WireID]Status, gate ir.ForGate, define, use func(ir.WireID)) {
	env := ir.IterEnv{gate.IterName: gate.Start}
	outs, err := gate.Body.Outs.Expand(env)
	if err != nil {
		v.violate("for %s: %v", gate.IterName, err)
		return
	}
	ins, err := gate.Body.Ins.Expand(env)
	if err != nil {
		v.violate("for %s: %v", gate.IterName, err)
		return
	}
	for _, id := range ins {
		use(id)
	}
	switch gate.Body.Kind {
	case ir.ForBodyCall:
		fn, ok := v.functions[gate.Body.Name]
		if !ok {
			v.violate("unknown function: %s", gate.Body.Name)
		} else if len(ins) != fn.InputCount || len(outs) != fn.OutputCount {
			v.violate("%s: for-loop arity mismatch", gate.Body.Name)
		}
	case ir.ForBodyAnonCall:
		v.checkBody(gate.Body.AnonBody, len(outs), len(ins))
	}
	for _, id := range outs {
		define(id)
	}
}

func (v *Validator) checkSwitch(_ map[ir.WireID]Status, gate ir.SwitchGate, define, use func(ir.WireID)) {
	use(gate.Condition)
	outs := gate.Outs.Expand()
	for _, br := range gate.Branches {
		v.ensureValueInField(br.Case, "switch case")
		switch {
		case br.Call != nil:
			fn, ok := v.functions[br.Call.Name]
			if !ok {
				v.violate("unknown function: %s", br.Call.Name)
				continue
			}
			if len(br.Call.Outs.Expand()) != fn.OutputCount || len(br.Call.Ins.Expand()) != fn.InputCount {
				v.violate("%s: switch branch arity mismatch", br.Call.Name)
			}
			for _, id := range br.Call.Ins.Expand() {
				use(id)
			}
		case br.Anon != nil:
			for _, id := range br.Anon.Ins.Expand() {
				use(id)
			}
			v.checkBody(br.Anon.Body, len(br.Anon.Outs.Expand()), len(br.Anon.Ins.Expand()))
		default:
			v.violate("switch branch has neither Call nor AnonCall")
		}
	}
	for _, id := range outs {
		define(id)
	}
}
