package evaluator

import (
	"fmt"

	"github.com/sieveir/backend"
	"github.com/sieveir/internal/logger"
	"github.com/sieveir/ir"
)

// Evaluator ingests a stream of ir.Message (in any order, Functions-before-
// use within a Relation) and drives a Backend through every gate in the
// stream's Relations. The first error encountered is recorded and returned
// by every subsequent call; later messages are otherwise ignored, mirroring
// the reference evaluator's "sticky first error" behavior so a single bad
// gate does not cascade into a wall of downstream noise.
type Evaluator struct {
	backend  backend.Backend
	asProver bool
	log      logger.Logger

	gotHeader bool
	field     ir.Field

	top       *Scope
	instance  *Pool
	witness   *Pool
	functions map[string]ir.Function

	err error
}

// New returns an Evaluator driving b. asProver selects prover mode (Witness
// gates pop real values) versus verifier mode (Witness gates receive a
// placeholder and the pool is never populated).
func New(b backend.Backend, asProver bool, log logger.Logger) *Evaluator {
	return &Evaluator{
		backend:   b,
		asProver:  asProver,
		log:       log,
		top:       NewScope(),
		instance:  NewPool(),
		witness:   NewPool(),
		functions: make(map[string]ir.Function),
	}
}

// weightCtx carries the branch weight in effect, if any. A nil *weightCtx
// means no Switch branch encloses the current gate: AssertZero runs
// unweighted and no nested Switch has an outer weight to fold in.
type weightCtx struct {
	wire backend.Wire
}

// Err returns the first error the Evaluator encountered, or nil.
func (e *Evaluator) Err() error { return e.err }

func (e *Evaluator) fail(err error) error {
	if e.err == nil {
		e.err = err
		e.log.Warn().Err(err).Msg("evaluator: recording first error")
	}
	return e.err
}

// Ingest dispatches m to the appropriate Ingest* method, swallowing m if an
// error was already recorded.
func (e *Evaluator) Ingest(m ir.Message) error {
	if e.err != nil {
		return e.err
	}
	if err := e.ingestHeader(m.MessageHeader()); err != nil {
		return e.fail(err)
	}
	switch msg := m.(type) {
	case ir.InstanceMessage:
		return e.IngestInstance(msg)
	case ir.WitnessMessage:
		return e.IngestWitness(msg)
	case ir.RelationMessage:
		return e.IngestRelation(msg)
	default:
		return e.fail(fmt.Errorf("evaluator: unknown message type %T", m))
	}
}

func (e *Evaluator) ingestHeader(h ir.Header) error {
	if !e.gotHeader {
		e.gotHeader = true
		e.field = h.Field
		return e.backend.SetField(h.Field)
	}
	if e.field.Characteristic.Cmp(h.Field.Characteristic) != 0 {
		return &HeaderError{Reason: "field characteristic changed mid-stream"}
	}
	return nil
}

// IngestInstance appends m's values to the instance pool.
func (e *Evaluator) IngestInstance(m ir.InstanceMessage) error {
	if e.err != nil {
		return e.err
	}
	e.instance.Push(m.CommonInputs)
	return nil
}

// IngestWitness appends m's values to the witness pool. Ingesting a
// WitnessMessage while not running as_prover is a caller error; a verifier
// stream should never carry one.
func (e *Evaluator) IngestWitness(m ir.WitnessMessage) error {
	if e.err != nil {
		return e.err
	}
	if !e.asProver {
		return e.fail(fmt.Errorf("evaluator: received witness values while not running as prover"))
	}
	e.witness.Push(m.ShortWitness)
	return nil
}

// IngestRelation declares m's functions and evaluates its top-level gates
// against the top-level scope.
func (e *Evaluator) IngestRelation(m ir.RelationMessage) error {
	if e.err != nil {
		return e.err
	}
	for _, fn := range m.Functions {
		if _, dup := e.functions[fn.Name]; dup {
			return e.fail(fmt.Errorf("function %q declared more than once", fn.Name))
		}
		e.functions[fn.Name] = fn
	}
	boolean := m.GateMask&ir.GateMaskBoolean != 0
	if err := e.evalGates(e.top, m.Gates, nil, boolean, nil); err != nil {
		return e.fail(err)
	}
	return nil
}

// evalGates dispatches every gate in gates against scope. weight multiplies
// every AssertZero check, including those in nested Call/AnonCall/For
// bodies; outputs of nested invocations are bound unweighted, and only
// evalSwitch multiplies a branch's outputs by its weight when combining
// them.
// env is the active iterator environment for resolving iterator expressions
// inside nested For gates' IterExprLists; it is nil outside any For.
func (e *Evaluator) evalGates(scope *Scope, gates []ir.Gate, weight *weightCtx, boolean bool, env ir.IterEnv) error {
	for _, g := range gates {
		if err := e.evalGate(scope, g, weight, boolean, env); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalGate(scope *Scope, g ir.Gate, weight *weightCtx, boolean bool, env ir.IterEnv) error {
	b := e.backend
	switch gate := g.(type) {
	case ir.ConstantGate:
		w, err := b.Constant(gate.Value)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.CopyGate:
		in, err := scope.Get(gate.In)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, b.Copy(in))

	case ir.AddGate:
		l, err := scope.Get(gate.Left)
		if err != nil {
			return err
		}
		r, err := scope.Get(gate.Right)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, backend.Add(b, l, r, boolean))

	case ir.MulGate:
		l, err := scope.Get(gate.Left)
		if err != nil {
			return err
		}
		r, err := scope.Get(gate.Right)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, backend.Multiply(b, l, r, boolean))

	case ir.AndGate:
		l, err := scope.Get(gate.Left)
		if err != nil {
			return err
		}
		r, err := scope.Get(gate.Right)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, b.And(l, r))

	case ir.XorGate:
		l, err := scope.Get(gate.Left)
		if err != nil {
			return err
		}
		r, err := scope.Get(gate.Right)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, b.Xor(l, r))

	case ir.AddConstantGate:
		in, err := scope.Get(gate.In)
		if err != nil {
			return err
		}
		w, err := b.AddConstant(in, gate.Constant)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.MulConstantGate:
		in, err := scope.Get(gate.In)
		if err != nil {
			return err
		}
		w, err := b.MulConstant(in, gate.Constant)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.NotGate:
		in, err := scope.Get(gate.In)
		if err != nil {
			return err
		}
		w, err := b.Not(in)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.AssertZeroGate:
		in, err := scope.Get(gate.In)
		if err != nil {
			return err
		}
		checked := in
		if weight != nil {
			checked = backend.Multiply(b, in, weight.wire, boolean)
		}
		if err := b.AssertZero(checked); err != nil {
			return &AssertionError{Wire: gate.In}
		}
		return nil

	case ir.InstanceGate:
		v, ok := e.instance.Pop()
		if !ok {
			return &PoolExhaustedError{Instance: true}
		}
		w, err := b.Instance(v)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.WitnessGate:
		var v ir.Value
		if e.asProver {
			var ok bool
			v, ok = e.witness.Pop()
			if !ok {
				return &PoolExhaustedError{Instance: false}
			}
		}
		w, err := b.Witness(v, e.asProver)
		if err != nil {
			return err
		}
		return scope.Set(gate.Out, w)

	case ir.FreeGate:
		if gate.Last == nil {
			return scope.Remove(gate.First)
		}
		for id := gate.First; id <= *gate.Last; id++ {
			if err := scope.Remove(id); err != nil {
				return err
			}
		}
		return nil

	case ir.CallGate:
		fn, ok := e.functions[gate.Name]
		if !ok {
			return &UnknownFunctionError{Name: gate.Name}
		}
		return e.callFunction(scope, fn, gate.Outs.Expand(), gate.Ins.Expand(), weight, boolean)

	case ir.AnonCallGate:
		return e.callAnon(scope, gate.Outs.Expand(), gate.Ins.Expand(), gate.Body, weight, boolean, env)

	case ir.ForGate:
		return e.evalFor(scope, gate, weight, boolean, env)

	case ir.SwitchGate:
		return e.evalSwitch(scope, gate, weight, boolean, env)

	default:
		return fmt.Errorf("evaluator: unhandled gate type %T", g)
	}
}

func (e *Evaluator) callFunction(parent *Scope, fn ir.Function, outs, ins []ir.WireID, weight *weightCtx, boolean bool) error {
	if len(outs) != fn.OutputCount {
		return &ArityError{Name: fn.Name, Expected: fn.OutputCount, Got: len(outs), Outputs: true}
	}
	if len(ins) != fn.InputCount {
		return &ArityError{Name: fn.Name, Expected: fn.InputCount, Got: len(ins)}
	}
	child := NewScope()
	for i, id := range ins {
		v, err := parent.Get(id)
		if err != nil {
			return err
		}
		if err := child.Set(ir.WireID(fn.OutputCount+i), v); err != nil {
			return err
		}
	}
	if err := e.evalGates(child, fn.Body, weight, boolean, nil); err != nil {
		return err
	}
	for i, id := range outs {
		v, err := child.Get(ir.WireID(i))
		if err != nil {
			return err
		}
		if err := parent.Set(id, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) callAnon(parent *Scope, outs, ins []ir.WireID, body []ir.Gate, weight *weightCtx, boolean bool, env ir.IterEnv) error {
	child := NewScope()
	for i, id := range ins {
		v, err := parent.Get(id)
		if err != nil {
			return err
		}
		if err := child.Set(ir.WireID(len(outs)+i), v); err != nil {
			return err
		}
	}
	if err := e.evalGates(child, body, weight, boolean, env); err != nil {
		return err
	}
	for i, id := range outs {
		v, err := child.Get(ir.WireID(i))
		if err != nil {
			return err
		}
		if err := parent.Set(id, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) evalFor(scope *Scope, gate ir.ForGate, weight *weightCtx, boolean bool, env ir.IterEnv) error {
	for i := gate.Start; i <= gate.End; i++ {
		iterEnv := make(ir.IterEnv, len(env)+1)
		for k, v := range env {
			iterEnv[k] = v
		}
		iterEnv[gate.IterName] = i
		outs, err := gate.Body.Outs.Expand(iterEnv)
		if err != nil {
			return err
		}
		ins, err := gate.Body.Ins.Expand(iterEnv)
		if err != nil {
			return err
		}
		switch gate.Body.Kind {
		case ir.ForBodyCall:
			fn, ok := e.functions[gate.Body.Name]
			if !ok {
				return &UnknownFunctionError{Name: gate.Body.Name}
			}
			if err := e.callFunction(scope, fn, outs, ins, weight, boolean); err != nil {
				return err
			}
		case ir.ForBodyAnonCall:
			if err := e.callAnon(scope, outs, ins, gate.Body.AnonBody, weight, boolean, iterEnv); err != nil {
				return err
			}
		default:
			return fmt.Errorf("evaluator: unknown for-body kind %d", gate.Body.Kind)
		}
	}
	return nil
}

func (e *Evaluator) evalSwitch(scope *Scope, gate ir.SwitchGate, outerWeight *weightCtx, boolean bool, env ir.IterEnv) error {
	b := e.backend
	condition, err := scope.Get(gate.Condition)
	if err != nil {
		return err
	}

	maxInstance, maxWitness := 0, 0
	for _, br := range gate.Branches {
		ic, wc, err := e.branchCounts(br)
		if err != nil {
			return err
		}
		if ic > maxInstance {
			maxInstance = ic
		}
		if wc > maxWitness {
			maxWitness = wc
		}
	}
	reservedInstance := NewPool()
	reservedInstance.Push(reserve(e.instance, maxInstance))
	reservedWitness := NewPool()
	reservedWitness.Push(reserve(e.witness, maxWitness))

	outs := gate.Outs.Expand()
	combined := make([]backend.Wire, len(outs))
	for i := range combined {
		combined[i] = b.Zero()
	}

	for _, br := range gate.Branches {
		caseVal, err := b.Constant(br.Case)
		if err != nil {
			return err
		}
		branchWeightWire, err := ComputeWeight(b, condition, caseVal, boolean)
		if err != nil {
			return err
		}
		if outerWeight != nil {
			branchWeightWire = backend.Multiply(b, branchWeightWire, outerWeight.wire, boolean)
		}
		branchWeight := &weightCtx{wire: branchWeightWire}

		sub := &Evaluator{
			backend:   e.backend,
			asProver:  e.asProver,
			log:       e.log,
			gotHeader: true,
			field:     e.field,
			instance:  reservedInstance.Clone(),
			witness:   reservedWitness.Clone(),
			functions: e.functions,
		}

		var branchOuts []ir.WireID
		var evalErr error
		if br.Call != nil {
			fn, ok := e.functions[br.Call.Name]
			if !ok {
				return &UnknownFunctionError{Name: br.Call.Name}
			}
			branchOuts = br.Call.Outs.Expand()
			child := NewScope()
			for i, id := range br.Call.Ins.Expand() {
				v, gErr := scope.Get(id)
				if gErr != nil {
					return gErr
				}
				if sErr := child.Set(ir.WireID(fn.OutputCount+i), v); sErr != nil {
					return sErr
				}
			}
			evalErr = sub.evalGates(child, fn.Body, branchWeight, boolean, nil)
			if evalErr == nil {
				for i := range outs {
					v, gErr := child.Get(ir.WireID(i))
					if gErr != nil {
						evalErr = gErr
						break
					}
					weighted := backend.Multiply(b, v, branchWeight.wire, boolean)
					combined[i] = backend.Add(b, combined[i], weighted, boolean)
				}
			}
		} else if br.Anon != nil {
			branchOuts = br.Anon.Outs.Expand()
			child := NewScope()
			for i, id := range br.Anon.Ins.Expand() {
				v, gErr := scope.Get(id)
				if gErr != nil {
					return gErr
				}
				if sErr := child.Set(ir.WireID(len(branchOuts)+i), v); sErr != nil {
					return sErr
				}
			}
			evalErr = sub.evalGates(child, br.Anon.Body, branchWeight, boolean, nil)
			if evalErr == nil {
				for i := range outs {
					v, gErr := child.Get(ir.WireID(i))
					if gErr != nil {
						evalErr = gErr
						break
					}
					weighted := backend.Multiply(b, v, branchWeight.wire, boolean)
					combined[i] = backend.Add(b, combined[i], weighted, boolean)
				}
			}
		} else {
			return fmt.Errorf("evaluator: switch branch has neither Call nor AnonCall")
		}
		if evalErr != nil {
			return evalErr
		}
		if sub.err != nil {
			return sub.err
		}
	}

	for i, id := range outs {
		if err := scope.Set(id, combined[i]); err != nil {
			return err
		}
	}
	return nil
}

// branchCounts returns the pool arities br's body pops per invocation: a
// named Call pops exactly its declared function's InstanceCount/
// WitnessCount, regardless of what the caller's own pool position is, while
// an inline AnonCall carries its own counts directly on the gate.
func (e *Evaluator) branchCounts(br ir.SwitchBranch) (instanceCount, witnessCount int, err error) {
	if br.Call != nil {
		fn, ok := e.functions[br.Call.Name]
		if !ok {
			return 0, 0, &UnknownFunctionError{Name: br.Call.Name}
		}
		return fn.InstanceCount, fn.WitnessCount, nil
	}
	if br.Anon != nil {
		return br.Anon.InstanceCount, br.Anon.WitnessCount, nil
	}
	return 0, 0, nil
}

// reserve pops up to n values off p: the Switch's one-time pre-reservation
// of the max instance/witness consumption across all of its branches.
func reserve(p *Pool, n int) []ir.Value {
	out := make([]ir.Value, 0, n)
	for i := 0; i < n; i++ {
		v, ok := p.Pop()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
