package ir

// Gate is a tagged variant of the SIEVE IR instruction set. Concrete types
// implement Gate by embedding gateTag, giving the interpreter a closed type
// switch to dispatch on (the same "seal an interface with an unexported
// method" idiom used throughout the corpus for tagged unions).
type Gate interface {
	isGate()
}

type gateTag struct{}

func (gateTag) isGate() {}

// --- primitive gates ---

// ConstantGate binds Out to the literal value Value.
type ConstantGate struct {
	gateTag
	Out   WireID
	Value Value
}

// CopyGate binds Out to the current value of In.
type CopyGate struct {
	gateTag
	Out WireID
	In  WireID
}

// AddGate binds Out to Left + Right.
type AddGate struct {
	gateTag
	Out, Left, Right WireID
}

// MulGate binds Out to Left * Right.
type MulGate struct {
	gateTag
	Out, Left, Right WireID
}

// AndGate binds Out to the boolean AND of Left and Right.
type AndGate struct {
	gateTag
	Out, Left, Right WireID
}

// XorGate binds Out to the boolean XOR of Left and Right.
type XorGate struct {
	gateTag
	Out, Left, Right WireID
}

// AddConstantGate binds Out to In + Constant.
type AddConstantGate struct {
	gateTag
	Out, In  WireID
	Constant Value
}

// MulConstantGate binds Out to In * Constant.
type MulConstantGate struct {
	gateTag
	Out, In  WireID
	Constant Value
}

// NotGate binds Out to the boolean negation of In.
type NotGate struct {
	gateTag
	Out, In WireID
}

// AssertZeroGate asserts that In must evaluate to zero (subject to any
// branch weight in effect).
type AssertZeroGate struct {
	gateTag
	In WireID
}

// InstanceGate binds Out to the next value popped from the instance pool.
type InstanceGate struct {
	gateTag
	Out WireID
}

// WitnessGate binds Out to the next value popped from the witness pool, or
// to a missing value in verifier mode.
type WitnessGate struct {
	gateTag
	Out WireID
}

// FreeGate removes every wire identifier in [First, Last] (or just First,
// if Last is absent) from the current scope.
type FreeGate struct {
	gateTag
	First WireID
	Last  *WireID
}

// --- composite gates ---

// CallGate invokes a previously declared function by name. Iterators are
// not propagated into the callee's body.
type CallGate struct {
	gateTag
	Name string
	Outs WireList
	Ins  WireList
}

// AnonCallGate invokes an inline subcircuit body. Iterators are
// propagated into the callee's body.
type AnonCallGate struct {
	gateTag
	Outs          WireList
	Ins           WireList
	InstanceCount int
	WitnessCount  int
	Body          []Gate
}

// ForBodyKind distinguishes a For loop's body invocation form.
type ForBodyKind int

const (
	// ForBodyCall invokes a named function with iterator-expression
	// wire lists; iterators are not forwarded into the callee.
	ForBodyCall ForBodyKind = iota
	// ForBodyAnonCall invokes an inline subcircuit with
	// iterator-expression wire lists; iterators are forwarded.
	ForBodyAnonCall
)

// ForBody is the invocation executed once per loop iteration.
type ForBody struct {
	Kind Kind
	// Name is set when Kind == ForBodyCall.
	Name string
	// Outs/Ins are iterator expressions that evaluate to concrete wire
	// identifiers once bound against the current iterator environment.
	Outs IterExprList
	Ins  IterExprList
	// InstanceCount/WitnessCount/AnonBody are set when
	// Kind == ForBodyAnonCall.
	InstanceCount int
	WitnessCount  int
	AnonBody      []Gate
}

// Kind is an alias retained for readability at call sites
// (ir.ForBody{Kind: ir.ForBodyCall, ...}).
type Kind = ForBodyKind

// ForGate counts Iter from Start to End inclusive, executing Body once per
// value with Iter substituted into its iterator expressions.
type ForGate struct {
	gateTag
	IterName string
	Start    uint64
	End      uint64
	Body     ForBody
}

// SwitchBranch is one case/branch pair of a Switch gate.
type SwitchBranch struct {
	Case Value
	// Exactly one of Call or Anon is populated.
	Call *CallGate
	Anon *AnonCallGate
}

// SwitchGate is a branch-multiplexed invocation: exactly the branches whose
// Case equals Condition's runtime value contribute (with weight 1,
// additively, if more than one matches) to the combined output wires.
type SwitchGate struct {
	gateTag
	Condition WireID
	Outs      WireList
	Branches  []SwitchBranch
}
