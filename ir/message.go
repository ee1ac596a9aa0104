package ir

// Header carries the field characteristic and profile/version metadata
// every message in a stream must agree on. A stream's first message fixes
// the Header; a later message with a differing field characteristic is a
// header mismatch (the validator also compares the field byte length).
type Header struct {
	Field   Field
	Profile string
	Version string
}

// Message is implemented by the three wire-stream message kinds: Instance,
// Witness, and Relation. Consumers (evaluator, validator, flattener) ingest
// a Message at a time, in any order, except that Relation gates referencing
// a Function must see that Function declared no later than its use.
type Message interface {
	isMessage()
	MessageHeader() Header
}

type messageTag struct {
	Header Header
}

func (messageTag) isMessage() {}

func (m messageTag) MessageHeader() Header { return m.Header }

// InstanceMessage carries a batch of public input values, appended in
// order to the instance pool.
type InstanceMessage struct {
	messageTag
	CommonInputs []Value
}

// NewInstanceMessage constructs an InstanceMessage under the given header.
func NewInstanceMessage(h Header, values []Value) InstanceMessage {
	return InstanceMessage{messageTag: messageTag{Header: h}, CommonInputs: values}
}

// WitnessMessage carries a batch of prover-only input values, appended in
// order to the witness pool. A verifier ingesting a stream never receives
// WitnessMessages.
type WitnessMessage struct {
	messageTag
	ShortWitness []Value
}

// NewWitnessMessage constructs a WitnessMessage under the given header.
func NewWitnessMessage(h Header, values []Value) WitnessMessage {
	return WitnessMessage{messageTag: messageTag{Header: h}, ShortWitness: values}
}

// RelationMessage carries function declarations and top-level gates making
// up (a fragment of) the circuit.
type RelationMessage struct {
	messageTag
	GateMask  GateMask
	Functions []Function
	Gates     []Gate
}

// NewRelationMessage constructs a RelationMessage under the given header.
func NewRelationMessage(h Header, mask GateMask, fns []Function, gates []Gate) RelationMessage {
	return RelationMessage{messageTag: messageTag{Header: h}, GateMask: mask, Functions: fns, Gates: gates}
}

// GateMask records which gate-set profile a Relation restricts itself to.
// The BOOL bit mirrors Field.Boolean and selects And/Xor/Not semantics for
// the arithmetic-generic helpers (negate, add-one, multiply, add).
type GateMask uint8

const (
	GateMaskArithmetic GateMask = 0
	GateMaskBoolean    GateMask = 1
)
