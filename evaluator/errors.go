package evaluator

import "fmt"

// AssertionError reports a failed AssertZero, named after the wire that
// carried the asserted value. The "(may be weighted)" wording is
// unconditional: the wire's value may have passed through a Switch branch
// upstream even when this particular AssertZero isn't itself nested in one,
// so the message never claims more certainty than the evaluator has.
type AssertionError struct {
	Wire uint64
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("Wire_%d (may be weighted) should be 0, while it is not", e.Wire)
}

// ArityError reports a Call, or a For loop's named-call body, whose
// function's declared output or input count does not match the wire list
// the caller supplied. AnonCall gates and Switch branches are not
// arity-checked.
type ArityError struct {
	Name     string
	Expected int
	Got      int
	Outputs  bool
}

func (e *ArityError) Error() string {
	kind := "input"
	if e.Outputs {
		kind = "output"
	}
	return fmt.Sprintf("Wrong number of %s variables in call to function %s (Expected %d / Got %d).", kind, e.Name, e.Expected, e.Got)
}

// UnknownFunctionError reports a Call, For(ForBodyCall) or Switch branch
// naming a function that was never declared by a preceding Relation
// message.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

// PoolExhaustedError reports an Instance or Witness gate with no value left
// to pop.
type PoolExhaustedError struct {
	Instance bool
}

func (e *PoolExhaustedError) Error() string {
	if e.Instance {
		return "not enough instance to consume"
	}
	return "not enough witness to consume"
}

// HeaderError reports a message whose Header disagrees with the stream's
// established field.
type HeaderError struct {
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header mismatch: %s", e.Reason)
}
