package checkout

import "fmt"

type State string

const (
	StateIdle              State = "Idle"
	StateBillGenerating    State = "BillGenerating"
	StateBillReady         State = "BillReady"
	StatePaymentProcessing State = "PaymentProcessing"
	StatePaymentSucceeded  State = "PaymentSucceeded"
	StatePaymentFailed     State = "PaymentFailed"
)

// transitions is the whole settlement state machine. Idle may go straight to
// PaymentProcessing only when a bill from an earlier attempt is retained.
var transitions = map[State][]State{
	StateIdle:              {StateBillGenerating, StatePaymentProcessing},
	StateBillGenerating:    {StateBillReady, StatePaymentFailed},
	StateBillReady:         {StatePaymentProcessing},
	StatePaymentProcessing: {StatePaymentSucceeded, StatePaymentFailed},
	StatePaymentFailed:     {StateIdle},
	StatePaymentSucceeded:  {},
}

func canTransition(from, to State) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid checkout transition: %s -> %s", from, to)
}

// Busy reports whether a backend call is in flight.
func (s State) Busy() bool {
	return s == StateBillGenerating || s == StatePaymentProcessing
}
