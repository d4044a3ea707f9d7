package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("checkout: cart is empty")
	ErrInvalidTransition = errors.New("checkout: invalid state transition")
)

type Status string

const (
	StatusIdle             Status = "idle"
	StatusSelectingPayment Status = "selecting_payment"
	StatusPaying           Status = "paying"
	StatusCompleted        Status = "completed"
	StatusAborted          Status = "aborted"
)

// State implements the state pattern for a single checkout attempt.
type State interface {
	Status() Status
	OnStart(cartEmpty bool) (State, error)
	OnPaymentSelected() (State, error)
	OnPaid() (State, error)
	OnPaymentFailed() (State, error)
}

// Start returns the initial state.
func Start() State { return idleState{} }

type idleState struct{}

func (idleState) Status() Status { return StatusIdle }

func (idleState) OnStart(cartEmpty bool) (State, error) {
	if cartEmpty {
		return abortedState{}, ErrEmptyCart
	}
	return selectingPaymentState{}, nil
}

func (idleState) OnPaymentSelected() (State, error) { return nil, ErrInvalidTransition }
func (idleState) OnPaid() (State, error)            { return nil, ErrInvalidTransition }
func (idleState) OnPaymentFailed() (State, error)   { return nil, ErrInvalidTransition }

type selectingPaymentState struct{}

func (selectingPaymentState) Status() Status { return StatusSelectingPayment }

func (selectingPaymentState) OnStart(bool) (State, error) { return nil, ErrInvalidTransition }

func (selectingPaymentState) OnPaymentSelected() (State, error) {
	return payingState{}, nil
}

func (selectingPaymentState) OnPaid() (State, error) { return nil, ErrInvalidTransition }

func (selectingPaymentState) OnPaymentFailed() (State, error) { return nil, ErrInvalidTransition }

type payingState struct{}

func (payingState) Status() Status { return StatusPaying }

func (payingState) OnStart(bool) (State, error)       { return nil, ErrInvalidTransition }
func (payingState) OnPaymentSelected() (State, error) { return nil, ErrInvalidTransition }

func (payingState) OnPaid() (State, error) {
	return completedState{}, nil
}

// A failed payment returns to idle so the cart can be checked out again.
func (payingState) OnPaymentFailed() (State, error) {
	return idleState{}, nil
}

type completedState struct{}

func (completedState) Status() Status { return StatusCompleted }

func (completedState) OnStart(bool) (State, error)       { return nil, ErrInvalidTransition }
func (completedState) OnPaymentSelected() (State, error) { return nil, ErrInvalidTransition }
func (completedState) OnPaid() (State, error)            { return completedState{}, nil }
func (completedState) OnPaymentFailed() (State, error)   { return nil, ErrInvalidTransition }

type abortedState struct{}

func (abortedState) Status() Status { return StatusAborted }

func (abortedState) OnStart(bool) (State, error)       { return nil, ErrInvalidTransition }
func (abortedState) OnPaymentSelected() (State, error) { return nil, ErrInvalidTransition }
func (abortedState) OnPaid() (State, error)            { return nil, ErrInvalidTransition }
func (abortedState) OnPaymentFailed() (State, error)   { return nil, ErrInvalidTransition }
