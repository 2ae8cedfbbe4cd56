package statemachine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sjperalta/dpa-api/internal/models"
)

// ErrInvalidTransition is returned when an event is not allowed from the loan's current status.
var ErrInvalidTransition = errors.New("invalid loan status transition")

// Loan events
const (
	EventApprove = "approve"
	EventReject  = "reject"
	EventPay     = "pay"
	EventClose   = "close"
)

// LoanFSM wraps a loan with its state machine
type LoanFSM struct {
	loan *models.Loan
	fsm  *fsm.FSM
}

// NewLoanFSM creates a new loan state machine. A blank status starts as pending.
func NewLoanFSM(loan *models.Loan) *LoanFSM {
	if loan.Status == "" {
		loan.Status = models.LoanStatusPending
	}

	lfsm := &LoanFSM{
		loan: loan,
	}

	lfsm.fsm = fsm.NewFSM(
		loan.Status,
		fsm.Events{
			// pending → approved
			{Name: EventApprove, Src: []string{models.LoanStatusPending}, Dst: models.LoanStatusApproved},

			// pending → rejected
			{Name: EventReject, Src: []string{models.LoanStatusPending}, Dst: models.LoanStatusRejected},

			// approved/active → active (first payment activates)
			{Name: EventPay, Src: []string{models.LoanStatusApproved, models.LoanStatusActive}, Dst: models.LoanStatusActive},

			// any open status → closed
			{Name: EventClose, Src: []string{models.LoanStatusPending, models.LoanStatusApproved, models.LoanStatusActive}, Dst: models.LoanStatusClosed},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// Approve transitions the loan to approved
func (l *LoanFSM) Approve(ctx context.Context) error {
	if !l.loan.MayApprove() {
		return fmt.Errorf("%w: loan cannot be approved in status %s", ErrInvalidTransition, l.loan.Status)
	}
	return l.fire(ctx, EventApprove)
}

// Reject transitions the loan to rejected
func (l *LoanFSM) Reject(ctx context.Context) error {
	if !l.loan.MayReject() {
		return fmt.Errorf("%w: loan cannot be rejected in status %s", ErrInvalidTransition, l.loan.Status)
	}
	return l.fire(ctx, EventReject)
}

// Pay records that a repayment is being applied. An approved loan becomes active;
// an active loan stays active.
func (l *LoanFSM) Pay(ctx context.Context) error {
	if !l.loan.MayReceivePayment() {
		return fmt.Errorf("%w: loan cannot receive payments in status %s", ErrInvalidTransition, l.loan.Status)
	}
	return l.fire(ctx, EventPay)
}

// Close transitions the loan to closed
func (l *LoanFSM) Close(ctx context.Context) error {
	if !l.loan.MayClose() {
		return fmt.Errorf("%w: loan is already %s", ErrInvalidTransition, l.loan.Status)
	}
	return l.fire(ctx, EventClose)
}

func (l *LoanFSM) fire(ctx context.Context, event string) error {
	err := l.fsm.Event(ctx, event)

	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return fmt.Errorf("%w: %s from %s: %v", ErrInvalidTransition, event, l.loan.Status, err)
	}

	l.loan.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LoanFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LoanFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
