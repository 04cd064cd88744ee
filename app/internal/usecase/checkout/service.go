package checkout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	dombranch "example.com/branch-cart/app/internal/domain/branch"
	domcart "example.com/branch-cart/app/internal/domain/cart"
	domcheckout "example.com/branch-cart/app/internal/domain/checkout"
	domorder "example.com/branch-cart/app/internal/domain/order"
)

// CartStore is the part of the cart store the sequencer drives.
type CartStore interface {
	Items() []domcart.LineItem
	IsEmpty() bool
	Clear()
}

// Dispatcher hands an order message to an external messaging app.
// It is fire-and-forget: no outcome is reported back.
type Dispatcher interface {
	Dispatch(ctx context.Context, contact, text string)
}

type Config struct {
	// RememberBranch keeps the selected branch after a successful dispatch so
	// the next checkout skips the branch prompt.
	RememberBranch bool
	Logger         *zap.Logger
	Now            func() time.Time
}

type Sequencer struct {
	cart       CartStore
	dispatcher Dispatcher
	remember   bool
	logger     *zap.Logger
	now        func() time.Time

	state          domcheckout.State
	paymentMethod  *domorder.PaymentMethod
	selectedBranch *dombranch.Branch
	lastOrder      *domorder.Order
}

func NewSequencer(cart CartStore, dispatcher Dispatcher, cfg Config) *Sequencer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Sequencer{
		cart:       cart,
		dispatcher: dispatcher,
		remember:   cfg.RememberBranch,
		logger:     logger,
		now:        now,
		state:      domcheckout.StateIdle,
	}
}

func (s *Sequencer) State() domcheckout.State {
	return s.state
}

func (s *Sequencer) Status() domcheckout.Status {
	st := domcheckout.Status{State: s.state}
	if s.paymentMethod != nil {
		m := *s.paymentMethod
		st.PaymentMethod = &m
	}
	if s.selectedBranch != nil {
		b := *s.selectedBranch
		st.SelectedBranch = &b
	}
	if s.lastOrder != nil {
		o := *s.lastOrder
		st.LastOrder = &o
	}
	return st
}

// Start opens the payment method prompt. Starting while a prompt is open
// restarts the sequence.
func (s *Sequencer) Start() {
	s.paymentMethod = nil
	s.state = domcheckout.StateAwaitingPaymentMethod
	s.logger.Debug("checkout started", zap.Bool("branch_remembered", s.selectedBranch != nil))
}

// Cancel closes any open prompt without touching the cart.
func (s *Sequencer) Cancel() {
	s.paymentMethod = nil
	s.state = domcheckout.StateIdle
}

// ForgetBranch drops the remembered branch so the next checkout prompts for one.
func (s *Sequencer) ForgetBranch() error {
	if s.state == domcheckout.StateDispatching {
		return fmt.Errorf("forget branch while %s: %w", s.state, domcheckout.ErrInvalidTransition)
	}
	s.selectedBranch = nil
	return nil
}

// ChoosePaymentMethod records the method and moves on. It returns the order when
// a remembered branch let the sequence dispatch right away.
func (s *Sequencer) ChoosePaymentMethod(ctx context.Context, method domorder.PaymentMethod) (*domorder.Order, error) {
	if s.state != domcheckout.StateAwaitingPaymentMethod {
		return nil, fmt.Errorf("choose payment method while %s: %w", s.state, domcheckout.ErrInvalidTransition)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%q: %w", method, domcheckout.ErrInvalidPaymentMethod)
	}

	m := method
	s.paymentMethod = &m

	if s.cart.IsEmpty() {
		s.logger.Info("checkout stopped", zap.String("notice", domcheckout.NoticeEmptyCart))
		s.state = domcheckout.StateIdle
		return nil, domcheckout.ErrEmptyCart
	}

	if s.selectedBranch != nil {
		return s.dispatch(ctx)
	}

	s.state = domcheckout.StateAwaitingBranch
	return nil, nil
}

// ChooseBranch records the branch and dispatches the order to it.
func (s *Sequencer) ChooseBranch(ctx context.Context, branch dombranch.Branch) (*domorder.Order, error) {
	if s.state != domcheckout.StateAwaitingBranch {
		return nil, fmt.Errorf("choose branch while %s: %w", s.state, domcheckout.ErrInvalidTransition)
	}

	b := branch
	s.selectedBranch = &b
	return s.dispatch(ctx)
}

func (s *Sequencer) dispatch(ctx context.Context) (*domorder.Order, error) {
	s.state = domcheckout.StateDispatching
	branch := *s.selectedBranch

	contact := branch.Contact()
	if contact == "" {
		s.logger.Info("checkout stopped",
			zap.String("notice", domcheckout.NoticeMissingBranchContact),
			zap.Int64("branch_id", branch.ID))
		s.selectedBranch = nil
		s.state = domcheckout.StateIdle
		return nil, domcheckout.ErrMissingBranchContact
	}

	order, err := domorder.New(*s.paymentMethod, branch, contact, s.cart.Items(), s.now())
	if err != nil {
		s.state = domcheckout.StateIdle
		return nil, fmt.Errorf("%w: %w", domcheckout.ErrEmptyCart, err)
	}

	s.dispatcher.Dispatch(ctx, contact, order.Message)
	s.logger.Info("order dispatched",
		zap.Int64("branch_id", branch.ID),
		zap.String("payment_method", string(order.PaymentMethod)),
		zap.Int("line_items", len(order.Items)),
		zap.Float64("total", order.Total))

	s.cart.Clear()
	s.lastOrder = order
	s.paymentMethod = nil
	if !s.remember {
		s.selectedBranch = nil
	}
	s.state = domcheckout.StateIdle
	return order, nil
}
