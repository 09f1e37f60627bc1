package refunds

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"yatra/internal/ledger"
	"yatra/internal/notifications"
	"yatra/internal/shared/errs"
)

// SelectMethodRequest carries the payout method chosen by the customer.
type SelectMethodRequest struct {
	Method      string              `json:"method" binding:"required,oneof=bank_account original_payment wallet"`
	BankDetails *ledger.BankDetails `json:"bank_details,omitempty"`
}

// FailRequest carries the terminal failure reason recorded by an agent.
type FailRequest struct {
	Reason string `json:"reason" binding:"required,min=5,max=500"`
}

// Service interface defines the contract for the refund processing
// state machine: initiated -> processing -> completed | failed.
type Service interface {
	GetRefund(ctx context.Context, refundID, userID uuid.UUID, agent bool) (*ledger.RefundTransaction, error)
	GetUserRefunds(ctx context.Context, userID uuid.UUID) ([]ledger.RefundTransaction, error)

	SelectRefundMethod(ctx context.Context, refundID, userID uuid.UUID, req SelectMethodRequest) (*ledger.RefundTransaction, error)
	CompleteRefund(ctx context.Context, refundID uuid.UUID) (*ledger.RefundTransaction, error)
	FailRefund(ctx context.Context, refundID uuid.UUID, reason string) (*ledger.RefundTransaction, error)
}

type service struct {
	repo     Repository
	producer notifications.Producer
	validate *validator.Validate
}

// NewService creates a new refund service instance. producer may be nil.
func NewService(repo Repository, producer notifications.Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
		validate: validator.New(),
	}
}

func (s *service) GetRefund(ctx context.Context, refundID, userID uuid.UUID, agent bool) (*ledger.RefundTransaction, error) {
	refund, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if !agent {
		if err := s.checkOwnership(ctx, refund, userID); err != nil {
			return nil, err
		}
	}
	return refund, nil
}

func (s *service) GetUserRefunds(ctx context.Context, userID uuid.UUID) ([]ledger.RefundTransaction, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// SelectRefundMethod advances an initiated refund to processing. A
// bank-account payout requires all four bank fields; the estimated completion
// window recorded here is advisory metadata only.
func (s *service) SelectRefundMethod(ctx context.Context, refundID, userID uuid.UUID, req SelectMethodRequest) (*ledger.RefundTransaction, error) {
	refund, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, refund, userID); err != nil {
		return nil, err
	}

	method := ledger.RefundMethod(req.Method)
	if !method.IsValid() {
		return nil, errs.Validation(errs.CodeValidation, fmt.Sprintf("unknown refund method: %s", req.Method))
	}

	var details *ledger.BankDetails
	if method == ledger.RefundMethodBankAccount {
		if req.BankDetails == nil {
			return nil, errs.Validation(errs.CodeValidation, "bank details are required for bank account refunds")
		}
		if err := s.validate.Struct(req.BankDetails); err != nil {
			return nil, errs.Validation(errs.CodeValidation, "all bank detail fields are required")
		}
		details = req.BankDetails
	}

	if !refund.Status.CanTransitionTo(ledger.RefundStatusProcessing) {
		return nil, errs.StateConflict(errs.CodeInvalidState,
			fmt.Sprintf("refund in status %s cannot move to processing", refund.Status))
	}

	refund.MarkProcessing(method, details, time.Now())
	if err := s.repo.Update(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to update refund: %w", err)
	}

	s.publish(ctx, notifications.NewEvent(notifications.EventTypeRefundProcessing, refund.BookingID, userID).
		WithRefund(refund.ID, refund.Amount).
		WithData(map[string]interface{}{"method": string(method), "estimated_days": refund.EstimatedDays}))
	return refund, nil
}

// CompleteRefund finishes a processing refund (agent-facing).
func (s *service) CompleteRefund(ctx context.Context, refundID uuid.UUID) (*ledger.RefundTransaction, error) {
	refund, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if !refund.Status.CanTransitionTo(ledger.RefundStatusCompleted) {
		return nil, errs.StateConflict(errs.CodeInvalidState,
			fmt.Sprintf("refund in status %s cannot be completed", refund.Status))
	}

	refund.MarkCompleted(time.Now())
	if err := s.repo.Update(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to update refund: %w", err)
	}

	s.publish(ctx, notifications.NewEvent(notifications.EventTypeRefundCompleted, refund.BookingID, uuid.Nil).
		WithRefund(refund.ID, refund.Amount))
	return refund, nil
}

// FailRefund terminates a refund (agent-facing). Failed refunds stay failed:
// recovery means raising a new refund cycle, which is not automated.
func (s *service) FailRefund(ctx context.Context, refundID uuid.UUID, reason string) (*ledger.RefundTransaction, error) {
	if reason == "" {
		return nil, errs.Validation(errs.CodeValidation, "failure reason is required")
	}

	refund, err := s.repo.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}

	if !refund.Status.CanTransitionTo(ledger.RefundStatusFailed) {
		return nil, errs.StateConflict(errs.CodeInvalidState,
			fmt.Sprintf("refund in status %s cannot be failed", refund.Status))
	}

	refund.MarkFailed(reason, time.Now())
	if err := s.repo.Update(ctx, refund); err != nil {
		return nil, fmt.Errorf("failed to update refund: %w", err)
	}

	s.publish(ctx, notifications.NewEvent(notifications.EventTypeRefundFailed, refund.BookingID, uuid.Nil).
		WithRefund(refund.ID, refund.Amount).
		WithData(map[string]interface{}{"failure_reason": reason}))
	return refund, nil
}

func (s *service) checkOwnership(ctx context.Context, refund *ledger.RefundTransaction, userID uuid.UUID) error {
	owner, err := s.repo.GetBookingOwner(ctx, refund.BookingID)
	if err != nil {
		return err
	}
	if owner != userID {
		return errs.Validation(errs.CodeValidation, "refund does not belong to user")
	}
	return nil
}

func (s *service) publish(ctx context.Context, event *notifications.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		log.Printf("warning: failed to publish %s event for refund %s: %v", event.Type, event.RefundID, err)
	}
}
