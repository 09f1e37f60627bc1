package refunds

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/ledger"
	"yatra/internal/shared/errs"
)

// fakeRepository keeps refunds and booking ownership in memory.
type fakeRepository struct {
	refunds map[uuid.UUID]*ledger.RefundTransaction
	owners  map[uuid.UUID]uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		refunds: make(map[uuid.UUID]*ledger.RefundTransaction),
		owners:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeRepository) addRefund(ownerID uuid.UUID, refund *ledger.RefundTransaction) {
	copied := *refund
	f.refunds[refund.ID] = &copied
	f.owners[refund.BookingID] = ownerID
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*ledger.RefundTransaction, error) {
	refund, ok := f.refunds[id]
	if !ok {
		return nil, errs.NotFound("refund not found")
	}
	copied := *refund
	return &copied, nil
}

func (f *fakeRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]ledger.RefundTransaction, error) {
	var out []ledger.RefundTransaction
	for _, refund := range f.refunds {
		if f.owners[refund.BookingID] == userID {
			out = append(out, *refund)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetProcessing(_ context.Context) ([]ledger.RefundTransaction, error) {
	var out []ledger.RefundTransaction
	for _, refund := range f.refunds {
		if refund.Status == ledger.RefundStatusProcessing {
			out = append(out, *refund)
		}
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, refund *ledger.RefundTransaction) error {
	copied := *refund
	f.refunds[refund.ID] = &copied
	return nil
}

func (f *fakeRepository) GetBookingOwner(_ context.Context, bookingID uuid.UUID) (uuid.UUID, error) {
	owner, ok := f.owners[bookingID]
	if !ok {
		return uuid.Nil, errs.NotFound("booking not found")
	}
	return owner, nil
}

func seedRefund(repo *fakeRepository, ownerID uuid.UUID) *ledger.RefundTransaction {
	refund := ledger.NewInitiatedRefund(uuid.New(), 46250, "change of plans", nil, time.Now())
	repo.addRefund(ownerID, refund)
	return refund
}

func validBankDetails() *ledger.BankDetails {
	return &ledger.BankDetails{
		AccountHolder: "Ravi Sharma",
		AccountNumber: "001234567890",
		IFSCCode:      "HDFC0001234",
		BankName:      "HDFC Bank",
	}
}

func TestSelectRefundMethod(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("original payment moves to processing", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		updated, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "original_payment"})
		require.NoError(t, err)

		assert.Equal(t, ledger.RefundStatusProcessing, updated.Status)
		assert.Equal(t, ledger.RefundMethodOriginalPayment, updated.RefundMethod)
		assert.Equal(t, 2, updated.EstimatedDays)
		assert.Nil(t, updated.BankDetails)
	})

	t.Run("bank account requires bank details", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "bank_account"})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("bank account rejects incomplete details", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		details := validBankDetails()
		details.IFSCCode = ""
		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "bank_account", BankDetails: details})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("bank account stores details and window", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		updated, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "bank_account", BankDetails: validBankDetails()})
		require.NoError(t, err)

		assert.Equal(t, ledger.RefundStatusProcessing, updated.Status)
		require.NotNil(t, updated.BankDetails)
		assert.Equal(t, "HDFC0001234", updated.BankDetails.IFSCCode)
		assert.Equal(t, 5, updated.EstimatedDays)
	})

	t.Run("wallet estimate", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		updated, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "wallet"})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.EstimatedDays)
	})

	t.Run("unknown method", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "cheque"})
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("only the booking owner can select", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, uuid.New(),
			SelectMethodRequest{Method: "wallet"})
		assert.Error(t, err)
	})

	t.Run("cannot select twice", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "wallet"})
		require.NoError(t, err)

		_, err = svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "original_payment"})
		assert.Equal(t, errs.CodeInvalidState, errs.CodeOf(err))
	})
}

func TestCompleteRefund(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("completes a processing refund", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "wallet"})
		require.NoError(t, err)

		completed, err := svc.CompleteRefund(ctx, refund.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger.RefundStatusCompleted, completed.Status)
		assert.NotNil(t, completed.ActualCompletionDate)
	})

	t.Run("cannot complete before a method is selected", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.CompleteRefund(ctx, refund.ID)
		assert.Equal(t, errs.CodeInvalidState, errs.CodeOf(err))
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "wallet"})
		require.NoError(t, err)
		_, err = svc.CompleteRefund(ctx, refund.ID)
		require.NoError(t, err)

		_, err = svc.CompleteRefund(ctx, refund.ID)
		assert.Equal(t, errs.CodeInvalidState, errs.CodeOf(err))
	})
}

func TestFailRefund(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("fails from initiated", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		failed, err := svc.FailRefund(ctx, refund.ID, "payment gateway rejected the payout")
		require.NoError(t, err)
		assert.Equal(t, ledger.RefundStatusFailed, failed.Status)
		assert.Equal(t, "payment gateway rejected the payout", failed.FailureReason)
	})

	t.Run("fails from processing", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.SelectRefundMethod(ctx, refund.ID, ownerID,
			SelectMethodRequest{Method: "wallet"})
		require.NoError(t, err)

		failed, err := svc.FailRefund(ctx, refund.ID, "account closed")
		require.NoError(t, err)
		assert.Equal(t, ledger.RefundStatusFailed, failed.Status)
	})

	t.Run("requires a reason", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.FailRefund(ctx, refund.ID, "")
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("failed is terminal", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.FailRefund(ctx, refund.ID, "gateway timeout")
		require.NoError(t, err)

		_, err = svc.FailRefund(ctx, refund.ID, "again")
		assert.Equal(t, errs.CodeInvalidState, errs.CodeOf(err))

		_, err = svc.CompleteRefund(ctx, refund.ID)
		assert.Equal(t, errs.CodeInvalidState, errs.CodeOf(err))
	})
}

func TestGetRefund(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("owner can read", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		got, err := svc.GetRefund(ctx, refund.ID, ownerID, false)
		require.NoError(t, err)
		assert.Equal(t, refund.ID, got.ID)
	})

	t.Run("stranger cannot read", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		_, err := svc.GetRefund(ctx, refund.ID, uuid.New(), false)
		assert.Error(t, err)
	})

	t.Run("agent bypasses ownership", func(t *testing.T) {
		repo := newFakeRepository()
		refund := seedRefund(repo, ownerID)
		svc := NewService(repo, nil)

		got, err := svc.GetRefund(ctx, refund.ID, uuid.New(), true)
		require.NoError(t, err)
		assert.Equal(t, refund.ID, got.ID)
	})

	t.Run("unknown refund", func(t *testing.T) {
		svc := NewService(newFakeRepository(), nil)
		_, err := svc.GetRefund(ctx, uuid.New(), ownerID, false)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}
