package bookings

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatra/internal/ledger"
	"yatra/internal/policy"
	"yatra/internal/shared/errs"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func testRules() []policy.Rule {
	return []policy.Rule{
		{DaysBeforeDeparture: 90, RefundPercentage: 100},
		{DaysBeforeDeparture: 60, RefundPercentage: 75},
		{DaysBeforeDeparture: 30, RefundPercentage: 50},
		{DaysBeforeDeparture: 15, RefundPercentage: 25},
		{DaysBeforeDeparture: 0, RefundPercentage: 0},
	}
}

// newTestBooking returns a two-traveler booking at 185000 per person,
// departing 40 days out.
func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	booking, err := NewBooking(uuid.New(), uuid.New(), 185000,
		testNow.Add(40*24*time.Hour),
		[]Pilgrim{
			{FirstName: "Ravi", LastName: "Sharma"},
			{FirstName: "Meera", LastName: "Sharma"},
		}, testNow)
	require.NoError(t, err)
	return booking
}

func TestNewBooking(t *testing.T) {
	t.Run("fixes total at creation", func(t *testing.T) {
		booking := newTestBooking(t)

		assert.Equal(t, 370000.0, booking.TotalAmt)
		assert.Equal(t, 2, booking.TravelerCount)
		assert.Equal(t, StatusPending, booking.BookingStatus)
		assert.Equal(t, PaymentStatePending, booking.PaymentStatus)
		for _, p := range booking.Pilgrims {
			assert.Equal(t, PilgrimStatusActive, p.Status)
			assert.Equal(t, booking.ID, p.BookingID)
		}
	})

	t.Run("requires travelers", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), 185000, testNow.AddDate(0, 1, 0), nil, testNow)
		require.Error(t, err)
		assert.Equal(t, errs.CodeNoTravelers, errs.CodeOf(err))
	})

	t.Run("requires positive price", func(t *testing.T) {
		_, err := NewBooking(uuid.New(), uuid.New(), 0, testNow.AddDate(0, 1, 0),
			[]Pilgrim{{FirstName: "Ravi"}}, testNow)
		assert.Error(t, err)
	})
}

func TestRecordPayment(t *testing.T) {
	t.Run("appends to ledger and derives status", func(t *testing.T) {
		booking := newTestBooking(t)

		txn, err := booking.RecordPayment(185000, ledger.PaymentMethodUPI, "ref-1", "first installment", testNow)
		require.NoError(t, err)

		assert.Equal(t, ledger.PaymentStatusCompleted, txn.Status)
		assert.Equal(t, 185000.0, booking.TotalPaid())
		assert.Equal(t, PaymentStatePartial, booking.PaymentStatus)
		assert.Equal(t, StatusPending, booking.BookingStatus)
	})

	t.Run("promotes pending to confirmed when fully paid", func(t *testing.T) {
		booking := newTestBooking(t)

		_, err := booking.RecordPayment(370000, ledger.PaymentMethodNetBanking, "ref-1", "", testNow)
		require.NoError(t, err)

		assert.Equal(t, PaymentStateCompleted, booking.PaymentStatus)
		assert.Equal(t, StatusConfirmed, booking.BookingStatus)
	})

	t.Run("rejects overpayment and leaves ledger untouched", func(t *testing.T) {
		booking := newTestBooking(t)
		_, err := booking.RecordPayment(300000, ledger.PaymentMethodUPI, "ref-1", "", testNow)
		require.NoError(t, err)

		_, err = booking.RecordPayment(100000, ledger.PaymentMethodUPI, "ref-2", "", testNow)
		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidAmount, errs.CodeOf(err))

		assert.Len(t, booking.Payments, 1)
		assert.Equal(t, 300000.0, booking.TotalPaid())
		assert.Equal(t, PaymentStatePartial, booking.PaymentStatus)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		booking := newTestBooking(t)

		_, err := booking.RecordPayment(0, ledger.PaymentMethodUPI, "", "", testNow)
		assert.Equal(t, errs.CodeInvalidAmount, errs.CodeOf(err))

		_, err = booking.RecordPayment(-100, ledger.PaymentMethodUPI, "", "", testNow)
		assert.Equal(t, errs.CodeInvalidAmount, errs.CodeOf(err))
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		booking := newTestBooking(t)

		_, err := booking.RecordPayment(1000, "barter", "", "", testNow)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("rejects payment on terminal booking", func(t *testing.T) {
		booking := newTestBooking(t)
		require.NoError(t, booking.Reject(testNow))

		_, err := booking.RecordPayment(1000, ledger.PaymentMethodUPI, "", "", testNow)
		assert.Equal(t, errs.CodeBookingClosed, errs.CodeOf(err))
	})
}

func TestDerivePaymentState(t *testing.T) {
	t.Run("is a pure function of ledger and pilgrims", func(t *testing.T) {
		booking := newTestBooking(t)
		assert.Equal(t, PaymentStatePending, booking.DerivePaymentState())

		_, err := booking.RecordPayment(100000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatePartial, booking.DerivePaymentState())

		_, err = booking.RecordPayment(270000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)
		assert.Equal(t, PaymentStateCompleted, booking.DerivePaymentState())

		// Re-deriving yields the stored value every time.
		assert.Equal(t, booking.PaymentStatus, booking.DerivePaymentState())
	})

	t.Run("cancelled pilgrims with payments flip to refunded states", func(t *testing.T) {
		booking := newTestBooking(t)
		_, err := booking.RecordPayment(185000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)

		refund, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{booking.Pilgrims[0].ID}), "change of plans", testRules(), testNow)
		require.NoError(t, err)
		assert.Equal(t, PaymentStatePartiallyRefunded, booking.PaymentStatus)

		refund.MarkCompleted(testNow)
		booking.Refunds[0] = *refund
		_, _, err = booking.Cancel(CancelAll(), "change of plans", testRules(), testNow)
		require.NoError(t, err)
		assert.Equal(t, PaymentStateRefunded, booking.PaymentStatus)
	})

	t.Run("cancellation with nothing paid stays pending", func(t *testing.T) {
		booking := newTestBooking(t)

		_, quote, err := booking.Cancel(CancelAll(), "never paid", testRules(), testNow)
		require.NoError(t, err)
		assert.Equal(t, 0.0, quote.RefundAmount)
		assert.Equal(t, PaymentStatePending, booking.PaymentStatus)
	})
}

func TestCancelFull(t *testing.T) {
	booking := newTestBooking(t)
	_, err := booking.RecordPayment(185000, ledger.PaymentMethodUPI, "", "", testNow)
	require.NoError(t, err)

	refund, quote, err := booking.Cancel(CancelAll(), "trip called off", testRules(), testNow)
	require.NoError(t, err)
	require.NotNil(t, refund)

	// 40 days out -> 50% tier; full cancellation refunds against all paid.
	assert.Equal(t, 92500.0, quote.RefundAmount)
	assert.Equal(t, 50, quote.RefundPercentage)

	assert.Equal(t, StatusCancelled, booking.BookingStatus)
	assert.Equal(t, 0, booking.ActiveCount())
	assert.Equal(t, ledger.RefundStatusInitiated, refund.Status)
	assert.Nil(t, refund.PilgrimIDs)
	require.NotNil(t, booking.CancellationDate)
	assert.Equal(t, "trip called off", booking.CancellationReason)
}

func TestCancelPartial(t *testing.T) {
	booking := newTestBooking(t)
	_, err := booking.RecordPayment(185000, ledger.PaymentMethodUPI, "", "", testNow)
	require.NoError(t, err)

	target := booking.Pilgrims[0].ID
	refund, quote, err := booking.Cancel(CancelPilgrims([]uuid.UUID{target}), "one traveler dropped", testRules(), testNow)
	require.NoError(t, err)
	require.NotNil(t, refund)

	// 185000 paid / 2 travelers * 50% = 46250
	assert.Equal(t, 46250.0, quote.RefundAmount)
	assert.Equal(t, StatusPartiallyCancelled, booking.BookingStatus)
	assert.Equal(t, 1, booking.ActiveCount())
	assert.Equal(t, []uuid.UUID{target}, refund.PilgrimIDs)

	// Targeted pilgrim is cancelled, the other untouched.
	assert.Equal(t, PilgrimStatusCancelled, booking.Pilgrims[0].Status)
	assert.Equal(t, PilgrimStatusActive, booking.Pilgrims[1].Status)
}

func TestCancelValidation(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		booking := newTestBooking(t)
		_, _, err := booking.Cancel(CancelAll(), "", testRules(), testNow)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("already cancelled", func(t *testing.T) {
		booking := newTestBooking(t)
		_, _, err := booking.Cancel(CancelAll(), "first", testRules(), testNow)
		require.NoError(t, err)

		_, _, err = booking.Cancel(CancelAll(), "second", testRules(), testNow)
		assert.Equal(t, errs.CodeAlreadyCancelled, errs.CodeOf(err))
	})

	t.Run("terminal booking", func(t *testing.T) {
		booking := newTestBooking(t)
		require.NoError(t, booking.Reject(testNow))

		_, _, err := booking.Cancel(CancelAll(), "reason", testRules(), testNow)
		assert.Equal(t, errs.CodeBookingClosed, errs.CodeOf(err))
	})

	t.Run("empty selection", func(t *testing.T) {
		booking := newTestBooking(t)
		_, _, err := booking.Cancel(CancelPilgrims(nil), "reason", testRules(), testNow)
		assert.Equal(t, errs.CodeInvalidSelection, errs.CodeOf(err))
	})

	t.Run("foreign pilgrim", func(t *testing.T) {
		booking := newTestBooking(t)
		_, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{uuid.New()}), "reason", testRules(), testNow)
		assert.Equal(t, errs.CodeInvalidSelection, errs.CodeOf(err))
	})

	t.Run("already cancelled pilgrim", func(t *testing.T) {
		booking := newTestBooking(t)
		target := booking.Pilgrims[0].ID
		_, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{target}), "first", testRules(), testNow)
		require.NoError(t, err)

		_, _, err = booking.Cancel(CancelPilgrims([]uuid.UUID{target}), "again", testRules(), testNow)
		assert.Equal(t, errs.CodeInvalidSelection, errs.CodeOf(err))
	})

	t.Run("failed validation leaves aggregate untouched", func(t *testing.T) {
		booking := newTestBooking(t)
		_, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{uuid.New()}), "reason", testRules(), testNow)
		require.Error(t, err)

		assert.Equal(t, StatusPending, booking.BookingStatus)
		assert.Equal(t, 2, booking.ActiveCount())
		assert.Empty(t, booking.Refunds)
	})
}

func TestSingleInFlightRefund(t *testing.T) {
	booking := newTestBooking(t)
	_, err := booking.RecordPayment(370000, ledger.PaymentMethodUPI, "", "", testNow)
	require.NoError(t, err)

	refund, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{booking.Pilgrims[0].ID}), "first", testRules(), testNow)
	require.NoError(t, err)
	require.NotNil(t, refund)

	// Second cancellation blocked while the refund is open.
	_, _, err = booking.Cancel(CancelAll(), "second", testRules(), testNow)
	assert.Equal(t, errs.CodeRefundInFlight, errs.CodeOf(err))

	// Once the refund reaches a terminal state the block lifts.
	booking.Refunds[0].MarkCompleted(testNow)
	_, _, err = booking.Cancel(CancelAll(), "second", testRules(), testNow)
	assert.NoError(t, err)
}

func TestZeroRefundCancellation(t *testing.T) {
	// Departure in 2 days: the 0-day tier applies, 0%.
	booking, err := NewBooking(uuid.New(), uuid.New(), 185000,
		testNow.Add(2*24*time.Hour),
		[]Pilgrim{{FirstName: "Ravi"}, {FirstName: "Meera"}}, testNow)
	require.NoError(t, err)
	_, err = booking.RecordPayment(185000, ledger.PaymentMethodUPI, "", "", testNow)
	require.NoError(t, err)

	refund, quote, err := booking.Cancel(CancelAll(), "last minute", testRules(), testNow)
	require.NoError(t, err)

	// No refund row, but the cancellation still lands everywhere else.
	assert.Nil(t, refund)
	assert.Equal(t, 0.0, quote.RefundAmount)
	assert.Empty(t, booking.Refunds)
	assert.Equal(t, StatusCancelled, booking.BookingStatus)
	assert.Equal(t, PaymentStateRefunded, booking.PaymentStatus)
}

func TestPilgrimStatusMonotonic(t *testing.T) {
	booking := newTestBooking(t)
	target := booking.Pilgrims[0].ID

	_, _, err := booking.Cancel(CancelPilgrims([]uuid.UUID{target}), "dropped", testRules(), testNow)
	require.NoError(t, err)
	assert.Equal(t, PilgrimStatusCancelled, booking.Pilgrims[0].Status)

	// Every later operation leaves the cancelled pilgrim cancelled.
	_, _, err = booking.Cancel(CancelAll(), "rest dropped", testRules(), testNow)
	require.NoError(t, err)
	assert.Equal(t, PilgrimStatusCancelled, booking.Pilgrims[0].Status)
	assert.Equal(t, PilgrimStatusCancelled, booking.Pilgrims[1].Status)
}

func TestRejectAndComplete(t *testing.T) {
	t.Run("reject only from pending", func(t *testing.T) {
		booking := newTestBooking(t)
		require.NoError(t, booking.Reject(testNow))
		assert.Equal(t, StatusRejected, booking.BookingStatus)

		confirmed := newTestBooking(t)
		_, err := confirmed.RecordPayment(370000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)
		assert.Error(t, confirmed.Reject(testNow))
	})

	t.Run("complete from confirmed", func(t *testing.T) {
		booking := newTestBooking(t)
		_, err := booking.RecordPayment(370000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)

		require.NoError(t, booking.Complete(testNow))
		assert.Equal(t, StatusCompleted, booking.BookingStatus)
	})

	t.Run("complete from partially cancelled", func(t *testing.T) {
		booking := newTestBooking(t)
		_, err := booking.RecordPayment(370000, ledger.PaymentMethodUPI, "", "", testNow)
		require.NoError(t, err)
		_, _, err = booking.Cancel(CancelPilgrims([]uuid.UUID{booking.Pilgrims[0].ID}), "dropped", testRules(), testNow)
		require.NoError(t, err)

		assert.NoError(t, booking.Complete(testNow))
	})

	t.Run("complete not allowed from pending", func(t *testing.T) {
		booking := newTestBooking(t)
		assert.Error(t, booking.Complete(testNow))
	})
}
