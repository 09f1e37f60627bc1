package analytics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

// The bookings table stores its status in booking_status and the total in
// total_amt; the aggregates have to hit those columns, not the model field
// names.
func TestGetBookingStats(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`(?s)FILTER \(WHERE booking_status = 'confirmed'\).*FILTER \(WHERE booking_status = 'cancelled'\).*FILTER \(WHERE booking_status = 'completed'\).*FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"total_bookings", "confirmed_bookings", "cancelled_bookings", "completed_bookings"}).
			AddRow(10, 5, 2, 1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payment_transactions" WHERE status =`).
		WithArgs("completed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(555000.0))

	stats, err := repo.GetBookingStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalBookings)
	assert.Equal(t, int64(2), stats.CancelledBookings)
	assert.Equal(t, 555000.0, stats.TotalRevenue)
	assert.InDelta(t, 20.0, stats.CancellationRate, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRefundStats(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`(?s)FILTER \(WHERE status IN \('initiated', 'processing'\)\).*FROM "refund_transactions"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"total_refunds", "pending_refunds", "completed_refunds", "failed_refunds", "total_refunded"}).
			AddRow(4, 1, 2, 1, 92500.0))

	stats, err := repo.GetRefundStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalRefunds)
	assert.Equal(t, 92500.0, stats.TotalRefunded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopPackages(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`(?s)SUM\(bookings\.total_amt\).*bookings\.booking_status NOT IN \('cancelled', 'rejected'\)`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"package_id", "package_name", "booking_count", "revenue"}).
			AddRow("0b4f7a4e-0000-0000-0000-000000000001", "Char Dham Yatra", 7, 1295000.0))

	rows, err := repo.GetTopPackages(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Char Dham Yatra", rows[0].PackageName)
	assert.Equal(t, 1295000.0, rows[0].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
