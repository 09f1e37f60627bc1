package analytics

// BookingStats summarizes booking volume and value across the portal.
type BookingStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	CancellationRate  float64 `json:"cancellation_rate"`
}

// RefundStats summarizes refund throughput.
type RefundStats struct {
	TotalRefunds     int64   `json:"total_refunds"`
	PendingRefunds   int64   `json:"pending_refunds"`
	CompletedRefunds int64   `json:"completed_refunds"`
	FailedRefunds    int64   `json:"failed_refunds"`
	TotalRefunded    float64 `json:"total_refunded"`
}

// PackagePerformance ranks packages by booking volume.
type PackagePerformance struct {
	PackageID    string  `json:"package_id"`
	PackageName  string  `json:"package_name"`
	BookingCount int64   `json:"booking_count"`
	Revenue      float64 `json:"revenue"`
}

// Dashboard is the aggregate payload for the admin dashboard.
type Dashboard struct {
	Bookings    BookingStats         `json:"bookings"`
	Refunds     RefundStats          `json:"refunds"`
	TopPackages []PackagePerformance `json:"top_packages"`
}
