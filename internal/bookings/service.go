package bookings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"yatra/internal/ledger"
	"yatra/internal/notifications"
	"yatra/internal/packages"
	"yatra/internal/policy"
	"yatra/internal/shared/errs"
)

// PackageCatalog is the read-side surface of the package service the booking
// core depends on.
type PackageCatalog interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*packages.TravelPackage, error)
}

// PolicyProvider supplies the cancellation rule set for a package.
type PolicyProvider interface {
	RulesForPackage(ctx context.Context, packageID uuid.UUID) ([]policy.Rule, error)
}

// ReadinessProvider reports per-pilgrim document verification progress
// (implemented by the documents service; avoids a package cycle).
type ReadinessProvider interface {
	ProgressForPilgrims(ctx context.Context, pilgrimIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

// Service interface defines the contract for booking business logic.
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)

	RecordPayment(ctx context.Context, bookingID, userID uuid.UUID, req RecordPaymentRequest) (*ledger.PaymentTransaction, error)
	CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, req CancelBookingRequest) (*CancellationResponse, error)
	RejectBooking(ctx context.Context, bookingID uuid.UUID, reason string) error
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) error

	GetReadiness(ctx context.Context, bookingID uuid.UUID) (*ReadinessResponse, error)
}

type service struct {
	repo      Repository
	catalog   PackageCatalog
	policies  PolicyProvider
	readiness ReadinessProvider
	producer  notifications.Producer
}

// NewService creates a new booking service instance. producer may be nil when
// Kafka is unavailable; events are then skipped.
func NewService(repo Repository, catalog PackageCatalog, policies PolicyProvider, readiness ReadinessProvider, producer notifications.Producer) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		policies:  policies,
		readiness: readiness,
		producer:  producer,
	}
}

// CreateBooking opens a pending booking with zero payments. The total amount
// is fixed here and never changes: package price times traveler count.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, errs.Validation(errs.CodeValidation, "invalid package ID")
	}

	pkg, err := s.catalog.GetPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if !pkg.Status.IsBookable() {
		return nil, errs.StateConflict(errs.CodeInvalidState, "package is not open for booking")
	}
	if !pkg.DepartureDate.After(time.Now()) {
		return nil, errs.StateConflict(errs.CodeInvalidState, "package has already departed")
	}

	pilgrims := make([]Pilgrim, 0, len(req.Pilgrims))
	for _, p := range req.Pilgrims {
		pilgrims = append(pilgrims, Pilgrim{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DateOfBirth:    p.DateOfBirth,
			Gender:         p.Gender,
			Nationality:    p.Nationality,
			PassportNumber: p.PassportNumber,
			PassportExpiry: p.PassportExpiry,
		})
	}

	booking, err := NewBooking(userID, packageID, pkg.PricePerPerson, pkg.DepartureDate, pilgrims, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetByID(ctx, bookingID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetByUserID(ctx, userID, query)
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetAll(ctx, query)
}

// RecordPayment appends a completed payment to the booking's ledger and
// persists the derived status changes under the booking's version guard.
func (s *service) RecordPayment(ctx context.Context, bookingID, userID uuid.UUID, req RecordPaymentRequest) (*ledger.PaymentTransaction, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errs.Validation(errs.CodeValidation, "booking does not belong to user")
	}

	wasPending := booking.BookingStatus == StatusPending

	txn, err := booking.RecordPayment(req.Amount, ledger.PaymentMethod(req.Method), req.Reference, req.Description, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Apply(ctx, Mutation{Booking: booking, NewPayment: txn}); err != nil {
		return nil, err
	}

	if wasPending && booking.BookingStatus == StatusConfirmed {
		s.publish(ctx, notifications.NewEvent(notifications.EventTypeBookingConfirmed, booking.ID, booking.UserID).
			WithData(map[string]interface{}{"total_amt": booking.TotalAmt}))
	}
	return txn, nil
}

// CancelBooking cancels the whole booking or a subset of its pilgrims,
// evaluates the package's cancellation policy, and persists the resulting
// refund (if any) atomically with the state change.
func (s *service) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, req CancelBookingRequest) (*CancellationResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, errs.Validation(errs.CodeValidation, "booking does not belong to user")
	}

	scope, err := parseScope(req)
	if err != nil {
		return nil, err
	}

	rules, err := s.policies.RulesForPackage(ctx, booking.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cancellation policy: %w", err)
	}

	activeBefore := make(map[uuid.UUID]bool, len(booking.Pilgrims))
	for i := range booking.Pilgrims {
		if booking.Pilgrims[i].IsActive() {
			activeBefore[booking.Pilgrims[i].ID] = true
		}
	}

	refund, quote, err := booking.Cancel(scope, req.Reason, rules, time.Now())
	if err != nil {
		return nil, err
	}

	// Every pilgrim row the cancel touched has to commit with the booking.
	var changed []*Pilgrim
	for i := range booking.Pilgrims {
		if activeBefore[booking.Pilgrims[i].ID] && !booking.Pilgrims[i].IsActive() {
			changed = append(changed, &booking.Pilgrims[i])
		}
	}

	if err := s.repo.Apply(ctx, Mutation{Booking: booking, Pilgrims: changed, NewRefund: refund}); err != nil {
		return nil, err
	}

	event := notifications.NewEvent(notifications.EventTypeBookingCancelled, booking.ID, booking.UserID).
		WithData(map[string]interface{}{
			"scope":             req.Scope,
			"cancelled_count":   len(changed),
			"refund_percentage": quote.RefundPercentage,
		})
	if refund != nil {
		event = event.WithRefund(refund.ID, refund.Amount)
	}
	s.publish(ctx, event)

	if refund != nil {
		s.publish(ctx, notifications.NewEvent(notifications.EventTypeRefundInitiated, booking.ID, booking.UserID).
			WithRefund(refund.ID, refund.Amount))
	}

	return &CancellationResponse{Booking: booking, Quote: quote, Refund: refund}, nil
}

// RejectBooking records an external rejection decision (agent-facing).
func (s *service) RejectBooking(ctx context.Context, bookingID uuid.UUID, reason string) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := booking.Reject(time.Now()); err != nil {
		return err
	}
	if reason != "" {
		booking.CancellationReason = reason
	}
	return s.repo.Apply(ctx, Mutation{Booking: booking})
}

// CompleteBooking marks the trip as done, post-departure (agent-facing).
func (s *service) CompleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := booking.Complete(time.Now()); err != nil {
		return err
	}
	return s.repo.Apply(ctx, Mutation{Booking: booking})
}

// GetReadiness derives the document-verification progress view for a booking.
func (s *service) GetReadiness(ctx context.Context, bookingID uuid.UUID) (*ReadinessResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(booking.Pilgrims))
	for i := range booking.Pilgrims {
		ids = append(ids, booking.Pilgrims[i].ID)
	}

	progress, err := s.readiness.ProgressForPilgrims(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get document progress: %w", err)
	}

	resp := &ReadinessResponse{BookingID: booking.ID.String()}
	var total float64
	for i := range booking.Pilgrims {
		p := &booking.Pilgrims[i]
		pct := progress[p.ID]
		total += pct
		resp.Pilgrims = append(resp.Pilgrims, PilgrimReadiness{
			PilgrimID: p.ID.String(),
			Name:      p.FirstName + " " + p.LastName,
			Status:    string(p.Status),
			Progress:  pct,
		})
	}
	if len(booking.Pilgrims) > 0 {
		resp.OverallProgress = total / float64(len(booking.Pilgrims))
	}
	return resp, nil
}

func parseScope(req CancelBookingRequest) (CancelScope, error) {
	if req.Scope == "all" {
		return CancelAll(), nil
	}
	ids := make([]uuid.UUID, 0, len(req.PilgrimIDs))
	for _, raw := range req.PilgrimIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return CancelScope{}, errs.Validation(errs.CodeInvalidSelection, "invalid traveler ID: "+raw)
		}
		ids = append(ids, id)
	}
	return CancelPilgrims(ids), nil
}

func (s *service) publish(ctx context.Context, event *notifications.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		// Events are best-effort; the state change already committed.
		log.Printf("warning: failed to publish %s event for booking %s: %v", event.Type, event.BookingID, err)
	}
}
