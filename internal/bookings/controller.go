package bookings

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// userIDFromContext extracts the authenticated user's ID set by the JWT
// middleware.
func userIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user not authenticated", nil, nil)
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "invalid user ID format", nil, nil)
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(str)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

func bookingIDFromPath(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid booking ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func isAgent(ctx *gin.Context) bool {
	role, _ := ctx.Get("user_role")
	roleStr, _ := role.(string)
	return roleStr == "AGENT" || roleStr == "ADMIN"
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "booking created", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	// Agents read any booking; customers only their own.
	if !isAgent(ctx) && booking.UserID != userID {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "access denied", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking retrieved", booking, nil)
}

// GetUserBookings handles GET /api/v1/users/bookings
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	query := listQueryFromContext(ctx)
	bookings, totalCount, err := c.service.GetUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to get bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "bookings retrieved", BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// GetAllBookings handles GET /api/v1/bookings (agent/admin)
func (c *Controller) GetAllBookings(ctx *gin.Context) {
	query := listQueryFromContext(ctx)
	bookings, totalCount, err := c.service.GetAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to get bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "bookings retrieved", BookingListResponse{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil)
}

// RecordPayment handles POST /api/v1/bookings/:id/payments
func (c *Controller) RecordPayment(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	txn, err := c.service.RecordPayment(ctx.Request.Context(), bookingID, userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "payment recorded", txn, nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	result, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking cancelled", result, nil)
}

// RejectBooking handles POST /api/v1/bookings/:id/reject (agent/admin)
func (c *Controller) RejectBooking(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}

	var req RejectBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	if err := c.service.RejectBooking(ctx.Request.Context(), bookingID, req.Reason); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking rejected", nil, nil)
}

// CompleteBooking handles POST /api/v1/bookings/:id/complete (agent/admin)
func (c *Controller) CompleteBooking(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}

	if err := c.service.CompleteBooking(ctx.Request.Context(), bookingID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "booking completed", nil, nil)
}

// GetReadiness handles GET /api/v1/bookings/:id/readiness
func (c *Controller) GetReadiness(ctx *gin.Context) {
	bookingID, ok := bookingIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	if !isAgent(ctx) && booking.UserID != userID {
		response.RespondJSON(ctx, "error", http.StatusForbidden, "access denied", nil, nil)
		return
	}

	readiness, err := c.service.GetReadiness(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "readiness retrieved", readiness, nil)
}

func listQueryFromContext(ctx *gin.Context) BookingListQuery {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return BookingListQuery{
		Page:   page,
		Limit:  limit,
		Status: ctx.Query("status"),
	}
}
