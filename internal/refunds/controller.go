package refunds

import (
	"net/http"

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

func refundIDFromPath(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid refund ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func userIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "user not authenticated", nil, nil)
		return uuid.Nil, false
	}
	str, _ := raw.(string)
	userID, err := uuid.Parse(str)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid user ID", nil, nil)
		return uuid.Nil, false
	}
	return userID, true
}

func isAgent(ctx *gin.Context) bool {
	role, _ := ctx.Get("user_role")
	roleStr, _ := role.(string)
	return roleStr == "AGENT" || roleStr == "ADMIN"
}

// GetRefund handles GET /api/v1/refunds/:id
func (c *Controller) GetRefund(ctx *gin.Context) {
	refundID, ok := refundIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	refund, err := c.service.GetRefund(ctx.Request.Context(), refundID, userID, isAgent(ctx))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "refund retrieved", refund, nil)
}

// GetUserRefunds handles GET /api/v1/users/refunds
func (c *Controller) GetUserRefunds(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	refunds, err := c.service.GetUserRefunds(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to get refunds", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "refunds retrieved", gin.H{
		"refunds": refunds,
		"count":   len(refunds),
	}, nil)
}

// SelectRefundMethod handles POST /api/v1/refunds/:id/method
func (c *Controller) SelectRefundMethod(ctx *gin.Context) {
	refundID, ok := refundIDFromPath(ctx)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return
	}

	var req SelectMethodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	refund, err := c.service.SelectRefundMethod(ctx.Request.Context(), refundID, userID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "refund method selected", refund, nil)
}

// CompleteRefund handles POST /api/v1/refunds/:id/complete (agent/admin)
func (c *Controller) CompleteRefund(ctx *gin.Context) {
	refundID, ok := refundIDFromPath(ctx)
	if !ok {
		return
	}

	refund, err := c.service.CompleteRefund(ctx.Request.Context(), refundID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "refund completed", refund, nil)
}

// FailRefund handles POST /api/v1/refunds/:id/fail (agent/admin)
func (c *Controller) FailRefund(ctx *gin.Context) {
	refundID, ok := refundIDFromPath(ctx)
	if !ok {
		return
	}

	var req FailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	refund, err := c.service.FailRefund(ctx.Request.Context(), refundID, req.Reason)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "refund marked as failed", refund, nil)
}
