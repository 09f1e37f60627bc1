package policy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"yatra/internal/shared/errs"
	"yatra/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreatePolicy handles POST /api/v1/packages/:id/cancellation-policy
func (c *Controller) CreatePolicy(ctx *gin.Context) {
	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid package ID", nil, nil)
		return
	}

	var req PolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	policy, err := c.service.CreatePolicy(ctx.Request.Context(), packageID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "cancellation policy created", policy, nil)
}

// GetPolicy handles GET /api/v1/packages/:id/cancellation-policy
func (c *Controller) GetPolicy(ctx *gin.Context) {
	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid package ID", nil, nil)
		return
	}

	policy, err := c.service.GetPolicy(ctx.Request.Context(), packageID)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			response.RespondError(ctx, err)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to get cancellation policy", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "cancellation policy retrieved", policy, nil)
}

// UpdatePolicy handles PUT /api/v1/packages/:id/cancellation-policy
func (c *Controller) UpdatePolicy(ctx *gin.Context) {
	packageID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid package ID", nil, nil)
		return
	}

	var req PolicyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	policy, err := c.service.UpdatePolicy(ctx.Request.Context(), packageID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "cancellation policy updated", policy, nil)
}
