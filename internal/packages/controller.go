package packages

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

// ListPackages handles GET /api/v1/packages
func (c *Controller) ListPackages(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	pkgs, totalCount, err := c.service.ListPackages(ctx.Request.Context(), page, limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to list packages", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "packages retrieved", gin.H{
		"packages":    pkgs,
		"total_count": totalCount,
		"page":        page,
		"limit":       limit,
	}, nil)
}

// GetPackage handles GET /api/v1/packages/:id
func (c *Controller) GetPackage(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid package ID", nil, nil)
		return
	}

	pkg, err := c.service.GetPackage(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "package retrieved", pkg, nil)
}
