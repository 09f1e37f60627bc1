package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yatra/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDashboard handles GET /api/v1/analytics/dashboard (admin)
func (c *Controller) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.service.GetDashboard(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "failed to build dashboard", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "dashboard retrieved", dashboard, nil)
}
