package documents

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

func idFromPath(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid ID", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

// UploadDocument handles POST /api/v1/pilgrims/:id/documents
func (c *Controller) UploadDocument(ctx *gin.Context) {
	pilgrimID, ok := idFromPath(ctx, "id")
	if !ok {
		return
	}

	var req UploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	doc, err := c.service.Upload(ctx.Request.Context(), pilgrimID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "document uploaded", doc, nil)
}

// GetPilgrimDocuments handles GET /api/v1/pilgrims/:id/documents
func (c *Controller) GetPilgrimDocuments(ctx *gin.Context) {
	pilgrimID, ok := idFromPath(ctx, "id")
	if !ok {
		return
	}

	docs, err := c.service.GetPilgrimDocuments(ctx.Request.Context(), pilgrimID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	progress, err := c.service.Progress(ctx.Request.Context(), pilgrimID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "documents retrieved", gin.H{
		"documents": docs,
		"progress":  progress,
		"required":  RequiredDocumentTypes(),
	}, nil)
}

// VerifyDocument handles POST /api/v1/documents/:id/verify (agent/admin)
func (c *Controller) VerifyDocument(ctx *gin.Context) {
	documentID, ok := idFromPath(ctx, "id")
	if !ok {
		return
	}

	doc, err := c.service.Verify(ctx.Request.Context(), documentID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "document verified", doc, nil)
}

// RejectDocument handles POST /api/v1/documents/:id/reject (agent/admin)
func (c *Controller) RejectDocument(ctx *gin.Context) {
	documentID, ok := idFromPath(ctx, "id")
	if !ok {
		return
	}

	var req RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "invalid request body", nil, err.Error())
		return
	}

	doc, err := c.service.Reject(ctx.Request.Context(), documentID, req.Reason)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "document sent back for re-upload", doc, nil)
}
