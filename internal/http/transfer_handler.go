package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/service"
)

type executeTransferRequest struct {
	PropertyID           int64   `json:"property_id" binding:"required"`
	Source               string  `json:"source" binding:"required"`
	FromClientID         *int64  `json:"from_client_id"`
	ToClientID           int64   `json:"to_client_id" binding:"required"`
	TransferPrice        float64 `json:"transfer_price"`
	TransferDate         string  `json:"transfer_date"`
	SupervisingAgentID   *int64  `json:"supervising_agent_id"`
	TransferDocumentPath string  `json:"transfer_document_path"`
}

func (h *Handler) executeTransfer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req executeTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var transferDate time.Time
	if req.TransferDate != "" {
		parsed, err := time.Parse("2006-01-02", req.TransferDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transfer_date"})
			return
		}
		transferDate = parsed
	}

	id, err := h.transfers.Execute(c.Request.Context(), service.ExecuteTransferInput{
		PropertyID:           req.PropertyID,
		Source:               model.PropertySource(req.Source),
		FromClientID:         req.FromClientID,
		ToClientID:           req.ToClientID,
		TransferPrice:        req.TransferPrice,
		TransferDate:         transferDate,
		SupervisingAgentID:   req.SupervisingAgentID,
		TransferDocumentPath: req.TransferDocumentPath,
		Principal:            principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listTransfers(c *gin.Context) {
	from, err := parseDateQuery(c, "from", false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseDateQuery(c, "to", true)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}

	rows, err := h.transfers.List(c.Request.Context(), from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": rows})
}
