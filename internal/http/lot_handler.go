package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/service"
)

type proposeLotRequest struct {
	ParentBlockID   int64   `json:"parent_block_id" binding:"required"`
	Size            float64 `json:"size" binding:"required"`
	Location        string  `json:"location"`
	SurveyorName    string  `json:"surveyor_name" binding:"required"`
	TitleDeedNumber string  `json:"title_deed_number"`
	Price           float64 `json:"price"`
}

type confirmLotRequest struct {
	TitleDeedNumber string  `json:"title_deed_number" binding:"required"`
	Owner           string  `json:"owner" binding:"required"`
	TelephoneNumber string  `json:"telephone_number"`
	Email           string  `json:"email"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
}

func (h *Handler) proposeLot(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req proposeLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.lots.Propose(c.Request.Context(), service.ProposeLotInput{
		ParentBlockID:   req.ParentBlockID,
		Size:            req.Size,
		Location:        req.Location,
		SurveyorName:    req.SurveyorName,
		TitleDeedNumber: req.TitleDeedNumber,
		Price:           req.Price,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listLots(c *gin.Context) {
	rows, err := h.lots.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lots": rows})
}

func (h *Handler) listPendingLots(c *gin.Context) {
	lots, err := h.lots.ListPending(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

func (h *Handler) getLot(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lot, err := h.lots.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *Handler) confirmLot(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req confirmLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	propertyID, err := h.lots.Confirm(c.Request.Context(), service.ConfirmLotInput{
		LotID:           id,
		TitleDeedNumber: req.TitleDeedNumber,
		Owner:           req.Owner,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		Price:           req.Price,
		Description:     req.Description,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": propertyID})
}

func (h *Handler) rejectLot(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.lots.Reject(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}
