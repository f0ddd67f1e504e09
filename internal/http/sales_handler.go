package http

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/repository"
	"github.com/drelocd/estate-service/internal/service"
)

type recordSaleRequest struct {
	PropertyID  int64   `json:"property_id" binding:"required"`
	ClientID    int64   `json:"client_id" binding:"required"`
	PaymentMode string  `json:"payment_mode" binding:"required"`
	AmountPaid  float64 `json:"amount_paid"`
	Discount    float64 `json:"discount"`
}

type updateSaleRequest struct {
	PaymentMode     *string  `json:"payment_mode"`
	TotalAmountPaid *float64 `json:"total_amount_paid"`
	Discount        *float64 `json:"discount"`
	Balance         *float64 `json:"balance"`
	ReceiptPath     *string  `json:"receipt_path"`
}

func (h *Handler) recordSale(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sales.RecordSale(c.Request.Context(), service.RecordSaleInput{
		PropertyID:  req.PropertyID,
		ClientID:    req.ClientID,
		PaymentMode: req.PaymentMode,
		AmountPaid:  req.AmountPaid,
		Discount:    req.Discount,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction_id": result.TransactionID,
		"balance":        result.Balance,
		"receipt_name":   result.ReceiptName,
		"receipt":        base64.StdEncoding.EncodeToString(result.Receipt),
	})
}

func (h *Handler) listSales(c *gin.Context) {
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

	rows, err := h.sales.ListDetailed(c.Request.Context(), repository.TransactionFilter{
		Status:        c.Query("status"),
		From:          from,
		To:            to,
		PaymentMode:   c.Query("payment_mode"),
		ClientName:    c.Query("client_name"),
		PropertyQuery: c.Query("property"),
		ClientContact: c.Query("client_contact"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": rows})
}

func (h *Handler) getSale(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	transaction, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *Handler) updateSale(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := map[string]interface{}{}
	if req.PaymentMode != nil {
		changes["payment_mode"] = *req.PaymentMode
	}
	if req.TotalAmountPaid != nil {
		changes["total_amount_paid"] = *req.TotalAmountPaid
	}
	if req.Discount != nil {
		changes["discount"] = *req.Discount
	}
	if req.Balance != nil {
		changes["balance"] = *req.Balance
	}
	if req.ReceiptPath != nil {
		changes["receipt_path"] = *req.ReceiptPath
	}

	if err := h.sales.Update(c.Request.Context(), principal, id, changes); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) pendingBalance(c *gin.Context) {
	balance, err := h.sales.PendingBalance(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending_balance": balance})
}

func (h *Handler) listSalesByProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rows, err := h.sales.ListByProperty(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": rows})
}

func (h *Handler) listSalesByClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rows, err := h.sales.ListByClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": rows})
}
