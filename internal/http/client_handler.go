package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/service"
)

type addClientRequest struct {
	Name            string `json:"name" binding:"required"`
	TelephoneNumber string `json:"telephone_number" binding:"required"`
	Email           string `json:"email"`
}

type updateClientRequest struct {
	Name            *string `json:"name"`
	TelephoneNumber *string `json:"telephone_number"`
	Email           *string `json:"email"`
}

type addVisitRequest struct {
	Purpose   string `json:"purpose" binding:"required"`
	BroughtBy string `json:"brought_by"`
}

func (h *Handler) addClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.clients.Add(c.Request.Context(), service.AddClientInput{
		Name:            req.Name,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listClients(c *gin.Context) {
	if c.Query("all") == "true" {
		rows, err := h.clients.ListAll(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clients": rows})
		return
	}

	rows, err := h.clients.ListActive(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": rows})
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) getClientByPhone(c *gin.Context) {
	client, err := h.clients.GetByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.TelephoneNumber != nil {
		changes["telephone_number"] = *req.TelephoneNumber
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}

	if err := h.clients.Update(c.Request.Context(), principal, id, changes); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) deactivateClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.clients.Deactivate(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

func (h *Handler) listClientProperties(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rows, err := h.clients.ListProperties(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": rows})
}

func (h *Handler) addClientVisit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req addVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visitID, err := h.clients.AddVisit(c.Request.Context(), service.AddVisitInput{
		ClientID:  id,
		Purpose:   req.Purpose,
		BroughtBy: req.BroughtBy,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": visitID})
}

func (h *Handler) listClientVisits(c *gin.Context) {
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

	rows, err := h.clients.ListVisits(c.Request.Context(), from, to, c.Query("purpose"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": rows})
}
