package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/service"
)

type addAgentRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateAgentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type renameAgentRequest struct {
	Name string `json:"name" binding:"required"`
}

type paymentPlanRequest struct {
	Name              string  `json:"name" binding:"required"`
	DepositPercentage float64 `json:"deposit_percentage"`
	DurationMonths    int     `json:"duration_months" binding:"required"`
	InterestRate      float64 `json:"interest_rate"`
}

func (h *Handler) addAgent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.agents.Add(c.Request.Context(), principal, req.Name)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listAgents(c *gin.Context) {
	if name := c.Query("name"); name != "" {
		agent, err := h.agents.GetByName(c.Request.Context(), name)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"agents": []interface{}{agent}})
		return
	}

	agents, err := h.agents.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

func (h *Handler) getAgent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	agent, err := h.agents.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

func (h *Handler) renameAgent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req renameAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.agents.Rename(c.Request.Context(), principal, id, req.Name); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": req.Name})
}

func (h *Handler) updateAgentStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateAgentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.agents.UpdateStatus(c.Request.Context(), principal, id, req.Status); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) deleteAgent(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.agents.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createPlan(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req paymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.plans.Create(c.Request.Context(), service.PaymentPlanInput{
		Name:              req.Name,
		DepositPercentage: req.DepositPercentage,
		DurationMonths:    req.DurationMonths,
		InterestRate:      req.InterestRate,
		Principal:         principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listPlans(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment_plans": plans})
}

func (h *Handler) getPlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *Handler) updatePlan(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req paymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.plans.Update(c.Request.Context(), service.PaymentPlanInput{
		PlanID:            id,
		Name:              req.Name,
		DepositPercentage: req.DepositPercentage,
		DurationMonths:    req.DurationMonths,
		InterestRate:      req.InterestRate,
		Principal:         principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) deletePlan(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.plans.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
