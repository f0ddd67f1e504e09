package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drelocd/estate-service/internal/service"
)

type Handler struct {
	users      *service.UserService
	properties *service.PropertyService
	clients    *service.ClientService
	sales      *service.SalesService
	transfers  *service.TransferService
	lots       *service.LotService
	agents     *service.AgentService
	plans      *service.PlanService
	survey     *service.SurveyService
	activity   *service.ActivityService
	dashboard  *service.DashboardService
	reports    *service.ReportService
	log        zerolog.Logger
}

type Services struct {
	Users      *service.UserService
	Properties *service.PropertyService
	Clients    *service.ClientService
	Sales      *service.SalesService
	Transfers  *service.TransferService
	Lots       *service.LotService
	Agents     *service.AgentService
	Plans      *service.PlanService
	Survey     *service.SurveyService
	Activity   *service.ActivityService
	Dashboard  *service.DashboardService
	Reports    *service.ReportService
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		users:      services.Users,
		properties: services.Properties,
		clients:    services.Clients,
		sales:      services.Sales,
		transfers:  services.Transfers,
		lots:       services.Lots,
		agents:     services.Agents,
		plans:      services.Plans,
		survey:     services.Survey,
		activity:   services.Activity,
		dashboard:  services.Dashboard,
		reports:    services.Reports,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/users", h.registerUser)
	protected.GET("/users", h.listUsers)
	protected.GET("/users/:id", h.getUser)
	protected.PATCH("/users/:id", h.updateUser)
	protected.DELETE("/users/:id", h.deleteUser)

	protected.POST("/properties", h.addProperty)
	protected.GET("/properties", h.listProperties)
	protected.GET("/properties/combined", h.listCombinedProperties)
	protected.GET("/properties/sold", h.listSoldProperties)
	protected.GET("/properties/:id", h.getProperty)
	protected.PATCH("/properties/:id", h.updateProperty)
	protected.DELETE("/properties/:id", h.deleteProperty)
	protected.GET("/properties/:id/sales", h.listSalesByProperty)
	protected.POST("/transfer-pool", h.addTransferPoolProperty)

	protected.POST("/clients", h.addClient)
	protected.GET("/clients", h.listClients)
	protected.GET("/clients/by-phone", h.getClientByPhone)
	protected.GET("/clients/:id", h.getClient)
	protected.PATCH("/clients/:id", h.updateClient)
	protected.DELETE("/clients/:id", h.deactivateClient)
	protected.GET("/clients/:id/properties", h.listClientProperties)
	protected.GET("/clients/:id/sales", h.listSalesByClient)
	protected.POST("/clients/:id/visits", h.addClientVisit)
	protected.GET("/client-visits", h.listClientVisits)

	protected.POST("/sales", h.recordSale)
	protected.GET("/sales", h.listSales)
	protected.GET("/sales/pending-balance", h.pendingBalance)
	protected.GET("/sales/:id", h.getSale)
	protected.PATCH("/sales/:id", h.updateSale)

	protected.POST("/transfers", h.executeTransfer)
	protected.GET("/transfers", h.listTransfers)

	protected.POST("/lots", h.proposeLot)
	protected.GET("/lots", h.listLots)
	protected.GET("/lots/pending", h.listPendingLots)
	protected.GET("/lots/:id", h.getLot)
	protected.POST("/lots/:id/confirm", h.confirmLot)
	protected.POST("/lots/:id/reject", h.rejectLot)

	protected.POST("/agents", h.addAgent)
	protected.GET("/agents", h.listAgents)
	protected.GET("/agents/:id", h.getAgent)
	protected.PATCH("/agents/:id", h.renameAgent)
	protected.PATCH("/agents/:id/status", h.updateAgentStatus)
	protected.DELETE("/agents/:id", h.deleteAgent)

	protected.POST("/payment-plans", h.createPlan)
	protected.GET("/payment-plans", h.listPlans)
	protected.GET("/payment-plans/:id", h.getPlan)
	protected.PUT("/payment-plans/:id", h.updatePlan)
	protected.DELETE("/payment-plans/:id", h.deletePlan)

	protected.POST("/survey/clients", h.addServiceClient)
	protected.GET("/survey/clients", h.listServiceClients)
	protected.GET("/survey/clients/:id", h.getServiceClient)
	protected.GET("/survey/clients/:id/files", h.listClientFiles)
	protected.POST("/survey/clients/:id/files", h.addClientFile)
	protected.GET("/survey/files", h.listFiles)
	protected.GET("/survey/files/:id", h.getFile)
	protected.GET("/survey/files/:id/jobs", h.listJobsByFile)
	protected.POST("/survey/jobs", h.addJob)
	protected.GET("/survey/jobs", h.listJobs)
	protected.GET("/survey/jobs/completed", h.listCompletedJobs)
	protected.GET("/survey/jobs/status-counts", h.jobStatusCounts)
	protected.GET("/survey/jobs/report", h.jobReport)
	protected.GET("/survey/jobs/:id", h.getJob)
	protected.PATCH("/survey/jobs/:id", h.updateJob)
	protected.PATCH("/survey/jobs/:id/status", h.updateJobStatus)
	protected.GET("/survey/jobs/:id/payment", h.getJobPayment)
	protected.POST("/survey/jobs/:id/dispatch", h.dispatchJob)
	protected.GET("/survey/jobs/:id/signature", h.jobSignature)
	protected.GET("/survey/payments", h.listPayments)
	protected.POST("/survey/payments/:id/record", h.recordPayment)
	protected.GET("/survey/payments/:id/history", h.paymentHistory)
	protected.GET("/survey/sales-summary", h.salesSummary)
	protected.GET("/survey/dispatches", h.listDispatches)

	protected.GET("/activity-logs", h.listActivity)
	protected.GET("/dashboard", h.dashboardSummary)
	protected.GET("/reports/sold-properties", h.soldPropertiesReport)
	protected.GET("/reports/service-payments", h.servicePaymentsReport)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parsePage(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.Query("page"))
	pageSize, _ = strconv.Atoi(c.Query("page_size"))
	return page, pageSize
}

// parseDateQuery reads an optional date query param; "to" params get
// the end-of-day bound.
func parseDateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	layouts := []string{time.RFC3339, "2006-01-02", "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			if endOfDay && layout == "2006-01-02" {
				parsed = parsed.Add(24*time.Hour - time.Second)
			}
			return &parsed, nil
		}
	}
	return nil, service.ErrInvalidInput
}

func parseFloatQuery(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, service.ErrInvalidInput
	}
	return &value, nil
}
