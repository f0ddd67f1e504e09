package http

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
	"github.com/drelocd/estate-service/internal/service"
)

type addServiceClientRequest struct {
	Name            string `json:"name" binding:"required"`
	TelephoneNumber string `json:"telephone_number" binding:"required"`
	Email           string `json:"email"`
	BroughtBy       string `json:"brought_by"`
}

type addClientFileRequest struct {
	FileName string `json:"file_name" binding:"required"`
}

type addJobRequest struct {
	FileID         int64   `json:"file_id" binding:"required"`
	JobDescription string  `json:"job_description"`
	TitleName      string  `json:"title_name"`
	TitleNumber    string  `json:"title_number"`
	Fee            float64 `json:"fee"`
	BroughtBy      string  `json:"brought_by"`
}

type updateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateJobRequest struct {
	JobDescription *string  `json:"job_description"`
	TitleName      *string  `json:"title_name"`
	TitleNumber    *string  `json:"title_number"`
	BroughtBy      *string  `json:"brought_by"`
	Fee            *float64 `json:"fee"`
}

func (r updateJobRequest) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.JobDescription != nil {
		changes["job_description"] = *r.JobDescription
	}
	if r.TitleName != nil {
		changes["title_name"] = *r.TitleName
	}
	if r.TitleNumber != nil {
		changes["title_number"] = *r.TitleNumber
	}
	if r.BroughtBy != nil {
		changes["brought_by"] = *r.BroughtBy
	}
	if r.Fee != nil {
		changes["fee"] = *r.Fee
	}
	return changes
}

type recordPaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	PaymentType string  `json:"payment_type" binding:"required"`
}

type dispatchJobRequest struct {
	ReasonForDispatch string `json:"reason_for_dispatch"`
	CollectedBy       string `json:"collected_by" binding:"required"`
	CollectorPhone    string `json:"collector_phone"`
	Signature         string `json:"signature"`
}

func (h *Handler) addServiceClient(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addServiceClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.survey.AddClient(c.Request.Context(), service.AddServiceClientInput{
		Name:            req.Name,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		BroughtBy:       req.BroughtBy,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listServiceClients(c *gin.Context) {
	clients, err := h.survey.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *Handler) getServiceClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.survey.GetClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) listClientFiles(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	files, err := h.survey.ListFilesByClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *Handler) addClientFile(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req addClientFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileID, err := h.survey.AddFile(c.Request.Context(), principal, id, req.FileName)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": fileID})
}

func (h *Handler) listFiles(c *gin.Context) {
	files, err := h.survey.ListFiles(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *Handler) getFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	file, err := h.survey.GetFile(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, file)
}

func (h *Handler) listJobsByFile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	jobs, err := h.survey.ListJobsByFile(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) addJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.survey.AddJob(c.Request.Context(), service.AddJobInput{
		FileID:         req.FileID,
		JobDescription: req.JobDescription,
		TitleName:      req.TitleName,
		TitleNumber:    req.TitleNumber,
		Fee:            req.Fee,
		BroughtBy:      req.BroughtBy,
		Principal:      principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listJobs(c *gin.Context) {
	page, pageSize := parsePage(c)
	limit, offset := 0, 0
	if pageSize > 0 {
		limit = pageSize
		if page > 1 {
			offset = (page - 1) * pageSize
		}
	}

	jobs, err := h.survey.ListJobs(c.Request.Context(), repository.JobFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) listCompletedJobs(c *gin.Context) {
	jobs, err := h.survey.ListCompletedJobs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) jobStatusCounts(c *gin.Context) {
	counts, err := h.survey.JobStatusCounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (h *Handler) jobReport(c *gin.Context) {
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

	rows, err := h.survey.JobReport(c.Request.Context(), repository.JobReportFilter{
		From:   from,
		To:     to,
		Status: c.Query("status"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": rows})
}

func (h *Handler) getJob(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	job, err := h.survey.GetJob(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) updateJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.survey.UpdateJob(c.Request.Context(), principal, id, req.changes()); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) updateJobStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.survey.UpdateJobStatus(c.Request.Context(), principal, id, model.JobStatus(req.Status)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *Handler) getJobPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payment, err := h.survey.GetPaymentByJob(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) dispatchJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dispatchJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sign []byte
	if req.Signature != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Signature)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature encoding"})
			return
		}
		sign = decoded
	}

	result, err := h.survey.DispatchJob(c.Request.Context(), service.DispatchJobInput{
		JobID:             id,
		ReasonForDispatch: req.ReasonForDispatch,
		CollectedBy:       req.CollectedBy,
		CollectorPhone:    req.CollectorPhone,
		Sign:              sign,
		Principal:         principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"dispatch_id": result.DispatchID,
		"note_name":   result.NoteName,
		"note":        base64.StdEncoding.EncodeToString(result.Note),
	})
}

func (h *Handler) jobSignature(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	sign, err := h.survey.Signature(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", sign)
}

func (h *Handler) listPayments(c *gin.Context) {
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

	page, pageSize := parsePage(c)
	limit, offset := 0, 0
	if pageSize > 0 {
		limit = pageSize
		if page > 1 {
			offset = (page - 1) * pageSize
		}
	}

	rows, total, err := h.survey.ListPayments(c.Request.Context(), repository.PaymentFilter{
		Status:      model.PaymentStatus(c.Query("status")),
		PaymentType: c.Query("payment_type"),
		ClientName:  c.Query("client_name"),
		FileName:    c.Query("file_name"),
		TitleNumber: c.Query("title_number"),
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": rows, "total": total})
}

func (h *Handler) recordPayment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.survey.RecordPayment(c.Request.Context(), service.RecordServicePaymentInput{
		PaymentID:   id,
		Amount:      req.Amount,
		PaymentType: req.PaymentType,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) paymentHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	history, err := h.survey.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *Handler) salesSummary(c *gin.Context) {
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

	monthly := c.DefaultQuery("period", "daily") == "monthly"
	rows, err := h.survey.SalesSummary(c.Request.Context(), monthly, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": rows})
}

func (h *Handler) listDispatches(c *gin.Context) {
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

	rows, err := h.survey.ListDispatches(c.Request.Context(), repository.DispatchFilter{
		From:        from,
		To:          to,
		TitleNumber: c.Query("title_number"),
		CollectedBy: c.Query("collected_by"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dispatches": rows})
}
