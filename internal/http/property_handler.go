package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drelocd/estate-service/internal/http/middleware"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/service"
)

type addPropertyRequest struct {
	PropertyType    string  `json:"property_type"`
	TitleDeedNumber string  `json:"title_deed_number" binding:"required"`
	Location        string  `json:"location" binding:"required"`
	Size            float64 `json:"size" binding:"required"`
	Description     string  `json:"description"`
	Owner           string  `json:"owner" binding:"required"`
	TelephoneNumber string  `json:"telephone_number"`
	Email           string  `json:"email"`
	Price           float64 `json:"price"`
	ImagePaths      string  `json:"image_paths"`
	TitleImagePaths string  `json:"title_image_paths"`
}

type updatePropertyRequest struct {
	TitleDeedNumber *string  `json:"title_deed_number"`
	Location        *string  `json:"location"`
	Size            *float64 `json:"size"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	ImagePaths      *string  `json:"image_paths"`
	TitleImagePaths *string  `json:"title_image_paths"`
	Status          *string  `json:"status"`
	Owner           *string  `json:"owner"`
}

func (r updatePropertyRequest) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if r.TitleDeedNumber != nil {
		changes["title_deed_number"] = *r.TitleDeedNumber
	}
	if r.Location != nil {
		changes["location"] = *r.Location
	}
	if r.Size != nil {
		changes["size"] = *r.Size
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.Price != nil {
		changes["price"] = *r.Price
	}
	if r.ImagePaths != nil {
		changes["image_paths"] = *r.ImagePaths
	}
	if r.TitleImagePaths != nil {
		changes["title_image_paths"] = *r.TitleImagePaths
	}
	if r.Status != nil {
		changes["status"] = *r.Status
	}
	if r.Owner != nil {
		changes["owner"] = *r.Owner
	}
	return changes
}

func (h *Handler) addProperty(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.properties.Add(c.Request.Context(), service.AddPropertyInput{
		PropertyType:    model.PropertyType(req.PropertyType),
		TitleDeedNumber: req.TitleDeedNumber,
		Location:        req.Location,
		Size:            req.Size,
		Description:     req.Description,
		Owner:           req.Owner,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		Price:           req.Price,
		ImagePaths:      req.ImagePaths,
		TitleImagePaths: req.TitleImagePaths,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) addTransferPoolProperty(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req addPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.properties.AddToTransferPool(c.Request.Context(), service.AddPropertyInput{
		TitleDeedNumber: req.TitleDeedNumber,
		Location:        req.Location,
		Size:            req.Size,
		Description:     req.Description,
		Owner:           req.Owner,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		ImagePaths:      req.ImagePaths,
		TitleImagePaths: req.TitleImagePaths,
		Principal:       principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listPropertiesInput(c *gin.Context) (service.ListPropertiesInput, bool) {
	minSize, err := parseFloatQuery(c, "min_size")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_size"})
		return service.ListPropertiesInput{}, false
	}
	maxSize, err := parseFloatQuery(c, "max_size")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_size"})
		return service.ListPropertiesInput{}, false
	}
	page, pageSize := parsePage(c)
	return service.ListPropertiesInput{
		Search:   c.Query("search"),
		MinSize:  minSize,
		MaxSize:  maxSize,
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}, true
}

func (h *Handler) listProperties(c *gin.Context) {
	input, ok := h.listPropertiesInput(c)
	if !ok {
		return
	}
	rows, err := h.properties.List(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": rows})
}

func (h *Handler) listCombinedProperties(c *gin.Context) {
	input, ok := h.listPropertiesInput(c)
	if !ok {
		return
	}
	rows, err := h.properties.ListCombined(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": rows})
}

func (h *Handler) listSoldProperties(c *gin.Context) {
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

	rows, total, err := h.properties.ListSold(c.Request.Context(), page, pageSize, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"properties": rows, "total": total})
}

func (h *Handler) getProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if source := c.Query("source"); source != "" {
		row, err := h.properties.GetBySource(c.Request.Context(), id, model.PropertySource(source))
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
		return
	}

	property, err := h.properties.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

func (h *Handler) updateProperty(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.properties.Update(c.Request.Context(), service.UpdatePropertyInput{
		PropertyID: id,
		Changes:    req.changes(),
		Principal:  principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) deleteProperty(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.properties.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
