package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository"
	"github.com/abiwaumi/tablewater/internal/service/reporting"
)

// ResourcesHandler serves the consumable inventory.
type ResourcesHandler struct {
	store  repository.Store
	logger *zap.Logger
}

// NewResourcesHandler constructs the inventory HTTP adapter.
func NewResourcesHandler(store repository.Store, logger *zap.Logger) *ResourcesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourcesHandler{store: store, logger: logger}
}

// List returns all resources, optionally filtered by ?category=.
func (h *ResourcesHandler) List(c *gin.Context) {
	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}

	if category := c.Query("category"); category != "" {
		if _, ok := models.ParseResourceCategory(category); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "field": "category"})
			return
		}
		filtered := make([]models.Resource, 0, len(resources))
		for _, r := range resources {
			if string(r.Category) == category {
				filtered = append(filtered, r)
			}
		}
		resources = filtered
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// LowStock returns resources below the restock threshold, preserving
// inventory order.
func (h *ResourcesHandler) LowStock(c *gin.Context) {
	resources, err := h.store.ListResources(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"resources": reporting.LowStock(resources),
		"threshold": models.LowStockThreshold,
	})
}

type createResourceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	CostPerUnit   float64 `json:"cost_per_unit"`
	LastRestocked string  `json:"last_restocked"`
}

// Create registers a new inventory item.
func (h *ResourcesHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resource, err := h.store.CreateResource(c.Request.Context(), models.Resource{
		Name:          req.Name,
		Category:      models.ResourceCategory(req.Category),
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		CostPerUnit:   req.CostPerUnit,
		LastRestocked: req.LastRestocked,
	})
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resource)
}

// Update merges the provided fields into an existing item; restocks and
// adjustments come through here.
func (h *ResourcesHandler) Update(c *gin.Context) {
	var patch models.ResourcePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resource, err := h.store.UpdateResource(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

// Delete removes an item. Deleting an absent id succeeds.
func (h *ResourcesHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteResource(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
