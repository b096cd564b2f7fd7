package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/repository"
)

// RecordsHandler serves the production, sales, and expense ledgers.
type RecordsHandler struct {
	store  repository.Store
	logger *zap.Logger
}

// NewRecordsHandler constructs the ledger HTTP adapter.
func NewRecordsHandler(store repository.Store, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{store: store, logger: logger}
}

// ListProduction returns production records, optionally date-filtered with
// inclusive ?start=&end= bounds.
func (h *RecordsHandler) ListProduction(c *gin.Context) {
	start, end, ranged, verr := dateRange(c)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	var (
		records []models.Production
		err     error
	)
	if ranged {
		records, err = h.store.ListProductionInRange(c.Request.Context(), start, end)
	} else {
		records, err = h.store.ListProduction(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type createProductionRequest struct {
	Date         string `json:"date" binding:"required"`
	BagsProduced int    `json:"bags_produced"`
	Notes        string `json:"notes"`
}

// CreateProduction appends a production record attributed to the signed-in
// staff member.
func (h *RecordsHandler) CreateProduction(c *gin.Context) {
	var req createProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, _ := CurrentUser(c)
	record, err := h.store.CreateProduction(c.Request.Context(), models.Production{
		Date:         req.Date,
		BagsProduced: req.BagsProduced,
		StaffID:      user.ID,
		StaffName:    user.FullName,
		Notes:        req.Notes,
	})
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListSales returns sales records, optionally date-filtered.
func (h *RecordsHandler) ListSales(c *gin.Context) {
	start, end, ranged, verr := dateRange(c)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	var (
		records []models.Sale
		err     error
	)
	if ranged {
		records, err = h.store.ListSalesInRange(c.Request.Context(), start, end)
	} else {
		records, err = h.store.ListSales(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type createSaleRequest struct {
	Date         string `json:"date" binding:"required"`
	BagsSold     int    `json:"bags_sold"`
	CustomerName string `json:"customer_name"`
	Notes        string `json:"notes"`
}

// CreateSale appends a sale. Revenue is computed and frozen by the store;
// the request never carries it.
func (h *RecordsHandler) CreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, _ := CurrentUser(c)
	record, err := h.store.CreateSale(c.Request.Context(), models.Sale{
		Date:         req.Date,
		BagsSold:     req.BagsSold,
		CustomerName: req.CustomerName,
		StaffID:      user.ID,
		StaffName:    user.FullName,
		Notes:        req.Notes,
	})
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListExpenses returns expense records, optionally date-filtered.
func (h *RecordsHandler) ListExpenses(c *gin.Context) {
	start, end, ranged, verr := dateRange(c)
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
		return
	}

	var (
		records []models.Expense
		err     error
	)
	if ranged {
		records, err = h.store.ListExpensesInRange(c.Request.Context(), start, end)
	} else {
		records, err = h.store.ListExpenses(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

type createExpenseRequest struct {
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// CreateExpense appends an expense attributed to the signed-in staff member.
func (h *RecordsHandler) CreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, _ := CurrentUser(c)
	record, err := h.store.CreateExpense(c.Request.Context(), models.Expense{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		StaffID:     user.ID,
		StaffName:   user.FullName,
	})
	if err != nil {
		respondStoreError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}
