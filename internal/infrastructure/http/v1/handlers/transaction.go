package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"laundrydesk/internal/domain/finance"
	"laundrydesk/internal/infrastructure/http/v1/dto"
)

// TransactionHandler handles the ledger endpoints.
type TransactionHandler struct {
	*BaseHandler
	service *finance.Service
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(base *BaseHandler, service *finance.Service) *TransactionHandler {
	return &TransactionHandler{BaseHandler: base, service: service}
}

// List handles GET /transactions?type=&source=&serviceId=&hotelId=&from=&to=
func (h *TransactionHandler) List(c *gin.Context) {
	serviceID, ok := h.ParseIDQuery(c, "serviceId")
	if !ok {
		return
	}
	hotelID, ok := h.ParseIDQuery(c, "hotelId")
	if !ok {
		return
	}
	from, ok := h.ParseTimeQuery(c, "from", false)
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to", true)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), finance.ListFilter{
		Type:      finance.Type(c.Query("type")),
		Source:    finance.Source(c.Query("source")),
		ServiceID: serviceID,
		HotelID:   hotelID,
		From:      from,
		To:        to,
		Limit:     h.ParseIntQuery(c, "limit", 50),
		Offset:    h.ParseIntQuery(c, "offset", 0),
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.TransactionResponse, len(result.Items))
	for i, t := range result.Items {
		items[i] = dto.FromTransaction(t)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Summary handles GET /transactions/summary?from=&to=
func (h *TransactionHandler) Summary(c *gin.Context) {
	from, ok := h.ParseTimeQuery(c, "from", false)
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "to", true)
	if !ok {
		return
	}

	sum, err := h.service.Summary(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sum)
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	txID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), txID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromTransaction(t))
}

// RecordIncome handles POST /transactions/income
func (h *TransactionHandler) RecordIncome(c *gin.Context) {
	h.record(c, h.service.RecordIncome)
}

// RecordExpense handles POST /transactions/expense
func (h *TransactionHandler) RecordExpense(c *gin.Context) {
	h.record(c, h.service.RecordExpense)
}

func (h *TransactionHandler) record(c *gin.Context, fn func(context.Context, finance.Entry) (*finance.Transaction, error)) {
	var req dto.EntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := req.ToEntry()
	if err != nil {
		h.Error(c, err)
		return
	}

	t, err := fn(c.Request.Context(), entry)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromTransaction(t))
}
