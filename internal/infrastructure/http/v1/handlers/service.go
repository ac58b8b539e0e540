package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/domain/laundry"
	"laundrydesk/internal/infrastructure/http/v1/dto"
)

// ServiceHandler handles laundry service records.
type ServiceHandler struct {
	*BaseHandler
	service *laundry.Service
}

// NewServiceHandler creates a new service handler.
func NewServiceHandler(base *BaseHandler, service *laundry.Service) *ServiceHandler {
	return &ServiceHandler{BaseHandler: base, service: service}
}

// List handles GET /services?status=A,B&hotelId=&search=&limit=&offset=
func (h *ServiceHandler) List(c *gin.Context) {
	hotelID, ok := h.ParseIDQuery(c, "hotelId")
	if !ok {
		return
	}

	filter := laundry.ListFilter{
		HotelID: hotelID,
		Search:  c.Query("search"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st := laundry.ParseStatus(part)
			if st == laundry.StatusUnknown {
				h.Error(c, apperror.NewInvalidStatus(part))
				return
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.ServiceResponse, len(result.Items))
	for i, rec := range result.Items {
		items[i] = dto.FromServiceRecord(rec)
	}
	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	serviceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.Get(c.Request.Context(), serviceID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromServiceRecord(rec))
}

// Register handles POST /services
func (h *ServiceHandler) Register(c *gin.Context) {
	var req dto.RegisterServiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	reg, err := req.ToRegistration()
	if err != nil {
		h.Error(c, err)
		return
	}

	rec, err := h.service.Register(c.Request.Context(), reg)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromServiceRecord(rec))
}

// UpdateStatus handles PATCH /services/:id/status
func (h *ServiceHandler) UpdateStatus(c *gin.Context) {
	serviceID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), serviceID, req.Status, req.Version)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromServiceRecord(rec))
}
