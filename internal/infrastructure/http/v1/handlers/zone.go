package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/core/types"
	"laundrydesk/internal/domain/catalogs/hotel"
	"laundrydesk/internal/domain/pricing"
	"laundrydesk/internal/domain/zone"
	"laundrydesk/internal/infrastructure/http/v1/dto"
)

// HotelGetter loads a hotel for rate lookup.
type HotelGetter interface {
	GetByID(ctx context.Context, id id.ID) (*hotel.Hotel, error)
}

// ZoneHandler exposes the zone table and classifier plus price quotes.
type ZoneHandler struct {
	*BaseHandler
	hotels HotelGetter
}

// NewZoneHandler creates a new zone handler.
func NewZoneHandler(base *BaseHandler, hotels HotelGetter) *ZoneHandler {
	return &ZoneHandler{BaseHandler: base, hotels: hotels}
}

// List handles GET /zones
func (h *ZoneHandler) List(c *gin.Context) {
	codes := zone.All()
	items := make([]dto.ZoneResponse, len(codes))
	for i, code := range codes {
		items[i] = dto.ZoneResponse{Code: code, Districts: zone.Districts(code)}
	}
	h.OK(c, gin.H{"items": items, "default": zone.DefaultCode})
}

// Classify handles POST /zones/classify
func (h *ZoneHandler) Classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, zone.Explain(req.Address, req.Default))
}

// Quote handles POST /pricing/quote
func (h *ZoneHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	hotelID, err := req.HotelIDValue()
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid hotelId").WithDetail("field", "hotelId"))
		return
	}

	var rate *types.Money
	if hotelID != nil {
		ht, err := h.hotels.GetByID(c.Request.Context(), *hotelID)
		if err != nil {
			h.Error(c, err)
			return
		}
		rate = ht.PricePerKg
	}

	h.OK(c, dto.FromQuote(pricing.Quote(req.Weight, req.BagCount, rate), rate))
}
