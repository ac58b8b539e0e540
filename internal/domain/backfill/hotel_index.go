package backfill

import (
	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain/catalogs/hotel"
)

// HotelIndex resolves the dual hotel reference carried by service records.
// Built once per run from a snapshot; not safe for concurrent mutation.
type HotelIndex struct {
	byID   map[id.ID]*hotel.Hotel
	byName map[string]*hotel.Hotel
}

// NewHotelIndex indexes hotels by ID and by display name.
// When two hotels share a name, the first one wins.
func NewHotelIndex(hotels []*hotel.Hotel) *HotelIndex {
	idx := &HotelIndex{
		byID:   make(map[id.ID]*hotel.Hotel, len(hotels)),
		byName: make(map[string]*hotel.Hotel, len(hotels)),
	}
	for _, h := range hotels {
		if h == nil {
			continue
		}
		idx.byID[h.ID] = h
		if _, taken := idx.byName[h.Name]; !taken && h.Name != "" {
			idx.byName[h.Name] = h
		}
	}
	return idx
}

// Resolve looks the hotel up by ID first, then by exact name.
// Returns nil when neither reference matches.
func (x *HotelIndex) Resolve(hotelID *id.ID, hotelName string) *hotel.Hotel {
	if hotelID != nil {
		if h, ok := x.byID[*hotelID]; ok {
			return h
		}
	}
	if hotelName != "" {
		if h, ok := x.byName[hotelName]; ok {
			return h
		}
	}
	return nil
}

// Len returns the number of indexed hotels.
func (x *HotelIndex) Len() int {
	return len(x.byID)
}
