package backfill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"laundrydesk/internal/core/id"
	"laundrydesk/internal/domain/catalogs/hotel"
)

func TestHotelIndex_Resolve(t *testing.T) {
	a := hotel.NewHotel("A", "Hotel Alfa", "")
	b := hotel.NewHotel("B", "Hotel Beta", "")
	dup := hotel.NewHotel("C", "Hotel Alfa", "")
	idx := NewHotelIndex([]*hotel.Hotel{a, b, dup, nil})

	assert.Equal(t, 3, idx.Len())

	// ID wins over name.
	assert.Same(t, b, idx.Resolve(&b.ID, "Hotel Alfa"))
	// Unknown ID falls back to name; first hotel with the name wins.
	unknown := id.New()
	assert.Same(t, a, idx.Resolve(&unknown, "Hotel Alfa"))
	assert.Same(t, a, idx.Resolve(nil, "Hotel Alfa"))
	// Exact match only.
	assert.Nil(t, idx.Resolve(nil, "hotel alfa"))
	assert.Nil(t, idx.Resolve(nil, " Hotel Alfa"))
	assert.Nil(t, idx.Resolve(nil, ""))
}
