package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SingleDistrict(t *testing.T) {
	tests := []struct {
		address string
		want    Code
	}{
		{"Av. Larco 123, Miraflores, Lima", Centro},
		{"Av. Túpac Amaru 4500, Comas", Norte},
		{"Jr. Las Begonias 200, Los Olivos", Norte},
		{"Av. Huaylas 300, Chorrillos", Sur},
		{"Calle Los Pinos 15, Santiago de Surco", Sur},
		{"Av. La Fontana 750, La Molina", Este},
		{"Urb. Lamolina Vieja Mz B", Este},
		{"Av. Brasil 1200, Jesús María", Centro},
		{"Av. Brasil 1200, Jesus Maria", Centro},
		{"Av. Arica 600, Breña", Centro},
		{"Av. Faucett 3000, Callao", Oeste},
		{"Av. La Marina 2000, San Miguel", Oeste},
		{"SAN ISIDRO - Calle Las Camelias 400", Centro},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.address, ""))
		})
	}
}

func TestClassify_DeclarationOrderWins(t *testing.T) {
	// NORTE is declared before CENTRO, regardless of position in the string.
	assert.Equal(t, Norte, Classify("Oficina Miraflores, entrega en Comas", ""))
	assert.Equal(t, Norte, Classify("Comas / Miraflores", ""))

	// SUR before CENTRO: the CENTRO district is a substring of a SUR district.
	assert.Equal(t, Sur, Classify("Av. Los Héroes 500, San Juan de Miraflores", ""))

	// ESTE before OESTE.
	assert.Equal(t, Este, Classify("Callao, sucursal La Molina", ""))
}

func TestClassify_Fallbacks(t *testing.T) {
	assert.Equal(t, Centro, Classify("", ""))
	assert.Equal(t, Centro, Classify("   ", ""))
	assert.Equal(t, Centro, Classify("Calle Desconocida 123", ""))
	assert.Equal(t, Oeste, Classify("Calle Desconocida 123", Oeste))
	assert.Equal(t, Sur, Classify("", Sur))
}

func TestClassify_WholeWordOnly(t *testing.T) {
	// "lince" inside "Linceville" and "ate" inside "Chocolate" must not match.
	assert.Equal(t, Oeste, Classify("Hotel Linceville", Oeste))
	assert.Equal(t, Oeste, Classify("Tienda Chocolate 12", Oeste))
	// Accented letters count as word runes.
	assert.Equal(t, Oeste, Classify("Calle Breñas 5", Oeste))
}

func TestClassify_AccentSensitive(t *testing.T) {
	// Only the accented spelling is listed for this district.
	assert.Equal(t, Oeste, Classify("Playa Santa Maria del Mar", Oeste))
	assert.Equal(t, Sur, Classify("Playa Santa María del Mar", Oeste))
}

func TestExplain(t *testing.T) {
	m := Explain("Av. Larco 123, Miraflores, Lima", "")
	assert.Equal(t, Match{Zone: Centro, District: "miraflores"}, m)

	m = Explain("nowhere", Este)
	assert.Equal(t, Match{Zone: Este}, m)
}

func TestAllAndDistricts(t *testing.T) {
	assert.Equal(t, []Code{Norte, Sur, Este, Centro, Oeste}, All())

	d := Districts(Este)
	assert.Contains(t, d, "la molina")
	assert.Contains(t, d, "lamolina")
	d[0] = "mutated"
	assert.NotEqual(t, "mutated", Districts(Este)[0])

	assert.Nil(t, Districts(Code("NOPE")))
	assert.True(t, Norte.IsValid())
	assert.False(t, Code("x").IsValid())
}
