package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_ScanPreservesPrecision(t *testing.T) {
	var a Attributes
	require.NoError(t, a.Scan([]byte(`{"lat": -12.1219876543, "label": "Lobby"}`)))

	assert.True(t, decimal.RequireFromString("-12.1219876543").Equal(a.GetDecimal("lat")))
	assert.Equal(t, "Lobby", a.GetString("label"))
	assert.True(t, a.Has("lat"))
	assert.False(t, a.Has("lng"))
}

func TestAttributes_ScanNilAndEmpty(t *testing.T) {
	a := Attributes{"x": 1}
	require.NoError(t, a.Scan(nil))
	assert.Nil(t, a)

	require.NoError(t, a.Scan([]byte{}))
	assert.Nil(t, a)

	assert.Error(t, a.Scan(42))
}

func TestAttributes_CloneIsShallowCopy(t *testing.T) {
	a := Attributes{"k": "v"}
	b := a.Clone()
	b["k"] = "changed"
	assert.Equal(t, "v", a.GetString("k"))
}
