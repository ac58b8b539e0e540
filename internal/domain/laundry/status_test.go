package laundry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"COMPLETED", StatusCompleted},
		{"completed", StatusCompleted},
		{"  Completed ", StatusCompleted},
		{"picked up", StatusPickedUp},
		{"PICKED_UP", StatusPickedUp},
		{"picked-up", StatusPickedUp},
		{"in process", StatusInProcess},
		{"partial delivery", StatusPartialDelivery},
		{"Partial  Delivery", StatusPartialDelivery},
		{"labeled", StatusLabeled},
		{"LABELLED", StatusLabeled},
		{"recogido", StatusPickedUp},
		{"En Proceso", StatusInProcess},
		{"entrega parcial", StatusPartialDelivery},
		{"COMPLETADO", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"pending_pickup", StatusPendingPickup},
		{"", StatusUnknown},
		{"   ", StatusUnknown},
		{"ARCHIVED", StatusUnknown},
		{"completedx", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.raw))
		})
	}
}

func TestStatus_IsBackfillEligible(t *testing.T) {
	eligible := map[Status]bool{
		StatusPickedUp:        true,
		StatusLabeled:         true,
		StatusInProcess:       true,
		StatusPartialDelivery: true,
		StatusCompleted:       true,
	}
	for _, s := range AllStatuses() {
		assert.Equal(t, eligible[s], s.IsBackfillEligible(), s.String())
	}
	assert.False(t, StatusUnknown.IsBackfillEligible())
}

func TestStatus_LowercaseCompletedIsEligible(t *testing.T) {
	assert.True(t, ParseStatus("completed").IsBackfillEligible())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, StatusUnknown.IsValid())
	assert.False(t, Status("completed").IsValid())
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
}

func TestAliases(t *testing.T) {
	aliases := Aliases(StatusInProcess)
	assert.Equal(t, "IN_PROCESS", aliases[0])
	assert.Contains(t, aliases, "EN_PROCESO")
	for _, a := range aliases {
		assert.Equal(t, StatusInProcess, ParseStatus(a), a)
	}
	assert.Nil(t, Aliases(StatusUnknown))
}
