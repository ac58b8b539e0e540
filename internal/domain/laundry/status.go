package laundry

import (
	"sort"
	"strings"
)

// Status is the canonical lifecycle state of a laundry service.
type Status string

const (
	StatusUnknown         Status = ""
	StatusPendingPickup   Status = "PENDING_PICKUP"
	StatusPickedUp        Status = "PICKED_UP"
	StatusLabeled         Status = "LABELED"
	StatusInProcess       Status = "IN_PROCESS"
	StatusPartialDelivery Status = "PARTIAL_DELIVERY"
	StatusCompleted       Status = "COMPLETED"
	StatusDelivered       Status = "DELIVERED"
	StatusCancelled       Status = "CANCELLED"
)

// legacyStatuses maps normalized historical spellings to canonical states.
// Keys are upper-case with underscores.
var legacyStatuses = map[string]Status{
	"PENDING":             StatusPendingPickup,
	"PENDIENTE":           StatusPendingPickup,
	"PICKUP_PENDING":      StatusPendingPickup,
	"PICKEDUP":            StatusPickedUp,
	"COLLECTED":           StatusPickedUp,
	"RECOGIDO":            StatusPickedUp,
	"LABELLED":            StatusLabeled,
	"ROTULADO":            StatusLabeled,
	"ETIQUETADO":          StatusLabeled,
	"PROCESSING":          StatusInProcess,
	"IN_PROGRESS":         StatusInProcess,
	"EN_PROCESO":          StatusInProcess,
	"PARTIAL":             StatusPartialDelivery,
	"PARTIALLY_DELIVERED": StatusPartialDelivery,
	"ENTREGA_PARCIAL":     StatusPartialDelivery,
	"COMPLETE":            StatusCompleted,
	"DONE":                StatusCompleted,
	"COMPLETADO":          StatusCompleted,
	"ENTREGADO":           StatusDelivered,
	"CANCELED":            StatusCancelled,
	"CANCELADO":           StatusCancelled,
}

var canonicalStatuses = []Status{
	StatusPendingPickup,
	StatusPickedUp,
	StatusLabeled,
	StatusInProcess,
	StatusPartialDelivery,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus resolves a stored status string to its canonical form.
// Matching ignores case and treats spaces and hyphens as underscores.
// Unrecognized input yields StatusUnknown.
func ParseStatus(raw string) Status {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if key == "" {
		return StatusUnknown
	}
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for strings.Contains(key, "__") {
		key = strings.ReplaceAll(key, "__", "_")
	}

	for _, s := range canonicalStatuses {
		if string(s) == key {
			return s
		}
	}
	if s, ok := legacyStatuses[key]; ok {
		return s
	}
	return StatusUnknown
}

// AllStatuses returns the canonical states in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(canonicalStatuses))
	copy(out, canonicalStatuses)
	return out
}

// IsValid reports whether s is a canonical state.
func (s Status) IsValid() bool {
	return s != StatusUnknown && ParseStatus(string(s)) == s
}

// IsBackfillEligible reports whether a service in this state has progressed
// far enough to be priced and booked as income.
func (s Status) IsBackfillEligible() bool {
	switch s {
	case StatusPickedUp, StatusLabeled, StatusInProcess, StatusPartialDelivery, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	if s == StatusUnknown {
		return "UNKNOWN"
	}
	return string(s)
}

// Aliases returns every normalized spelling that parses to s, canonical first.
// Storage layers use it to filter rows whose status predates the enum.
func Aliases(s Status) []string {
	if s == StatusUnknown {
		return nil
	}
	out := []string{string(s)}
	for k, v := range legacyStatuses {
		if v == s {
			out = append(out, k)
		}
	}
	sort.Strings(out[1:])
	return out
}
