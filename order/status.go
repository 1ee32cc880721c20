package order

import "github.com/nashvel/convenience-store-sub000/internal/models"

// transitions is the order status machine. Delivered, cancelled and
// rejected are terminal.
var transitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusAccepted, models.OrderStatusCancelled, models.OrderStatusRejected},
	models.OrderStatusAccepted:  {models.OrderStatusInTransit, models.OrderStatusRejected},
	models.OrderStatusInTransit: {models.OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether a customer may still cancel. Only pending
// orders qualify; anything later is already in the seller's hands.
func CanCancel(status string) bool {
	return status == models.OrderStatusPending
}

// Step is one milestone on the tracking timeline.
type Step struct {
	Label     string
	Completed bool
}

// stepStatuses maps each display milestone to the statuses that mark
// it completed. This is a monotonic display simplification: it does
// not reconstruct when intermediate steps actually happened.
var stepStatuses = []struct {
	label    string
	statuses map[string]bool
}{
	{"Order Placed", map[string]bool{
		models.OrderStatusPending:   true,
		models.OrderStatusAccepted:  true,
		models.OrderStatusInTransit: true,
		models.OrderStatusDelivered: true,
		models.OrderStatusCancelled: true,
		models.OrderStatusRejected:  true,
	}},
	{"Processing", map[string]bool{
		models.OrderStatusAccepted:  true,
		models.OrderStatusInTransit: true,
		models.OrderStatusDelivered: true,
	}},
	{"In Transit", map[string]bool{
		models.OrderStatusInTransit: true,
		models.OrderStatusDelivered: true,
	}},
	{"Delivered", map[string]bool{
		models.OrderStatusDelivered: true,
	}},
}

// Steps projects a status onto the fixed tracking milestones.
func Steps(status string) []Step {
	out := make([]Step, 0, len(stepStatuses))
	for _, s := range stepStatuses {
		out = append(out, Step{Label: s.label, Completed: s.statuses[status]})
	}
	return out
}
