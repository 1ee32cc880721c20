package cart

import (
	"github.com/nashvel/convenience-store-sub000/internal/models"
	"github.com/nashvel/convenience-store-sub000/internal/money"
)

// TaxRate is the flat tax applied to the selected-items subtotal. One
// policy everywhere: the summary shown while selecting and the totals
// submitted at checkout use the same numbers.
const TaxRate = 0.10

// Totals is the checkout-ready money summary over the selection.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// LineTotal is a line item's discounted unit price times quantity,
// rounded to cents.
func LineTotal(ci models.CartItem) float64 {
	return money.Round2(ci.EffectivePrice() * float64(ci.Quantity))
}

// Totals computes subtotal, tax and total over the selected items only.
func (e *Engine) Totals() Totals {
	e.mu.RLock()
	defer e.mu.RUnlock()

	subtotal := 0.0
	for _, ci := range e.items {
		if _, ok := e.selected[ci.CartItemID]; ok {
			subtotal += LineTotal(ci)
		}
	}
	subtotal = money.Round2(subtotal)
	tax := money.Round2(subtotal * TaxRate)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    money.Round2(subtotal + tax),
	}
}
