// Package money keeps float prices honest at display and totaling
// boundaries. Amounts stay float64 end to end; rounding happens once,
// when a value becomes a subtotal, tax or total.
package money

import "math"

// Round2 rounds an amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
