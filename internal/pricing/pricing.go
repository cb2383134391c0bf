package pricing

import "animart/internal/models"

// ShippingCost returns the shipping charge for a cart subtotal: free above
// the threshold, flat rate otherwise.
func ShippingCost(subtotal, freeThreshold, flatRate float64) float64 {
	if subtotal > freeThreshold {
		return 0
	}
	return flatRate
}

// TaxAmount returns the tax due on a subtotal at the given fractional rate.
func TaxAmount(subtotal, rate float64) float64 {
	return subtotal * rate
}

// OrderTotal sums the pricing components into the amount charged.
func OrderTotal(subtotal, shipping, tax float64) float64 {
	return subtotal + shipping + tax
}

// Breakdown derives the full pricing snapshot for a subtotal under the
// active store settings. Idempotent for a given input; called at render
// time and again at order submission.
func Breakdown(subtotal float64, settings models.StoreSettings) models.PricingBreakdown {
	shipping := ShippingCost(subtotal, settings.FreeShippingThreshold, settings.FlatShippingRate)
	tax := TaxAmount(subtotal, settings.TaxRate)
	return models.PricingBreakdown{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    OrderTotal(subtotal, shipping, tax),
	}
}
