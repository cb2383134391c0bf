package models

import "gorm.io/gorm"

// StoreSettings is the singleton back-office configuration consumed by the
// pricing calculator at checkout time. Orders above FreeShippingThreshold
// ship free; everything else pays FlatShippingRate. TaxRate is a fraction
// (0.18 = 18% GST).
type StoreSettings struct {
	ID                    uint    `json:"id" gorm:"primaryKey"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold" validate:"gte=0"`
	FlatShippingRate      float64 `json:"flat_shipping_rate" validate:"gte=0"`
	TaxRate               float64 `json:"tax_rate" validate:"gte=0,lte=1"`
	CurrencyCode          string  `json:"currency_code" validate:"required,len=3"`
	gorm.Model
}

// DefaultStoreSettings returns the settings used until an admin changes them.
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		ID:                    1,
		FreeShippingThreshold: 2000,
		FlatShippingRate:      99,
		TaxRate:               0.18,
		CurrencyCode:          "INR",
	}
}
