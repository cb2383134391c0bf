package currency

import (
	"fmt"
	"sync"
)

// Currency describes one supported display currency. ExchangeRate is
// relative to the registry default (the default itself has rate 1.0).
type Currency struct {
	Code         string  `json:"code"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	ExchangeRate float64 `json:"exchange_rate"`
}

// Registry holds the supported currency set. Codes are unique and exactly
// one currency is the default.
type Registry struct {
	mu          sync.RWMutex
	currencies  map[string]Currency
	defaultCode string
}

// NewRegistry creates a registry seeded with the storefront's supported set.
func NewRegistry() *Registry {
	r := &Registry{
		currencies:  make(map[string]Currency),
		defaultCode: "INR",
	}
	for _, c := range []Currency{
		{Code: "INR", Symbol: "₹", Name: "Indian Rupee", ExchangeRate: 1.0},
		{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: 0.012},
		{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: 0.011},
		{Code: "JPY", Symbol: "¥", Name: "Japanese Yen", ExchangeRate: 1.8},
	} {
		r.currencies[c.Code] = c
	}
	return r
}

// Get returns the currency for a code.
func (r *Registry) Get(code string) (Currency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.currencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("currency %s is not supported", code)
	}
	return c, nil
}

// Default returns the base currency all exchange rates are relative to.
func (r *Registry) Default() Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currencies[r.defaultCode]
}

// List returns all supported currencies.
func (r *Registry) List() []Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		list = append(list, c)
	}
	return list
}

// Convert converts an amount from the default currency into the target one.
func (r *Registry) Convert(amount float64, code string) (float64, error) {
	c, err := r.Get(code)
	if err != nil {
		return 0, err
	}
	return amount * c.ExchangeRate, nil
}

// Format renders an amount in the given currency for display. Rounding to
// two decimals happens here only; stored values keep full precision.
func (r *Registry) Format(amount float64, code string) (string, error) {
	c, err := r.Get(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%.2f", c.Symbol, amount), nil
}
