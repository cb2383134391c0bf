package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
)

// Gateway abstracts the hosted payment processor. CreateGatewayOrder binds
// a server-side order to a client payment session; VerifySignature checks
// the tokens the hosted widget hands back after the shopper pays.
type Gateway interface {
	CreateGatewayOrder(amountMinor int64, currencyCode, receipt string) (string, error)
	VerifySignature(gatewayOrderRef, paymentID, signature string) error
}

// MinorUnits scales a decimal amount into the integer minor units
// (paise/cents) the gateway wire format requires.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Sign computes the HMAC-SHA256 signature the gateway produces over
// "<orderRef>|<paymentID>". Exposed so tests and the mock gateway share
// one implementation.
func Sign(secret, gatewayOrderRef, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderRef, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// MockGateway is an in-memory Gateway for tests and offline development.
// It issues order refs locally and verifies signatures with the configured
// secret, the same scheme the hosted gateway documents.
type MockGateway struct {
	secret string

	mu     sync.Mutex
	orders map[string]int64 // ref -> amount in minor units
	// FailCreate forces CreateGatewayOrder to error, for exercising the
	// cash-on-delivery fallback path.
	FailCreate bool
}

// NewMockGateway creates a mock gateway signing with the given secret.
func NewMockGateway(secret string) *MockGateway {
	return &MockGateway{
		secret: secret,
		orders: make(map[string]int64),
	}
}

// CreateGatewayOrder issues a gateway order reference for the amount.
func (g *MockGateway) CreateGatewayOrder(amountMinor int64, currencyCode, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailCreate {
		return "", fmt.Errorf("gateway rejected order creation for receipt %s", receipt)
	}
	if amountMinor <= 0 {
		return "", fmt.Errorf("gateway order amount must be positive, got %d", amountMinor)
	}
	ref := "gw_" + uuid.New().String()
	g.orders[ref] = amountMinor
	return ref, nil
}

// VerifySignature validates the widget callback tokens for a known order.
func (g *MockGateway) VerifySignature(gatewayOrderRef, paymentID, signature string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.orders[gatewayOrderRef]; !ok {
		return fmt.Errorf("unknown gateway order reference %s", gatewayOrderRef)
	}
	expected := Sign(g.secret, gatewayOrderRef, paymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return fmt.Errorf("payment signature mismatch for order %s", gatewayOrderRef)
	}
	return nil
}
