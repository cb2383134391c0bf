package checkout_test

import (
	"testing"

	"animart/internal/checkout"
	"animart/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName:  "Mikasa",
		LastName:   "Ackerman",
		Email:      "mikasa@example.com",
		Phone:      "+91-9999999999",
		Address:    "12 Wall Maria Lane",
		City:       "Pune",
		State:      "Maharashtra",
		PostalCode: "411001",
	}
}

func TestFlowStartsAtShipping(t *testing.T) {
	flow := checkout.NewFlow()
	assert.Equal(t, checkout.StepShipping, flow.Snapshot().Step)
}

func TestSubmitShippingAdvancesToPayment(t *testing.T) {
	flow := checkout.NewFlow()

	err := flow.SubmitShipping(validAddress())
	assert.NoError(t, err)
	assert.Equal(t, checkout.StepPayment, flow.Snapshot().Step)
}

func TestSubmitShippingRejectsMissingPhone(t *testing.T) {
	flow := checkout.NewFlow()
	addr := validAddress()
	addr.Phone = ""

	err := flow.SubmitShipping(addr)
	assert.Error(t, err)

	// Surfaced as field-level validator errors
	validationErrors, ok := err.(validator.ValidationErrors)
	assert.True(t, ok)
	assert.Equal(t, "Phone", validationErrors[0].Field())

	// Flow stays on the shipping step
	assert.Equal(t, checkout.StepShipping, flow.Snapshot().Step)
}

func TestSelectPaymentMethodAdvancesToReview(t *testing.T) {
	flow := checkout.NewFlow()
	assert.NoError(t, flow.SubmitShipping(validAddress()))

	err := flow.SelectPaymentMethod(models.PaymentCashOnDelivery)
	assert.NoError(t, err)
	assert.Equal(t, checkout.StepReview, flow.Snapshot().Step)
}

func TestSelectPaymentMethodRejectsUnknownMethod(t *testing.T) {
	flow := checkout.NewFlow()
	assert.NoError(t, flow.SubmitShipping(validAddress()))

	err := flow.SelectPaymentMethod("barter")
	assert.Error(t, err)
	assert.Equal(t, checkout.StepPayment, flow.Snapshot().Step)
}

func TestSelectPaymentMethodRequiresPaymentStep(t *testing.T) {
	flow := checkout.NewFlow()

	err := flow.SelectPaymentMethod(models.PaymentOnline)
	assert.Error(t, err)
}

func TestBackPreservesEnteredData(t *testing.T) {
	flow := checkout.NewFlow()
	assert.NoError(t, flow.SubmitShipping(validAddress()))
	assert.NoError(t, flow.SelectPaymentMethod(models.PaymentOnline))

	assert.NoError(t, flow.Back())
	snap := flow.Snapshot()
	assert.Equal(t, checkout.StepPayment, snap.Step)
	assert.NotNil(t, snap.ShippingAddress)
	assert.Equal(t, "Mikasa", snap.ShippingAddress.FirstName)
	assert.Equal(t, models.PaymentOnline, snap.PaymentMethod)

	assert.NoError(t, flow.Back())
	assert.Equal(t, checkout.StepShipping, flow.Snapshot().Step)

	// Back at the first step is a no-op
	assert.NoError(t, flow.Back())
	assert.Equal(t, checkout.StepShipping, flow.Snapshot().Step)
}

func TestBeginSubmitGuards(t *testing.T) {
	flow := checkout.NewFlow()

	// Cannot confirm before reaching the review step
	_, _, err := flow.BeginSubmit()
	assert.Error(t, err)

	assert.NoError(t, flow.SubmitShipping(validAddress()))
	assert.NoError(t, flow.SelectPaymentMethod(models.PaymentCashOnDelivery))

	shipping, method, err := flow.BeginSubmit()
	assert.NoError(t, err)
	assert.Equal(t, "Mikasa", shipping.FirstName)
	assert.Equal(t, models.PaymentCashOnDelivery, method)
	assert.Equal(t, checkout.StepSubmitting, flow.Snapshot().Step)

	// Duplicate confirmation while in flight is rejected
	_, _, err = flow.BeginSubmit()
	assert.Error(t, err)

	// No back navigation while submitting
	assert.Error(t, flow.Back())
}

func TestFailSubmitReturnsToPaymentStep(t *testing.T) {
	flow := checkout.NewFlow()
	assert.NoError(t, flow.SubmitShipping(validAddress()))
	assert.NoError(t, flow.SelectPaymentMethod(models.PaymentOnline))
	_, _, err := flow.BeginSubmit()
	assert.NoError(t, err)
	flow.AwaitPayment("order-1", "gw_ref")

	flow.FailSubmit()

	snap := flow.Snapshot()
	assert.Equal(t, checkout.StepPayment, snap.Step)
	assert.Empty(t, snap.OrderID)
	assert.Empty(t, snap.GatewayOrderRef)
	// Entered data survives the failure
	assert.NotNil(t, snap.ShippingAddress)
}
