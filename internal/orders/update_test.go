package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendovo/trendovo-golang/internal/models"
)

func sp(s string) *string { return &s }

func baseOrder() models.Order {
	return models.Order{
		ID:            7,
		OrderNumber:   "20260115-AB12CD34",
		Status:        models.OrderStatusProcessing,
		PaymentStatus: models.PaymentStatusUnpaid,
		CustomerName:  "Jan Kowalski",
		CustomerEmail: "jan@example.pl",
		BillingStreet: "Polna 1",
		BillingCity:   "Warszawa",
	}
}

func TestShippedWithoutTrackingRejected(t *testing.T) {
	// Neither the patch nor the stored order carries a tracking number:
	// the whole request must be rejected before anything is staged.
	u, err := BuildUpdate(baseOrder(), Patch{Status: sp(models.OrderStatusShipped)})
	assert.ErrorIs(t, err, ErrTrackingRequired)
	assert.Nil(t, u)

	// Whitespace-only tracking counts as absent.
	u, err = BuildUpdate(baseOrder(), Patch{
		Status:         sp(models.OrderStatusShipped),
		TrackingNumber: sp("   "),
	})
	assert.ErrorIs(t, err, ErrTrackingRequired)
	assert.Nil(t, u)
}

func TestShippedWithTrackingFromPatch(t *testing.T) {
	u, err := BuildUpdate(baseOrder(), Patch{
		Status:         sp(models.OrderStatusShipped),
		TrackingNumber: sp("PX123456789PL"),
	})
	require.NoError(t, err)

	assert.True(t, u.SendShippingEmail)
	assert.Equal(t, "PX123456789PL", u.TrackingNumber)

	// One status update + one tracking update, each with its own entry.
	require.Len(t, u.Fields, 2)
	assert.Equal(t, "status", u.Fields[0].Column)
	assert.Equal(t, "tracking_number", u.Fields[1].Column)
	require.Len(t, u.History, 2)
	assert.Equal(t, models.HistoryActionStatusChanged, u.History[0].Action)
	assert.Equal(t, "processing", *u.History[0].OldValue)
	assert.Equal(t, "shipped", *u.History[0].NewValue)
}

func TestShippedWithStoredTracking(t *testing.T) {
	order := baseOrder()
	order.TrackingNumber = sp("PX000000001PL")

	u, err := BuildUpdate(order, Patch{Status: sp(models.OrderStatusShipped)})
	require.NoError(t, err)
	assert.True(t, u.SendShippingEmail)
	assert.Equal(t, "PX000000001PL", u.TrackingNumber)
}

func TestAlreadyShippedDoesNotResend(t *testing.T) {
	order := baseOrder()
	order.Status = models.OrderStatusShipped
	order.TrackingNumber = sp("PX000000001PL")

	// Same status in the patch: no change, no email.
	u, err := BuildUpdate(order, Patch{Status: sp(models.OrderStatusShipped)})
	require.NoError(t, err)
	assert.False(t, u.SendShippingEmail)
	assert.False(t, u.HasChanges())
}

func TestPaidTriggersPaymentEmail(t *testing.T) {
	u, err := BuildUpdate(baseOrder(), Patch{PaymentStatus: sp(models.PaymentStatusPaid)})
	require.NoError(t, err)

	assert.True(t, u.SendPaymentEmail)
	require.Len(t, u.Fields, 1)
	assert.Equal(t, "payment_status", u.Fields[0].Column)
	require.Len(t, u.History, 1)
	assert.Equal(t, models.HistoryActionPaymentChanged, u.History[0].Action)

	// paid -> paid again is a no-op.
	order := baseOrder()
	order.PaymentStatus = models.PaymentStatusPaid
	u, err = BuildUpdate(order, Patch{PaymentStatus: sp(models.PaymentStatusPaid)})
	require.NoError(t, err)
	assert.False(t, u.SendPaymentEmail)
	assert.False(t, u.HasChanges())
}

func TestAddressChangesCollapse(t *testing.T) {
	u, err := BuildUpdate(baseOrder(), Patch{
		BillingStreet: sp("Kwiatowa 5"),
		BillingCity:   sp("Kraków"),
		DeliveryZip:   sp("30-001"),
	})
	require.NoError(t, err)

	// Three staged column updates but exactly one history entry.
	assert.Len(t, u.Fields, 3)
	require.Len(t, u.History, 1)
	assert.Equal(t, models.HistoryActionAddressUpdated, u.History[0].Action)
	assert.Equal(t, "Address updated", u.History[0].Description)
}

func TestCustomerFieldsGetPerFieldHistory(t *testing.T) {
	u, err := BuildUpdate(baseOrder(), Patch{
		CustomerName:  sp("Anna Nowak"),
		CustomerEmail: sp("anna@example.pl"),
		CustomerPhone: sp("+48 600 100 200"),
	})
	require.NoError(t, err)

	assert.Len(t, u.Fields, 3)
	assert.Len(t, u.History, 3)
}

func TestUnchangedFieldsAreIgnored(t *testing.T) {
	order := baseOrder()
	u, err := BuildUpdate(order, Patch{
		Status:       sp(order.Status),
		CustomerName: sp(order.CustomerName),
		BillingCity:  sp(order.BillingCity),
	})
	require.NoError(t, err)
	assert.False(t, u.HasChanges())
	assert.Empty(t, u.History)
}

func TestNotifyEmailFollowsPatchedAddress(t *testing.T) {
	// Default recipient is the stored address.
	u, err := BuildUpdate(baseOrder(), Patch{PaymentStatus: sp(models.PaymentStatusPaid)})
	require.NoError(t, err)
	assert.True(t, u.SendPaymentEmail)
	assert.Equal(t, "jan@example.pl", u.NotifyEmail)

	// Changing the e-mail and marking paid in one request must notify
	// the new address, not the one being replaced.
	u, err = BuildUpdate(baseOrder(), Patch{
		PaymentStatus: sp(models.PaymentStatusPaid),
		CustomerEmail: sp("nowy@example.pl"),
	})
	require.NoError(t, err)
	assert.True(t, u.SendPaymentEmail)
	assert.Equal(t, "nowy@example.pl", u.NotifyEmail)
}
