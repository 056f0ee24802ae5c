package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trendovo/trendovo-golang/internal/models"
)

// ErrTrackingRequired rejects a transition to "shipped" when no tracking
// number is present in either the patch or the stored order.
var ErrTrackingRequired = errors.New("a tracking number is required before the order can be marked as shipped")

// Patch is the partial update payload accepted by the admin order
// endpoint. Only non-nil fields are considered.
type Patch struct {
	Status         *string `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
	PaymentStatus  *string `json:"paymentStatus" binding:"omitempty,oneof=unpaid paid"`
	TrackingNumber *string `json:"trackingNumber"`

	CustomerName  *string `json:"customerName"`
	CustomerEmail *string `json:"customerEmail" binding:"omitempty,email"`
	CustomerPhone *string `json:"customerPhone"`

	BillingStreet   *string `json:"billingStreet"`
	BillingCity     *string `json:"billingCity"`
	BillingZip      *string `json:"billingZip"`
	BillingCountry  *string `json:"billingCountry"`
	DeliveryStreet  *string `json:"deliveryStreet"`
	DeliveryCity    *string `json:"deliveryCity"`
	DeliveryZip     *string `json:"deliveryZip"`
	DeliveryCountry *string `json:"deliveryCountry"`
}

// Field is one staged column assignment for the orders row.
type Field struct {
	Column string
	Value  interface{}
}

// Update is the result of diffing a Patch against the stored order:
// the staged column updates, the history entries to append, and which
// side-effect emails the transition triggers.
type Update struct {
	Fields  []Field
	History []models.OrderHistory

	SendShippingEmail bool
	SendPaymentEmail  bool
	TrackingNumber    string // resolved tracking number for the shipping email
	NotifyEmail       string // recipient for transition emails; a patched address wins
}

// HasChanges reports whether any field actually differs.
func (u *Update) HasChanges() bool {
	return len(u.Fields) > 0
}

func strPtr(s string) *string { return &s }

// BuildUpdate diffs the patch against the stored order. For every
// recognized field that differs it stages one column update and one
// history entry, except address fields which collapse into a single
// "address updated" entry. Validation errors are returned before any
// field is considered committed.
func BuildUpdate(current models.Order, patch Patch) (*Update, error) {
	u := &Update{NotifyEmail: current.CustomerEmail}

	// --- Status transition ---
	if patch.Status != nil && *patch.Status != current.Status {
		newStatus := *patch.Status

		if newStatus == models.OrderStatusShipped {
			// Tracking may come from the patch or already be stored.
			tracking := ""
			if patch.TrackingNumber != nil {
				tracking = strings.TrimSpace(*patch.TrackingNumber)
			}
			if tracking == "" && current.TrackingNumber != nil {
				tracking = strings.TrimSpace(*current.TrackingNumber)
			}
			if tracking == "" {
				return nil, ErrTrackingRequired
			}
			u.SendShippingEmail = true
			u.TrackingNumber = tracking
		}

		u.Fields = append(u.Fields, Field{Column: "status", Value: newStatus})
		u.History = append(u.History, models.OrderHistory{
			OrderID:     current.ID,
			Action:      models.HistoryActionStatusChanged,
			OldValue:    strPtr(current.Status),
			NewValue:    strPtr(newStatus),
			Description: fmt.Sprintf("Status changed from %s to %s", current.Status, newStatus),
		})
	}

	// --- Payment status ---
	if patch.PaymentStatus != nil && *patch.PaymentStatus != current.PaymentStatus {
		newPayment := *patch.PaymentStatus

		if newPayment == models.PaymentStatusPaid {
			u.SendPaymentEmail = true
		}

		u.Fields = append(u.Fields, Field{Column: "payment_status", Value: newPayment})
		u.History = append(u.History, models.OrderHistory{
			OrderID:     current.ID,
			Action:      models.HistoryActionPaymentChanged,
			OldValue:    strPtr(current.PaymentStatus),
			NewValue:    strPtr(newPayment),
			Description: fmt.Sprintf("Payment status changed from %s to %s", current.PaymentStatus, newPayment),
		})
	}

	// --- Tracking number ---
	if patch.TrackingNumber != nil {
		newTracking := strings.TrimSpace(*patch.TrackingNumber)
		oldTracking := ""
		if current.TrackingNumber != nil {
			oldTracking = *current.TrackingNumber
		}
		if newTracking != oldTracking {
			u.Fields = append(u.Fields, Field{Column: "tracking_number", Value: newTracking})
			u.History = append(u.History, models.OrderHistory{
				OrderID:     current.ID,
				Action:      models.HistoryActionTrackingSet,
				OldValue:    strPtr(oldTracking),
				NewValue:    strPtr(newTracking),
				Description: fmt.Sprintf("Tracking number set to %s", newTracking),
			})
		}
	}

	// --- Customer fields (per-field history) ---
	custFields := []struct {
		column  string
		label   string
		patch   *string
		current string
	}{
		{"customer_name", "Customer name", patch.CustomerName, current.CustomerName},
		{"customer_email", "Customer e-mail", patch.CustomerEmail, current.CustomerEmail},
	}
	for _, f := range custFields {
		if f.patch != nil && *f.patch != f.current {
			if f.column == "customer_email" {
				// Transition emails in the same request go to the new address.
				u.NotifyEmail = *f.patch
			}
			u.Fields = append(u.Fields, Field{Column: f.column, Value: *f.patch})
			u.History = append(u.History, models.OrderHistory{
				OrderID:     current.ID,
				Action:      models.HistoryActionFieldChanged,
				OldValue:    strPtr(f.current),
				NewValue:    strPtr(*f.patch),
				Description: fmt.Sprintf("%s changed", f.label),
			})
		}
	}
	if patch.CustomerPhone != nil {
		oldPhone := ""
		if current.CustomerPhone != nil {
			oldPhone = *current.CustomerPhone
		}
		if *patch.CustomerPhone != oldPhone {
			u.Fields = append(u.Fields, Field{Column: "customer_phone", Value: *patch.CustomerPhone})
			u.History = append(u.History, models.OrderHistory{
				OrderID:     current.ID,
				Action:      models.HistoryActionFieldChanged,
				OldValue:    strPtr(oldPhone),
				NewValue:    patch.CustomerPhone,
				Description: "Customer phone changed",
			})
		}
	}

	// --- Address fields (one collapsed history entry) ---
	addrFields := []struct {
		column  string
		patch   *string
		current string
	}{
		{"billing_street", patch.BillingStreet, current.BillingStreet},
		{"billing_city", patch.BillingCity, current.BillingCity},
		{"billing_zip", patch.BillingZip, current.BillingZip},
		{"billing_country", patch.BillingCountry, current.BillingCountry},
		{"delivery_street", patch.DeliveryStreet, current.DeliveryStreet},
		{"delivery_city", patch.DeliveryCity, current.DeliveryCity},
		{"delivery_zip", patch.DeliveryZip, current.DeliveryZip},
		{"delivery_country", patch.DeliveryCountry, current.DeliveryCountry},
	}
	addressChanged := false
	for _, f := range addrFields {
		if f.patch != nil && *f.patch != f.current {
			u.Fields = append(u.Fields, Field{Column: f.column, Value: *f.patch})
			addressChanged = true
		}
	}
	if addressChanged {
		u.History = append(u.History, models.OrderHistory{
			OrderID:     current.ID,
			Action:      models.HistoryActionAddressUpdated,
			Description: "Address updated",
		})
	}

	return u, nil
}
