package models

import (
	"time"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Order is the model for the 'orders' table. OrderNumber is immutable
// once assigned. Purchased line items are stored as a JSON snapshot
// decoupled from the live product rows.
type Order struct {
	ID             int64   `json:"id" db:"id"`
	OrderNumber    string  `json:"orderNumber" db:"order_number"`
	Status         string  `json:"status" db:"status"`
	PaymentStatus  string  `json:"paymentStatus" db:"payment_status"`
	TrackingNumber *string `json:"trackingNumber,omitempty" db:"tracking_number"`

	CustomerName  string  `json:"customerName" db:"customer_name"`
	CustomerEmail string  `json:"customerEmail" db:"customer_email"`
	CustomerPhone *string `json:"customerPhone,omitempty" db:"customer_phone"`

	// Denormalized addresses, captured at purchase time.
	BillingStreet   string `json:"billingStreet" db:"billing_street"`
	BillingCity     string `json:"billingCity" db:"billing_city"`
	BillingZip      string `json:"billingZip" db:"billing_zip"`
	BillingCountry  string `json:"billingCountry" db:"billing_country"`
	DeliveryStreet  string `json:"deliveryStreet" db:"delivery_street"`
	DeliveryCity    string `json:"deliveryCity" db:"delivery_city"`
	DeliveryZip     string `json:"deliveryZip" db:"delivery_zip"`
	DeliveryCountry string `json:"deliveryCountry" db:"delivery_country"`

	Total  float64 `json:"total" db:"total"`
	Locale string  `json:"locale" db:"locale"` // pl, hu or cs

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Parsed from the items JSON column.
	Items []OrderLine `json:"items" db:"-"`
}

// OrderLine is one purchased line item inside the order items snapshot.
type OrderLine struct {
	ProductID int64   `json:"productId"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Variant   string  `json:"variant,omitempty"` // e.g. "red / XL"
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// History entry action types.
const (
	HistoryActionCreated        = "created"
	HistoryActionStatusChanged  = "status_changed"
	HistoryActionPaymentChanged = "payment_changed"
	HistoryActionTrackingSet    = "tracking_updated"
	HistoryActionFieldChanged   = "field_changed"
	HistoryActionAddressUpdated = "address_updated"
	HistoryActionEmailFailed    = "email_failed"
)

// OrderHistory is an append-only audit record of one change to an order.
// Entries are never updated or deleted.
type OrderHistory struct {
	ID          int64     `json:"id" db:"id"`
	OrderID     int64     `json:"orderId" db:"order_id"`
	Action      string    `json:"action" db:"action"`
	OldValue    *string   `json:"oldValue,omitempty" db:"old_value"`
	NewValue    *string   `json:"newValue,omitempty" db:"new_value"`
	Description string    `json:"description" db:"description"`
	Metadata    *string   `json:"metadata,omitempty" db:"metadata"` // free-form JSON
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
