package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trendovo/trendovo-golang/internal/invoice"
	"github.com/trendovo/trendovo-golang/internal/mail"
	"github.com/trendovo/trendovo-golang/internal/models"
	"github.com/trendovo/trendovo-golang/internal/orders"
)

// --- Checkout (public) ---

type CheckoutItemInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	VariantID *int64 `json:"variantId"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutInput struct {
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone *string `json:"customerPhone"`

	BillingStreet  string `json:"billingStreet" binding:"required"`
	BillingCity    string `json:"billingCity" binding:"required"`
	BillingZip     string `json:"billingZip" binding:"required"`
	BillingCountry string `json:"billingCountry" binding:"required"`

	// Delivery falls back to the billing address when omitted.
	DeliveryStreet  string `json:"deliveryStreet"`
	DeliveryCity    string `json:"deliveryCity"`
	DeliveryZip     string `json:"deliveryZip"`
	DeliveryCountry string `json:"deliveryCountry"`

	Locale string `json:"locale" binding:"omitempty,oneof=pl hu cs"`

	Items []CheckoutItemInput `json:"items" binding:"required,min=1,dive"`
}

// Checkout is the handler for POST /v1/checkout.
// It snapshots the purchased lines into the order row, decrements
// stock and sends the order confirmation (best effort).
func (h *Handlers) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Locale == "" {
		input.Locale = "pl"
	}
	if input.DeliveryStreet == "" {
		input.DeliveryStreet = input.BillingStreet
		input.DeliveryCity = input.BillingCity
		input.DeliveryZip = input.BillingZip
		input.DeliveryCountry = input.BillingCountry
	}

	tx, err := h.DB.BeginTx(c, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback() // Safety net

	var lines []models.OrderLine
	var total float64

	for _, item := range input.Items {
		var p models.Product
		err := tx.QueryRow(
			"SELECT id, code, name, price, stock FROM products WHERE id = ? AND is_active = 1 FOR UPDATE",
			item.ProductID,
		).Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Stock)
		if err != nil {
			if err == sql.ErrNoRows {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %d is not available", item.ProductID)})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		line := models.OrderLine{
			ProductID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		}

		if item.VariantID != nil {
			var v models.ProductVariant
			err := tx.QueryRow(
				"SELECT id, color_name, size_name, stock, price FROM product_variants WHERE id = ? AND product_id = ? FOR UPDATE",
				*item.VariantID, p.ID,
			).Scan(&v.ID, &v.ColorName, &v.SizeName, &v.Stock, &v.Price)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Variant %d is not available", *item.VariantID)})
				return
			}
			if v.Stock < item.Quantity {
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Not enough stock for %s", p.Name)})
				return
			}
			if v.Price != nil {
				line.UnitPrice = *v.Price
			}
			var parts []string
			if v.ColorName != nil {
				parts = append(parts, *v.ColorName)
			}
			if v.SizeName != nil {
				parts = append(parts, *v.SizeName)
			}
			line.Variant = strings.Join(parts, " / ")

			if _, err := tx.Exec("UPDATE product_variants SET stock = stock - ? WHERE id = ?", item.Quantity, v.ID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
				return
			}
		} else {
			if p.Stock < item.Quantity {
				c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Not enough stock for %s", p.Name)})
				return
			}
			if _, err := tx.Exec("UPDATE products SET stock = stock - ? WHERE id = ?", item.Quantity, p.ID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
				return
			}
		}

		total += line.UnitPrice * float64(line.Quantity)
		lines = append(lines, line)
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode order items"})
		return
	}

	orderNumber := newOrderNumber()
	now := time.Now()

	result, err := tx.Exec(`
		INSERT INTO orders
		(order_number, status, payment_status, customer_name, customer_email, customer_phone,
		 billing_street, billing_city, billing_zip, billing_country,
		 delivery_street, delivery_city, delivery_zip, delivery_country,
		 items, total, locale, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderNumber, models.OrderStatusPending, models.PaymentStatusUnpaid,
		input.CustomerName, input.CustomerEmail, input.CustomerPhone,
		input.BillingStreet, input.BillingCity, input.BillingZip, input.BillingCountry,
		input.DeliveryStreet, input.DeliveryCity, input.DeliveryZip, input.DeliveryCountry,
		string(itemsJSON), total, input.Locale, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	orderID, _ := result.LastInsertId()

	if _, err := tx.Exec(`
		INSERT INTO order_history (order_id, action, description, created_at)
		VALUES (?, ?, ?, ?)`,
		orderID, models.HistoryActionCreated, "Order placed", now,
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record order history"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	// Best-effort confirmation email; the order stands either way.
	order := models.Order{
		ID: orderID, OrderNumber: orderNumber, Locale: input.Locale,
		Total: total, Items: lines,
	}
	subject, body := mail.OrderConfirmation(order)
	if err := h.Mailer.Send(input.CustomerEmail, subject, body); err != nil {
		log.Printf("Failed to send order confirmation for %s: %v", orderNumber, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order created",
		"orderId":     orderID,
		"orderNumber": orderNumber,
		"total":       total,
	})
}

// newOrderNumber builds the immutable external order number.
func newOrderNumber() string {
	return fmt.Sprintf("%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]),
	)
}

// --- Admin order handlers ---

// GetAllOrders is the handler for GET /v1/admin/orders
func (h *Handlers) GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	paymentStatus := c.Query("paymentStatus")
	page, limit := pagination(c)

	query := `
		SELECT id, order_number, status, payment_status, tracking_number,
		       customer_name, customer_email, customer_phone,
		       billing_street, billing_city, billing_zip, billing_country,
		       delivery_street, delivery_city, delivery_zip, delivery_country,
		       items, total, locale, created_at, updated_at
		FROM orders
		WHERE 1 = 1`

	var args []interface{}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if paymentStatus != "" {
		query += " AND payment_status = ?"
		args = append(args, paymentStatus)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	defer rows.Close()

	orderList := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan order"})
			return
		}
		orderList = append(orderList, o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderList, "page": page})
}

// GetOrder is the handler for GET /v1/admin/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.loadOrder(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	history, err := h.loadHistory(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "history": history})
}

// UpdateOrder is the handler for PATCH /v1/admin/orders/:id
// It diffs the patch against the stored order, appends history entries
// per changed field and fires the transition emails best-effort.
func (h *Handlers) UpdateOrder(c *gin.Context) {
	order, err := h.loadOrder(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var patch orders.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update, err := orders.BuildUpdate(order, patch)
	if err != nil {
		// Validation failures reject the whole request before any write.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !update.HasChanges() {
		c.JSON(http.StatusOK, gin.H{"message": "No changes"})
		return
	}

	// The row update and its history entries commit together.
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}
	for _, f := range update.Fields {
		querySet += ", " + f.Column + " = ?"
		queryArgs = append(queryArgs, f.Value)
	}
	queryArgs = append(queryArgs, order.ID)

	if _, err := tx.Exec("UPDATE orders SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	for _, entry := range update.History {
		if err := insertHistory(tx, entry); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record order history"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	// Side-effect emails are fire-and-forget: a failure is logged to the
	// console and to the audit trail but never fails the request.
	if update.SendShippingEmail {
		subject, body := mail.ShippingNotification(order, update.TrackingNumber)
		if err := h.Mailer.Send(update.NotifyEmail, subject, body); err != nil {
			log.Printf("Failed to send shipping notification for %s: %v", order.OrderNumber, err)
			h.recordEmailFailure(order.ID, "shipping notification", err)
		}
	}
	if update.SendPaymentEmail {
		subject, body := mail.PaymentConfirmation(order)
		if err := h.Mailer.Send(update.NotifyEmail, subject, body); err != nil {
			log.Printf("Failed to send payment confirmation for %s: %v", order.OrderNumber, err)
			h.recordEmailFailure(order.ID, "payment confirmation", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order updated",
		"changedFields":  len(update.Fields),
		"historyEntries": len(update.History),
	})
}

// DeleteOrder is the handler for DELETE /v1/admin/orders/:id
func (h *Handlers) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM order_history WHERE order_id = ?", orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order history"})
		return
	}

	result, err := tx.Exec("DELETE FROM orders WHERE id = ?", orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// GetOrderInvoice is the handler for GET /v1/admin/orders/:id/invoice
func (h *Handlers) GetOrderInvoice(c *gin.Context) {
	order, err := h.loadOrder(c.Param("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	pdf, err := invoice.Generate(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=faktura-%s.pdf", order.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// --- Helpers ---

func (h *Handlers) loadOrder(id string) (models.Order, error) {
	row := h.DB.QueryRow(`
		SELECT id, order_number, status, payment_status, tracking_number,
		       customer_name, customer_email, customer_phone,
		       billing_street, billing_city, billing_zip, billing_country,
		       delivery_street, delivery_city, delivery_zip, delivery_country,
		       items, total, locale, created_at, updated_at
		FROM orders
		WHERE id = ?`, id)
	return scanOrder(row.Scan)
}

// scanOrder works for both *sql.Row and *sql.Rows via the Scan func.
func scanOrder(scan func(dest ...interface{}) error) (models.Order, error) {
	var o models.Order
	var itemsJSON []byte

	err := scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.PaymentStatus, &o.TrackingNumber,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.BillingStreet, &o.BillingCity, &o.BillingZip, &o.BillingCountry,
		&o.DeliveryStreet, &o.DeliveryCity, &o.DeliveryZip, &o.DeliveryCountry,
		&itemsJSON, &o.Total, &o.Locale, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return o, err
	}

	o.Items = []models.OrderLine{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			log.Printf("Corrupt items snapshot for order %s: %v", o.OrderNumber, err)
		}
	}
	return o, nil
}

func (h *Handlers) loadHistory(orderID int64) ([]models.OrderHistory, error) {
	rows, err := h.DB.Query(`
		SELECT id, order_id, action, old_value, new_value, description, metadata, created_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY created_at ASC, id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := []models.OrderHistory{}
	for rows.Next() {
		var entry models.OrderHistory
		if err := rows.Scan(&entry.ID, &entry.OrderID, &entry.Action, &entry.OldValue,
			&entry.NewValue, &entry.Description, &entry.Metadata, &entry.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func insertHistory(tx *sql.Tx, entry models.OrderHistory) error {
	_, err := tx.Exec(`
		INSERT INTO order_history (order_id, action, old_value, new_value, description, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.OrderID, entry.Action, entry.OldValue, entry.NewValue,
		entry.Description, entry.Metadata, time.Now(),
	)
	return err
}

// recordEmailFailure appends an audit entry for a swallowed email error.
func (h *Handlers) recordEmailFailure(orderID int64, kind string, sendErr error) {
	msg := sendErr.Error()
	_, err := h.DB.Exec(`
		INSERT INTO order_history (order_id, action, old_value, new_value, description, metadata, created_at)
		VALUES (?, ?, NULL, NULL, ?, ?, ?)`,
		orderID, models.HistoryActionEmailFailed,
		fmt.Sprintf("Failed to send %s", kind),
		fmt.Sprintf(`{"error":%q}`, msg),
		time.Now(),
	)
	if err != nil {
		log.Printf("Failed to record email failure for order %d: %v", orderID, err)
	}
}
