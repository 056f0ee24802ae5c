package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trendovo/trendovo-golang/internal/models"
)

func sampleOrder(locale string) models.Order {
	return models.Order{
		ID:          7,
		OrderNumber: "20260115-AB12CD34",
		Locale:      locale,
		Total:       249.80,
		Items: []models.OrderLine{
			{Name: "Koszulka Premium", Variant: "Czarny / L", Quantity: 2, UnitPrice: 89.90},
			{Name: "Czapka", Quantity: 1, UnitPrice: 70.00},
		},
	}
}

func TestOrderConfirmationLocales(t *testing.T) {
	cases := []struct {
		locale   string
		currency string
		account  string
	}{
		{"pl", "zł", BankAccountPL},
		{"hu", "Ft", BankAccountHU},
		{"cs", "Kč", BankAccountCZ},
		{"de", "zł", BankAccountPL}, // unknown locale falls back to Polish
	}

	for _, tc := range cases {
		subject, body := OrderConfirmation(sampleOrder(tc.locale))

		assert.Contains(t, subject, "20260115-AB12CD34")
		assert.Contains(t, body, tc.currency)
		assert.Contains(t, body, tc.account)
		assert.Contains(t, body, "Koszulka Premium (Czarny / L)")
		assert.Contains(t, body, CompanyVATID)
	}
}

func TestShippingNotificationCarriesTracking(t *testing.T) {
	subject, body := ShippingNotification(sampleOrder("cs"), "CP123456789CZ")

	assert.Contains(t, subject, "20260115-AB12CD34")
	assert.Contains(t, body, "CP123456789CZ")
	assert.Contains(t, body, "Sledovací číslo")
}

func TestPaymentConfirmationShowsTotal(t *testing.T) {
	_, body := PaymentConfirmation(sampleOrder("hu"))

	assert.Contains(t, body, "249.80 Ft")
	assert.Contains(t, body, "Összesen")
}

func TestInquiryMessage(t *testing.T) {
	subject, body := InquiryMessage("Jan Kowalski", "jan@example.com", "Czy macie rozmiar XL?")

	assert.Contains(t, subject, "Jan Kowalski")
	assert.Contains(t, body, "jan@example.com")
	assert.Contains(t, body, "Czy macie rozmiar XL?")
}
