package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendovo/trendovo-golang/internal/models"
)

func TestGenerateProducesPDF(t *testing.T) {
	order := models.Order{
		ID:             3,
		OrderNumber:    "20260115-AB12CD34",
		CustomerName:   "Jiří Dvořák",
		BillingStreet:  "Nádražní 25",
		BillingCity:    "Praha",
		BillingZip:     "110 00",
		BillingCountry: "Česká republika",
		Total:          1450.00,
		Locale:         "cs",
		CreatedAt:      time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderLine{
			{Name: "Zimní bunda", Variant: "Modrá / XL", Quantity: 1, UnitPrice: 1450.00},
		},
	}

	pdf, err := Generate(order)
	require.NoError(t, err)

	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateHandlesUnknownLocale(t *testing.T) {
	order := models.Order{
		OrderNumber:    "20260116-EF56GH78",
		CustomerName:   "Anna Nowak",
		BillingStreet:  "ul. Długa 1",
		BillingCity:    "Warszawa",
		BillingZip:     "00-001",
		BillingCountry: "Polska",
		Total:          99.90,
		Locale:         "de",
		CreatedAt:      time.Now(),
		Items: []models.OrderLine{
			{Name: "Czapka", Quantity: 1, UnitPrice: 99.90},
		},
	}

	pdf, err := Generate(order)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
