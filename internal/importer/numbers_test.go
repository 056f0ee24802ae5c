package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"49,90", 49.90},
		{"49.90", 49.90},
		{"1 299,00 zł", 1299.00},
		{"1.299,50 Kč", 1299.50},
		{"12 990 Ft", 12990},
		{"299", 299},
		{" 15,5 ", 15.5},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "abc", "zł", "-"} {
		_, err := ParsePrice(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"12 szt.", 12},
		{" 7 ", 7},
		{"0", 0},
	}
	for _, tc := range cases {
		got, err := ParseStock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseStock("brak")
	assert.Error(t, err)
}

func TestResolveHeaderAliases(t *testing.T) {
	header := resolveHeader(
		[]string{"Kód", " NAZWA ", "Ár", "Skladem", "Poznámka", "Kategoria"},
		productAliases,
	)

	assert.Equal(t, ColCode, header[0])
	assert.Equal(t, ColName, header[1])
	assert.Equal(t, ColPrice, header[2])
	assert.Equal(t, ColStock, header[3])
	assert.Equal(t, ColCategory, header[5])

	// Unrecognized columns are ignored.
	_, ok := header[4]
	assert.False(t, ok)
}

func TestResolveHeaderFirstDuplicateWins(t *testing.T) {
	header := resolveHeader([]string{"Kod", "SKU"}, productAliases)
	assert.Equal(t, ColCode, header[0])
	_, ok := header[1]
	assert.False(t, ok)
}
