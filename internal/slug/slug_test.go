package slug_test

import (
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/slug"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Smartphone Apple iPhone 15", want: "smartphone-apple-iphone-15"},
		{in: "  Café  Crème ", want: "cafe-creme"},
		{in: "USB-C / Lightning", want: "usb-c-lightning"},
		{in: "---", want: ""},
		{in: "Ноутбук Lenovo", want: "ноутбук-lenovo"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Make(tt.in))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Laptops", slug.Capitalize("laptops"))
	assert.Equal(t, "Home appliances", slug.Capitalize("HOME APPLIANCES"))
	assert.Equal(t, "", slug.Capitalize("   "))
}

func TestProductName(t *testing.T) {
	t.Run("Prefixes singular category", func(t *testing.T) {
		assert.Equal(t, "Smartphone Apple iPhone 15", slug.ProductName("Apple iPhone 15", "Smartphones"))
	})

	t.Run("Keeps name that already starts with the category", func(t *testing.T) {
		assert.Equal(t, "smartphone Pixel 8", slug.ProductName("smartphone Pixel 8", "Smartphones"))
	})

	t.Run("Empty category leaves name untouched", func(t *testing.T) {
		assert.Equal(t, "Pixel 8", slug.ProductName(" Pixel 8 ", ""))
	})
}
