package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(f float64) *float64 { return &f }

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		salePrice *float64
		want      float64
	}{
		{"no sale price", 150000, nil, 150000},
		{"sale price lower", 150000, fptr(120000), 120000},
		{"sale price higher is ignored", 150000, fptr(180000), 150000},
		{"sale price equal is ignored", 150000, fptr(150000), 150000},
		{"zero sale price is ignored", 150000, fptr(0), 150000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Book{Price: tt.price, SalePrice: tt.salePrice}
			assert.Equal(t, tt.want, b.EffectivePrice())
		})
	}
}

func TestBookValidate(t *testing.T) {
	_, err := NewBook("", 100, 1, 1)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = NewBook("Title", 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = NewBook("Title", 100, -1, 1)
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = NewBook("Title", 100, 1, 0)
	assert.ErrorIs(t, err, ErrCategoryRequired)

	book, err := NewBook("Title", 100, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, BookStatusActive, book.Status)
}

func TestInStock(t *testing.T) {
	b := &Book{Stock: 3}
	assert.True(t, b.InStock(3))
	assert.False(t, b.InStock(4))
}
