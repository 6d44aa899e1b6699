package cart

import (
	"testing"

	"lanaim-backend/internal/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSameOptionSet(t *testing.T) {
	opts := []models.CartLineOption{
		{OptionID: 3}, {OptionID: 7},
	}

	tests := []struct {
		name string
		ids  []uint
		want bool
	}{
		{"same order", []uint{3, 7}, true},
		{"reversed order", []uint{7, 3}, true},
		{"different option", []uint{3, 8}, false},
		{"subset", []uint{3}, false},
		{"superset", []uint{3, 7, 9}, false},
		{"empty against non-empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameOptionSet(opts, tt.ids); got != tt.want {
				t.Errorf("SameOptionSet(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}

	if !SameOptionSet(nil, nil) {
		t.Error("iki boş küme eşit sayılmalı")
	}
}

func TestSameOptionSetDuplicates(t *testing.T) {
	opts := []models.CartLineOption{{OptionID: 3}, {OptionID: 3}}

	if SameOptionSet(opts, []uint{3, 7}) {
		t.Error("tekrarlı id farklı kümeyle eşleşmemeli")
	}
	if !SameOptionSet(opts, []uint{3, 3}) {
		t.Error("tekrarlı id aynı çoklukta eşleşmeli")
	}
}

func TestRecalculate(t *testing.T) {
	cart := &models.Cart{
		DeliveryFee: dec("20"),
		Lines: []models.CartLine{
			{
				UnitPrice: dec("80"),
				Quantity:  2,
				Options: []models.CartLineOption{
					{Price: dec("10")},
				},
			},
			{
				UnitPrice: dec("55.50"),
				Quantity:  1,
			},
		},
	}

	Recalculate(cart)

	if !cart.Lines[0].LineTotal.Equal(dec("180.00")) {
		t.Errorf("line0 total = %s, want 180.00", cart.Lines[0].LineTotal)
	}
	if !cart.Lines[1].LineTotal.Equal(dec("55.50")) {
		t.Errorf("line1 total = %s, want 55.50", cart.Lines[1].LineTotal)
	}
	if !cart.Subtotal.Equal(dec("235.50")) {
		t.Errorf("subtotal = %s, want 235.50", cart.Subtotal)
	}
	if !cart.Total.Equal(dec("255.50")) {
		t.Errorf("total = %s, want 255.50", cart.Total)
	}
}

func TestEstimatePrepTimeEmptyCart(t *testing.T) {
	// boş sepet veritabanına gitmeden sıfır dönmeli
	got, err := EstimatePrepTime(nil)
	if err != nil {
		t.Fatalf("EstimatePrepTime(nil) hata döndü: %v", err)
	}
	if got != 0 {
		t.Errorf("EstimatePrepTime(nil) = %d, want 0", got)
	}
}

func TestRecalculateEmptyCart(t *testing.T) {
	cart := &models.Cart{}
	Recalculate(cart)

	if !cart.Subtotal.IsZero() || !cart.Total.IsZero() {
		t.Errorf("boş sepet: subtotal=%s total=%s, ikisi de 0 olmalı", cart.Subtotal, cart.Total)
	}
}
