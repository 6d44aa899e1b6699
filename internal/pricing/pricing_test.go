package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name         string
		unitPrice    string
		optionsPrice string
		quantity     int
		want         string
	}{
		{"base only", "80", "0", 1, "80"},
		{"with option", "80", "10", 2, "180"},
		{"multiple options summed additively", "250", "55", 1, "305"},
		{"fractional prices", "19.99", "0.51", 3, "61.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(dec(tt.unitPrice), dec(tt.optionsPrice), tt.quantity)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("LineTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	taxRate := dec("0.07")
	serviceRate := dec("0.05")

	tests := []struct {
		name        string
		subtotal    string
		deliveryFee string
		discount    string
		want        Breakdown
	}{
		{
			name:     "plain order without fee or discount",
			subtotal: "100", deliveryFee: "0", discount: "0",
			want: Breakdown{
				Subtotal:       dec("100"),
				TaxAmount:      dec("7.00"),
				ServiceCharge:  dec("5.00"),
				DeliveryFee:    dec("0"),
				DiscountAmount: dec("0"),
				Total:          dec("112.00"),
			},
		},
		{
			name:     "tax and service exclude the delivery fee",
			subtotal: "180", deliveryFee: "20", discount: "0",
			want: Breakdown{
				Subtotal:       dec("180"),
				TaxAmount:      dec("12.60"),
				ServiceCharge:  dec("9.00"),
				DeliveryFee:    dec("20"),
				DiscountAmount: dec("0"),
				Total:          dec("221.60"),
			},
		},
		{
			name:     "discount is applied after charges",
			subtotal: "200", deliveryFee: "10", discount: "50",
			want: Breakdown{
				Subtotal:       dec("200"),
				TaxAmount:      dec("14.00"),
				ServiceCharge:  dec("10.00"),
				DeliveryFee:    dec("10"),
				DiscountAmount: dec("50"),
				Total:          dec("184.00"),
			},
		},
		{
			name:     "oversized discount is capped so total stays zero",
			subtotal: "50", deliveryFee: "0", discount: "999",
			want: Breakdown{
				Subtotal:       dec("50"),
				TaxAmount:      dec("3.50"),
				ServiceCharge:  dec("2.50"),
				DeliveryFee:    dec("0"),
				DiscountAmount: dec("56.00"),
				Total:          dec("0"),
			},
		},
		{
			name:     "negative discount is ignored",
			subtotal: "50", deliveryFee: "5", discount: "-10",
			want: Breakdown{
				Subtotal:       dec("50"),
				TaxAmount:      dec("3.50"),
				ServiceCharge:  dec("2.50"),
				DeliveryFee:    dec("5"),
				DiscountAmount: dec("0"),
				Total:          dec("61.00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quote(dec(tt.subtotal), dec(tt.deliveryFee), dec(tt.discount), taxRate, serviceRate)

			check := func(field string, got, want decimal.Decimal) {
				if !got.Equal(want) {
					t.Errorf("%s = %s, want %s", field, got, want)
				}
			}
			check("Subtotal", got.Subtotal, tt.want.Subtotal)
			check("TaxAmount", got.TaxAmount, tt.want.TaxAmount)
			check("ServiceCharge", got.ServiceCharge, tt.want.ServiceCharge)
			check("DeliveryFee", got.DeliveryFee, tt.want.DeliveryFee)
			check("DiscountAmount", got.DiscountAmount, tt.want.DiscountAmount)
			check("Total", got.Total, tt.want.Total)
		})
	}
}

// Aynı girdiyle iki çağrı bit düzeyinde aynı sonucu vermeli; sepet
// ekranı ve sipariş oluşturma aynı hesabı paylaşıyor.
func TestQuoteDeterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := Quote(dec("123.45"), dec("20"), dec("13.37"), dec("0.07"), dec("0.05"))
		b := Quote(dec("123.45"), dec("20"), dec("13.37"), dec("0.07"), dec("0.05"))

		if a.Total.String() != b.Total.String() || a.TaxAmount.String() != b.TaxAmount.String() {
			t.Fatalf("quote is not deterministic: %+v vs %+v", a, b)
		}
	}
}
