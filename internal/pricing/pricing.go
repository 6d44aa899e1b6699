// Package pricing: sepet → fiyat dökümü hesabı. Fonksiyonlar saf ve
// deterministiktir; aynı hesap hem sepet ekranında (spekülatif) hem de
// sipariş oluştururken (otoriter) çalışır ve ikisi kuruşuna kadar aynı
// sonucu vermek zorundadır. Bu yüzden float değil decimal kullanılır.
package pricing

import "github.com/shopspring/decimal"

type Breakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// LineTotal: (birim fiyat + seçenek fiyatları toplamı) × adet
func LineTotal(unitPrice, optionsPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Add(optionsPrice).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// Quote: sipariş fiyat dökümü. Vergi ve servis ücreti sadece subtotal
// üzerinden hesaplanır (teslimat ücreti hariç). İndirim, toplamı asla
// negatife düşürmeyecek şekilde kırpılır.
func Quote(subtotal, deliveryFee, discount, taxRate, serviceRate decimal.Decimal) Breakdown {
	tax := subtotal.Mul(taxRate).Round(2)
	service := subtotal.Mul(serviceRate).Round(2)

	gross := subtotal.Add(tax).Add(service).Add(deliveryFee)

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(gross) {
		discount = gross
	}

	return Breakdown{
		Subtotal:       subtotal.Round(2),
		TaxAmount:      tax,
		ServiceCharge:  service,
		DeliveryFee:    deliveryFee.Round(2),
		DiscountAmount: discount.Round(2),
		Total:          gross.Sub(discount).Round(2),
	}
}
