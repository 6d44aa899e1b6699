package inventory

import (
	"testing"

	"lanaim-backend/internal/apperr"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestDeductionAllowed(t *testing.T) {
	tests := []struct {
		name      string
		available string
		required  string
		strict    bool
		want      bool
		wantErr   bool
	}{
		{"yeterli stok", "10", "3", true, true, false},
		{"tam sınırda", "3", "3", true, true, false},
		{"yetersiz, strict", "1", "3", true, false, true},
		{"yetersiz, esnek mod düşümü atlar", "1", "3", false, false, false},
		{"sıfır stok, esnek", "0", "0.5", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := deductionAllowed("Tavuk", "kg", dec(tt.available), dec(tt.required), tt.strict)
			if got != tt.want {
				t.Errorf("deductionAllowed() = %v, want %v", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindInsufficientStock {
					t.Errorf("hata tipi = %v, want KindInsufficientStock", err)
				}
			}
		})
	}
}
