package order

import (
	"testing"
	"time"
)

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2025, 7, 11, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		seq  int
		want string
	}{
		{1, "LA20250711-001"},
		{42, "LA20250711-042"},
		{999, "LA20250711-999"},
		{1000, "LA20250711-1000"}, // 999 sonrası kırpılmadan genişler
	}

	for _, tt := range tests {
		if got := FormatOrderNumber(day, tt.seq); got != tt.want {
			t.Errorf("FormatOrderNumber(%d) = %s, want %s", tt.seq, got, tt.want)
		}
	}
}

func TestFormatOrderNumberDayBoundary(t *testing.T) {
	d1 := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)

	if FormatOrderNumber(d1, 1) == FormatOrderNumber(d2, 1) {
		t.Error("farklı günler aynı numarayı üretmemeli")
	}
	if got := FormatOrderNumber(d2, 1); got != "LA20260101-001" {
		t.Errorf("yeni gün = %s, want LA20260101-001", got)
	}
}
