package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FormatOrderNumber: LA<YYYYMMDD>-<NNN>. Sıra numarası 999'u aşarsa
// genişler, asla kırpılmaz.
func FormatOrderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("LA%s-%03d", day.Format("20060102"), seq)
}

// NextSequence: günün sıra sayacını atomik artırır. Tek upsert ile
// çalışır; eşzamanlı siparişlerde satır kilidi sırayı garantiler, boşluk
// yalnızca rollback'te oluşur.
func NextSequence(tx *gorm.DB, day time.Time) (int, error) {
	var seq int
	err := tx.Raw(`
		INSERT INTO order_sequences (day, last_seq)
		VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = order_sequences.last_seq + 1
		RETURNING last_seq`,
		day.Format("20060102"),
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// NewOrderNumber: transaction içinde çağrılır; sipariş kaydıyla aynı
// tx'te commit olur.
func NewOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	seq, err := NextSequence(tx, now)
	if err != nil {
		return "", err
	}
	return FormatOrderNumber(now, seq), nil
}
