package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const bookingIDPrefix = "MEDUSA"

// IDGenerator выдает номера бронирований вида MEDUSA-YYYYMMDD-NNNN, NNNN в [1000, 9999].
// Уникальность не гарантируется: коллизии в пределах дня возможны.
type IDGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewIDGenerator генератор на системных часах и rand/v2
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now, intn: rand.IntN}
}

// Next новый номер бронирования
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%s-%s-%04d", bookingIDPrefix, g.now().Format("20060102"), 1000+g.intn(9000))
}
