//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

func TestNumberPrefix(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "R240615", reservation.NumberPrefix(now))

	nextDay := now.AddDate(0, 0, 1)
	assert.Equal(t, "R240616", reservation.NumberPrefix(nextDay))
}

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		latest string
		want   string
	}{
		{"first of the day", "R240615", "", "R240615-0001"},
		{"increments the counter", "R240615", "R240615-0002", "R240615-0003"},
		{"pads to four digits", "R240615", "R240615-0009", "R240615-0010"},
		{"rolls past a thousand", "R240615", "R240615-0999", "R240615-1000"},
		{"unparsable counter restarts", "R240615", "R240615-XXXX", "R240615-0001"},
		{"missing separator restarts", "R240615", "garbage", "R240615-0001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservation.NextNumber(tt.prefix, tt.latest))
		})
	}
}
