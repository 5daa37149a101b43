package reservation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reservation numbers follow R{YY}{MM}{DD}-{NNNN}: a daily prefix plus
// a zero-padded counter starting at 0001. Uniqueness is advisory here;
// the reservations table carries a unique index and callers retry on
// collision.

const numberCounterDigits = 4

func NumberPrefix(now time.Time) string {
	return "R" + now.Format("060102")
}

// NextNumber derives the next number for a prefix from the
// lexicographically greatest existing number with that prefix. An
// empty or unparsable latest counter starts the day at 0001.
func NextNumber(prefix, latest string) string {
	counter := 1
	if latest != "" {
		counter = lastCounter(latest) + 1
	}
	return fmt.Sprintf("%s-%0*d", prefix, numberCounterDigits, counter)
}

func lastCounter(number string) int {
	suffix := number
	if i := strings.LastIndex(number, "-"); i >= 0 {
		suffix = number[i+1:]
	}
	if len(suffix) > numberCounterDigits {
		suffix = suffix[len(suffix)-numberCounterDigits:]
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
