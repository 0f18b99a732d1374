package order

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

const numberSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NumberPattern matches valid order numbers: BW-<date>-<5 char suffix>.
var NumberPattern = regexp.MustCompile(`^BW-\d{8}-[A-Z0-9]{5}$`)

// NewOrderNumber generates a human-facing order number for the given
// creation time, e.g. "BW-20260830-K3X9P". The suffix is random; callers
// that need uniqueness across a stored collection must check and retry.
func NewOrderNumber(t time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = numberSuffixCharset[rand.Intn(len(numberSuffixCharset))]
	}

	return fmt.Sprintf("BW-%s-%s", t.Format("20060102"), suffix)
}
