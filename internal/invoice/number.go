package invoice

import (
	"fmt"
	"time"
)

const NumberPrefix = "INV"

// Number formats an invoice number as INV-<unix seconds>-<subscription id>.
// Two subscriptions created in the same second still differ by id, but numbers
// from the same second do not sort chronologically.
func Number(now time.Time, subscriptionID uint) string {
	return fmt.Sprintf("%s-%d-%d", NumberPrefix, now.Unix(), subscriptionID)
}
