package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/shopspring/decimal"
)

// Fingerprint returns the duplicate-detection digest for a transaction. The
// digest is a SHA-256 over the pipe-joined canonical fields: the calendar day,
// the amount fixed to two decimals, the description and the source tag. Two
// rows with the same fingerprint are treated as the same transaction; genuine
// distinct rows that happen to share all four fields collide on purpose and
// are surfaced as possible duplicates rather than silently dropped.
func Fingerprint(date time.Time, amount float64, description, source string) string {
	joined := date.Format("2006-01-02") +
		"|" + decimal.NewFromFloat(amount).StringFixed(2) +
		"|" + description +
		"|" + source
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
