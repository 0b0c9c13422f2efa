// Package daily picks the clue featured on a given day.
//
// The choice is deterministic per date and salt, so every visitor sees the
// same featured clue and it cannot be predicted without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns HMAC-SHA256(salt, DateKey(t)) mod n, or 0 when n <= 0.
func Index(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for an even spread
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Featured holds the clue picked for a date.
type Featured struct {
	Date  string `json:"date"`
	Index int    `json:"index"`
	ID    string `json:"id"`
}

// Pick selects one of ids for the date of t. ok is false when ids is empty.
func Pick(t time.Time, salt string, ids []string) (f Featured, ok bool) {
	if len(ids) == 0 {
		return Featured{Date: DateKey(t)}, false
	}
	i := Index(t, salt, len(ids))
	return Featured{Date: DateKey(t), Index: i, ID: ids[i]}, true
}
