package service

import (
	"crypto/rand"
	"fmt"
	"time"
)

// trackingPrefix is the brand prefix carried by every tracking id.
const trackingPrefix = "ZAP"

// GenerateTrackingID produces a human-readable tracking id of the form
// ZAP-20240115-AB12F9: brand prefix, UTC date, and a 6-character uppercase hex
// suffix from a cryptographically secure source. Three random bytes give
// 16,777,216 combinations per day, which is enough to make a same-day
// collision astronomically unlikely.
func GenerateTrackingID() (string, error) {
	return generateTrackingID(time.Now().UTC())
}

func generateTrackingID(now time.Time) (string, error) {
	var suffix [3]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("failed to read random suffix: %w", err)
	}

	return fmt.Sprintf("%s-%s-%02X%02X%02X",
		trackingPrefix,
		now.Format("20060102"),
		suffix[0], suffix[1], suffix[2],
	), nil
}
