package service

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var trackingPattern = regexp.MustCompile(`^ZAP-\d{8}-[0-9A-F]{6}$`)

func TestGenerateTrackingID_MatchesPattern(t *testing.T) {
	t.Parallel()

	id, err := GenerateTrackingID()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !trackingPattern.MatchString(id) {
		t.Errorf("tracking id %q does not match ZAP-YYYYMMDD-XXXXXX", id)
	}
}

func TestGenerateTrackingID_EmbedsDate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	id, err := generateTrackingID(now)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(id, "ZAP-20240115-") {
		t.Errorf("expected prefix ZAP-20240115-, got %q", id)
	}
}

func TestGenerateTrackingID_UniqueAcrossCalls(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := GenerateTrackingID()
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate tracking id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateTrackingID_SuffixIsUppercaseHex(t *testing.T) {
	t.Parallel()

	id, err := GenerateTrackingID()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 hyphen-separated parts, got %d in %q", len(parts), id)
	}
	suffix := parts[2]
	if len(suffix) != 6 {
		t.Fatalf("expected 6-character suffix, got %q", suffix)
	}
	for _, c := range suffix {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			t.Errorf("suffix %q contains non-uppercase-hex character %q", suffix, c)
		}
	}
}
