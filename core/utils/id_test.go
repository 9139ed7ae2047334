package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateBookingCodeFormat(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC)

	code, err := GenerateBookingCode(now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %q", code)
	}
	if parts[0] != "BK" {
		t.Fatalf("expected BK prefix, got %q", parts[0])
	}
	if parts[1] != "20260830" {
		t.Fatalf("expected date segment 20260830, got %q", parts[1])
	}
	if len(parts[2]) != 6 {
		t.Fatalf("expected 6-char suffix, got %q", parts[2])
	}

	// The alphabet excludes ambiguous characters.
	for _, c := range parts[2] {
		if strings.ContainsRune("ILOU", c) {
			t.Fatalf("suffix contains ambiguous character %q in %q", c, code)
		}
	}
}

func TestGenerateBookingCodesDiffer(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateBookingCode(now)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}
