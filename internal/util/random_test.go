package util

import (
	"strings"
	"testing"
)

func TestGenerateRandomHex(t *testing.T) {
	hex := GenerateRandomHex(16)
	if len(hex) != 16 {
		t.Errorf("expected hex length 16, got %d", len(hex))
	}
	for _, c := range hex {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("unexpected character %q in hex string", c)
		}
	}
}

func TestGenerateRandomHexZeroLength(t *testing.T) {
	if hex := GenerateRandomHex(0); hex != "" {
		t.Errorf("expected empty string for zero length, got %q", hex)
	}
	if hex := GenerateRandomHex(-5); hex != "" {
		t.Errorf("expected empty string for negative length, got %q", hex)
	}
}

func TestGenerateUserID(t *testing.T) {
	id := GenerateUserID()
	if !strings.HasPrefix(id, "user_") {
		t.Errorf("expected user_ prefix, got %q", id)
	}
	if len(id) != len("user_")+8 {
		t.Errorf("expected 8 hex characters after prefix, got %q", id)
	}
}

func TestGeneratedIDPrefixes(t *testing.T) {
	cases := []struct {
		name   string
		gen    func() string
		prefix string
		hexLen int
	}{
		{"symptom", GenerateSymptomID, "sym_", 6},
		{"history", GenerateHistoryID, "his_", 6},
		{"visit", GenerateVisitID, "rec_", 6},
	}
	for _, tc := range cases {
		id := tc.gen()
		if !strings.HasPrefix(id, tc.prefix) {
			t.Errorf("%s: expected prefix %q, got %q", tc.name, tc.prefix, id)
		}
		if len(id) != len(tc.prefix)+tc.hexLen {
			t.Errorf("%s: expected %d hex characters after prefix, got %q", tc.name, tc.hexLen, id)
		}
	}
}

func TestGeneratedIDsAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateUserID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
