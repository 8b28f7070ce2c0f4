package utils

import "testing"

func TestGenerateAttendantCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateAttendantCode(6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("code starts with zero: %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}

func TestGenerateAttendantCodeInvalidLength(t *testing.T) {
	if _, err := GenerateAttendantCode(0); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := GenerateAttendantCode(-3); err == nil {
		t.Fatal("expected error for negative length")
	}
}
