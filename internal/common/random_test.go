package common

import (
	"strings"
	"testing"
)

// ---------- MakeRandAlphanumericString ----------

func TestMakeRandAlphanumericString_LengthAndAlphabet(t *testing.T) {
	const n = 128
	s, err := MakeRandAlphanumericString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n {
		t.Fatalf("expected length %d, got %d", n, len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(alphanumeric, r) {
			t.Fatalf("unexpected character %q in result", r)
		}
	}
}

func TestMakeRandAlphanumericString_ZeroLength(t *testing.T) {
	s, err := MakeRandAlphanumericString(0)
	if err != nil {
		t.Fatalf("unexpected error for length=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for length=0, got %q", s)
	}
}

func TestMakeRandAlphanumericString_EntropyHint(t *testing.T) {
	const n = 64
	a, err := MakeRandAlphanumericString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandAlphanumericString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two MakeRandAlphanumericString(%d) results are identical", n)
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_Zeroes(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %v", i, v)
		}
	}
}

func TestWipeByteArray_Nil(t *testing.T) {
	WipeByteArray(nil) // must not panic
}
