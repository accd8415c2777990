package util

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsHex(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"ab", true},
		{"ABcd09", true},
		{"abc", false},
		{"zz", false},
		{"0x12", false},
	}
	for _, tc := range tests {
		if got := IsHex(tc.in); got != tc.want {
			t.Fatalf("IsHex(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"int", 42, true},
		{"float integral", 42.0, true},
		{"float fraction", 1.5, false},
		{"numeric string", "536", true},
		{"leading zero", "012", false},
		{"zero", "0", true},
		{"hex literal", "0x1A", true},
		{"text", "abc", false},
		{"raw number", json.RawMessage(`200`), true},
		{"raw string", json.RawMessage(`"200"`), true},
		{"raw null", json.RawMessage(`null`), false},
		{"raw object", json.RawMessage(`{"a":1}`), false},
		{"bool", true, false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsInt(tc.in); got != tc.want {
				t.Fatalf("IsInt(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	if !IsNumeric("1.25") {
		t.Fatal("expected 1.25 to be numeric")
	}
	if IsNumeric("Infinity") {
		t.Fatal("Infinity must not be numeric")
	}
	if IsNumeric("012") {
		t.Fatal("leading zero must not be numeric")
	}
	if IsNumeric("1e") {
		t.Fatal("malformed exponent must not be numeric")
	}
}

func TestParseInt(t *testing.T) {
	if n, ok := ParseInt(json.RawMessage(`"200.9"`)); !ok || n != 200 {
		t.Fatalf("ParseInt = %d, %v", n, ok)
	}
	if n, ok := ParseInt(""); !ok || n != 0 {
		t.Fatalf("ParseInt(empty) = %d, %v", n, ok)
	}
	if _, ok := ParseInt("nope"); ok {
		t.Fatal("expected failure for text")
	}
}

func TestIsIP(t *testing.T) {
	if !IsIP("10.0.0.1") || !IsIP("10.0.0.1:8080") {
		t.Fatal("expected IPv4 addresses to match")
	}
	if IsIP("node.example.com") || IsIP("300.1.1.1") {
		t.Fatal("unexpected IP match")
	}
}

func TestWrapEndpoint(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://joy.zigap.io", "https://joy.zigap.io"},
		{"http://localhost:8080/", "http://localhost:8080"},
		{"10.1.2.3:8000", "http://10.1.2.3:8000"},
		{"joy.zigap.io", "https://joy.zigap.io"},
		{"//joy.zigap.io", "https://joy.zigap.io"},
	}
	for _, tc := range tests {
		if got := WrapEndpoint(tc.in); got != tc.want {
			t.Fatalf("WrapEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMergeKeepsFirstOccurrence(t *testing.T) {
	got := Merge([]string{"a", "b"}, []string{"b", "c", "a"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Merge = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Merge = %v, want %v", got, want)
		}
	}
}

func TestRandomSlice(t *testing.T) {
	src := []int{1, 2, 3, 4, 5}
	if got := RandomSlice(src, 3); len(got) != 3 {
		t.Fatalf("expected 3 elements, got %v", got)
	}
	if got := RandomSlice(src, 10); len(got) != 5 {
		t.Fatalf("expected all elements, got %v", got)
	}
	if got := RandomSlice(src, -2); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
	if src[0] != 1 || src[4] != 5 {
		t.Fatalf("source slice modified: %v", src)
	}
}

func TestRandomHexString(t *testing.T) {
	s, err := RandomHexString(16)
	if err != nil {
		t.Fatalf("RandomHexString: %v", err)
	}
	if len(s) != 32 || !IsHex(s) {
		t.Fatalf("unexpected value %q", s)
	}
}

func TestTimeHelpers(t *testing.T) {
	orig := now
	defer func() { now = orig }()
	now = func() time.Time { return time.UnixMilli(1700000000123) }

	if got := Time(); got != 1700000000 {
		t.Fatalf("Time = %d", got)
	}
	if got := UTime(); got != 1700000000123000 {
		t.Fatalf("UTime = %d", got)
	}
	if got := UCeilTime(); got != 1700000001000000 {
		t.Fatalf("UCeilTime = %d", got)
	}
}

func TestApplyDecimal(t *testing.T) {
	tests := []struct {
		in   any
		dec  int32
		want string
	}{
		{"1500000000000000000", 18, "1.5"},
		{"1000000000000000000", 18, "1"},
		{big.NewInt(536000000000), 9, "536"},
		{int64(12345), 2, "123.45"},
		{"0", 18, "0"},
	}
	for _, tc := range tests {
		got, err := ApplyDecimal(tc.in, tc.dec)
		if err != nil {
			t.Fatalf("ApplyDecimal(%v) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ApplyDecimal(%v, %d) = %q, want %q", tc.in, tc.dec, got, tc.want)
		}
	}
	if _, err := ApplyDecimal(3.5, 2); err == nil {
		t.Fatal("expected error for float input")
	}
}

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"1.5", "1500000000000000000"},
		{1.5, "1500000000000000000"},
		{int64(2), "2000000000000000000"},
		{decimal.NewFromFloat(0.25), "250000000000000000"},
	}
	for _, tc := range tests {
		got, err := ToBaseUnits(tc.in, 18)
		if err != nil {
			t.Fatalf("ToBaseUnits(%v) error: %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ToBaseUnits(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if _, err := ToBaseUnits("abc", 18); err == nil {
		t.Fatal("expected error for invalid string")
	}
	if _, err := ToBaseUnits([]int{1}, 18); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
